package taxation

import "github.com/shopspring/decimal"

// Asset categories (kelompok aset).
const (
	CategoryCurrent     = "LANCAR"
	CategorySemiCurrent = "SEMI_LANCAR"
	CategoryNonCurrent  = "TIDAK_LANCAR"
)

// Asset subtypes, scoped per category.
const (
	// LANCAR
	SubtypeCashBank          = "CASH_BANK"
	SubtypeReceivable        = "RECEIVABLE"
	SubtypeReceivableOther   = "RECEIVABLE_OTHER"
	SubtypeInventory         = "INVENTORY"
	SubtypeShortTermDeposit  = "SHORT_TERM_DEPOSIT"
	SubtypeCurrentInvestment = "CURRENT_INVESTMENT"

	// SEMI_LANCAR
	SubtypeMediumTermInvestment = "MEDIUM_TERM_INVESTMENT"
	SubtypeCertificateOfDeposit = "CERTIFICATE_OF_DEPOSIT"
	SubtypeMediumTermReceivable = "MEDIUM_TERM_RECEIVABLE"

	// TIDAK_LANCAR
	SubtypeLand               = "LAND"
	SubtypeBuilding           = "BUILDING"
	SubtypeVehicle            = "VEHICLE"
	SubtypeMachinery          = "MACHINERY"
	SubtypeOfficeFurniture    = "OFFICE_FURNITURE"
	SubtypeIntangible         = "INTANGIBLE"
	SubtypeLongTermInvestment = "LONG_TERM_INVESTMENT"
)

// Modifier dimensions. Each one maps to a single optional attribute on the
// asset record.
const (
	DimCertificateType     = "certificate_type"
	DimLandType            = "land_type"
	DimBuildingType        = "building_type"
	DimStructureMaterial   = "structure_material"
	DimVehicleType         = "vehicle_type"
	DimFuelType            = "fuel_type"
	DimEngineType          = "engine_type"
	DimInvestmentType      = "investment_type"
	DimInventoryCategory   = "inventory_category"
	DimReceivableStatus    = "receivable_status"
	DimIntangibleAssetType = "intangible_asset_type"
	DimOwnershipStatus     = "ownership_status"
)

// Classification is the tax-relevant slice of an asset record. Modifier
// fields are optional; an empty string means the attribute was not filled in
// (asset entry happens in multiple steps, partial records are normal).
type Classification struct {
	Subtype             string
	Value               decimal.Decimal
	CertificateType     string
	LandType            string
	BuildingType        string
	StructureMaterial   string
	VehicleType         string
	FuelType            string
	EngineType          string
	InvestmentType      string
	InventoryCategory   string
	ReceivableStatus    string
	IntangibleAssetType string
	OwnershipStatus     string
}

// Modifier is one applied rate adjustment in a computation breakdown.
type Modifier struct {
	Dimension string          `json:"dimension"`
	Value     string          `json:"value"`
	Rate      decimal.Decimal `json:"rate"`
}

// Result is the outcome of a tax computation. All rates are percentages
// (1.85 means 1.85%). TaxAmount is in the same currency unit as the input
// value and is deliberately not rounded; rounding belongs to persistence.
type Result struct {
	BaseRate  decimal.Decimal `json:"base_rate"`
	Modifiers []Modifier      `json:"modifiers"`
	TotalRate decimal.Decimal `json:"total_rate"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Note      string          `json:"note,omitempty"`
}

var subtypeCategories = map[string]string{
	SubtypeCashBank:          CategoryCurrent,
	SubtypeReceivable:        CategoryCurrent,
	SubtypeReceivableOther:   CategoryCurrent,
	SubtypeInventory:         CategoryCurrent,
	SubtypeShortTermDeposit:  CategoryCurrent,
	SubtypeCurrentInvestment: CategoryCurrent,

	SubtypeMediumTermInvestment: CategorySemiCurrent,
	SubtypeCertificateOfDeposit: CategorySemiCurrent,
	SubtypeMediumTermReceivable: CategorySemiCurrent,

	SubtypeLand:               CategoryNonCurrent,
	SubtypeBuilding:           CategoryNonCurrent,
	SubtypeVehicle:            CategoryNonCurrent,
	SubtypeMachinery:          CategoryNonCurrent,
	SubtypeOfficeFurniture:    CategoryNonCurrent,
	SubtypeIntangible:         CategoryNonCurrent,
	SubtypeLongTermInvestment: CategoryNonCurrent,
}

// CategoryOf returns the category an asset subtype belongs to, or an empty
// string for an unknown subtype.
func CategoryOf(subtype string) string {
	return subtypeCategories[subtype]
}
