package taxation

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// Compute derives the effective tax rate and amount for a classification.
// It is a pure function: same input, same output, no I/O.
//
// The breakdown lists only the modifier dimensions that apply to the
// subtype's category and whose attribute is actually filled in; the
// ownership status applies to every subtype. The total rate is floored at
// zero so a heavily discounted asset (e.g. a leased electric motorcycle)
// never produces a negative bill.
func Compute(c Classification) Result {
	if c.Value.Sign() <= 0 {
		// Draft assets without an estimated value are common; they simply
		// carry no tax yet.
		return Result{
			BaseRate:  decimal.Zero,
			TotalRate: decimal.Zero,
			TaxAmount: decimal.Zero,
			Note:      "asset has no taxable value",
		}
	}

	base := BaseRate(c.Subtype)
	total := base

	var mods []Modifier
	apply := func(dimension, value string) {
		if value == "" {
			return
		}
		rate := ModifierRate(dimension, value)
		mods = append(mods, Modifier{Dimension: dimension, Value: value, Rate: rate})
		total = total.Add(rate)
	}

	switch c.Subtype {
	case SubtypeLand:
		apply(DimCertificateType, c.CertificateType)
		apply(DimLandType, c.LandType)
	case SubtypeBuilding:
		apply(DimBuildingType, c.BuildingType)
		apply(DimStructureMaterial, c.StructureMaterial)
	case SubtypeVehicle:
		apply(DimVehicleType, c.VehicleType)
		apply(DimFuelType, c.FuelType)
		apply(DimEngineType, c.EngineType)
	case SubtypeInventory:
		apply(DimInventoryCategory, c.InventoryCategory)
	case SubtypeIntangible:
		apply(DimIntangibleAssetType, c.IntangibleAssetType)
	case SubtypeReceivable, SubtypeReceivableOther, SubtypeMediumTermReceivable:
		apply(DimReceivableStatus, c.ReceivableStatus)
	case SubtypeCurrentInvestment, SubtypeMediumTermInvestment, SubtypeLongTermInvestment:
		apply(DimInvestmentType, c.InvestmentType)
	}

	apply(DimOwnershipStatus, c.OwnershipStatus)

	if total.Sign() < 0 {
		total = decimal.Zero
	}

	return Result{
		BaseRate:  base,
		Modifiers: mods,
		TotalRate: total,
		TaxAmount: c.Value.Mul(total).Div(oneHundred),
	}
}
