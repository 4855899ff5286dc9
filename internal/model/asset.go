package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Asset represents one registered taxable asset of a citizen. Category and
// Subtype drive the base tax rate; the optional attribute columns are the
// rate modifiers relevant to the subtype. TaxAmount and TaxRate cache the
// latest computation result for display and are refreshed on every write.
type Asset struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User     *User           `gorm:"foreignKey:UserID" json:"-"`
	Name     string          `gorm:"type:varchar(255);not null" json:"name"`
	Category string          `gorm:"type:varchar(20);not null;index" json:"category"` // LANCAR, SEMI_LANCAR, TIDAK_LANCAR
	Subtype  string          `gorm:"type:varchar(50);not null;index" json:"subtype"`
	Value    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"value"` // Acquisition or estimated value

	// Optional classification attributes; empty when not filled in yet
	CertificateType     string `gorm:"type:varchar(50)" json:"certificate_type,omitempty"`
	LandType            string `gorm:"type:varchar(50)" json:"land_type,omitempty"`
	BuildingType        string `gorm:"type:varchar(50)" json:"building_type,omitempty"`
	StructureMaterial   string `gorm:"type:varchar(50)" json:"structure_material,omitempty"`
	VehicleType         string `gorm:"type:varchar(50)" json:"vehicle_type,omitempty"`
	FuelType            string `gorm:"type:varchar(50)" json:"fuel_type,omitempty"`
	EngineType          string `gorm:"type:varchar(50)" json:"engine_type,omitempty"`
	InvestmentType      string `gorm:"type:varchar(50)" json:"investment_type,omitempty"`
	InventoryCategory   string `gorm:"type:varchar(50)" json:"inventory_category,omitempty"`
	ReceivableStatus    string `gorm:"type:varchar(50)" json:"receivable_status,omitempty"`
	IntangibleAssetType string `gorm:"type:varchar(50)" json:"intangible_asset_type,omitempty"`
	OwnershipStatus     string `gorm:"type:varchar(50)" json:"ownership_status,omitempty"`

	// Cached computation result
	TaxAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"tax_amount"`
	TaxRate   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"tax_rate"`

	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
