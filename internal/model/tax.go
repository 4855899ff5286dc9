package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxStatus constants
const (
	TaxStatusUnpaid = "UNPAID"
	TaxStatusPaid   = "PAID"
)

// TaxRecord is one billing entry for an asset. At most one UNPAID record
// exists per asset at a time; reconciliation keeps its amount in line with
// the owning asset. Once PAID the record is frozen; the amount must never
// be recomputed, it documents what was actually charged.
type TaxRecord struct {
	ID      uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User    *User           `gorm:"foreignKey:UserID" json:"-"`
	AssetID uuid.UUID       `gorm:"type:uuid;not null;index" json:"asset_id"`
	Asset   *Asset          `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	Amount  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"` // Whole currency units
	Rate    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"rate"`   // Effective percentage, 2dp
	Status  string          `gorm:"type:varchar(20);not null;default:'UNPAID';index" json:"status"`
	DueDate time.Time       `gorm:"not null" json:"due_date"`
	PaidAt  *time.Time      `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
