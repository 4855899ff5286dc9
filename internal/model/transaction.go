package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod constants
const (
	PaymentMethodBankTransfer   = "TRANSFER_BANK"
	PaymentMethodVirtualAccount = "VIRTUAL_ACCOUNT"
	PaymentMethodQRIS           = "QRIS"
	PaymentMethodCash           = "TUNAI"
)

// Transaction is an append-only payment history entry. One transaction is
// written when a tax record transitions to PAID; it is never updated or
// deleted afterwards.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User           `gorm:"foreignKey:UserID" json:"-"`
	TaxRecordID uuid.UUID       `gorm:"type:uuid;not null;index" json:"tax_record_id"`
	TaxRecord   *TaxRecord      `gorm:"foreignKey:TaxRecordID" json:"tax_record,omitempty"`
	AssetID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"asset_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Method      string          `gorm:"type:varchar(30);not null" json:"method"`                // TRANSFER_BANK, VIRTUAL_ACCOUNT, QRIS, TUNAI
	Reference   string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"reference"` // Human-readable receipt code
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`
}
