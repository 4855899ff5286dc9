package taxation

import (
	"time"

	"taxportal/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Billing policy. Bills are annual: a newly issued record is due one year
// after issuance. Assets with no estimated value still get a minimum bill
// instead of a zero-amount one.
var minimumBillAmount = decimal.NewFromInt(150000)

// billingTarget is the amount and rate an unpaid record for the asset
// should currently carry.
func billingTarget(a model.Asset) (amount, rate decimal.Decimal) {
	res := Compute(ClassificationOf(a))
	amount = res.TaxAmount.Round(0)
	if amount.IsZero() {
		// Minimum applied here, not only at creation, so that a repeated
		// reconcile of the same snapshot stays a no-op.
		amount = minimumBillAmount
	}
	return amount, res.TotalRate.Round(2)
}

// ClassificationOf extracts the tax-relevant fields from a stored asset.
func ClassificationOf(a model.Asset) Classification {
	return Classification{
		Subtype:             a.Subtype,
		Value:               a.Value,
		CertificateType:     a.CertificateType,
		LandType:            a.LandType,
		BuildingType:        a.BuildingType,
		StructureMaterial:   a.StructureMaterial,
		VehicleType:         a.VehicleType,
		FuelType:            a.FuelType,
		EngineType:          a.EngineType,
		InvestmentType:      a.InvestmentType,
		InventoryCategory:   a.InventoryCategory,
		ReceivableStatus:    a.ReceivableStatus,
		IntangibleAssetType: a.IntangibleAssetType,
		OwnershipStatus:     a.OwnershipStatus,
	}
}

// Reconcile brings a loaded tax record snapshot in line with the current
// asset snapshot:
//
//   - an asset with no unpaid record gets a fresh one appended,
//   - an unpaid record whose amount or rate drifted from the current
//     computation is corrected in place,
//   - paid records are never touched.
//
// Existing records keep their positions; new records append at the end.
// The function performs no I/O: the caller loads both collections and
// persists whatever changed. Running it twice over an unchanged snapshot
// yields no further mutation.
func Reconcile(assets []model.Asset, records []model.TaxRecord, now time.Time) []model.TaxRecord {
	out := make([]model.TaxRecord, len(records))
	copy(out, records)

	unpaid := make(map[uuid.UUID]int, len(out))
	for i, r := range out {
		if r.Status == model.TaxStatusUnpaid {
			if _, ok := unpaid[r.AssetID]; !ok {
				unpaid[r.AssetID] = i
			}
		}
	}

	for _, a := range assets {
		amount, rate := billingTarget(a)

		if i, ok := unpaid[a.ID]; ok {
			// Repairs drift introduced by asset edits made through a path
			// that skipped reconciliation.
			if !out[i].Amount.Equal(amount) || !out[i].Rate.Equal(rate) {
				out[i].Amount = amount
				out[i].Rate = rate
			}
			continue
		}

		out = append(out, model.TaxRecord{
			UserID:  a.UserID,
			AssetID: a.ID,
			Amount:  amount,
			Rate:    rate,
			Status:  model.TaxStatusUnpaid,
			DueDate: now.AddDate(1, 0, 0),
		})
	}

	return out
}
