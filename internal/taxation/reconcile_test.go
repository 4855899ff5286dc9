package taxation

import (
	"reflect"
	"testing"
	"time"

	"taxportal/internal/model"

	"github.com/google/uuid"
)

func landAsset(userID uuid.UUID) model.Asset {
	return model.Asset{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            "Tanah Perumahan",
		Category:        CategoryNonCurrent,
		Subtype:         SubtypeLand,
		Value:           dec("500000000"),
		CertificateType: "SHM",
		LandType:        "PERUMAHAN",
	}
}

func TestReconcileIssuesRecordForNewAsset(t *testing.T) {
	userID := uuid.New()
	asset := landAsset(userID)
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	out := Reconcile([]model.Asset{asset}, nil, now)

	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	rec := out[0]
	if rec.AssetID != asset.ID || rec.UserID != userID {
		t.Errorf("record not linked to asset/user: %+v", rec)
	}
	if rec.Status != model.TaxStatusUnpaid {
		t.Errorf("Status = %q, want %q", rec.Status, model.TaxStatusUnpaid)
	}
	if !rec.Amount.Equal(dec("2250000")) {
		t.Errorf("Amount = %s, want 2250000", rec.Amount)
	}
	if !rec.Rate.Equal(dec("0.45")) {
		t.Errorf("Rate = %s, want 0.45", rec.Rate)
	}
	if !rec.DueDate.Equal(now.AddDate(1, 0, 0)) {
		t.Errorf("DueDate = %s, want %s", rec.DueDate, now.AddDate(1, 0, 0))
	}
}

func TestReconcileAppliesMinimumBill(t *testing.T) {
	// Cash holds a zero base rate, so the computed amount is zero
	asset := model.Asset{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Category: CategoryCurrent,
		Subtype:  SubtypeCashBank,
		Value:    dec("10000000"),
	}

	out := Reconcile([]model.Asset{asset}, nil, time.Now())

	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if !out[0].Amount.Equal(dec("150000")) {
		t.Errorf("Amount = %s, want minimum 150000", out[0].Amount)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	userID := uuid.New()
	assets := []model.Asset{landAsset(userID)}
	now := time.Now()

	first := Reconcile(assets, nil, now)
	second := Reconcile(assets, first, now.Add(48*time.Hour))

	if !reflect.DeepEqual(first, second) {
		t.Errorf("second reconcile mutated an up-to-date snapshot:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestReconcileRepairsDriftedUnpaidRecord(t *testing.T) {
	userID := uuid.New()
	asset := landAsset(userID)
	stale := model.TaxRecord{
		ID:      uuid.New(),
		UserID:  userID,
		AssetID: asset.ID,
		Amount:  dec("999"),
		Rate:    dec("9.99"),
		Status:  model.TaxStatusUnpaid,
		DueDate: time.Now(),
	}

	out := Reconcile([]model.Asset{asset}, []model.TaxRecord{stale}, time.Now())

	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1 (repair in place, no new record)", len(out))
	}
	if out[0].ID != stale.ID {
		t.Errorf("record identity changed during repair")
	}
	if !out[0].Amount.Equal(dec("2250000")) || !out[0].Rate.Equal(dec("0.45")) {
		t.Errorf("record not repaired: amount %s rate %s", out[0].Amount, out[0].Rate)
	}
}

func TestReconcileNeverTouchesPaidRecords(t *testing.T) {
	userID := uuid.New()
	asset := landAsset(userID)
	paidAt := time.Now().Add(-24 * time.Hour)
	paid := model.TaxRecord{
		ID:      uuid.New(),
		UserID:  userID,
		AssetID: asset.ID,
		Amount:  dec("123456"), // stale on purpose
		Rate:    dec("0.10"),
		Status:  model.TaxStatusPaid,
		DueDate: time.Now(),
		PaidAt:  &paidAt,
	}

	out := Reconcile([]model.Asset{asset}, []model.TaxRecord{paid}, time.Now())

	// The paid record is frozen and a fresh unpaid one is issued
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if !reflect.DeepEqual(out[0], paid) {
		t.Errorf("paid record was modified: %+v", out[0])
	}
	if out[1].Status != model.TaxStatusUnpaid || !out[1].Amount.Equal(dec("2250000")) {
		t.Errorf("expected new unpaid record, got %+v", out[1])
	}
}

func TestReconcilePreservesOrderAndAppends(t *testing.T) {
	userID := uuid.New()
	a := landAsset(userID)
	b := landAsset(userID)
	fresh := landAsset(userID)
	now := time.Now()

	records := Reconcile([]model.Asset{b, a}, nil, now)
	if len(records) != 2 || records[0].AssetID != b.ID || records[1].AssetID != a.ID {
		t.Fatalf("unexpected initial records: %+v", records)
	}

	out := Reconcile([]model.Asset{b, a, fresh}, records, now)

	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3", len(out))
	}
	if out[0].AssetID != b.ID || out[1].AssetID != a.ID {
		t.Errorf("existing record order changed")
	}
	if out[2].AssetID != fresh.ID {
		t.Errorf("new record not appended last: %+v", out[2])
	}
}

func TestReconcileKeepsSingleUnpaidRecordPerAsset(t *testing.T) {
	userID := uuid.New()
	asset := landAsset(userID)
	now := time.Now()

	out := Reconcile([]model.Asset{asset}, nil, now)
	out = Reconcile([]model.Asset{asset}, out, now)
	out = Reconcile([]model.Asset{asset}, out, now)

	unpaid := 0
	for _, r := range out {
		if r.Status == model.TaxStatusUnpaid && r.AssetID == asset.ID {
			unpaid++
		}
	}
	if unpaid != 1 {
		t.Errorf("unpaid records for asset = %d, want 1", unpaid)
	}
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	userID := uuid.New()
	asset := landAsset(userID)
	stale := model.TaxRecord{
		ID:      uuid.New(),
		UserID:  userID,
		AssetID: asset.ID,
		Amount:  dec("999"),
		Rate:    dec("9.99"),
		Status:  model.TaxStatusUnpaid,
		DueDate: time.Now(),
	}
	records := []model.TaxRecord{stale}

	_ = Reconcile([]model.Asset{asset}, records, time.Now())

	if !records[0].Amount.Equal(dec("999")) {
		t.Errorf("input slice was mutated: %+v", records[0])
	}
}
