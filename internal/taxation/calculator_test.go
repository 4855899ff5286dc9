package taxation

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeScenarios(t *testing.T) {
	tests := []struct {
		name       string
		c          Classification
		wantBase   string
		wantTotal  string
		wantAmount string
		wantMods   int
	}{
		{
			name: "passenger car",
			c: Classification{
				Subtype:         SubtypeVehicle,
				Value:           dec("150000000"),
				VehicleType:     "MOBIL_PENUMPANG",
				FuelType:        "BENSIN",
				EngineType:      "RANGE_1500_2000CC",
				OwnershipStatus: "MILIK_SENDIRI",
			},
			wantBase:   "1.5",
			wantTotal:  "1.85",
			wantAmount: "2775000",
			wantMods:   4,
		},
		{
			name: "residential land with SHM certificate",
			c: Classification{
				Subtype:         SubtypeLand,
				Value:           dec("500000000"),
				CertificateType: "SHM",
				LandType:        "PERUMAHAN",
			},
			wantBase:   "0.3",
			wantTotal:  "0.45",
			wantAmount: "2250000",
			wantMods:   2,
		},
		{
			name: "cash has no base rate",
			c: Classification{
				Subtype: SubtypeCashBank,
				Value:   dec("10000000"),
			},
			wantBase:   "0",
			wantTotal:  "0",
			wantAmount: "0",
			wantMods:   0,
		},
		{
			name: "raw material inventory on credit",
			c: Classification{
				Subtype:           SubtypeInventory,
				Value:             dec("20000000"),
				InventoryCategory: "BAHAN_BAKU",
				OwnershipStatus:   "KREDIT",
			},
			wantBase:   "0.5",
			wantTotal:  "0.65",
			wantAmount: "130000",
			wantMods:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.c)

			if !got.BaseRate.Equal(dec(tt.wantBase)) {
				t.Errorf("BaseRate = %s, want %s", got.BaseRate, tt.wantBase)
			}
			if !got.TotalRate.Equal(dec(tt.wantTotal)) {
				t.Errorf("TotalRate = %s, want %s", got.TotalRate, tt.wantTotal)
			}
			if !got.TaxAmount.Equal(dec(tt.wantAmount)) {
				t.Errorf("TaxAmount = %s, want %s", got.TaxAmount, tt.wantAmount)
			}
			if len(got.Modifiers) != tt.wantMods {
				t.Errorf("len(Modifiers) = %d, want %d", len(got.Modifiers), tt.wantMods)
			}
		})
	}
}

func TestComputeZeroValue(t *testing.T) {
	got := Compute(Classification{
		Subtype:         SubtypeVehicle,
		Value:           decimal.Zero,
		VehicleType:     "TRUCK",
		OwnershipStatus: "MILIK_SENDIRI",
	})

	if !got.TotalRate.IsZero() || !got.TaxAmount.IsZero() || !got.BaseRate.IsZero() {
		t.Errorf("expected all-zero result for zero value, got %+v", got)
	}
	if got.Note == "" {
		t.Error("expected explanatory note for zero value")
	}
}

func TestComputeNegativeValueTreatedAsZero(t *testing.T) {
	got := Compute(Classification{Subtype: SubtypeLand, Value: dec("-5000")})

	if !got.TaxAmount.IsZero() || !got.TotalRate.IsZero() {
		t.Errorf("expected zero result for negative value, got %+v", got)
	}
}

func TestComputeClampsNegativeTotal(t *testing.T) {
	// RECEIVABLE base 0.1 with SEWA ownership -0.50 sums to -0.4
	got := Compute(Classification{
		Subtype:         SubtypeReceivable,
		Value:           dec("1000000"),
		OwnershipStatus: "SEWA",
	})

	if !got.TotalRate.IsZero() {
		t.Errorf("TotalRate = %s, want 0 (clamped)", got.TotalRate)
	}
	if !got.TaxAmount.IsZero() {
		t.Errorf("TaxAmount = %s, want 0", got.TaxAmount)
	}
}

func TestComputeSkipsInapplicableDimensions(t *testing.T) {
	// Land attributes on a cash asset must be ignored entirely
	got := Compute(Classification{
		Subtype:         SubtypeCashBank,
		Value:           dec("1000000"),
		CertificateType: "SHM",
		LandType:        "KOMERSIAL",
		VehicleType:     "TRUCK",
	})

	if len(got.Modifiers) != 0 {
		t.Errorf("expected no modifiers, got %v", got.Modifiers)
	}
	if !got.TotalRate.IsZero() {
		t.Errorf("TotalRate = %s, want 0", got.TotalRate)
	}
}

func TestComputeUnknownModifierValueIsNoAdjustment(t *testing.T) {
	got := Compute(Classification{
		Subtype:         SubtypeLand,
		Value:           dec("100000000"),
		CertificateType: "SURAT_KETERANGAN", // not in the table
	})

	if !got.TotalRate.Equal(dec("0.3")) {
		t.Errorf("TotalRate = %s, want base rate 0.3", got.TotalRate)
	}
	if len(got.Modifiers) != 1 || !got.Modifiers[0].Rate.IsZero() {
		t.Errorf("expected one zero-rate modifier entry, got %v", got.Modifiers)
	}
}

func TestComputeOwnershipAppliesToAnySubtype(t *testing.T) {
	got := Compute(Classification{
		Subtype:         SubtypeMachinery,
		Value:           dec("50000000"),
		OwnershipStatus: "KREDIT",
	})

	// 0.8 + 0.05
	if !got.TotalRate.Equal(dec("0.85")) {
		t.Errorf("TotalRate = %s, want 0.85", got.TotalRate)
	}
}

func TestComputeDeterministic(t *testing.T) {
	c := Classification{
		Subtype:         SubtypeVehicle,
		Value:           dec("150000000"),
		VehicleType:     "MOBIL_NIAGA",
		FuelType:        "DIESEL",
		EngineType:      "OVER_3000CC",
		OwnershipStatus: "KREDIT",
	}

	first := Compute(c)
	second := Compute(c)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Compute is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
