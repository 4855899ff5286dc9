package taxation

import "testing"

func TestBaseRate(t *testing.T) {
	tests := []struct {
		subtype string
		want    string
	}{
		{SubtypeCashBank, "0"},
		{SubtypeReceivable, "0.1"},
		{SubtypeInventory, "0.5"},
		{SubtypeShortTermDeposit, "0.15"},
		{SubtypeMediumTermInvestment, "0.3"},
		{SubtypeLand, "0.3"},
		{SubtypeBuilding, "0.4"},
		{SubtypeVehicle, "1.5"},
		{SubtypeMachinery, "0.8"},
		{SubtypeLongTermInvestment, "0.25"},
		{"HELICOPTER", "0"}, // unknown
		{"", "0"},
	}

	for _, tt := range tests {
		if got := BaseRate(tt.subtype); !got.Equal(dec(tt.want)) {
			t.Errorf("BaseRate(%q) = %s, want %s", tt.subtype, got, tt.want)
		}
	}
}

func TestModifierRate(t *testing.T) {
	tests := []struct {
		dimension string
		value     string
		want      string
	}{
		{DimCertificateType, "SHM", "0.10"},
		{DimVehicleType, "SEPEDA_MOTOR", "-0.30"},
		{DimFuelType, "LISTRIK", "-0.10"},
		{DimOwnershipStatus, "SEWA", "-0.50"},
		{DimEngineType, "RANGE_1500_2000CC", "0"},
		{DimIntangibleAssetType, "FRANCHISE", "0.15"},
		{DimCertificateType, "NOT_A_CERT", "0"}, // unknown value
		{"not_a_dimension", "SHM", "0"},         // unknown dimension
	}

	for _, tt := range tests {
		if got := ModifierRate(tt.dimension, tt.value); !got.Equal(dec(tt.want)) {
			t.Errorf("ModifierRate(%q, %q) = %s, want %s", tt.dimension, tt.value, got, tt.want)
		}
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		subtype string
		want    string
	}{
		{SubtypeCashBank, CategoryCurrent},
		{SubtypeCertificateOfDeposit, CategorySemiCurrent},
		{SubtypeVehicle, CategoryNonCurrent},
		{"HELICOPTER", ""},
	}

	for _, tt := range tests {
		if got := CategoryOf(tt.subtype); got != tt.want {
			t.Errorf("CategoryOf(%q) = %q, want %q", tt.subtype, got, tt.want)
		}
	}
}
