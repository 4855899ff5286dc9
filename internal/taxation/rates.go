package taxation

import "github.com/shopspring/decimal"

// pct avoids float round-trips for the fixed rate constants below.
func pct(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Base percentage rate per asset subtype. Rates are fixed regional policy,
// not user-configurable.
var baseRates = map[string]decimal.Decimal{
	SubtypeCashBank:          pct("0"),
	SubtypeReceivable:        pct("0.1"),
	SubtypeReceivableOther:   pct("0.1"),
	SubtypeInventory:         pct("0.5"),
	SubtypeShortTermDeposit:  pct("0.15"),
	SubtypeCurrentInvestment: pct("0.2"),

	SubtypeMediumTermInvestment: pct("0.3"),
	SubtypeCertificateOfDeposit: pct("0.15"),
	SubtypeMediumTermReceivable: pct("0.15"),

	SubtypeLand:               pct("0.3"),
	SubtypeBuilding:           pct("0.4"),
	SubtypeVehicle:            pct("1.5"),
	SubtypeMachinery:          pct("0.8"),
	SubtypeOfficeFurniture:    pct("0.5"),
	SubtypeIntangible:         pct("0.3"),
	SubtypeLongTermInvestment: pct("0.25"),
}

// Signed percentage adjustment per modifier dimension and value.
var modifierRates = map[string]map[string]decimal.Decimal{
	DimCertificateType: {
		"SHM":            pct("0.10"),
		"SHGB":           pct("0.08"),
		"SHGU":           pct("0.06"),
		"SHP":            pct("0.05"),
		"GIRIK":          pct("0.03"),
		"AKTA_JUAL_BELI": pct("0.04"),
	},
	DimLandType: {
		"PERUMAHAN":  pct("0.05"),
		"KOMERSIAL":  pct("0.15"),
		"INDUSTRI":   pct("0.12"),
		"PERTANIAN":  pct("0.02"),
		"PERKEBUNAN": pct("0.03"),
		"KOSONG":     pct("0.04"),
	},
	DimBuildingType: {
		"RUMAH_TINGGAL": pct("0.05"),
		"RUKO":          pct("0.12"),
		"KANTOR":        pct("0.10"),
		"PABRIK":        pct("0.13"),
		"GUDANG":        pct("0.08"),
		"APARTEMEN":     pct("0.07"),
	},
	DimStructureMaterial: {
		"BETON_BERTULANG": pct("0.05"),
		"BATA_RINGAN":     pct("0.03"),
		"KAYU":            pct("0.01"),
		"SEMI_PERMANEN":   pct("0.02"),
	},
	DimVehicleType: {
		"MOBIL_PRIBADI":   pct("0.30"),
		"MOBIL_PENUMPANG": pct("0.30"),
		"MOBIL_NIAGA":     pct("0.40"),
		"SEPEDA_MOTOR":    pct("-0.30"),
		"TRUCK":           pct("0.50"),
		"BUS":             pct("0.45"),
	},
	DimFuelType: {
		"BENSIN":  pct("0.05"),
		"DIESEL":  pct("0.07"),
		"LISTRIK": pct("-0.10"),
		"HYBRID":  pct("-0.05"),
	},
	DimEngineType: {
		"UNDER_1500CC":      pct("-0.10"),
		"RANGE_1500_2000CC": pct("0"),
		"RANGE_2000_3000CC": pct("0.10"),
		"OVER_3000CC":       pct("0.20"),
	},
	DimOwnershipStatus: {
		"MILIK_SENDIRI": pct("0"),
		"SEWA":          pct("-0.50"),
		"HIBAH":         pct("-0.20"),
		"WARISAN":       pct("-0.10"),
		"KREDIT":        pct("0.05"),
	},
	DimInvestmentType: {
		"SAHAM":       pct("0.10"),
		"OBLIGASI":    pct("0.05"),
		"REKSA_DANA":  pct("0.08"),
		"DEPOSITO":    pct("0.03"),
		"PROPERTI":    pct("0.15"),
		"LOGAM_MULIA": pct("0.07"),
	},
	DimInventoryCategory: {
		"BAHAN_BAKU":          pct("0.10"),
		"BARANG_DALAM_PROSES": pct("0.15"),
		"BARANG_JADI":         pct("0.20"),
		"BARANG_DAGANGAN":     pct("0.18"),
	},
	DimReceivableStatus: {
		"LANCAR":        pct("0"),
		"KURANG_LANCAR": pct("0.05"),
		"DIRAGUKAN":     pct("0.10"),
		"MACET":         pct("0.15"),
	},
	DimIntangibleAssetType: {
		"HAK_PATEN":    pct("0.10"),
		"HAK_CIPTA":    pct("0.08"),
		"MEREK_DAGANG": pct("0.12"),
		"FRANCHISE":    pct("0.15"),
		"GOODWILL":     pct("0.05"),
		"SOFTWARE":     pct("0.10"),
	},
}

// BaseRate returns the base percentage rate for an asset subtype. An unknown
// or unset subtype carries no intrinsic rate and yields zero.
func BaseRate(subtype string) decimal.Decimal {
	if r, ok := baseRates[subtype]; ok {
		return r
	}
	return decimal.Zero
}

// ModifierRate returns the signed percentage adjustment for one
// classification attribute. Unknown dimensions or values mean "no
// adjustment" and yield zero; they are never an error.
func ModifierRate(dimension, value string) decimal.Decimal {
	if values, ok := modifierRates[dimension]; ok {
		if r, ok := values[value]; ok {
			return r
		}
	}
	return decimal.Zero
}
