package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"150000000", "150000000"},
		{"2500.75", "2500.75"},
		{"0", "0"},
		{"", "0"},
		{"abc", "0"},
		{"-100", "0"},
	}

	for _, tt := range tests {
		if got := parseValue(tt.in); !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("parseValue(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestComputePreviewTolerantOfMalformedValue(t *testing.T) {
	svc := &taxService{}

	res := svc.ComputePreview(ComputeTaxRequest{
		Subtype: "LAND",
		Value:   "not-a-number",
	})

	if !res.TaxAmount.IsZero() {
		t.Errorf("TaxAmount = %s, want 0 for malformed value", res.TaxAmount)
	}
}

func TestNewPaymentReference(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	ref := newPaymentReference(now)

	if ok, _ := regexp.MatchString(`^PAY-20260829-[0-9A-F]{8}$`, ref); !ok {
		t.Errorf("reference %q does not match expected format", ref)
	}

	if other := newPaymentReference(now); other == ref {
		t.Errorf("references must be unique, got %q twice", ref)
	}
}
