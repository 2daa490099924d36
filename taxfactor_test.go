package fifotax

import (
	"errors"
	"math"
	"testing"
)

func TestComputeTaxFactor(t *testing.T) {
	tests := []struct {
		church     ChurchTax
		wantFactor float64
		wantLabel  string
	}{
		{NoChurchTax, 0.26375, "KESt + Soli"},
		{ChurchTax8, 0.25 * 1.135, "KESt + Soli + 8% Kirche"},
		{ChurchTax9, 0.25 * 1.145, "KESt + Soli + 9% Kirche"},
	}
	for _, tt := range tests {
		got := ComputeTaxFactor(tt.church)
		if math.Abs(got.Factor-tt.wantFactor) > 1e-12 {
			t.Errorf("ComputeTaxFactor(%v).Factor = %v, want %v", tt.church, got.Factor, tt.wantFactor)
		}
		if got.Label != tt.wantLabel {
			t.Errorf("ComputeTaxFactor(%v).Label = %q, want %q", tt.church, got.Label, tt.wantLabel)
		}
	}
}

func TestChurchTaxFromFlags(t *testing.T) {
	tests := []struct {
		k8, k9  bool
		want    ChurchTax
		wantErr error
	}{
		{false, false, NoChurchTax, nil},
		{true, false, ChurchTax8, nil},
		{false, true, ChurchTax9, nil},
		{true, true, NoChurchTax, ErrChurchTaxConflict},
	}
	for _, tt := range tests {
		got, err := ChurchTaxFromFlags(tt.k8, tt.k9)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ChurchTaxFromFlags(%v, %v) error = %v, want %v", tt.k8, tt.k9, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ChurchTaxFromFlags(%v, %v) = %v, want %v", tt.k8, tt.k9, got, tt.want)
		}
	}
}

func TestParseChurchTax(t *testing.T) {
	for _, c := range []ChurchTax{NoChurchTax, ChurchTax8, ChurchTax9} {
		got, err := ParseChurchTax(c.String())
		if err != nil || got != c {
			t.Errorf("ParseChurchTax(%q) = %v, %v, want %v", c.String(), got, err, c)
		}
	}
	if _, err := ParseChurchTax("7"); err == nil {
		t.Error("ParseChurchTax(\"7\") succeeded")
	}
}
