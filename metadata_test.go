package fifotax

import (
	"errors"
	"testing"
)

func TestMetadata_MergeQuote(t *testing.T) {
	md := Metadata{
		"World": {Name: "World", ISIN: "IE00BK5BQT80", TFSPercentage: 30},
		"Bonds": {Name: "Bonds", TFSPercentage: 15},
	}

	if err := md.MergeQuote("World", "IE00BK5BQT80", 110.5); err != nil {
		t.Fatalf("MergeQuote() error = %v", err)
	}
	if err := md.MergeQuote("Bonds", "LU0000000001", 50); err != nil {
		t.Fatalf("MergeQuote() error = %v", err)
	}
	if err := md.MergeQuote("Stock", "", 12); err != nil {
		t.Fatalf("MergeQuote() error = %v", err)
	}

	want := Metadata{
		"World": {Name: "World", ISIN: "IE00BK5BQT80", TFSPercentage: 30, Quote: 110.5, HasQuote: true},
		"Bonds": {Name: "Bonds", ISIN: "LU0000000001", TFSPercentage: 15, Quote: 50, HasQuote: true},
		"Stock": {Name: "Stock", Quote: 12, HasQuote: true},
	}
	for name, w := range want {
		if got := md[name]; got != w {
			t.Errorf("md[%q] = %+v, want %+v", name, got, w)
		}
	}
}

func TestMetadata_MergeQuoteZero(t *testing.T) {
	md := Metadata{"World": {Name: "World", ISIN: "IE00BK5BQT80", TFSPercentage: 30}}
	if err := md.MergeQuote("World", "", 0); err != nil {
		t.Fatalf("MergeQuote() error = %v", err)
	}
	if err := md.MergeQuote("Stock", "", 0); err != nil {
		t.Fatalf("MergeQuote() error = %v", err)
	}
	for _, name := range []string{"World", "Stock"} {
		if md[name].HasQuote {
			t.Errorf("md[%q].HasQuote = true for a zero quote", name)
		}
	}

	l := NewLedger()
	if err := l.Acquire("Depot", "World", day("2023-01-10"), 0, 1, 10, ""); err != nil {
		t.Fatal(err)
	}
	r := Evaluate(l, md, VapTable{}, GainOptions{})
	got := r.Securities[0].Lots[0]
	if got.HasQuote || got.Gain != 0 || got.Gross != 0 {
		t.Errorf("Evaluate() lot = %+v, want cost only", got)
	}
}

func TestMetadata_MergeQuoteInconsistentISIN(t *testing.T) {
	md := Metadata{"World": {Name: "World", ISIN: "IE00BK5BQT80"}}

	err := md.MergeQuote("World", "IE00B3RBWM25", 110.5)
	if !errors.Is(err, ErrInconsistentISIN) {
		t.Fatalf("MergeQuote() error = %v, want ErrInconsistentISIN", err)
	}
	var isinErr *InconsistentISINError
	if !errors.As(err, &isinErr) || isinErr.Other != "IE00B3RBWM25" {
		t.Errorf("MergeQuote() error = %#v, want an *InconsistentISINError", err)
	}
}
