package fifotax

import "fmt"

// Rates of the German flat tax on capital gains.
const (
	kestRate = 0.25  // Kapitalertragsteuer
	soliRate = 0.055 // Solidaritätszuschlag, on top of KESt
)

// ChurchTax is the optional Kirchensteuer rate, levied on top of KESt.
type ChurchTax int

const (
	NoChurchTax ChurchTax = iota
	ChurchTax8            // Bavaria and Baden-Württemberg
	ChurchTax9            // every other state
)

// Rate returns the church tax rate applied to KESt.
func (c ChurchTax) Rate() float64 {
	switch c {
	case ChurchTax8:
		return 0.08
	case ChurchTax9:
		return 0.09
	default:
		return 0
	}
}

func (c ChurchTax) String() string {
	switch c {
	case ChurchTax8:
		return "8"
	case ChurchTax9:
		return "9"
	default:
		return "0"
	}
}

// ParseChurchTax parses a church tax rate in percent: "", "0", "8" or "9".
func ParseChurchTax(s string) (ChurchTax, error) {
	switch s {
	case "", "0":
		return NoChurchTax, nil
	case "8":
		return ChurchTax8, nil
	case "9":
		return ChurchTax9, nil
	default:
		return NoChurchTax, fmt.Errorf("unknown church tax rate: %q", s)
	}
}

// ChurchTaxFromFlags converts the two exclusive command line switches.
func ChurchTaxFromFlags(kirche8, kirche9 bool) (ChurchTax, error) {
	switch {
	case kirche8 && kirche9:
		return NoChurchTax, ErrChurchTaxConflict
	case kirche8:
		return ChurchTax8, nil
	case kirche9:
		return ChurchTax9, nil
	default:
		return NoChurchTax, nil
	}
}

// TaxFactor is the share of a taxable gain withheld as tax, and its label in
// reports.
type TaxFactor struct {
	Factor float64
	Label  string
}

// ComputeTaxFactor returns KESt plus Soli plus the church tax, as a
// fraction of the taxable gain.
func ComputeTaxFactor(c ChurchTax) TaxFactor {
	rate := c.Rate()
	f := TaxFactor{
		Factor: kestRate * (1 + soliRate + rate),
		Label:  "KESt + Soli",
	}
	if rate > 0 {
		f.Label += fmt.Sprintf(" + %s%% Kirche", c)
	}
	return f
}
