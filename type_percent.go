package fifotax

import "fmt"

// Percent is a ratio expressed in percent: 12.5 means 12.5%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// Fraction returns the ratio as a fraction: 12.5% is 0.125.
func (p Percent) Fraction() float64 { return float64(p) / 100 }

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}
