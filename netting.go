package fifotax

// NextTaxableAmount returns the part of a lot's gain that is taxable now,
// given the running sum of the unnetted gains of the lots sold before it.
//
// A loss is refunded only up to the gains made before it, a gain first
// pays off the losses made before it. With assumeSufficient, every loss is
// assumed to be offset by other gains of the year and is refunded in full.
func NextTaxableAmount(previous, current float64, assumeSufficient bool) float64 {
	if assumeSufficient {
		return current
	}
	if current < 0 {
		if previous > 0 {
			return max(-previous, current)
		}
		return 0
	}
	if previous < 0 {
		return max(previous+current, 0)
	}
	return current
}

// Netting folds NextTaxableAmount over the lots of one security, in FIFO
// order. The zero value is ready to use.
//
// A Netting must not be shared between securities.
type Netting struct {
	AssumeSufficient bool
	running          float64
}

// Next returns the taxable amount of the next lot and records its gain.
func (n *Netting) Next(gain float64) float64 {
	taxable := NextTaxableAmount(n.running, gain, n.AssumeSufficient)
	n.running += gain
	return taxable
}

// Running returns the sum of the gains recorded so far.
func (n *Netting) Running() float64 { return n.running }
