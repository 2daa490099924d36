package fifotax

import (
	"fmt"
	"time"
)

// Lot represents a single purchase (or inbound delivery) of a security that
// is still, at least partially, unsold.
//
// PurchasedShares and PurchasedValue never change once the lot is created.
// Only UnsoldShares is reduced by sales and transfers. A lot split in two by
// a partial transfer keeps the original purchase attributes on both halves:
// the per share cost is invariant under the split.
type Lot struct {
	ISIN            string    // may be empty if the export had no ISIN column
	Security        string    // security name, the matching key
	PurchasedAt     time.Time // purchase timestamp
	Index           int       // row index in the export, breaks timestamp ties
	PurchasedShares float64
	PurchasedValue  float64 // total cost in EUR, fees included
	UnsoldShares    float64
}

// newLot creates a fresh, fully unsold, lot.
func newLot(isin, security string, at time.Time, index int, shares, value float64) Lot {
	return Lot{
		ISIN:            isin,
		Security:        security,
		PurchasedAt:     at,
		Index:           index,
		PurchasedShares: shares,
		PurchasedValue:  value,
		UnsoldShares:    shares,
	}
}

// CostPerShare returns the acquisition cost of a single share, without VAP.
func (l Lot) CostPerShare() float64 {
	if l.PurchasedShares == 0 {
		return 0
	}
	return l.PurchasedValue / l.PurchasedShares
}

// UnsoldCost returns the acquisition cost of the unsold shares.
func (l Lot) UnsoldCost() float64 { return l.CostPerShare() * l.UnsoldShares }

// before reports whether l comes before m in FIFO order.
func (l Lot) before(m Lot) bool {
	if l.PurchasedAt.Equal(m.PurchasedAt) {
		return l.Index < m.Index
	}
	return l.PurchasedAt.Before(m.PurchasedAt)
}

// split detaches shares from the lot. The returned clone carries exactly
// shares unsold shares, the receiver keeps the remainder.
func (l *Lot) split(shares float64) Lot {
	clone := *l
	clone.UnsoldShares = shares
	l.UnsoldShares -= shares
	return clone
}

func (l Lot) String() string {
	return fmt.Sprintf("%s #%d %s: %g/%g", l.PurchasedAt.Format(time.DateOnly), l.Index, l.Security, l.UnsoldShares, l.PurchasedShares)
}
