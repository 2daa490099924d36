package fifotax

import (
	"iter"
	"slices"
	"sort"
)

// LotQueue is the ordered list of lots of one security held in one account.
//
// Lots are kept in FIFO order: by purchase time, then by row index. The
// queue owns its lots, they are only reachable through copies.
//
// A nil *LotQueue is an empty queue for every read method.
type LotQueue struct {
	lots []Lot
}

// Len returns the number of lots in the queue.
func (q *LotQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.lots)
}

// Empty reports whether the queue has no lot.
func (q *LotQueue) Empty() bool { return q.Len() == 0 }

// Oldest returns the first lot in FIFO order.
func (q *LotQueue) Oldest() (Lot, bool) {
	if q.Empty() {
		return Lot{}, false
	}
	return q.lots[0], true
}

// PopOldest removes and returns the first lot in FIFO order.
func (q *LotQueue) PopOldest() (Lot, bool) {
	if q.Empty() {
		return Lot{}, false
	}
	l := q.lots[0]
	q.lots = slices.Delete(q.lots, 0, 1)
	return l, true
}

// Insert adds a lot at its FIFO position. Lots with the same key keep their
// insertion order.
func (q *LotQueue) Insert(l Lot) {
	i := sort.Search(len(q.lots), func(i int) bool { return l.before(q.lots[i]) })
	q.lots = slices.Insert(q.lots, i, l)
}

// reduceOldest decrements the unsold shares of the first lot.
func (q *LotQueue) reduceOldest(shares float64) {
	q.lots[0].UnsoldShares -= shares
}

// splitOldest detaches shares from the first lot and returns them as a new
// lot, the first lot keeps the remainder.
func (q *LotQueue) splitOldest(shares float64) Lot {
	return q.lots[0].split(shares)
}

// UnsoldShares returns the total of unsold shares in the queue.
func (q *LotQueue) UnsoldShares() float64 {
	var sum float64
	for _, l := range q.All() {
		sum += l.UnsoldShares
	}
	return sum
}

// All iterates over the lots in FIFO order.
func (q *LotQueue) All() iter.Seq2[int, Lot] {
	return func(yield func(int, Lot) bool) {
		if q == nil {
			return
		}
		for i, l := range q.lots {
			if !yield(i, l) {
				return
			}
		}
	}
}

// Lots returns a copy of the lots in FIFO order.
func (q *LotQueue) Lots() []Lot {
	if q == nil {
		return nil
	}
	return slices.Clone(q.lots)
}
