package fifotax

import (
	"time"
)

// day is a helper for test to create a purchase date from a const.
func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

// buy is a helper for test to create a Buy transaction.
func buy(index int, date, account, security string, shares, value float64) Transaction {
	return Transaction{Type: Buy, Date: day(date), Index: index, Account: account, Security: security, Shares: shares, Value: value}
}

// sell is a helper for test to create a Sell transaction.
func sell(index int, date, account, security string, shares float64) Transaction {
	return Transaction{Type: Sell, Date: day(date), Index: index, Account: account, Security: security, Shares: shares}
}

// transfer is a helper for test to create an OutboundTransfer transaction.
func transfer(index int, date, from, to, security string, shares float64) Transaction {
	return Transaction{Type: OutboundTransfer, Date: day(date), Index: index, Account: from, OffsetAccount: to, Security: security, Shares: shares}
}

// unsold returns the unsold shares of every lot of a queue, in order.
func unsold(q *LotQueue) []float64 {
	var res []float64
	for _, l := range q.All() {
		res = append(res, l.UnsoldShares)
	}
	return res
}
