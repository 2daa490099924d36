package fifotax

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// TxType identifies the kind of a transaction row.
type TxType int

// Transaction types that change the lots of a ledger. Every other row of an
// export (dividends, fees, deposits...) is Other and ignored.
const (
	Other TxType = iota
	Buy
	InboundDelivery
	OutboundTransfer
	Sell
)

func (t TxType) String() string {
	switch t {
	case Buy:
		return "buy"
	case InboundDelivery:
		return "inbound-delivery"
	case OutboundTransfer:
		return "outbound-transfer"
	case Sell:
		return "sell"
	default:
		return "other"
	}
}

// ParseTxType parses the String() form of a TxType.
func ParseTxType(s string) (TxType, error) {
	switch s {
	case "buy":
		return Buy, nil
	case "inbound-delivery":
		return InboundDelivery, nil
	case "outbound-transfer":
		return OutboundTransfer, nil
	case "sell":
		return Sell, nil
	case "other":
		return Other, nil
	default:
		return Other, fmt.Errorf("unknown transaction type: %q", s)
	}
}

// Transaction is a single row of a transaction export, already parsed into
// native types and into the reporting currency.
type Transaction struct {
	Type          TxType
	Date          time.Time
	Index         int    // row index in the export
	Account       string // source account
	OffsetAccount string // destination account, for transfers only
	Security      string // empty for cash movements
	ISIN          string
	Shares        float64
	Value         float64 // net transaction value in EUR
}

// Validate checks that the transaction can be applied to a ledger.
func (t Transaction) Validate() error {
	var errs []error
	if t.Account == "" && t.Type != Other {
		errs = append(errs, errors.New("missing account"))
	}
	switch t.Type {
	case Buy, InboundDelivery:
		if t.Security == "" {
			errs = append(errs, errors.New("missing security"))
		}
		if t.Shares <= 0 {
			errs = append(errs, fmt.Errorf("shares must be positive, got %g", t.Shares))
		}
	case Sell:
		if t.Security == "" {
			errs = append(errs, errors.New("missing security"))
		}
		if t.Shares < 0 {
			errs = append(errs, fmt.Errorf("shares must not be negative, got %g", t.Shares))
		}
	case OutboundTransfer:
		if t.Security != "" && t.OffsetAccount == "" {
			errs = append(errs, errors.New("missing offset account"))
		}
		if t.Shares < 0 {
			errs = append(errs, fmt.Errorf("shares must not be negative, got %g", t.Shares))
		}
	}
	return errors.Join(errs...)
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s #%d %s %q %g shares in %q", t.Date.Format(time.DateOnly), t.Index, t.Type, t.Security, t.Shares, t.Account)
}

// SortTransactions sorts transactions chronologically, rows with the same
// date keep their export order.
func SortTransactions(txs []Transaction) {
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return a.Index - b.Index
	})
}
