package fifotax

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientShares is matched by every ShortfallError.
	ErrInsufficientShares = errors.New("insufficient shares")
	// ErrChurchTaxConflict is returned when both church tax rates are requested.
	ErrChurchTaxConflict = errors.New("church tax 8% and 9% are mutually exclusive")
	// ErrInconsistentISIN is matched by every InconsistentISINError.
	ErrInconsistentISIN = errors.New("inconsistent ISIN")
)

// ShortfallError reports a sale or a transfer of more shares than the
// account holds. It means the transaction data is incomplete or corrupt, and
// no result computed from it can be trusted.
type ShortfallError struct {
	Op       TxType
	Account  string
	Security string
	Missing  float64 // shares still to remove when the queue ran out
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("%s of %q from %q: %g shares missing", e.Op, e.Security, e.Account, e.Missing)
}

func (e *ShortfallError) Unwrap() error { return ErrInsufficientShares }

// InconsistentISINError reports a security known under two different ISINs.
type InconsistentISINError struct {
	Security string
	Known    string
	Other    string
}

func (e *InconsistentISINError) Error() string {
	return fmt.Sprintf("security %q has ISIN %q in the metadata but %q in the securities list", e.Security, e.Known, e.Other)
}

func (e *InconsistentISINError) Unwrap() error { return ErrInconsistentISIN }
