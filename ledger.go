package fifotax

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
)

// Share counts are floats: the export carries fractional shares and rounding
// leaves tiny residues after a FIFO consumption.
const (
	// continuationThreshold is the residue below which a sale or a transfer
	// is considered complete.
	continuationThreshold = 1e-5
	// warningThreshold is the residue above which a completed sale or
	// transfer is reported as suspicious.
	warningThreshold = 1e-7
)

// Ledger holds, for every account and every security, the FIFO queue of
// unsold lots.
//
// A Ledger is built by applying transactions in chronological order. It
// never holds an empty queue nor an account without queue.
type Ledger struct {
	accounts map[string]map[string]*LotQueue
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{accounts: make(map[string]map[string]*LotQueue)}
}

// Replay builds a fresh ledger from transactions sorted chronologically.
//
// The first fatal error aborts the replay: the partial ledger is discarded.
func Replay(txs []Transaction) (*Ledger, error) {
	l := NewLedger()
	for _, tx := range txs {
		if err := l.Apply(tx); err != nil {
			return nil, fmt.Errorf("transaction %v: %w", tx, err)
		}
	}
	return l, nil
}

// Apply dispatches a transaction to Acquire, Transfer or Dispose.
func (l *Ledger) Apply(tx Transaction) error {
	log.Debug().Stringer("tx", tx).Msg("applying transaction")
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}
	switch tx.Type {
	case Buy, InboundDelivery:
		return l.Acquire(tx.Account, tx.Security, tx.Date, tx.Index, tx.Shares, tx.Value, tx.ISIN)
	case OutboundTransfer:
		return l.Transfer(tx.Account, tx.OffsetAccount, tx.Security, tx.Shares)
	case Sell:
		return l.Dispose(tx.Account, tx.Security, tx.Shares)
	}
	return nil
}

// Acquire adds a new lot of shares to the account.
func (l *Ledger) Acquire(account, security string, purchasedAt time.Time, index int, shares, value float64, isin string) error {
	if shares <= 0 {
		return fmt.Errorf("cannot acquire %g shares of %q", shares, security)
	}
	l.queue(account, security).Insert(newLot(isin, security, purchasedAt, index, shares, value))
	return nil
}

// Dispose removes shares from the account in FIFO order, as a sale does.
//
// It returns a *ShortfallError if the account does not hold enough shares.
// The ledger must not be used after such an error.
func (l *Ledger) Dispose(account, security string, shares float64) error {
	if shares < 0 {
		return fmt.Errorf("cannot sell %g shares of %q", shares, security)
	}
	q := l.Queue(account, security)
	remaining := shares
	for remaining > continuationThreshold {
		oldest, ok := q.Oldest()
		if !ok {
			return &ShortfallError{Op: Sell, Account: account, Security: security, Missing: remaining}
		}
		if oldest.UnsoldShares <= remaining {
			q.PopOldest()
			remaining -= oldest.UnsoldShares
		} else {
			q.reduceOldest(remaining)
			remaining = 0
		}
	}
	l.prune(account, security)
	checkResidue(Sell, account, security, remaining)
	return nil
}

// Transfer moves shares of a security from one account to another in FIFO
// order. Lots keep their purchase attributes, a lot partially moved is split
// in two.
//
// A transfer without security is a cash movement and is skipped, so is a
// transfer to the same account if it holds the security.
// It returns a *ShortfallError if the source account does not hold enough
// shares. The ledger must not be used after such an error.
func (l *Ledger) Transfer(from, to, security string, shares float64) error {
	if security == "" {
		log.Info().Str("from", from).Str("to", to).Msg("skipping cash transfer")
		return nil
	}
	if from == to {
		if l.Queue(from, security).Empty() && shares > continuationThreshold {
			return &ShortfallError{Op: OutboundTransfer, Account: from, Security: security, Missing: shares}
		}
		log.Info().Str("account", from).Str("security", security).Msg("skipping transfer to the same account")
		return nil
	}
	if shares < 0 {
		return fmt.Errorf("cannot transfer %g shares of %q", shares, security)
	}
	src := l.Queue(from, security)
	remaining := shares
	for remaining > continuationThreshold {
		oldest, ok := src.Oldest()
		if !ok {
			return &ShortfallError{Op: OutboundTransfer, Account: from, Security: security, Missing: remaining}
		}
		if oldest.UnsoldShares <= remaining {
			src.PopOldest()
			l.queue(to, security).Insert(oldest)
			remaining -= oldest.UnsoldShares
		} else {
			l.queue(to, security).Insert(src.splitOldest(remaining))
			remaining = 0
		}
	}
	l.prune(from, security)
	checkResidue(OutboundTransfer, from, security, remaining)
	return nil
}

func checkResidue(op TxType, account, security string, remaining float64) {
	if remaining > warningThreshold {
		log.Warn().
			Stringer("op", op).
			Str("account", account).
			Str("security", security).
			Float64("residue", remaining).
			Msg("ignoring share residue, assuming floating point slack")
	}
}

// queue returns the queue for the account and security, creating it if
// needed.
func (l *Ledger) queue(account, security string) *LotQueue {
	secs, ok := l.accounts[account]
	if !ok {
		secs = make(map[string]*LotQueue)
		l.accounts[account] = secs
	}
	q, ok := secs[security]
	if !ok {
		q = new(LotQueue)
		secs[security] = q
	}
	return q
}

// prune removes the queue if it is empty, and the account if it has no
// more queue.
func (l *Ledger) prune(account, security string) {
	secs, ok := l.accounts[account]
	if !ok {
		return
	}
	if q, ok := secs[security]; ok && q.Empty() {
		delete(secs, security)
	}
	if len(secs) == 0 {
		delete(l.accounts, account)
	}
}

// Queue returns the lots of a security held in an account, or nil.
//
// A nil *LotQueue is a valid empty queue for reading.
func (l *Ledger) Queue(account, security string) *LotQueue {
	return l.accounts[account][security]
}

// Accounts returns the sorted names of the accounts holding lots.
func (l *Ledger) Accounts() []string {
	return slices.Sorted(maps.Keys(l.accounts))
}

// Securities returns the sorted names of the securities held in an account.
func (l *Ledger) Securities(account string) []string {
	return slices.Sorted(maps.Keys(l.accounts[account]))
}

// Shares returns the unsold shares of a security in an account.
func (l *Ledger) Shares(account, security string) float64 {
	return l.Queue(account, security).UnsoldShares()
}

// Len returns the number of (account, security) queues.
func (l *Ledger) Len() int {
	n := 0
	for _, secs := range l.accounts {
		n += len(secs)
	}
	return n
}

// Holding summarizes a queue.
type Holding struct {
	Account  string
	Security string
	ISIN     string
	Shares   float64
	Lots     int
}

// Holdings returns the shares held per account and security, sorted by
// account then security.
func (l *Ledger) Holdings() []Holding {
	var hs []Holding
	for _, account := range l.Accounts() {
		for _, security := range l.Securities(account) {
			q := l.Queue(account, security)
			h := Holding{Account: account, Security: security, Shares: q.UnsoldShares(), Lots: q.Len()}
			for _, lot := range q.All() {
				if lot.ISIN != "" {
					h.ISIN = lot.ISIN
					break
				}
			}
			hs = append(hs, h)
		}
	}
	return hs
}
