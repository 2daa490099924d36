package pp

import (
	"fmt"
	"io"
	"time"

	"github.com/etnz/fifotax"
	"github.com/rs/zerolog/log"
)

// dateLayouts are the date formats found in the Date column.
var dateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// ReadTransactions reads the "All transactions" export of
// PortfolioPerformance.
//
// The language of the export is detected from its header. Transactions are
// returned in chronological order, rows of the same date in file order.
// Rows that do not change lots are returned with the Other type.
func ReadTransactions(r io.Reader) ([]fifotax.Transaction, *Locale, error) {
	first, rest, err := newReader(r)
	if err != nil {
		return nil, nil, err
	}
	loc, err := DetectLocale(first)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Stringer("locale", loc).Msg("detected export language")

	t, err := readTable(rest, loc.Separator)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read transactions: %w", err)
	}
	c := loc.Columns
	if err := t.require(c.Date, c.Type, c.Security, c.Account, c.Value, c.OffsetAccount); err != nil {
		return nil, nil, err
	}
	if !t.has(c.Shares...) {
		return nil, nil, fmt.Errorf("missing column %q", c.Shares[0])
	}
	if !t.has(c.ISIN) {
		log.Info().Msg("the transactions have no ISIN column, securities are matched by name. Enable the ISIN column in the export to get it in the reports.")
	}

	txs := make([]fifotax.Transaction, 0, len(t.rows))
	for i, row := range t.rows {
		tx, err := parseTransaction(t, loc, row, i)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line(i), err)
		}
		txs = append(txs, tx)
	}
	fifotax.SortTransactions(txs)
	return txs, loc, nil
}

func parseTransaction(t *table, loc *Locale, row []string, index int) (fifotax.Transaction, error) {
	c := loc.Columns
	tx := fifotax.Transaction{
		Type:          loc.TxType(t.get(row, c.Type)),
		Index:         index,
		Account:       t.get(row, c.Account),
		OffsetAccount: t.get(row, c.OffsetAccount),
		Security:      t.get(row, c.Security),
		ISIN:          t.get(row, c.ISIN),
	}
	var err error
	if tx.Date, err = parseDate(t.get(row, c.Date)); err != nil {
		return tx, err
	}
	if tx.Type == fifotax.Other || tx.Security == "" {
		return tx, nil
	}
	if tx.Shares, err = loc.ParseNumber(t.get(row, c.Shares...)); err != nil {
		return tx, fmt.Errorf("shares: %w", err)
	}
	if tx.Type == fifotax.Buy || tx.Type == fifotax.InboundDelivery {
		if _, tx.Value, err = loc.ParseAmount(t.get(row, c.Value)); err != nil {
			return tx, fmt.Errorf("value: %w", err)
		}
	}
	return tx, nil
}
