package fifotax

import (
	"cmp"
	"maps"
	"slices"

	"github.com/rs/zerolog/log"
)

// VapAmount is the Vorabpauschale of a position for one year, before and
// after partial exemption.
type VapAmount struct {
	BeforeTFS float64
	AfterTFS  float64
}

func (a VapAmount) add(b VapAmount) VapAmount {
	return VapAmount{BeforeTFS: a.BeforeTFS + b.BeforeTFS, AfterTFS: a.AfterTFS + b.AfterTFS}
}

// VapRow is the yearly Vorabpauschale of one security in one account.
type VapRow struct {
	ISIN          string
	Name          string
	Account       string
	TFSPercentage int
	Years         map[int]VapAmount
}

// VapSummary lists the Vorabpauschale accrued by the unsold shares, per
// security, per account and per year.
type VapSummary struct {
	Years    []int    // sorted
	Rows     []VapRow // sorted by account, ISIN, name
	Accounts map[string]map[int]VapAmount
	Total    map[int]VapAmount
}

// Empty reports whether there is no VAP to report.
func (s *VapSummary) Empty() bool { return len(s.Rows) == 0 }

// AccountNames returns the sorted accounts of the summary.
func (s *VapSummary) AccountNames() []string { return slices.Sorted(maps.Keys(s.Accounts)) }

// SummarizeVap computes the Vorabpauschale of the unsold shares of every
// position of the ledger.
//
// Securities without ISIN, neither in the metadata nor in their lots, are
// left out.
func SummarizeVap(l *Ledger, md Metadata, vap VapTable) *VapSummary {
	s := &VapSummary{
		Accounts: make(map[string]map[int]VapAmount),
		Total:    make(map[int]VapAmount),
	}
	years := make(map[int]bool)
	for _, account := range l.Accounts() {
		for _, security := range l.Securities(account) {
			q := l.Queue(account, security)
			row := VapRow{Name: security, Account: account, Years: make(map[int]VapAmount)}
			if meta, ok := md.Lookup(security); ok {
				row.ISIN, row.TFSPercentage = meta.ISIN, meta.TFSPercentage
			} else if oldest, ok := q.Oldest(); ok {
				row.ISIN = oldest.ISIN
			}
			if row.ISIN == "" {
				continue
			}
			for _, lot := range q.All() {
				for _, c := range DetermineVapContributions(security, lot, vap) {
					before := c.PerShare * lot.UnsoldShares
					log.Debug().
						Str("isin", row.ISIN).
						Str("account", account).
						Int("year", c.Year).
						Float64("per_share", c.PerShare).
						Float64("total", before).
						Msg("vap")
					row.Years[c.Year] = row.Years[c.Year].add(VapAmount{
						BeforeTFS: before,
						AfterTFS:  before - before*float64(row.TFSPercentage)/100,
					})
					years[c.Year] = true
				}
			}
			if len(row.Years) == 0 {
				continue
			}
			s.Rows = append(s.Rows, row)
		}
	}
	s.Years = slices.Sorted(maps.Keys(years))

	slices.SortStableFunc(s.Rows, func(a, b VapRow) int {
		return cmp.Or(
			cmp.Compare(a.Account, b.Account),
			cmp.Compare(a.ISIN, b.ISIN),
			cmp.Compare(a.Name, b.Name),
		)
	})
	for _, row := range s.Rows {
		acc, ok := s.Accounts[row.Account]
		if !ok {
			acc = make(map[int]VapAmount)
			s.Accounts[row.Account] = acc
		}
		for year, a := range row.Years {
			acc[year] = acc[year].add(a)
			s.Total[year] = s.Total[year].add(a)
		}
	}
	return s
}
