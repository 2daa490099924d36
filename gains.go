package fifotax

import (
	"maps"
	"slices"
)

// GainOptions configures the tax computation.
type GainOptions struct {
	Church ChurchTax
	// AssumeSufficientGains assumes the year already has enough realized
	// gains for every loss to be refunded immediately.
	AssumeSufficientGains bool
}

// LotResult is the tax computation of one lot, as if its unsold shares were
// sold at the latest quote.
type LotResult struct {
	Lot
	Vap                  []VapContribution // VAP per share, per year
	VapPerShare          float64           // sum of Vap
	AdjustedCostPerShare float64           // cost per share including VAP

	// Valid if HasQuote.
	HasQuote bool
	Gross    float64 // quote × unsold shares
	Gain     float64 // taxable gain, after VAP and partial exemption
	Taxable  float64 // part of Gain taxed now, after netting
	Tax      float64
	Net      float64 // Gross - Tax
	TaxShare Percent // Tax as a share of Gross
}

// Totals aggregates lot results.
type Totals struct {
	Shares  float64
	Cost    float64 // acquisition cost of the unsold shares, VAP included
	Gross   float64
	Gain    float64
	Taxable float64
	Tax     float64
	Net     float64
}

func (t *Totals) addLot(r LotResult) {
	t.Shares += r.UnsoldShares
	t.Cost += r.AdjustedCostPerShare * r.UnsoldShares
	if !r.HasQuote {
		return
	}
	t.Gross += r.Gross
	t.Gain += r.Gain
	t.Taxable += r.Taxable
	t.Tax += r.Tax
	t.Net += r.Net
}

func (t *Totals) add(u Totals) {
	t.Shares += u.Shares
	t.Cost += u.Cost
	t.Gross += u.Gross
	t.Gain += u.Gain
	t.Taxable += u.Taxable
	t.Tax += u.Tax
	t.Net += u.Net
}

// TaxShare returns the tax as a share of the gross value.
func (t Totals) TaxShare() Percent { return share(t.Tax, t.Gross) }

// SecurityResult is the tax computation of all the lots of one security in
// one account.
type SecurityResult struct {
	Account       string
	Security      string
	ISIN          string
	TFSPercentage int
	HasQuote      bool
	HasVap        bool // true if any lot accrued VAP
	Lots          []LotResult
	Totals        Totals
}

// GainHeader returns the label of the taxable gain, which depends on the
// adjustments applied to it.
func (s SecurityResult) GainHeader() string {
	h := "KESt-pflichtiger Gewinn"
	if s.HasVap {
		h += " nach VAP"
	}
	if s.TFSPercentage > 0 {
		h += " nach TFS"
	}
	return h
}

// VapYears returns the sorted years for which at least one lot accrued VAP.
func (s SecurityResult) VapYears() []int {
	years := make(map[int]bool)
	for _, r := range s.Lots {
		for _, c := range r.Vap {
			years[c.Year] = true
		}
	}
	return slices.Sorted(maps.Keys(years))
}

// Report is the tax computation of a whole ledger.
type Report struct {
	TaxFactor  TaxFactor
	Options    GainOptions
	Securities []SecurityResult // sorted by account then security
	Accounts   map[string]Totals
	Total      Totals
}

// AccountNames returns the sorted accounts of the report.
func (r *Report) AccountNames() []string { return slices.Sorted(maps.Keys(r.Accounts)) }

// Evaluate computes the tax due on every lot of the ledger if it was sold at
// the latest known quote.
//
// Lots of a security without quote only get their acquisition cost
// computed. Netting runs independently for each account and security.
func Evaluate(l *Ledger, md Metadata, vap VapTable, opts GainOptions) *Report {
	r := &Report{
		TaxFactor: ComputeTaxFactor(opts.Church),
		Options:   opts,
		Accounts:  make(map[string]Totals),
	}
	for _, account := range l.Accounts() {
		var accountTotals Totals
		for _, security := range l.Securities(account) {
			s := evaluateSecurity(account, security, l.Queue(account, security), md, vap, opts, r.TaxFactor)
			accountTotals.add(s.Totals)
			r.Securities = append(r.Securities, s)
		}
		r.Accounts[account] = accountTotals
		r.Total.add(accountTotals)
	}
	return r
}

func evaluateSecurity(account, security string, q *LotQueue, md Metadata, vap VapTable, opts GainOptions, tf TaxFactor) SecurityResult {
	meta, _ := md.Lookup(security)
	s := SecurityResult{
		Account:       account,
		Security:      security,
		ISIN:          meta.ISIN,
		TFSPercentage: meta.TFSPercentage,
		HasQuote:      meta.HasQuote,
	}
	netting := Netting{AssumeSufficient: opts.AssumeSufficientGains}
	for _, lot := range q.All() {
		if s.ISIN == "" {
			s.ISIN = lot.ISIN
		}
		r := LotResult{Lot: lot, Vap: DetermineVapContributions(security, lot, vap)}
		r.VapPerShare = TotalVap(r.Vap)
		r.AdjustedCostPerShare = lot.CostPerShare() + r.VapPerShare
		if r.VapPerShare > 0 {
			s.HasVap = true
		}
		if meta.HasQuote {
			r.HasQuote = true
			r.Gross = meta.Quote * lot.UnsoldShares
			r.Gain = (meta.Quote - r.AdjustedCostPerShare) * lot.UnsoldShares
			if meta.TFSPercentage > 0 {
				r.Gain = r.Gain * float64(100-meta.TFSPercentage) / 100
			}
			r.Taxable = netting.Next(r.Gain)
			r.Tax = r.Taxable * tf.Factor
			r.Net = r.Gross - r.Tax
			r.TaxShare = share(r.Tax, r.Gross)
		}
		s.Totals.addLot(r)
		s.Lots = append(s.Lots, r)
	}
	return s
}

// share returns part/whole as a Percent, 0 if whole is 0.
func share(part, whole float64) Percent {
	if whole == 0 {
		return 0
	}
	return Percent(part / whole * 100)
}
