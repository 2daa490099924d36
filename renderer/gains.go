package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/fifotax"
)

// LotsMarkdown renders every lot of the report with its taxation, one table
// per account and security.
func LotsMarkdown(r *fifotax.Report) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Lots\n\n")
	if len(r.Securities) == 0 {
		fmt.Fprint(&b, "Keine Anteile im Bestand.\n")
		return b.String()
	}
	for _, s := range r.Securities {
		title := s.Security
		if s.ISIN != "" {
			title += " (" + s.ISIN + ")"
		}
		fmt.Fprintf(&b, "## %s: %s\n\n", s.Account, title)
		if s.TFSPercentage > 0 {
			fmt.Fprintf(&b, "Teilfreistellung: %d%%\n\n", s.TFSPercentage)
		}

		columns := []string{"Datum Kauf", ">Anzahl", ">Kosten pro Anteil"}
		if s.HasVap {
			columns = append(columns, ">VAP pro Anteil", ">Anschaffungspreis inkl. VAP")
		}
		if s.HasQuote {
			columns = append(columns, ">Brutto-Wert", ">"+s.GainHeader(), ">"+r.TaxFactor.Label, ">Netto-Wert", ">Steueranteil")
		}
		header(&b, columns...)
		for _, lot := range s.Lots {
			cells := []string{lot.PurchasedAt.Format("2006-01-02"), shares(lot.UnsoldShares), eur(lot.CostPerShare())}
			if s.HasVap {
				cells = append(cells, eur(lot.VapPerShare), eur(lot.AdjustedCostPerShare))
			}
			if s.HasQuote {
				cells = append(cells, eur(lot.Gross), eur(lot.Gain), eur(lot.Tax), eur(lot.Net), lot.TaxShare.String())
			}
			row(&b, cells...)
		}
		t := s.Totals
		cells := []string{bold("Summe"), bold(shares(t.Shares)), ""}
		if s.HasVap {
			cells = append(cells, "", bold(eur(t.Cost)))
		}
		if s.HasQuote {
			cells = append(cells, bold(eur(t.Gross)), bold(eur(t.Gain)), bold(eur(t.Tax)), bold(eur(t.Net)), bold(t.TaxShare().String()))
		}
		row(&b, cells...)
		if !s.HasQuote {
			fmt.Fprint(&b, "\nKein aktueller Kurs: nur die Anschaffungskosten sind bekannt.\n")
		}
		fmt.Fprintln(&b)
	}
	return b.String()
}

// TaxMarkdown renders the tax due if every position was sold at its latest
// quote, per account and in total.
func TaxMarkdown(r *fifotax.Report) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Steuerübersicht\n\n")
	fmt.Fprintf(&b, "Steuersatz: %s (%s)\n\n", r.TaxFactor.Label, fifotax.Percent(r.TaxFactor.Factor*100))
	if r.Options.AssumeSufficientGains {
		fmt.Fprint(&b, "Verluste werden mit ausreichend realisierten Gewinnen verrechnet.\n\n")
	}

	header(&b, "Depot", ">Anzahl", ">Anschaffungskosten", ">Brutto-Wert", ">Gewinn", ">Steuerpflichtig", ">"+r.TaxFactor.Label, ">Netto-Wert", ">Steueranteil")
	cells := func(name string, t fifotax.Totals) []string {
		return []string{name, shares(t.Shares), eur(t.Cost), eur(t.Gross), eur(t.Gain), eur(t.Taxable), eur(t.Tax), eur(t.Net), t.TaxShare().String()}
	}
	for _, account := range r.AccountNames() {
		row(&b, cells(account, r.Accounts[account])...)
	}
	total := cells("Gesamt", r.Total)
	for i := range total {
		total[i] = bold(total[i])
	}
	row(&b, total...)

	var missing []string
	for _, s := range r.Securities {
		if !s.HasQuote {
			missing = append(missing, fmt.Sprintf("%s (%s)", s.Security, s.Account))
		}
	}
	if len(missing) > 0 {
		fmt.Fprintf(&b, "\nOhne aktuellen Kurs, nicht im Brutto-Wert enthalten: %s\n", strings.Join(missing, ", "))
	}
	return b.String()
}
