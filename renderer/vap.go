package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/fifotax"
)

// VapMarkdown renders the yearly Vorabpauschale of every position, with
// subtotals per account.
func VapMarkdown(vs *fifotax.VapSummary) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Vorabpauschale\n\n")
	if vs.Empty() {
		fmt.Fprint(&b, "Keine Vorabpauschale für den aktuellen Bestand.\n")
		return b.String()
	}

	columns := []string{"ISIN", "Name", "Depot"}
	for _, year := range vs.Years {
		columns = append(columns, fmt.Sprintf(">%d vor TFS", year), fmt.Sprintf(">%d nach TFS", year))
	}
	header(&b, columns...)
	amounts := func(cells []string, byYear map[int]fifotax.VapAmount, style func(string) string) []string {
		for _, year := range vs.Years {
			a := byYear[year]
			cells = append(cells, style(eur(a.BeforeTFS)), style(eur(a.AfterTFS)))
		}
		return cells
	}
	plain := func(s string) string { return s }

	for i, r := range vs.Rows {
		row(&b, amounts([]string{r.ISIN, r.Name, r.Account}, r.Years, plain)...)
		if i+1 == len(vs.Rows) || vs.Rows[i+1].Account != r.Account {
			row(&b, amounts([]string{bold("Summe"), "", r.Account}, vs.Accounts[r.Account], plain)...)
		}
	}
	row(&b, amounts([]string{bold("Gesamtsumme"), "", ""}, vs.Total, bold)...)
	return b.String()
}
