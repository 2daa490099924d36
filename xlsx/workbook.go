// Package xlsx writes the tax report as an Excel workbook.
//
// The workbook has a "VAP" sheet summarizing the Vorabpauschale of every
// position, followed by one sheet per account and security listing its lots.
package xlsx

import (
	"cmp"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/etnz/fifotax"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const (
	moneyFormat   = `#,##0.00 [$EUR];-#,##0.00 [$EUR]`
	percentFormat = "0.00%"

	headerHeight = 50
	narrowWidth  = 12
	numberWidth  = 15

	// maxSheetName is the longest name Excel accepts for a sheet.
	maxSheetName = 31
	vapSheetName = "VAP"
	defaultSheet = "Sheet1" // created by excelize.NewFile
)

// kind drives the styling of a column.
type kind int

const (
	text kind = iota
	narrow
	money
	percent
)

type column struct {
	header string
	kind   kind
}

// sheet is the content of a worksheet, before styling.
type sheet struct {
	name    string
	columns []column
	rows    [][]any // nil rows are left empty
}

func (s *sheet) add(header string, k kind) {
	s.columns = append(s.columns, column{header: header, kind: k})
}

// Write writes the workbook of the report to w.
func Write(w io.Writer, rep *fifotax.Report, vs *fifotax.VapSummary, warn *fifotax.Warnings) error {
	f, err := build(rep, vs, warn)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// Save writes the workbook of the report to the file path.
func Save(path string, rep *fifotax.Report, vs *fifotax.VapSummary, warn *fifotax.Warnings) error {
	f, err := build(rep, vs, warn)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("cannot save %q: %w", path, err)
	}
	log.Info().Str("file", path).Int("sheets", f.SheetCount).Msg("workbook written")
	return nil
}

func build(rep *fifotax.Report, vs *fifotax.VapSummary, warn *fifotax.Warnings) (*excelize.File, error) {
	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	var sheets []*sheet
	names := sheetNames{}
	names.reserve(defaultSheet)
	if vs != nil && !vs.Empty() {
		names.reserve(vapSheetName)
		sheets = append(sheets, vapSheet(vs))
	}
	for _, s := range rep.Securities {
		warn.LongAccountName(s.Account)
		sh := securitySheet(s, rep.TaxFactor)
		sh.name = names.unique(s.Account + " " + cmp.Or(s.ISIN, s.Security))
		sheets = append(sheets, sh)
	}

	for _, sh := range sheets {
		if err := st.write(f, sh); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %q: %w", sh.name, err)
		}
	}
	if len(sheets) > 0 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// vapSheet lists the yearly VAP of each position, with subtotals per account
// and a grand total.
func vapSheet(vs *fifotax.VapSummary) *sheet {
	sh := &sheet{name: vapSheetName}
	sh.add("ISIN", text)
	sh.add("Name", text)
	sh.add("Depot", text)
	for _, year := range vs.Years {
		sh.add(fmt.Sprintf("%d vor TFS", year), money)
		sh.add(fmt.Sprintf("%d nach TFS", year), money)
	}
	amounts := func(row []any, byYear map[int]fifotax.VapAmount) []any {
		for _, year := range vs.Years {
			a := byYear[year]
			row = append(row, a.BeforeTFS, a.AfterTFS)
		}
		return row
	}

	for i, r := range vs.Rows {
		sh.rows = append(sh.rows, amounts([]any{r.ISIN, r.Name, r.Account}, r.Years))
		if i+1 == len(vs.Rows) || vs.Rows[i+1].Account != r.Account {
			sh.rows = append(sh.rows, amounts([]any{"Summe", "", ""}, vs.Accounts[r.Account]), nil)
		}
	}
	sh.rows = append(sh.rows, amounts([]any{"GESAMTSUMME", "", ""}, vs.Total))
	return sh
}

// securitySheet lists the lots of one position and their taxation.
func securitySheet(s fifotax.SecurityResult, tf fifotax.TaxFactor) *sheet {
	sh := &sheet{}
	sh.add("ISIN", text)
	sh.add("Name", text)
	sh.add("Datum Kauf", text)
	sh.add("Anzahl (noch unverkauft)", narrow)
	sh.add("Anzahl (gekauft)", narrow)
	sh.add("Gesamtkosten", money)
	sh.add("Kosten pro Anteil", money)
	years := s.VapYears()
	for _, year := range years {
		sh.add(fmt.Sprintf("VAP %d vor TFS pro Anteil", year), money)
	}
	if s.HasVap {
		sh.add("Summe VAP vor TFS pro Anteil", money)
		sh.add("Anschaffungspreis inkl. VAP pro Anteil", money)
	}
	if s.HasQuote {
		sh.add("Brutto-Wert", money)
		sh.add(s.GainHeader(), money)
		sh.add(tf.Label, money)
		sh.add("Netto-Wert", money)
		sh.add("Steueranteil an Brutto-Auszahlung", percent)
	}

	for _, r := range s.Lots {
		row := []any{
			s.ISIN,
			s.Security,
			r.PurchasedAt.Format("2006-01-02"),
			r.UnsoldShares,
			r.PurchasedShares,
			r.PurchasedValue,
			r.CostPerShare(),
		}
		perYear := make(map[int]float64, len(r.Vap))
		for _, c := range r.Vap {
			perYear[c.Year] = c.PerShare
		}
		for _, year := range years {
			if v, ok := perYear[year]; ok {
				row = append(row, v)
			} else {
				row = append(row, nil)
			}
		}
		if s.HasVap {
			if r.VapPerShare > 0 {
				row = append(row, r.VapPerShare, r.AdjustedCostPerShare)
			} else {
				row = append(row, nil, nil)
			}
		}
		if s.HasQuote {
			row = append(row, r.Gross, r.Gain, r.Tax, r.Net, r.TaxShare.Fraction())
		}
		sh.rows = append(sh.rows, row)
	}
	return sh
}

// sheetNames hands out valid and distinct sheet names.
type sheetNames map[string]bool

func (n sheetNames) reserve(name string) { n[strings.ToLower(name)] = true }

// unique returns name made valid for Excel and distinct from the names
// already handed out. Excel compares sheet names case insensitively.
func (n sheetNames) unique(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(name, "'")
	base := truncate(name, maxSheetName)
	candidate := base
	for i := 2; n[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	n.reserve(candidate)
	return candidate
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
