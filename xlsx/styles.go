package xlsx

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// styles holds the style IDs registered in a workbook.
type styles struct {
	header, money, percent int
}

func newStyles(f *excelize.File) (*styles, error) {
	var st styles
	var err error
	moneyFmt, percentFmt := moneyFormat, percentFormat
	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	}); err != nil {
		return nil, err
	}
	if st.money, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &moneyFmt,
		Alignment:    &excelize.Alignment{WrapText: true},
	}); err != nil {
		return nil, err
	}
	if st.percent, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &percentFmt,
		Alignment:    &excelize.Alignment{WrapText: true},
	}); err != nil {
		return nil, err
	}
	return &st, nil
}

// write creates the worksheet of sh in f.
func (st *styles) write(f *excelize.File, sh *sheet) error {
	if _, err := f.NewSheet(sh.name); err != nil {
		return err
	}
	// column styles first, so that the cells created below inherit them.
	for i, c := range sh.columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := narrowWidth
		switch c.kind {
		case money:
			width = numberWidth
			err = f.SetColStyle(sh.name, name, st.money)
		case percent:
			width = numberWidth
			err = f.SetColStyle(sh.name, name, st.percent)
		case text:
			width = st.contentWidth(sh, i)
		}
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sh.name, name, name, float64(width)); err != nil {
			return err
		}
	}

	header := make([]any, len(sh.columns))
	for i, c := range sh.columns {
		header[i] = c.header
	}
	if err := f.SetSheetRow(sh.name, "A1", &header); err != nil {
		return err
	}
	for i, row := range sh.rows {
		if row == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
			return err
		}
	}

	last, err := excelize.CoordinatesToCellName(len(sh.columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sh.name, "A1", last, st.header); err != nil {
		return err
	}
	return f.SetRowHeight(sh.name, 1, headerHeight)
}

// contentWidth returns the width fitting the longest value of column i.
func (st *styles) contentWidth(sh *sheet, i int) int {
	n := utf8.RuneCountInString(sh.columns[i].header)
	for _, row := range sh.rows {
		if i >= len(row) || row[i] == nil {
			continue
		}
		n = max(n, utf8.RuneCountInString(fmt.Sprint(row[i])))
	}
	return n + 2
}
