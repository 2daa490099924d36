package pp

import (
	"fmt"
	"io"
	"strconv"

	"github.com/etnz/fifotax"
)

// Column names of the hand maintained CSV files. They are comma separated,
// with '.' as decimal separator, whatever the language of the exports.
const (
	colName    = "Name"
	colISIN    = "ISIN"
	colTFS     = "Prozent Teilfreistellung"
	colVapYear = "Jahr des Wertzuwachses"
	colVapRate = "Vorabpauschale vor TFS pro Anteil"
)

// ReadMetadata reads the partial exemption (Teilfreistellung) of funds.
func ReadMetadata(r io.Reader) (fifotax.Metadata, error) {
	_, rest, err := newReader(r)
	if err != nil {
		return nil, err
	}
	t, err := readTable(rest, ',')
	if err != nil {
		return nil, fmt.Errorf("cannot read metadata: %w", err)
	}
	if err := t.require(colName, colISIN, colTFS); err != nil {
		return nil, err
	}
	md := make(fifotax.Metadata)
	for i, row := range t.rows {
		name := t.get(row, colName)
		tfs, err := strconv.Atoi(t.get(row, colTFS))
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line(i), colTFS, err)
		}
		if tfs < 0 || tfs > 100 {
			return nil, fmt.Errorf("line %d: %s must be between 0 and 100, got %d", line(i), colTFS, tfs)
		}
		md[name] = fifotax.SecurityMetadata{Name: name, ISIN: t.get(row, colISIN), TFSPercentage: tfs}
	}
	return md, nil
}

// ReadVap reads the yearly Vorabpauschale per share of funds.
func ReadVap(r io.Reader) (fifotax.VapTable, error) {
	_, rest, err := newReader(r)
	if err != nil {
		return nil, err
	}
	t, err := readTable(rest, ',')
	if err != nil {
		return nil, fmt.Errorf("cannot read vap: %w", err)
	}
	if err := t.require(colName, colVapYear, colVapRate); err != nil {
		return nil, err
	}
	vap := make(fifotax.VapTable)
	for i, row := range t.rows {
		year, err := strconv.Atoi(t.get(row, colVapYear))
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line(i), colVapYear, err)
		}
		rate, err := strconv.ParseFloat(t.get(row, colVapRate), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line(i), colVapRate, err)
		}
		vap.Set(t.get(row, colName), year, rate)
	}
	return vap, nil
}
