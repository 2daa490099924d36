package pp

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// table is a CSV file read with its header.
type table struct {
	columns map[string]int
	rows    [][]string
}

// newReader strips a UTF-8 byte order mark, which spreadsheet applications
// like to add, and returns the first line of the input for inspection.
func newReader(r io.Reader) (first string, rest io.Reader, err error) {
	br := bufio.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	first, err = br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", nil, err
	}
	return first, io.MultiReader(strings.NewReader(first), br), nil
}

// readTable reads a whole CSV file, the first record being the header.
func readTable(r io.Reader, sep rune) (*table, error) {
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("missing header")
	}
	t := &table{columns: make(map[string]int), rows: records[1:]}
	for i, name := range records[0] {
		t.columns[strings.TrimSpace(name)] = i
	}
	return t, nil
}

// has reports whether the table has one of the columns.
func (t *table) has(names ...string) bool {
	_, ok := t.index(names...)
	return ok
}

func (t *table) index(names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := t.columns[n]; ok {
			return i, true
		}
	}
	return 0, false
}

// require checks that every column exists.
func (t *table) require(names ...string) error {
	var errs []error
	for _, n := range names {
		if !t.has(n) {
			errs = append(errs, fmt.Errorf("missing column %q", n))
		}
	}
	return errors.Join(errs...)
}

// get returns the trimmed cell of a row in the first matching column, or ""
// if there is no such column.
func (t *table) get(row []string, names ...string) string {
	i, ok := t.index(names...)
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// line returns the line number of a row in the file, for error messages.
func line(i int) int { return i + 2 }
