// Package renderer renders the fifotax reports as markdown, for the terminal
// and for the assistant.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/fifotax"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// printer formats share counts the way the German exports do.
var printer = message.NewPrinter(language.German)

// shares formats a number of shares, with up to 4 decimals.
func shares(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(4)))
}

func eur(v float64) string { return fifotax.EUR(v).String() }

// header writes the header of a markdown table. Columns whose name starts
// with '>' are right aligned.
func header(w io.Writer, columns ...string) {
	names := make([]string, len(columns))
	aligns := make([]string, len(columns))
	for i, c := range columns {
		if name, ok := strings.CutPrefix(c, ">"); ok {
			names[i], aligns[i] = name, "---:"
		} else {
			names[i], aligns[i] = c, ":---"
		}
	}
	row(w, names...)
	row(w, aligns...)
}

// row writes a row of a markdown table.
func row(w io.Writer, cells ...string) {
	for i, c := range cells {
		cells[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
}

func bold(s string) string {
	if s == "" {
		return ""
	}
	return "**" + s + "**"
}
