package renderer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/fifotax"
)

// HoldingsMarkdown renders the remaining shares of every position.
func HoldingsMarkdown(holdings []fifotax.Holding) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Bestand\n\n")
	if len(holdings) == 0 {
		fmt.Fprint(&b, "Keine Anteile im Bestand.\n")
		return b.String()
	}
	header(&b, "Depot", "Wertpapier", "ISIN", ">Anzahl", ">Lots")
	account := ""
	for _, h := range holdings {
		name := h.Account
		if name == account {
			name = ""
		}
		account = h.Account
		row(&b, name, h.Security, h.ISIN, shares(h.Shares), strconv.Itoa(h.Lots))
	}
	return b.String()
}
