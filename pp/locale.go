// Package pp reads the CSV exports of PortfolioPerformance, and the two
// small CSV files that complete them (partial exemption and Vorabpauschale
// rates).
//
// PortfolioPerformance exports in the language of its user interface: the
// column names, the field separator and the number format all depend on it.
// German and English are supported.
package pp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/fifotax"
	"github.com/shopspring/decimal"
)

// ErrUnknownLanguage is returned when an export is neither German nor
// English.
var ErrUnknownLanguage = errors.New("export must be in German or English")

// Columns holds the column names and type labels of an export.
type Columns struct {
	Date          string
	Type          string
	Shares        []string // first match wins
	Security      string
	Account       string
	Value         string
	OffsetAccount string
	ISIN          string
	Name          string
	Latest        string

	Buy              string
	InboundDelivery  string
	OutboundTransfer string
	Sell             string
}

// Locale describes the language of an export.
type Locale struct {
	Name      string
	Separator rune
	Decimal   string
	Thousands string
	Columns   Columns
}

// German is the locale of PortfolioPerformance in German.
var German = &Locale{
	Name:      "de",
	Separator: ';',
	Decimal:   ",",
	Thousands: ".",
	Columns: Columns{
		Date: "Datum",
		Type: "Typ",
		// older exports are double encoded
		Shares:           []string{"Stück", "StÃ¼ck"},
		Security:         "Wertpapier",
		Account:          "Konto",
		Value:            "Gesamtpreis",
		OffsetAccount:    "Gegenkonto",
		ISIN:             "ISIN",
		Name:             "Name",
		Latest:           "Letzter",
		Buy:              "Kauf",
		InboundDelivery:  "Einlieferung",
		OutboundTransfer: "Umbuchung (Ausgang)",
		Sell:             "Verkauf",
	},
}

// English is the locale of PortfolioPerformance in English.
var English = &Locale{
	Name:      "en",
	Separator: ',',
	Decimal:   ".",
	Thousands: ",",
	Columns: Columns{
		Date:             "Date",
		Type:             "Type",
		Shares:           []string{"Shares"},
		Security:         "Security",
		Account:          "Cash Account",
		Value:            "Net Transaction Value",
		OffsetAccount:    "Offset Account",
		ISIN:             "ISIN",
		Name:             "Name",
		Latest:           "Latest",
		Buy:              "Buy",
		InboundDelivery:  "Delivery (Inbound)",
		OutboundTransfer: "Transfer (Outbound)",
		Sell:             "Sell",
	},
}

// DetectLocale finds the locale of a transaction export from its header
// line.
func DetectLocale(header string) (*Locale, error) {
	switch {
	case strings.Contains(header, German.Columns.Date):
		return German, nil
	case strings.Contains(header, English.Columns.Date):
		return English, nil
	default:
		return nil, ErrUnknownLanguage
	}
}

// ParseNumber parses a number written in the locale, like "1.234,56" in
// German or "1,234.56" in English.
func (l *Locale) ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty number")
	}
	norm := strings.ReplaceAll(s, l.Thousands, "")
	if l.Decimal != "." {
		norm = strings.ReplaceAll(norm, l.Decimal, ".")
	}
	d, err := decimal.NewFromString(norm)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return d.InexactFloat64(), nil
}

// ParseAmount parses an amount optionally prefixed by its currency, like
// "USD 1,234.56". The currency is empty when there is no prefix.
func (l *Locale) ParseAmount(s string) (currency string, value float64, err error) {
	s = strings.TrimSpace(s)
	if cur, num, ok := strings.Cut(s, " "); ok {
		currency, s = cur, num
	}
	value, err = l.ParseNumber(s)
	return currency, value, err
}

// TxType classifies the type label of a transaction row.
func (l *Locale) TxType(label string) fifotax.TxType {
	switch strings.TrimSpace(label) {
	case l.Columns.Buy:
		return fifotax.Buy
	case l.Columns.InboundDelivery:
		return fifotax.InboundDelivery
	case l.Columns.OutboundTransfer:
		return fifotax.OutboundTransfer
	case l.Columns.Sell:
		return fifotax.Sell
	default:
		return fifotax.Other
	}
}

func (l *Locale) String() string { return l.Name }
