package pp

import (
	"fmt"
	"io"

	"github.com/etnz/fifotax"
	"github.com/rs/zerolog/log"
)

// Converter provides exchange rates from EUR to other currencies.
type Converter interface {
	// FactorEURTo returns how many units of currency one EUR buys.
	FactorEURTo(currency string) (float64, bool)
}

// ReadSecurities reads the securities export of PortfolioPerformance and
// merges the latest quote of each security into md.
//
// Quotes in another currency are converted to EUR with conv. A quote that
// cannot be converted is skipped with a warning: the security is reported
// without gain.
func ReadSecurities(r io.Reader, loc *Locale, conv Converter, md fifotax.Metadata) error {
	_, rest, err := newReader(r)
	if err != nil {
		return err
	}
	t, err := readTable(rest, loc.Separator)
	if err != nil {
		return fmt.Errorf("cannot read securities: %w", err)
	}
	c := loc.Columns
	if err := t.require(c.Name, c.Latest); err != nil {
		return err
	}
	for i, row := range t.rows {
		name := t.get(row, c.Name)
		isin := t.get(row, c.ISIN)
		latest := t.get(row, c.Latest)
		if name == "" || latest == "" {
			log.Debug().Int("line", line(i)).Str("security", name).Msg("no latest quote")
			continue
		}
		currency, quote, err := loc.ParseAmount(latest)
		if err != nil {
			return fmt.Errorf("line %d: latest quote of %q: %w", line(i), name, err)
		}
		if quote == 0 {
			log.Debug().Int("line", line(i)).Str("security", name).Msg("zero quote, ignored")
			continue
		}
		if currency != "" && currency != fifotax.ReportingCurrency {
			factor, ok := conv.FactorEURTo(currency)
			if !ok || factor == 0 {
				log.Warn().Str("security", name).Str("currency", currency).Msg("no exchange rate, skipping the latest quote")
				continue
			}
			log.Debug().Str("currency", currency).Float64("factor", factor).Msg("converting quote")
			quote /= factor
		}
		if err := md.MergeQuote(name, isin, quote); err != nil {
			return fmt.Errorf("line %d: %w", line(i), err)
		}
	}
	return nil
}
