package fifotax

import "github.com/rs/zerolog/log"

// SecurityMetadata holds what the tax computation needs to know about a
// security beyond its lots.
type SecurityMetadata struct {
	Name          string
	ISIN          string
	TFSPercentage int     // Teilfreistellung, 0 to 100
	Quote         float64 // latest quote in EUR, valid if HasQuote
	HasQuote      bool
}

// Metadata indexes SecurityMetadata by security name.
type Metadata map[string]SecurityMetadata

// Lookup returns the metadata of a security.
func (m Metadata) Lookup(security string) (SecurityMetadata, bool) {
	md, ok := m[security]
	return md, ok
}

// MergeQuote records the latest EUR quote of a security. A zero quote is
// not a quote: the security is then reported at cost only.
//
// A security unknown so far is added without partial exemption. A security
// known under another, non empty, ISIN is an error: the two input files do
// not describe the same security.
func (m Metadata) MergeQuote(name, isin string, quote float64) error {
	md, ok := m[name]
	if !ok {
		m[name] = SecurityMetadata{Name: name, ISIN: isin, Quote: quote, HasQuote: quote != 0}
		return nil
	}
	if md.ISIN != "" && isin != "" && md.ISIN != isin {
		return &InconsistentISINError{Security: name, Known: md.ISIN, Other: isin}
	}
	if isin != "" {
		md.ISIN = isin
	}
	md.Quote, md.HasQuote = quote, quote != 0
	m[name] = md
	log.Debug().Str("security", name).Float64("quote", quote).Msg("merged quote")
	return nil
}
