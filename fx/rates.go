// Package fx provides the exchange rates needed to convert security quotes
// to EUR.
//
// Rates are fetched once per run from the lang & schwarz intraday charts,
// or from the ECB reference rates for currencies without a known instrument.
// They can be set by hand for offline runs.
package fx

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog/log"
)

const (
	defaultBaseURL = "https://www.ls-tc.de/_rpc/json/instrument/chart/dataForInstrument"
	// ECB reference rates, in foreign currency per EUR.
	defaultReferenceURL = "https://api.frankfurter.app/latest"
)

// instrument is a currency pair quoted by lang & schwarz.
type instrument struct {
	id string
	// inverse is true for pairs quoted in EUR per unit of the foreign
	// currency, like GBP/EUR. EUR/USD is quoted in USD per EUR.
	inverse bool
}

// Rates looks up and caches EUR to foreign currency factors.
type Rates struct {
	offline      bool
	client       *http.Client
	baseURL      string
	referenceURL string
	instruments  map[string]instrument
	cache        map[string]float64
}

// New creates Rates. When offline, only the rates set by hand are known.
func New(offline bool) *Rates {
	return &Rates{
		offline:      offline,
		client:       daily(),
		baseURL:      defaultBaseURL,
		referenceURL: defaultReferenceURL,
		instruments: map[string]instrument{
			"USD": {id: "349938"}, // EUR/USD
		},
		cache: map[string]float64{"EUR": 1},
	}
}

// Register declares the lang & schwarz instrument quoting a currency.
func (r *Rates) Register(currency, instrumentID string, inverse bool) {
	r.instruments[currency] = instrument{id: instrumentID, inverse: inverse}
}

// Set records the factor of a currency: how many units of it one EUR buys.
func (r *Rates) Set(currency string, factor float64) {
	r.cache[currency] = factor
}

// FactorEURTo returns how many units of currency one EUR buys.
//
// A currency without rate, or whose lookup failed, reports false.
func (r *Rates) FactorEURTo(currency string) (float64, bool) {
	if f, ok := r.cache[currency]; ok {
		return f, true
	}
	if r.offline {
		return 0, false
	}
	var f float64
	var err error
	if inst, ok := r.instruments[currency]; ok {
		log.Info().Str("currency", currency).Str("instrument", inst.id).Msg("fetching exchange rate")
		f, err = r.latest(inst.id)
		if err == nil && inst.inverse {
			f = 1 / f
		}
	} else {
		log.Info().Str("currency", currency).Msg("fetching ECB reference rate")
		f, err = r.reference(currency)
	}
	if err != nil {
		log.Warn().Err(err).Str("currency", currency).Msg("cannot fetch exchange rate")
		return 0, false
	}
	log.Info().Str("currency", currency).Float64("factor", f).Msg("EUR exchange rate")
	r.cache[currency] = f
	return f, true
}

/*
	{
	    "series": {
	        "intraday": {
	            "data": [[1718870400000, 1.0712], [1718870460000, 1.0714]]
	        }
	    }
	}
*/
// latest returns the last intraday quote of an instrument.
func (r *Rates) latest(id string) (float64, error) {
	addr := r.baseURL + "?instrumentId=" + id + "&series=intraday&type=mini"
	var jobj any
	if err := jwget(r.client, addr, &jobj); err != nil {
		return 0, fmt.Errorf("error in wget %q: %w", id, err)
	}
	path := "$.series.intraday.data[-1:][1]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %q %w", id, path, err)
	}
	// because jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok || val <= 0 {
		return 0, fmt.Errorf("error parsing %q: %q not a positive float: %v", id, path, jval)
	}
	return val, nil
}

/*
	{"amount":1.0,"base":"EUR","date":"2024-06-20","rates":{"GBP":0.8453}}
*/
// reference returns the ECB reference rate of a currency, for currencies
// without instrument.
func (r *Rates) reference(currency string) (float64, error) {
	addr := r.referenceURL + "?from=EUR&to=" + url.QueryEscape(currency)
	var jobj any
	if err := jwget(r.client, addr, &jobj); err != nil {
		return 0, fmt.Errorf("error in wget %q: %w", currency, err)
	}
	jval, err := jsonpath.Get("$.rates."+currency, jobj)
	if err != nil {
		return 0, fmt.Errorf("no reference rate for %q: %w", currency, err)
	}
	val, ok := jval.(float64)
	if !ok || val <= 0 {
		return 0, fmt.Errorf("reference rate of %q is not a positive float: %v", currency, jval)
	}
	return val, nil
}

// ParseRate parses a "CUR=factor" pair, like "USD=1.08".
func ParseRate(s string) (currency string, factor float64, err error) {
	currency, value, ok := strings.Cut(s, "=")
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !ok || currency == "" {
		return "", 0, fmt.Errorf("invalid rate %q, want CUR=factor", s)
	}
	factor, err = strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid rate %q: %w", s, err)
	}
	if factor <= 0 {
		return "", 0, fmt.Errorf("invalid rate %q: factor must be positive", s)
	}
	return currency, factor, nil
}
