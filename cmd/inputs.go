package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/etnz/fifotax"
	"github.com/etnz/fifotax/fx"
	"github.com/etnz/fifotax/pp"
	"github.com/rs/zerolog/log"
)

const (
	defaultVapFile      = "etf_vorabpauschalen.csv"
	defaultMetadataFile = "etf_metadaten.csv"
)

// rates collects the -fx flags.
type rates map[string]float64

func (r rates) String() string {
	var parts []string
	for cur, f := range r {
		parts = append(parts, fmt.Sprintf("%s=%v", cur, f))
	}
	return strings.Join(parts, ",")
}

func (r rates) Set(s string) error {
	cur, f, err := fx.ParseRate(s)
	if err != nil {
		return err
	}
	r[cur] = f
	return nil
}

// inputs are the flags shared by every report command.
type inputs struct {
	transactions string
	securities   string
	vap          string
	metadata     string
	kirche8      bool
	kirche9      bool
	assumeGains  bool
	offline      bool
	rates        rates
}

func (in *inputs) SetFlags(f *flag.FlagSet) {
	in.rates = make(rates)
	f.StringVar(&in.transactions, "b", "", "PortfolioPerformance transactions export (Buchungen), CSV. Required.")
	f.StringVar(&in.securities, "w", "", "PortfolioPerformance securities export (Wertpapiere), CSV, with the latest quotes. Without it, only acquisition costs are reported.")
	f.StringVar(&in.vap, "vap", defaultVapFile, "Vorabpauschale per share of funds, per year, CSV.")
	f.StringVar(&in.metadata, "metadata", defaultMetadataFile, "Partial exemption (Teilfreistellung) of funds, CSV.")
	f.BoolVar(&in.kirche8, "kirche-8", false, "Add the 8% church tax.")
	f.BoolVar(&in.kirche9, "kirche-9", false, "Add the 9% church tax.")
	f.BoolVar(&in.assumeGains, "assume-gains", false, "Assume enough realized gains this year for every loss to be refunded.")
	f.BoolVar(&in.offline, "offline", false, "Do not fetch exchange rates, only use the -fx ones.")
	f.Var(in.rates, "fx", "Exchange rate from EUR, like USD=1.08. Can be repeated.")
}

// options validates the flags that do not need any file.
func (in *inputs) options() (fifotax.GainOptions, error) {
	if in.transactions == "" {
		return fifotax.GainOptions{}, errors.New("missing transactions file, use -b")
	}
	church, err := fifotax.ChurchTaxFromFlags(in.kirche8, in.kirche9)
	if err != nil {
		return fifotax.GainOptions{}, err
	}
	return fifotax.GainOptions{Church: church, AssumeSufficientGains: in.assumeGains}, nil
}

// session is the state rebuilt from the input files.
type session struct {
	Ledger   *fifotax.Ledger
	Metadata fifotax.Metadata
	Vap      fifotax.VapTable
	Options  fifotax.GainOptions
}

// Report evaluates the tax of the ledger.
func (s *session) Report() *fifotax.Report {
	return fifotax.Evaluate(s.Ledger, s.Metadata, s.Vap, s.Options)
}

// VapSummary sums the Vorabpauschale of the ledger.
func (s *session) VapSummary() *fifotax.VapSummary {
	return fifotax.SummarizeVap(s.Ledger, s.Metadata, s.Vap)
}

// load reads every input file and replays the transactions.
func (in *inputs) load(opts fifotax.GainOptions) (*session, error) {
	s := &session{Options: opts}

	var loc *pp.Locale
	err := readFile(in.transactions, func(r io.Reader) error {
		txs, l, err := pp.ReadTransactions(r)
		if err != nil {
			return err
		}
		loc = l
		log.Info().Int("transactions", len(txs)).Stringer("language", loc).Msg("transactions read")
		s.Ledger, err = fifotax.Replay(txs)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Metadata = fifotax.Metadata{}
	err = readOptionalFile(in.metadata, func(r io.Reader) (err error) {
		s.Metadata, err = pp.ReadMetadata(r)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Vap = fifotax.VapTable{}
	err = readOptionalFile(in.vap, func(r io.Reader) (err error) {
		s.Vap, err = pp.ReadVap(r)
		return err
	})
	if err != nil {
		return nil, err
	}

	if in.securities == "" {
		log.Warn().Msg("no securities file (-w): only acquisition costs are reported")
		return s, nil
	}
	conv := fx.New(in.offline)
	for cur, f := range in.rates {
		conv.Set(cur, f)
	}
	err = readFile(in.securities, func(r io.Reader) error {
		return pp.ReadSecurities(r, loc, conv, s.Metadata)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// readFile opens path and reads it with read.
func readFile(path string, read func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := read(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// readOptionalFile is readFile, except that a missing file is only a warning.
func readOptionalFile(path string, read func(io.Reader) error) error {
	err := readFile(path, read)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("file", path).Msg("file not found, ignored")
		return nil
	}
	return err
}
