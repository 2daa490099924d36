package cmd

import (
	"flag"
	"io"

	"github.com/etnz/fifotax/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the fifotax command line.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{"v": predict.Set{"0", "1", "2"}},
	}
	for _, group := range Commands {
		for _, c := range group {
			f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			f.SetOutput(io.Discard)
			c.SetFlags(f)
			sub := &complete.Command{Flags: map[string]complete.Predictor{}}
			f.VisitAll(func(fl *flag.Flag) { sub.Flags[fl.Name] = predictor(fl) })
			root.Sub[c.Name()] = sub
		}
	}
	if topics, err := docs.GetAllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(append(topics, "*"))
	}
	return root
}

// predictor returns the completion of a flag value.
func predictor(fl *flag.Flag) complete.Predictor {
	if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch fl.Name {
	case "b", "w", "vap", "metadata":
		return predict.Files("*.csv")
	case "o":
		return predict.Files("*.xlsx")
	}
	return predict.Something
}
