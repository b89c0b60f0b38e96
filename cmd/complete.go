package cmd

import (
	"flag"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors overrides the prediction of flags taking a path.
var flagPredictors = map[string]complete.Predictor{
	"root":     predict.Dirs("*"),
	"lookup":   predict.Files("*.json"),
	"senders":  predict.Files("*.json"),
	"invoices": predict.Dirs("*"),
}

// argPredictors predicts the arguments of the commands taking paths.
var argPredictors = map[string]complete.Predictor{
	"import":   predict.Files("*.csv"),
	"afa":      predict.Dirs("*"),
	"clean":    predict.Files("*.jsonl"),
	"dedup":    predict.Files("*.jsonl"),
	"validate": predict.Files("*.json"),
	"suggest":  predict.Files("*.json"),
	"account":  predict.Files("*.json"),
	"show":     predict.Files("*.json"),
	"report":   predict.Dirs("*"),
	"sums":     predict.Dirs("*"),
}

// flags returns the predictors of the flags of a FlagSet.
func flags(f *flag.FlagSet) map[string]complete.Predictor {
	res := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		if p, ok := flagPredictors[fl.Name]; ok {
			res[fl.Name] = p
			return
		}
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			res[fl.Name] = predict.Nothing
			return
		}
		res[fl.Name] = predict.Something
	})
	return res
}

// Completion returns the shell completion of the command line, built from
// the registered commands and the global flags.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flags(flag.CommandLine),
	}
	for _, c := range Commands {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		sub := &complete.Command{Flags: flags(f)}
		if p, ok := argPredictors[c.Name()]; ok {
			sub.Args = p
		}
		root.Sub[c.Name()] = sub
	}
	topics := &complete.Command{Args: predict.Set(topicNames())}
	root.Sub["topic"] = topics
	var names predict.Set
	for _, c := range Commands {
		names = append(names, c.Name())
	}
	root.Sub["help"] = &complete.Command{Args: names}
	root.Sub["flags"] = &complete.Command{Args: names}
	root.Sub["commands"] = &complete.Command{}
	return root
}
