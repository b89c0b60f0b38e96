package stoier

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Level is the severity of a Diagnostic.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Kind classifies diagnostics so that callers can filter them.
type Kind string

const (
	KindDuplicate       Kind = "duplicate"
	KindOutOfRange      Kind = "out_of_range"
	KindBalanceMismatch Kind = "balance_mismatch"
	KindSenderAccount   Kind = "sender_account"
	KindVatOnly         Kind = "vat_only"
	KindAlreadyBooked   Kind = "already_booked"
	KindSuggestion      Kind = "suggestion"
)

// Diagnostic is a structured event produced by a pipeline stage.
//
// Expected and Actual are only meaningful for balance mismatches.
type Diagnostic struct {
	Level    Level
	Kind     Kind
	ID       TxID
	Message  string
	Expected decimal.Decimal
	Actual   decimal.Decimal
}

func (d Diagnostic) String() string {
	if d.ID.IsZero() {
		return fmt.Sprintf("%s: %s", d.Level, d.Message)
	}
	return fmt.Sprintf("%s: %v: %s", d.Level, d.ID, d.Message)
}

// Diagnostics collects the events of one stage run, in emission order.
type Diagnostics []Diagnostic

func (ds *Diagnostics) add(d Diagnostic) { *ds = append(*ds, d) }

// Of returns the diagnostics of the given kind.
func (ds Diagnostics) Of(kind Kind) Diagnostics {
	var res Diagnostics
	for _, d := range ds {
		if d.Kind == kind {
			res = append(res, d)
		}
	}
	return res
}

// AtLeast returns the diagnostics with a level greater or equal to l.
func (ds Diagnostics) AtLeast(l Level) Diagnostics {
	var res Diagnostics
	for _, d := range ds {
		if d.Level >= l {
			res = append(res, d)
		}
	}
	return res
}
