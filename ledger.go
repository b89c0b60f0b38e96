package stoier

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/stoier/date"
)

// TxID identifies a transaction in a Ledger: its date and its zero-based
// sequence number within that date.
type TxID struct {
	Date date.Date
	Seq  int
}

// IsZero returns true for the zero TxID, which identifies no transaction.
func (id TxID) IsZero() bool { return id.Date.IsZero() && id.Seq == 0 }

func (id TxID) String() string { return fmt.Sprintf("%s#%d", id.Date, id.Seq) }

// Compare orders ids in the canonical chronological order of a ledger.
func (id TxID) Compare(x TxID) int {
	if c := id.Date.Compare(x.Date); c != 0 {
		return c
	}
	return id.Seq - x.Seq
}

// ParseTxID parses the String form of a TxID.
func ParseTxID(s string) (TxID, error) {
	day, seq, ok := strings.Cut(s, "#")
	if !ok {
		return TxID{}, &InputFormatError{Field: "id", Value: s}
	}
	d, err := date.Parse(day)
	if err != nil {
		return TxID{}, &InputFormatError{Field: "id", Value: s, Err: err}
	}
	n, err := strconv.Atoi(seq)
	if err != nil || n < 0 {
		return TxID{}, &InputFormatError{Field: "id", Value: s, Err: err}
	}
	return TxID{Date: d, Seq: n}, nil
}

// Ledger is the canonical, deduplicated set of transactions of a run, bucketed
// by date.
//
// Within a bucket records keep their insertion order and their index is their
// sequence id. Iterating dates in ascending order then ids in ascending order
// is the canonical chronological order of the ledger.
type Ledger struct {
	buckets map[date.Date][]Record
	senders map[string]struct{}
	size    int
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		buckets: make(map[date.Date][]Record),
		senders: make(map[string]struct{}),
	}
}

// Append adds a copy of r at the end of the bucket for day and returns its id.
func (l *Ledger) Append(day date.Date, r Record) TxID {
	id := TxID{Date: day, Seq: len(l.buckets[day])}
	l.buckets[day] = append(l.buckets[day], r.Clone())
	l.size++
	return id
}

// addSender records a distinct sender identity.
func (l *Ledger) addSender(s string) {
	if s != "" {
		l.senders[s] = struct{}{}
	}
}

// Len returns the number of records in the ledger.
func (l *Ledger) Len() int { return l.size }

// Dates returns the dates that have at least one record, in ascending order.
func (l *Ledger) Dates() []date.Date {
	return slices.SortedFunc(maps.Keys(l.buckets), date.Date.Compare)
}

// Record returns a copy of the record identified by id.
func (l *Ledger) Record(id TxID) (Record, bool) {
	bucket := l.buckets[id.Date]
	if id.Seq < 0 || id.Seq >= len(bucket) {
		return nil, false
	}
	return bucket[id.Seq].Clone(), true
}

// All returns an iterator over copies of all records in canonical order.
func (l *Ledger) All() iter.Seq2[TxID, Record] {
	return l.From(date.Date{})
}

// From returns an iterator over the records in canonical order, starting at
// the first date that is not before start.
func (l *Ledger) From(start date.Date) iter.Seq2[TxID, Record] {
	return func(yield func(TxID, Record) bool) {
		for _, day := range l.Dates() {
			if day.Before(start) {
				continue
			}
			for seq, r := range l.buckets[day] {
				if !yield(TxID{Date: day, Seq: seq}, r.Clone()) {
					return
				}
			}
		}
	}
}

// Senders returns the distinct sender identities observed, sorted.
func (l *Ledger) Senders() []string {
	return slices.Sorted(maps.Keys(l.senders))
}
