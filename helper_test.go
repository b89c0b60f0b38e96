package stoier

import (
	"iter"
	"slices"
	"testing"
)

// isoDates configures a Deduplicator for ISO dates in the "date_1" column.
var isoDates = DedupConfig{DateColumn: "date_1", DateFormat: "%Y-%m-%d", SenderColumn: "sender"}

// values is a shorthand for a single pass iterator over records.
func values(records ...Record) iter.Seq[Record] { return slices.Values(records) }

// tx returns a cleaned bank record.
func tx(day, sender, amount, balance string) Record {
	return Record{"date_1": day, "sender": sender, "amount": amount, "balance": balance}
}

// mustLedger deduplicates records into a ledger or fails the test.
func mustLedger(t *testing.T, records ...Record) *Ledger {
	t.Helper()
	l, _, err := Deduplicate(isoDates, values(records...))
	if err != nil {
		t.Fatalf("Deduplicate() error = %v", err)
	}
	return l
}
