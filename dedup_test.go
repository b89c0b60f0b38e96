package stoier

import (
	"bytes"
	"errors"
	"testing"

	"github.com/etnz/stoier/date"
	"github.com/google/go-cmp/cmp"
)

func TestDeduplicate(t *testing.T) {
	january := []Record{
		tx("2024-01-02", "ACME", "-10", "90"),
		tx("2024-01-01", "Bob", "100", "100"),
		tx("2024-01-02", "Alice", "5", "95"),
	}
	// the second export overlaps the first one.
	february := []Record{
		tx("2024-01-02", "Alice", "5", "95"),
		tx("2024-02-01", "ACME", "-20", "75"),
	}

	l, diags, err := Deduplicate(isoDates, values(january...), values(february...))
	if err != nil {
		t.Fatalf("Deduplicate() error = %v", err)
	}
	if got, want := l.Len(), 4; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
	if got, want := len(diags.Of(KindDuplicate)), 1; got != want {
		t.Errorf("duplicate diagnostics = %d, want %d", got, want)
	}

	var got []string
	for id, r := range l.All() {
		got = append(got, id.String()+" "+r["sender"])
	}
	want := []string{
		"2024-01-01#0 Bob",
		"2024-01-02#0 ACME",
		"2024-01-02#1 Alice",
		"2024-02-01#0 ACME",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ACME", "Alice", "Bob"}, l.Senders()); diff != "" {
		t.Errorf("Senders() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeduplicate_DuplicateDrop(t *testing.T) {
	r := tx("2024-03-01", "ACME", "1.5", "10")
	l, diags, err := Deduplicate(isoDates, values(r, r.Clone()))
	if err != nil {
		t.Fatalf("Deduplicate() error = %v", err)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
	if _, ok := l.Record(TxID{Date: date.New(2024, 3, 1), Seq: 1}); ok {
		t.Errorf("Record(#1) found, want only #0")
	}
	if d := diags.Of(KindDuplicate); len(d) != 1 || d[0].Level != LevelDebug {
		t.Errorf("diagnostics = %v, want one debug duplicate", diags)
	}
}

func TestDeduplicate_Idempotent(t *testing.T) {
	input := []Record{
		tx("2024-01-01", "Bob", "100", "100"),
		tx("2024-01-01", "ACME", "-10", "90"),
		tx("2024-01-03", "Alice", "5", "95"),
	}
	encode := func(l *Ledger) string {
		var b bytes.Buffer
		if err := EncodeLedger(&b, l); err != nil {
			t.Fatalf("EncodeLedger() error = %v", err)
		}
		return b.String()
	}
	once := mustLedger(t, input...)
	twice, _, err := Deduplicate(isoDates, values(input...), values(input...))
	if err != nil {
		t.Fatalf("Deduplicate() error = %v", err)
	}
	if diff := cmp.Diff(encode(once), encode(twice)); diff != "" {
		t.Errorf("ledger changed when input is processed twice (-once +twice):\n%s", diff)
	}

	// appending new records keeps the ids of the previous ones.
	more := append(input, tx("2024-01-01", "Carol", "1", "96"))
	grown := mustLedger(t, more...)
	for id, r := range once.All() {
		got, ok := grown.Record(id)
		if !ok || got.Hash() != r.Hash() {
			t.Errorf("Record(%v) = %v, want %v", id, got, r)
		}
	}
}

func TestDeduplicate_Window(t *testing.T) {
	cfg := isoDates
	cfg.Window = date.Range{From: date.New(2024, 1, 2), To: date.New(2024, 1, 3)}
	d := NewDeduplicator(cfg)
	before := tx("2024-01-01", "A", "1", "1")
	err := d.Add(values(
		before,
		tx("2024-01-02", "B", "1", "2"),
		tx("2024-01-03", "C", "1", "3"),
		tx("2024-01-04", "D", "1", "4"),
	))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got := d.Ledger().Len(); got != 2 {
		t.Errorf("Len() = %d, want 2 (boundaries included)", got)
	}
	if got := len(d.Diagnostics().Of(KindOutOfRange)); got != 2 {
		t.Errorf("out of range diagnostics = %d, want 2", got)
	}

	// a record seen outside the window is remembered as well.
	if err := d.Add(values(before)); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got := len(d.Diagnostics().Of(KindDuplicate)); got != 1 {
		t.Errorf("duplicate diagnostics = %d, want 1", got)
	}
}

func TestDeduplicate_InvalidDate(t *testing.T) {
	testCases := []struct {
		name   string
		record Record
	}{
		{"unparsable", tx("01.02.2024", "A", "1", "1")},
		{"empty", tx("", "A", "1", "1")},
		{"missing", Record{"amount": "1", "balance": "1"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Deduplicate(isoDates, values(tc.record))
			if !errors.Is(err, ErrInputFormat) {
				t.Errorf("Deduplicate() error = %v, want ErrInputFormat", err)
			}
			var ife *InputFormatError
			if errors.As(err, &ife) && ife.Field != "date_1" {
				t.Errorf("InputFormatError.Field = %q, want date_1", ife.Field)
			}
		})
	}
}

func TestDeduplicate_DefaultDateFormat(t *testing.T) {
	l, _, err := Deduplicate(DedupConfig{DateColumn: "date_1"}, values(tx("31.12.2023", "A", "1", "1")))
	if err != nil {
		t.Fatalf("Deduplicate() error = %v", err)
	}
	if got := l.Dates(); len(got) != 1 || got[0] != date.New(2023, 12, 31) {
		t.Errorf("Dates() = %v, want [2023-12-31]", got)
	}
}
