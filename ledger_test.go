package stoier

import (
	"errors"
	"testing"

	"github.com/etnz/stoier/date"
)

func TestTxID(t *testing.T) {
	id := TxID{Date: date.New(2024, 2, 29), Seq: 3}
	if got, want := id.String(), "2024-02-29#3"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	back, err := ParseTxID(id.String())
	if err != nil || back != id {
		t.Errorf("ParseTxID(%q) = %v, %v, want %v", id, back, err, id)
	}
	for _, bad := range []string{"2024-02-29", "2024-02-29#x", "x#1", "2024-02-29#-1"} {
		if _, err := ParseTxID(bad); !errors.Is(err, ErrInputFormat) {
			t.Errorf("ParseTxID(%q) error = %v, want ErrInputFormat", bad, err)
		}
	}

	earlier := TxID{Date: date.New(2024, 2, 29), Seq: 1}
	later := TxID{Date: date.New(2024, 3, 1), Seq: 0}
	if earlier.Compare(id) >= 0 || id.Compare(later) >= 0 || id.Compare(id) != 0 {
		t.Errorf("Compare() does not follow the canonical order")
	}
}

func TestLedger(t *testing.T) {
	l := NewLedger()
	d1, d2 := date.New(2024, 1, 2), date.New(2024, 1, 1)
	r := Record{"sender": "ACME"}
	if id := l.Append(d1, r); id != (TxID{Date: d1, Seq: 0}) {
		t.Errorf("Append() = %v, want %v#0", id, d1)
	}
	if id := l.Append(d1, Record{"sender": "Bob"}); id.Seq != 1 {
		t.Errorf("Append() = %v, want seq 1", id)
	}
	l.Append(d2, Record{"sender": "Carol"})

	r["sender"] = "changed"
	got, ok := l.Record(TxID{Date: d1, Seq: 0})
	if !ok || got["sender"] != "ACME" {
		t.Errorf("Record() = %v, want a copy made at Append", got)
	}
	got["sender"] = "changed"
	if again, _ := l.Record(TxID{Date: d1, Seq: 0}); again["sender"] != "ACME" {
		t.Errorf("Record() returned a shared record")
	}

	var ids []TxID
	for id := range l.From(d1) {
		ids = append(ids, id)
	}
	if len(ids) != 2 || ids[0].Seq != 0 || ids[1].Seq != 1 {
		t.Errorf("From(%v) = %v, want the two records of %v", d1, ids, d1)
	}
	if dates := l.Dates(); len(dates) != 2 || dates[0] != d2 {
		t.Errorf("Dates() = %v, want ascending", dates)
	}
	if l.Len() != 3 {
		t.Errorf("Len() = %d, want 3", l.Len())
	}
}
