package stoier

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeAccount(t *testing.T) {
	l := mustLedger(t, tx("2024-01-01", "Bakery", "50.00", "50"))
	as := assign(l, Assignment{Vat: Percent(7), NetAccounts: []string{"food"}})
	b := NewBooker(DefaultBookerConfig())
	if _, err := b.Book(l, as); err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	food, _ := b.Account("food")

	var buf bytes.Buffer
	if err := EncodeAccount(&buf, food, "run-1"); err != nil {
		t.Fatalf("EncodeAccount() error = %v", err)
	}
	want := `{
  "name": "food",
  "type": "net",
  "run": "run-1",
  "sum": 46.729,
  "bookings": [
    {
      "amount": "50.00",
      "balance": "50",
      "date_1": "2024-01-01",
      "sender": "Bakery",
      "id": "2024-01-01#0",
      "vat": 7,
      "net_amount": 46.729
    }
  ]
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("EncodeAccount() mismatch (-want +got):\n%s", diff)
	}
	if !food.Finalized() {
		t.Errorf("EncodeAccount() did not finalize the account")
	}

	back, err := DecodeAccount(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("DecodeAccount() error = %v", err)
	}
	if back.Run != "run-1" || back.Name() != "food" || back.Type() != Net {
		t.Errorf("DecodeAccount() = %v %v %v, want run-1 food net", back.Run, back.Name(), back.Type())
	}
	got := back.Postings()
	if len(got) != 1 {
		t.Fatalf("DecodeAccount() has %d postings, want 1", len(got))
	}
	if diff := cmp.Diff(food.Postings()[0].Record, got[0].Record); diff != "" {
		t.Errorf("DecodeAccount() record mismatch (-want +got):\n%s", diff)
	}
	if !got[0].Vat.Equal(Percent(7)) || got[0].Amount.String() != "46.729" || got[0].ID.String() != "2024-01-01#0" {
		t.Errorf("DecodeAccount() posting = %+v", got[0])
	}
}

func TestDecodeAccount_InvalidType(t *testing.T) {
	_, err := DecodeAccount(strings.NewReader(`{"name":"x","type":"other","sum":0,"bookings":[]}`))
	if err == nil {
		t.Errorf("DecodeAccount() with unknown type succeeded")
	}
}
