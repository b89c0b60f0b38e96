package stoier

import (
	"errors"
	"testing"

	"github.com/etnz/stoier/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestValidate_BalanceChain(t *testing.T) {
	l := mustLedger(t,
		tx("2024-01-01", "A", "100", "100"),
		tx("2024-01-02", "B", "50", "150"),
		tx("2024-01-03", "C", "5", "140"), // expected 155
		tx("2024-01-04", "D", "-40", "100"),
	)
	as, diags, err := Validate(l, ValidateConfig{})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	mismatches := diags.Of(KindBalanceMismatch)
	if len(mismatches) != 1 {
		t.Fatalf("balance mismatches = %v, want exactly one", mismatches)
	}
	m := mismatches[0]
	if want := (TxID{Date: date.New(2024, 1, 3)}); m.ID != want {
		t.Errorf("mismatch ID = %v, want %v", m.ID, want)
	}
	if !m.Expected.Equal(decimal.NewFromInt(155)) || !m.Actual.Equal(decimal.NewFromInt(140)) {
		t.Errorf("mismatch = expected %v actual %v, want expected 155 actual 140", m.Expected, m.Actual)
	}
	if m.Level != LevelError {
		t.Errorf("mismatch level = %v, want error", m.Level)
	}
	if as.Len() != 4 {
		t.Errorf("skeleton has %d entries, want 4", as.Len())
	}
}

func TestValidate_Skeleton(t *testing.T) {
	l := mustLedger(t,
		tx("2024-01-01", "ACME", "100", "100"),
		tx("2024-01-01", "Landlord", "-50", "50"),
		tx("2024-01-02", "Unknown", "1", "51"),
	)
	lookup, err := DecodeLookup([]byte(`{"ACME": "sales", "Landlord": {"account": "rent", "type": "gross"}, "Unknown": ""}`))
	if err != nil {
		t.Fatalf("DecodeLookup() error = %v", err)
	}
	as, diags, err := Validate(l, ValidateConfig{Lookup: lookup})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	type entry struct {
		ID    string
		Vat   string
		Net   []string
		Gross []string
	}
	var got []entry
	for id, a := range as.All() {
		got = append(got, entry{id.String(), a.Vat.String(), a.NetAccounts, a.GrossAccounts})
	}
	want := []entry{
		{"2024-01-01#0", "true", []string{"sales"}, []string{}},
		{"2024-01-01#1", "true", []string{}, []string{"rent"}},
		{"2024-01-02#0", "true", []string{}, []string{}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("skeleton mismatch (-want +got):\n%s", diff)
	}
	if n := len(diags.Of(KindSenderAccount)); n != 2 {
		t.Errorf("sender account diagnostics = %d, want 2", n)
	}
}

func TestValidate_InvalidDecimal(t *testing.T) {
	l := mustLedger(t,
		tx("2024-01-01", "A", "100", "100"),
		tx("2024-01-02", "B", "1,5", "101.5"),
	)
	_, _, err := Validate(l, ValidateConfig{})
	var ife *InputFormatError
	if !errors.As(err, &ife) || ife.Field != "amount" {
		t.Errorf("Validate() error = %v, want InputFormatError on amount", err)
	}
}

func TestLookupFind(t *testing.T) {
	lookup := &Lookup{Path: "$.receiver", Entries: map[string]LookupEntry{"ACME": {Account: "supplies"}}}
	e, found, err := lookup.Find(Record{"receiver": "ACME"})
	if err != nil || !found || e != (LookupEntry{Account: "supplies", Type: Net}) {
		t.Errorf("Find() = %v, %v, %v, want supplies/net", e, found, err)
	}
	if _, found, err := lookup.Find(Record{"sender": "ACME"}); found || err != nil {
		t.Errorf("Find() without receiver = %v, %v, want not found", found, err)
	}
	var none *Lookup
	if _, found, err := none.Find(Record{"sender": "ACME"}); found || err != nil {
		t.Errorf("nil Lookup Find() = %v, %v, want not found", found, err)
	}
	if _, err := DecodeLookup([]byte(`{"ACME": {"account": "x", "type": "vat"}}`)); !errors.Is(err, ErrInputFormat) {
		t.Errorf("DecodeLookup(vat) error = %v, want ErrInputFormat", err)
	}
}
