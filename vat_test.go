package stoier

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestVatPolicySplit(t *testing.T) {
	testCases := []struct {
		name    string
		policy  VatPolicy
		amount  string
		rate    int
		wantNet string
		wantVat string
	}{
		{"default rate", Default(), "100.00", 19, "84.034", "15.966"},
		{"explicit percentage", Percent(7), "50.00", 19, "46.729", "3.271"},
		{"explicit amount", Amount(decimal.RequireFromString("3.50")), "20.00", 19, "16.5", "3.5"},
		{"zero percentage", Percent(0), "42.42", 19, "42.42", "0"},
		{"negative amount", Default(), "-119", 19, "-100", "-19"},
		{"custom default rate", Default(), "107", 7, "100", "7"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			net, vat, err := tc.policy.Split(decimal.RequireFromString(tc.amount), tc.rate)
			if err != nil {
				t.Fatalf("Split() error = %v", err)
			}
			if !net.Equal(decimal.RequireFromString(tc.wantNet)) {
				t.Errorf("Split() net = %s, want %s", net, tc.wantNet)
			}
			if !vat.Equal(decimal.RequireFromString(tc.wantVat)) {
				t.Errorf("Split() vat = %s, want %s", vat, tc.wantVat)
			}
		})
	}

	if _, _, err := (VatPolicy{}).Split(decimal.NewFromInt(1), 19); !errors.Is(err, ErrUnassignedVatPolicy) {
		t.Errorf("zero policy Split() error = %v, want ErrUnassignedVatPolicy", err)
	}
	if _, _, err := Percent(-100).Split(decimal.NewFromInt(1), 19); !errors.Is(err, ErrInputFormat) {
		t.Errorf("Percent(-100).Split() error = %v, want ErrInputFormat", err)
	}
	if _, _, err := Default().Split(decimal.NewFromInt(1), -100); !errors.Is(err, ErrInputFormat) {
		t.Errorf("Default().Split() with rate -100 error = %v, want ErrInputFormat", err)
	}
}

// Net and VAT are rounded independently, each by at most half a unit of the
// last place, so they add up to the amount within one unit.
func TestVatPolicySplit_Decomposition(t *testing.T) {
	tolerance := decimal.New(1, -Round)
	for _, amount := range []string{"0.01", "1", "9.99", "100", "123.456", "-77.7", "1000000.01"} {
		a := decimal.RequireFromString(amount)
		for _, p := range []VatPolicy{Default(), Percent(7), Percent(0), Percent(25)} {
			net, vat, err := p.Split(a, DefaultVatRate)
			if err != nil {
				t.Fatalf("Split() error = %v", err)
			}
			if diff := net.Add(vat).Sub(a).Abs(); diff.GreaterThan(tolerance) {
				t.Errorf("%v.Split(%s) = %s + %s, off by %s", p, a, net, vat, diff)
			}
			if net.Exponent() < -Round || vat.Exponent() < -Round {
				t.Errorf("%v.Split(%s) = %s, %s, want at most %d places", p, a, net, vat, Round)
			}
		}
	}
}

func TestVatPolicyJSON(t *testing.T) {
	testCases := []struct {
		raw  string
		want VatPolicy
	}{
		{`true`, Default()},
		{`7`, Percent(7)},
		{`0`, Percent(0)},
		{`"3.50"`, Amount(decimal.RequireFromString("3.5"))},
		{`3.5`, Amount(decimal.RequireFromString("3.5"))},
	}
	for _, tc := range testCases {
		var got VatPolicy
		if err := json.Unmarshal([]byte(tc.raw), &got); err != nil {
			t.Errorf("Unmarshal(%s) error = %v", tc.raw, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("Unmarshal(%s) = %v, want %v", tc.raw, got, tc.want)
		}
	}

	for _, raw := range []string{`false`, `null`, `-7`, `"x"`, `{}`, `[]`} {
		var got VatPolicy
		if err := json.Unmarshal([]byte(raw), &got); !errors.Is(err, ErrUnassignedVatPolicy) {
			t.Errorf("Unmarshal(%s) error = %v, want ErrUnassignedVatPolicy", raw, err)
		}
	}

	for _, p := range []VatPolicy{Default(), Percent(7), Amount(decimal.RequireFromString("3.25"))} {
		b, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("Marshal(%v) error = %v", p, err)
		}
		var back VatPolicy
		if err := json.Unmarshal(b, &back); err != nil || !back.Equal(p) {
			t.Errorf("Unmarshal(Marshal(%v)) = %v, %v", p, back, err)
		}
	}
}
