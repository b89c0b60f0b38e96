package stoier

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidateConfig configures Validate.
type ValidateConfig struct {
	AmountColumn  string
	BalanceColumn string
	Lookup        *Lookup // optional
}

// Validate walks l in canonical order and checks that every balance equals
// the previous balance plus the transaction amount.
//
// A mismatch is reported as a KindBalanceMismatch diagnostic and the observed
// balance becomes the new reference, so one bad record does not cascade. The
// first record only initializes the running balance.
//
// It returns an assignment skeleton with one entry per record: the default
// VAT policy and, when the lookup table knows the record's party, its account.
// Unparsable amounts or balances fail with an InputFormatError.
func Validate(l *Ledger, cfg ValidateConfig) (*Assignments, Diagnostics, error) {
	if cfg.AmountColumn == "" {
		cfg.AmountColumn = "amount"
	}
	if cfg.BalanceColumn == "" {
		cfg.BalanceColumn = "balance"
	}
	skeleton := NewAssignments()
	var diags Diagnostics
	var previous decimal.Decimal
	first := true
	for id, r := range l.All() {
		balance, err := r.Decimal(cfg.BalanceColumn)
		if err != nil {
			return nil, diags, fmt.Errorf("%v: %w", id, err)
		}
		amount, err := r.Decimal(cfg.AmountColumn)
		if err != nil {
			return nil, diags, fmt.Errorf("%v: %w", id, err)
		}
		if !first {
			if expected := previous.Add(amount); !balance.Equal(expected) {
				diags.add(Diagnostic{
					Level:    LevelError,
					Kind:     KindBalanceMismatch,
					ID:       id,
					Message:  fmt.Sprintf("balance mismatch: %s != %s + %s", balance, previous, amount),
					Expected: expected,
					Actual:   balance,
				})
			}
		}
		first = false
		previous = balance

		a := Assignment{Vat: Default(), NetAccounts: []string{}, GrossAccounts: []string{}}
		e, found, err := cfg.Lookup.Find(r)
		if err != nil {
			return nil, diags, fmt.Errorf("%v: %w", id, err)
		}
		if found {
			if e.Type == Gross {
				a.GrossAccounts = append(a.GrossAccounts, e.Account)
			} else {
				a.NetAccounts = append(a.NetAccounts, e.Account)
			}
			diags.add(Diagnostic{Level: LevelDebug, Kind: KindSenderAccount, ID: id, Message: fmt.Sprintf("%s account %q inferred", e.Type, e.Account)})
		}
		skeleton.Set(id, a)
	}
	return skeleton, diags, nil
}
