package stoier

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountType is fixed when the account is created.
type AccountType string

const (
	Net   AccountType = "net"
	Gross AccountType = "gross"
	Vat   AccountType = "vat"
)

// ParseAccountType parses one of "net", "gross" or "vat".
func ParseAccountType(s string) (AccountType, error) {
	switch t := AccountType(s); t {
	case Net, Gross, Vat:
		return t, nil
	default:
		return "", &InputFormatError{Field: "account type", Value: s}
	}
}

// AmountField is the name of the posting field holding the derived amount.
func (t AccountType) AmountField() string { return string(t) + "_amount" }

// Posting is an account-scoped copy of a transaction and its derived amount.
type Posting struct {
	ID     TxID
	Record Record          // independent copy of the transaction fields
	Vat    VatPolicy       // policy used to derive Amount
	Amount decimal.Decimal // value of the {type}_amount field
}

// Account accumulates postings of a single type.
//
// Its lifecycle is created (first booking), accumulating, then finalized when
// it is serialized. Postings are never removed.
type Account struct {
	name      string
	typ       AccountType
	postings  []Posting
	booked    map[TxID]int // index of the posting of a transaction
	finalized bool
}

// NewAccount creates an empty account.
func NewAccount(name string, typ AccountType) *Account {
	return &Account{name: name, typ: typ, booked: make(map[TxID]int)}
}

func (a *Account) Name() string      { return a.name }
func (a *Account) Type() AccountType { return a.typ }
func (a *Account) Len() int          { return len(a.postings) }
func (a *Account) Finalized() bool   { return a.finalized }

// Postings returns a copy of the account postings in booking order.
func (a *Account) Postings() []Posting {
	res := make([]Posting, len(a.postings))
	for i, p := range a.postings {
		p.Record = p.Record.Clone()
		res[i] = p
	}
	return res
}

// Sum recomputes the sum of the derived amounts of all postings.
func (a *Account) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range a.postings {
		sum = sum.Add(p.Amount)
	}
	return sum
}

// post appends p unless the transaction was already booked in this account,
// in which case the existing posting is returned and added is false.
func (a *Account) post(p Posting) (posted Posting, added bool, err error) {
	if a.finalized {
		return Posting{}, false, fmt.Errorf("account %q is finalized", a.name)
	}
	if i, ok := a.booked[p.ID]; ok {
		return a.postings[i], false, nil
	}
	p.Record = p.Record.Clone()
	a.booked[p.ID] = len(a.postings)
	a.postings = append(a.postings, p)
	return p, true, nil
}

// finalize marks the account as serialized.
func (a *Account) finalize() { a.finalized = true }
