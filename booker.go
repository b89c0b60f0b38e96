package stoier

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultHeader is the list of record columns copied into spreadsheet rows.
var DefaultHeader = []string{"date_1", "sender", "receiver", "type", "details", "amount", "balance"}

// BookerConfig configures a Booker.
type BookerConfig struct {
	VatRate      int      // default VAT percentage, 0 is a valid rate
	VatName      string   // name of the catch-all VAT account and prefix of the others
	AmountColumn string   // record column holding the gross amount
	Header       []string // record columns copied into spreadsheet rows
}

// Row is the flattened spreadsheet view of one transaction: the header
// columns plus one column per account the transaction was posted to.
type Row struct {
	ID     TxID
	Values map[string]string
}

// Booker books a ledger into net, gross and VAT accounts according to a set
// of assignments.
type Booker struct {
	cfg       BookerConfig
	run       string
	accounts  map[string]*Account
	rows      []Row
	rowIndex  map[TxID]int
	finalized bool
}

// DefaultBookerConfig returns the configuration of a Booker using
// DefaultVatRate.
func DefaultBookerConfig() BookerConfig {
	return BookerConfig{
		VatRate:      DefaultVatRate,
		VatName:      "vat",
		AmountColumn: "amount",
		Header:       slices.Clone(DefaultHeader),
	}
}

// NewBooker creates a Booker with no account. Empty VatName, AmountColumn and
// Header get their defaults; VatRate is used as is.
func NewBooker(cfg BookerConfig) *Booker {
	if cfg.VatName == "" {
		cfg.VatName = "vat"
	}
	if cfg.AmountColumn == "" {
		cfg.AmountColumn = "amount"
	}
	if cfg.Header == nil {
		cfg.Header = slices.Clone(DefaultHeader)
	}
	return &Booker{
		cfg:      cfg,
		run:      uuid.NewString(),
		accounts: make(map[string]*Account),
		rowIndex: make(map[TxID]int),
	}
}

// RunID identifies this booking run in serialized accounts and reports.
func (b *Booker) RunID() string { return b.run }

// Config returns the effective configuration.
func (b *Booker) Config() BookerConfig { return b.cfg }

// VatAccountName returns the VAT account receiving postings made with p.
func (b *Booker) VatAccountName(p VatPolicy) string {
	if p.Kind() == ExplicitPercentage {
		return b.cfg.VatName + "_" + strconv.Itoa(p.Percentage())
	}
	return b.cfg.VatName
}

// planned is a posting waiting to be applied to its account.
type planned struct {
	account string
	typ     AccountType
	posting Posting
}

// Book books every transaction of l. Every transaction must have an
// assignment with a VAT policy.
//
// Each gross account receives the untouched amount, each net account the net
// amount, and exactly one VAT account the VAT amount, even when no net or
// gross account is assigned (reported as a KindVatOnly diagnostic).
//
// Book is all or nothing: if any transaction fails nothing is booked.
// Booking a transaction already booked by this Booker is a no-op.
func (b *Booker) Book(l *Ledger, as *Assignments) (Diagnostics, error) {
	if b.finalized {
		return nil, errors.New("booker is finalized")
	}
	var diags Diagnostics
	var plan []planned
	types := make(map[string]AccountType, len(b.accounts))
	for name, acc := range b.accounts {
		types[name] = acc.Type()
	}
	claim := func(id TxID, name string, typ AccountType) error {
		if t, ok := types[name]; ok && t != typ {
			return fmt.Errorf("%v: %w", id, &InputFormatError{Field: "account " + name, Value: string(typ), Err: fmt.Errorf("account is already of type %s", t)})
		}
		types[name] = typ
		return nil
	}

	for id, r := range l.All() {
		a, ok := as.Get(id)
		if !ok {
			return nil, &NotFoundError{What: "assignment for " + id.String()}
		}
		if a.Vat.IsZero() {
			return nil, &UnassignedVatPolicyError{ID: id, Raw: "<missing>"}
		}
		for _, k := range reservedFields {
			if _, ok := r[k]; ok {
				return nil, fmt.Errorf("%v: %w", id, &InputFormatError{Field: k, Value: r[k], Err: errReservedColumn})
			}
		}
		amount, err := r.Decimal(b.cfg.AmountColumn)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", id, err)
		}
		net, vat, err := a.Vat.Split(amount, b.cfg.VatRate)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", id, err)
		}
		add := func(name string, typ AccountType, v decimal.Decimal) error {
			if err := claim(id, name, typ); err != nil {
				return err
			}
			plan = append(plan, planned{account: name, typ: typ, posting: Posting{ID: id, Record: r, Vat: a.Vat, Amount: v}})
			return nil
		}
		for _, name := range a.GrossAccounts {
			if err := add(name, Gross, amount); err != nil {
				return nil, err
			}
		}
		for _, name := range a.NetAccounts {
			if err := add(name, Net, net); err != nil {
				return nil, err
			}
		}
		vatAccount := b.VatAccountName(a.Vat)
		if err := add(vatAccount, Vat, vat); err != nil {
			return nil, err
		}
		if len(a.GrossAccounts)+len(a.NetAccounts) == 0 {
			diags.add(Diagnostic{Level: LevelWarn, Kind: KindVatOnly, ID: id, Message: fmt.Sprintf("no net or gross account, only %q is booked", vatAccount)})
		}
	}

	// apply the plan, nothing can fail from here.
	for _, p := range plan {
		acc, ok := b.accounts[p.account]
		if !ok {
			acc = NewAccount(p.account, p.typ)
			b.accounts[p.account] = acc
		}
		posted, added, _ := acc.post(p.posting)
		if !added {
			diags.add(Diagnostic{Level: LevelDebug, Kind: KindAlreadyBooked, ID: p.posting.ID, Message: fmt.Sprintf("already booked in %q", p.account)})
		}
		b.row(posted.ID, posted.Record)[p.account] = posted.Amount.String()
	}
	return diags, nil
}

// row returns the values of the spreadsheet row of id, creating it as needed.
func (b *Booker) row(id TxID, r Record) map[string]string {
	if i, ok := b.rowIndex[id]; ok {
		return b.rows[i].Values
	}
	values := make(map[string]string, len(b.cfg.Header))
	for _, h := range b.cfg.Header {
		values[h] = r[h]
	}
	b.rowIndex[id] = len(b.rows)
	b.rows = append(b.rows, Row{ID: id, Values: values})
	return values
}

// Account returns the account called name.
func (b *Booker) Account(name string) (*Account, bool) {
	acc, ok := b.accounts[name]
	return acc, ok
}

// Accounts returns all accounts sorted by name.
func (b *Booker) Accounts() []*Account {
	res := make([]*Account, 0, len(b.accounts))
	for _, name := range slices.Sorted(maps.Keys(b.accounts)) {
		res = append(res, b.accounts[name])
	}
	return res
}

// Rows returns the spreadsheet rows in booking order.
func (b *Booker) Rows() []Row {
	rows := make([]Row, len(b.rows))
	for i, r := range b.rows {
		rows[i] = Row{ID: r.ID, Values: maps.Clone(r.Values)}
	}
	return rows
}

// Columns returns the spreadsheet columns: the header then the account names.
// Gross accounts are left out when noGross is true.
func (b *Booker) Columns(noGross bool) []string {
	cols := slices.Clone(b.cfg.Header)
	for _, acc := range b.Accounts() {
		if noGross && acc.Type() == Gross {
			continue
		}
		cols = append(cols, acc.Name())
	}
	return cols
}

// Finalize freezes all accounts. It is called when the accounts are
// serialized; further bookings fail.
func (b *Booker) Finalize() {
	b.finalized = true
	for _, acc := range b.accounts {
		acc.finalize()
	}
}
