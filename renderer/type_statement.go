package renderer

import (
	"github.com/etnz/stoier"
	"github.com/shopspring/decimal"
)

// Booking is one line of an account statement.
type Booking struct {
	ID       string
	Sender   string
	Receiver string
	Details  string
	Amount   string
	Vat      string
}

// Statement is the view of an account and its invoices.
type Statement struct {
	Name     string
	Type     string
	Run      string
	Sum      string
	Bookings []Booking
	Invoices []InvoiceLine
	Previous string // link to the previous statement, "#" if none
	Next     string // link to the next statement, "#" if none
}

// InvoiceLine is the view of an Invoice.
type InvoiceLine struct {
	Number      string
	Date        string
	Description string
	Amount      string
	Paid        bool
}

// NewStatement builds the statement of acc, with amounts in currency.
func NewStatement(acc *stoier.AccountSnapshot, invoices []Invoice, currency string) *Statement {
	s := &Statement{
		Name:     acc.Name(),
		Type:     string(acc.Type()),
		Run:      acc.Run,
		Sum:      Money(acc.Sum(), currency),
		Previous: "#",
		Next:     "#",
	}
	for _, p := range acc.Postings() {
		s.Bookings = append(s.Bookings, Booking{
			ID:       p.ID.String(),
			Sender:   p.Record["sender"],
			Receiver: p.Record["receiver"],
			Details:  p.Record["details"],
			Amount:   Money(p.Amount, currency),
			Vat:      p.Vat.String(),
		})
	}
	for _, inv := range invoices {
		s.Invoices = append(s.Invoices, InvoiceLine{
			Number:      inv.Number,
			Date:        inv.Date.String(),
			Description: inv.Description,
			Amount:      Money(inv.Amount, currency),
			Paid:        inv.Paid,
		})
	}
	return s
}

// SumLine is one account of the sums table.
type SumLine struct {
	Name  string
	Type  string
	Count int
	Sum   string
}

// Sums is the view of the sums of a set of accounts.
type Sums struct {
	Run   string
	Lines []SumLine
	Total string // sum of the net and vat accounts
}

// NewSums builds the sums table of accounts, in the given order.
func NewSums(accounts []*stoier.AccountSnapshot, currency string) *Sums {
	s := &Sums{}
	total := decimal.Zero
	for _, acc := range accounts {
		if s.Run == "" {
			s.Run = acc.Run
		}
		sum := acc.Sum()
		s.Lines = append(s.Lines, SumLine{Name: acc.Name(), Type: string(acc.Type()), Count: acc.Len(), Sum: Money(sum, currency)})
		if acc.Type() != stoier.Gross {
			total = total.Add(sum)
		}
	}
	s.Total = Money(total, currency)
	return s
}
