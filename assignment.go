package stoier

import (
	"iter"
	"maps"
	"slices"

	"github.com/etnz/stoier/date"
)

// Assignment tells the Booker where a transaction goes and how VAT applies.
type Assignment struct {
	ID            int       `json:"id"`
	Vat           VatPolicy `json:"vat"`
	NetAccounts   []string  `json:"net_accounts"`
	GrossAccounts []string  `json:"gross_accounts"`
}

// Assignments maps every transaction of a ledger to its Assignment. The
// skeleton produced by the Validator and the completed file edited by the user
// share this shape.
type Assignments struct {
	byID map[TxID]Assignment
}

// NewAssignments returns an empty set of assignments.
func NewAssignments() *Assignments {
	return &Assignments{byID: make(map[TxID]Assignment)}
}

// Set stores a for id.
func (as *Assignments) Set(id TxID, a Assignment) {
	a.ID = id.Seq
	as.byID[id] = a
}

// Get returns the assignment of id, and false if none was set. Its VatPolicy
// is zero when the input did not define one.
func (as *Assignments) Get(id TxID) (Assignment, bool) {
	a, ok := as.byID[id]
	return a, ok
}

// Len returns the number of assignments.
func (as *Assignments) Len() int { return len(as.byID) }

// All iterates over assignments by ascending date then id.
func (as *Assignments) All() iter.Seq2[TxID, Assignment] {
	return func(yield func(TxID, Assignment) bool) {
		for _, id := range slices.SortedFunc(maps.Keys(as.byID), TxID.Compare) {
			if !yield(id, as.byID[id]) {
				return
			}
		}
	}
}

// byDate groups the assignments by date, each bucket ordered by id.
func (as *Assignments) byDate() map[date.Date][]Assignment {
	res := make(map[date.Date][]Assignment)
	for id, a := range as.All() {
		res[id.Date] = append(res[id.Date], a)
	}
	return res
}

// AccountNames returns the net and gross account names referenced, sorted and
// without duplicates.
func (as *Assignments) AccountNames() (net, gross []string) {
	n, g := map[string]struct{}{}, map[string]struct{}{}
	for _, a := range as.All() {
		for _, x := range a.NetAccounts {
			n[x] = struct{}{}
		}
		for _, x := range a.GrossAccounts {
			g[x] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(n)), slices.Sorted(maps.Keys(g))
}
