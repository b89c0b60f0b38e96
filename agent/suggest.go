// Package agent asks Gemini to pre-fill the accounts of an assignment
// skeleton.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/stoier"
	"google.golang.org/genai"
)

// BatchSize is the number of transactions sent in a single request.
const BatchSize = 50

// Suggestion is the accounts proposed for one transaction.
type Suggestion struct {
	ID            string   `json:"id"`
	NetAccounts   []string `json:"net_accounts"`
	GrossAccounts []string `json:"gross_accounts"`
}

// transaction is what the expert knows about a transaction.
type transaction struct {
	ID       string `json:"id"`
	Sender   string `json:"sender,omitempty"`
	Receiver string `json:"receiver,omitempty"`
	Details  string `json:"details,omitempty"`
	Amount   string `json:"amount"`
}

var suggestionSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":             {Type: genai.TypeString, Description: "The transaction id, unchanged."},
			"net_accounts":   {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"gross_accounts": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required: []string{"id", "net_accounts", "gross_accounts"},
	},
}

// Suggester proposes accounts for the unassigned transactions of a skeleton.
// Proposals are restricted to known account names.
type Suggester struct {
	expert *Expert
	net    []string
	gross  []string
}

// NewSuggester creates a Suggester choosing among the given net and gross
// account names.
func NewSuggester(gen Generator, net, gross []string) *Suggester {
	return &Suggester{
		expert: &Expert{
			Name:      "Bookkeeper",
			ModelName: Model,
			gen:       gen,
			Config: &genai.GenerateContentConfig{
				ResponseMIMEType: "application/json",
				ResponseSchema:   suggestionSchema,
				SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: fmt.Sprintf(`
				You are a bookkeeper of a small business. For every bank transaction you are given,
				choose the accounts it should be booked to.

				Net accounts receive the amount without VAT, gross accounts the full amount.
				Only use these net accounts: %s.
				Only use these gross accounts: %s.
				Leave both lists empty when no account fits, never invent an account.
				Answer with one entry per transaction, using its id unchanged.
				`, strings.Join(net, ", "), strings.Join(gross, ", "))}}},
			},
		},
		net:   net,
		gross: gross,
	}
}

// Suggest fills the accounts of the assignments of l that have neither net nor
// gross accounts. Proposals naming an unknown account or transaction are
// dropped and reported as warnings. It returns the number of assignments filled.
func (s *Suggester) Suggest(ctx context.Context, l *stoier.Ledger, as *stoier.Assignments) (int, stoier.Diagnostics, error) {
	var diags stoier.Diagnostics
	var todo []transaction
	for id, a := range as.All() {
		if len(a.NetAccounts)+len(a.GrossAccounts) > 0 {
			continue
		}
		r, ok := l.Record(id)
		if !ok {
			return 0, diags, &stoier.NotFoundError{What: "transaction " + id.String()}
		}
		todo = append(todo, transaction{ID: id.String(), Sender: r["sender"], Receiver: r["receiver"], Details: r["details"], Amount: r["amount"]})
	}

	filled := 0
	for batch := range slices.Chunk(todo, BatchSize) {
		suggestions, err := s.ask(ctx, batch)
		if err != nil {
			return filled, diags, err
		}
		for _, sg := range suggestions {
			id, err := stoier.ParseTxID(sg.ID)
			if err != nil || !slices.ContainsFunc(batch, func(t transaction) bool { return t.ID == sg.ID }) {
				diags = append(diags, stoier.Diagnostic{Level: stoier.LevelWarn, Kind: stoier.KindSuggestion, Message: fmt.Sprintf("suggestion for unknown transaction %q dropped", sg.ID)})
				continue
			}
			if bad := unknown(sg.NetAccounts, s.net) + unknown(sg.GrossAccounts, s.gross); bad != "" {
				diags = append(diags, stoier.Diagnostic{Level: stoier.LevelWarn, Kind: stoier.KindSuggestion, ID: id, Message: "suggestion with unknown accounts dropped:" + bad})
				continue
			}
			if len(sg.NetAccounts)+len(sg.GrossAccounts) == 0 {
				continue
			}
			a, _ := as.Get(id)
			a.NetAccounts, a.GrossAccounts = sg.NetAccounts, sg.GrossAccounts
			as.Set(id, a)
			filled++
			diags = append(diags, stoier.Diagnostic{Level: stoier.LevelInfo, Kind: stoier.KindSuggestion, ID: id, Message: fmt.Sprintf("net %v gross %v suggested", sg.NetAccounts, sg.GrossAccounts)})
		}
	}
	return filled, diags, nil
}

func (s *Suggester) ask(ctx context.Context, batch []transaction) ([]Suggestion, error) {
	question, err := json.Marshal(batch)
	if err != nil {
		return nil, err
	}
	answer, err := s.expert.Ask(ctx, string(question))
	if err != nil {
		return nil, err
	}
	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(answer), &suggestions); err != nil {
		return nil, fmt.Errorf("invalid answer from expert %s: %w", s.expert.Name, err)
	}
	return suggestions, nil
}

// unknown lists the names that are not in known.
func unknown(names, known []string) string {
	var b strings.Builder
	for _, n := range names {
		if !slices.Contains(known, n) {
			b.WriteString(" " + n)
		}
	}
	return b.String()
}
