package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/stoier"
	"github.com/etnz/stoier/date"
	"google.golang.org/genai"
)

// fakeGenerator answers every request with a canned text.
type fakeGenerator struct {
	answer   string
	err      error
	requests []string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, _ string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if config.ResponseMIMEType != "application/json" {
		return nil, errors.New("want a json answer")
	}
	f.requests = append(f.requests, contents[0].Parts[0].Text)
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
		{Content: &genai.Content{Parts: []*genai.Part{{Text: f.answer}}}},
	}}, nil
}

func skeleton(t *testing.T) (*stoier.Ledger, *stoier.Assignments) {
	t.Helper()
	l := stoier.NewLedger()
	day := date.New(2024, 1, 5)
	ids := []stoier.TxID{
		l.Append(day, stoier.Record{"sender": "Bakery", "amount": "-12"}),
		l.Append(day, stoier.Record{"sender": "ACME", "amount": "119"}),
		l.Append(day, stoier.Record{"sender": "Landlord", "amount": "-500"}),
	}
	as := stoier.NewAssignments()
	as.Set(ids[0], stoier.Assignment{Vat: stoier.Percent(7)})
	as.Set(ids[1], stoier.Assignment{Vat: stoier.Default(), NetAccounts: []string{"sales"}})
	as.Set(ids[2], stoier.Assignment{Vat: stoier.Default()})
	return l, as
}

func TestSuggest(t *testing.T) {
	l, as := skeleton(t)
	gen := &fakeGenerator{answer: `[
		{"id": "2024-01-05#0", "net_accounts": ["food"], "gross_accounts": []},
		{"id": "2024-01-05#2", "net_accounts": ["yacht"], "gross_accounts": []},
		{"id": "2024-01-05#1", "net_accounts": ["office"], "gross_accounts": []}
	]`}
	s := NewSuggester(gen, []string{"food", "office", "sales"}, []string{"bank"})
	n, diags, err := s.Suggest(context.Background(), l, as)
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Suggest() filled %d assignments, want 1", n)
	}
	if len(gen.requests) != 1 || strings.Contains(gen.requests[0], "ACME") {
		t.Errorf("requests = %v, want a single request without assigned transactions", gen.requests)
	}

	day := date.New(2024, 1, 5)
	if a, _ := as.Get(stoier.TxID{Date: day, Seq: 0}); len(a.NetAccounts) != 1 || a.NetAccounts[0] != "food" || !a.Vat.Equal(stoier.Percent(7)) {
		t.Errorf("assignment #0 = %+v, want food with its vat policy kept", a)
	}
	if a, _ := as.Get(stoier.TxID{Date: day, Seq: 1}); a.NetAccounts[0] != "sales" {
		t.Errorf("assignment #1 = %+v, want it untouched", a)
	}
	if a, _ := as.Get(stoier.TxID{Date: day, Seq: 2}); len(a.NetAccounts) != 0 {
		t.Errorf("assignment #2 = %+v, want the unknown account dropped", a)
	}
	if w := diags.AtLeast(stoier.LevelWarn); len(w) != 2 {
		t.Errorf("warnings = %v, want the unknown account and the unexpected transaction", w)
	}
}

func TestSuggest_Errors(t *testing.T) {
	l, as := skeleton(t)
	s := NewSuggester(&fakeGenerator{answer: "not json"}, []string{"food"}, nil)
	if _, _, err := s.Suggest(context.Background(), l, as); err == nil {
		t.Errorf("Suggest() with an invalid answer succeeded")
	}

	boom := errors.New("quota exceeded")
	s = NewSuggester(&fakeGenerator{err: boom}, []string{"food"}, nil)
	if _, _, err := s.Suggest(context.Background(), l, as); !errors.Is(err, boom) {
		t.Errorf("Suggest() error = %v, want %v", err, boom)
	}
}
