package stoier

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// DefaultSenderPath selects the sender of a record.
const DefaultSenderPath = "$.sender"

// LookupEntry is the default account of a counterparty.
type LookupEntry struct {
	Account string      `json:"account"`
	Type    AccountType `json:"type,omitempty"` // Net when empty
}

// UnmarshalJSON accepts either a bare account name or a full entry.
func (e *LookupEntry) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		*e = LookupEntry{Account: name}
		return nil
	}
	type entry LookupEntry
	var full entry
	if err := json.Unmarshal(b, &full); err != nil {
		return err
	}
	*e = LookupEntry(full)
	return nil
}

// Lookup maps a party name (by default the sender) to its default account.
type Lookup struct {
	Path    string // JSONPath selecting the party in a record
	Entries map[string]LookupEntry
}

// DecodeLookup reads a lookup table: a json object mapping a party to either
// an account name or {"account": ..., "type": "net"|"gross"}.
func DecodeLookup(data []byte) (*Lookup, error) {
	var entries map[string]LookupEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("invalid lookup table: %w", err)
	}
	for party, e := range entries {
		switch e.Type {
		case "":
		case Net, Gross:
		default:
			return nil, &InputFormatError{Field: "lookup type of " + party, Value: string(e.Type)}
		}
	}
	return &Lookup{Path: DefaultSenderPath, Entries: entries}, nil
}

// Find returns the default account for the party of r. Entries with an empty
// account (as in a freshly generated template) never match.
func (l *Lookup) Find(r Record) (LookupEntry, bool, error) {
	if l == nil || len(l.Entries) == 0 {
		return LookupEntry{}, false, nil
	}
	path := l.Path
	if path == "" {
		path = DefaultSenderPath
	}
	doc := make(map[string]any, len(r))
	for k, v := range r {
		doc[k] = v
	}
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		// a missing field is not an error, the record simply has no party.
		return LookupEntry{}, false, nil
	}
	party, ok := v.(string)
	if !ok {
		return LookupEntry{}, false, fmt.Errorf("lookup path %q selects a %T, want a string", path, v)
	}
	e, ok := l.Entries[party]
	if !ok || e.Account == "" {
		return LookupEntry{}, false, nil
	}
	if e.Type == "" {
		e.Type = Net
	}
	return e, true, nil
}

// LookupTemplate returns a lookup table with an empty account for each party,
// ready to be filled in by hand.
func LookupTemplate(parties []string) map[string]string {
	res := make(map[string]string, len(parties))
	for _, p := range parties {
		res[p] = ""
	}
	return res
}
