package renderer

import (
	"github.com/etnz/stoier"
)

// RenderStatement renders an account statement to markdown.
func RenderStatement(s *Statement) (string, error) {
	partials := map[string]string{
		"statement_bookings": "statement_bookings.md",
		"statement_invoices": "",
	}
	if len(s.Invoices) > 0 {
		partials["statement_invoices"] = "statement_invoices.md"
	}
	return renderTemplate("statement", "statement.md", partials, s)
}

// RenderSums renders the sums of accounts to markdown.
func RenderSums(s *Sums) (string, error) {
	return renderTemplate("sums", "sums.md", nil, s)
}

// Field is a name and value pair of a record.
type Field struct{ Name, Value string }

// RenderRecord renders a ledger entry to markdown, fields sorted by name.
func RenderRecord(id stoier.TxID, r stoier.Record) (string, error) {
	data := struct {
		ID     string
		Fields []Field
	}{ID: id.String()}
	for _, name := range r.Fields() {
		data.Fields = append(data.Fields, Field{Name: name, Value: r[name]})
	}
	return renderTemplate("record", "record.md", nil, data)
}
