package stoier

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// reservedFields are written by marshal after the record fields; the Booker
// refuses records using them.
var reservedFields = []string{"id", "vat", Net.AmountField(), Gross.AmountField(), Vat.AmountField()}

// marshal writes the record fields followed by the transaction id, the
// VAT policy and the derived amount of the account type.
func (p Posting) marshal(t AccountType) ([]byte, error) {
	var w objectWriter
	w.EmbedFrom(p.Record)
	w.Append("id", p.ID.String())
	w.Append("vat", p.Vat)
	w.Append(t.AmountField(), p.Amount)
	return w.MarshalJSON()
}

// accountFile is the persisted form of an Account.
type accountFile struct {
	Name     string            `json:"name"`
	Type     AccountType       `json:"type"`
	Run      string            `json:"run,omitempty"`
	Sum      decimal.Decimal   `json:"sum"`
	Bookings []json.RawMessage `json:"bookings"`
}

// EncodeAccount writes the account with its postings and finalizes it.
// run identifies the booking run that produced it.
func EncodeAccount(w io.Writer, acc *Account, run string) error {
	f := accountFile{Name: acc.name, Type: acc.typ, Run: run, Sum: acc.Sum(), Bookings: make([]json.RawMessage, 0, len(acc.postings))}
	for _, p := range acc.postings {
		b, err := p.marshal(acc.typ)
		if err != nil {
			return fmt.Errorf("account %q: %w", acc.name, err)
		}
		f.Bookings = append(f.Bookings, b)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("account %q: %w", acc.name, err)
	}
	acc.finalize()
	return nil
}

// AccountSnapshot is an account as read back from its serialized form.
type AccountSnapshot struct {
	*Account
	Run string
}

// DecodeAccount reads an account written by EncodeAccount. The returned
// account is finalized.
func DecodeAccount(r io.Reader) (*AccountSnapshot, error) {
	var f accountFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, &InputFormatError{Field: "account", Err: err}
	}
	if _, err := ParseAccountType(string(f.Type)); err != nil {
		return nil, fmt.Errorf("account %q: %w", f.Name, err)
	}
	acc := NewAccount(f.Name, f.Type)
	field := f.Type.AmountField()
	for i, b := range f.Bookings {
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, &InputFormatError{Field: fmt.Sprintf("%s booking %d", f.Name, i), Err: err}
		}
		var p Posting
		p.Record = make(Record, len(raw))
		for k, v := range raw {
			s := fmt.Sprint(v)
			switch k {
			case "id":
				id, err := ParseTxID(s)
				if err != nil {
					return nil, err
				}
				p.ID = id
			case "vat":
				vb, _ := json.Marshal(v)
				if err := json.Unmarshal(vb, &p.Vat); err != nil {
					return nil, err
				}
			case field:
				d, err := decimal.NewFromString(s)
				if err != nil {
					return nil, &InputFormatError{Field: field, Value: s, Err: err}
				}
				p.Amount = d
			default:
				p.Record[k] = s
			}
		}
		if _, _, err := acc.post(p); err != nil {
			return nil, err
		}
	}
	acc.finalize()
	return &AccountSnapshot{Account: acc, Run: f.Run}, nil
}

// WriteCSV writes the spreadsheet export of the booker: one row per
// transaction and the given columns. Cells for accounts a transaction was not
// posted to are left empty.
func WriteCSV(w io.Writer, columns []string, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	line := make([]string, len(columns))
	for _, row := range rows {
		for i, c := range columns {
			line[i] = row.Values[c]
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
