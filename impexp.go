package stoier

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
)

// Trigger locates the first data row of an export: the header row is Offset
// rows after the first row whose Column equals Text.
type Trigger struct {
	Column int
	Text   string
	Offset int
}

// ParseTrigger parses "COL:TEXT[:OFFSET]". An empty string is no trigger.
func ParseTrigger(s string) (*Trigger, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, &InputFormatError{Field: "trigger", Value: s, Err: fmt.Errorf("want COL:TEXT[:OFFSET]")}
	}
	col, err := strconv.Atoi(parts[0])
	if err != nil || col < 0 {
		return nil, &InputFormatError{Field: "trigger column", Value: parts[0], Err: err}
	}
	t := &Trigger{Column: col, Text: parts[1]}
	if len(parts) == 3 {
		if t.Offset, err = strconv.Atoi(parts[2]); err != nil {
			return nil, &InputFormatError{Field: "trigger offset", Value: parts[2], Err: err}
		}
	}
	return t, nil
}

// ImportConfig describes the layout of a bank CSV export.
type ImportConfig struct {
	Comma   rune     // field delimiter, ';' when zero
	Skip    int      // rows before the header row
	Trigger *Trigger // overrides Skip when set
	Header  []string // custom header; the header row is then a data row
	Latin1  bool     // input is ISO-8859-1 encoded
}

// ImportCSV reads the records of a bank export.
func ImportCSV(r io.Reader, cfg ImportConfig) ([]Record, error) {
	if cfg.Latin1 {
		r = charmap.ISO8859_1.NewDecoder().Reader(r)
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	if cfg.Comma != 0 {
		cr.Comma = cfg.Comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header := cfg.Header
	skip := cfg.Skip
	trigger := cfg.Trigger
	var records []Record
	for n := 0; ; n++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &InputFormatError{Field: "csv", Err: err}
		}
		if trigger != nil {
			if trigger.Column < len(row) && row[trigger.Column] == trigger.Text {
				skip = n + trigger.Offset
				trigger = nil
			} else {
				continue
			}
		}
		if n < skip {
			continue
		}
		if n == skip && header == nil {
			header = row
			continue
		}
		rec := make(Record, len(header))
		for i, h := range header {
			if i < len(row) {
				rec[h] = row[i]
			}
		}
		records = append(records, rec)
	}
	if trigger != nil {
		return nil, &NotFoundError{What: fmt.Sprintf("trigger row %q in column %d", trigger.Text, trigger.Column)}
	}
	return records, nil
}

// CleanConfig lists the columns normalized by Clean.
type CleanConfig struct {
	AmountColumn  string
	BalanceColumn string
	DetailsColumn string
}

// detailsNoise is removed from the details column.
var detailsNoise = []string{"Referenz NOTPROVIDED", "Verwendungszweck"}

// ParseBankDecimal parses an amount in the German bank format
// ("-1.234,56 €") into an exact decimal.
func ParseBankDecimal(s string) (decimal.Decimal, error) {
	v := strings.NewReplacer("€", "", "\u0080", "", "\u00a0", "", " ", "", ".", "").Replace(s)
	v = strings.Replace(v, ",", ".", 1)
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, &InputFormatError{Field: "amount", Value: s, Err: err}
	}
	return d, nil
}

// Clean returns a copy of r with amount and balance in canonical decimal
// notation and the details column stripped of bank boilerplate.
func Clean(r Record, cfg CleanConfig) (Record, error) {
	c := r.Clone()
	for _, col := range []string{cfg.AmountColumn, cfg.BalanceColumn} {
		raw, ok := c[col]
		if !ok {
			return nil, &InputFormatError{Field: col, Err: errMissingColumn}
		}
		d, err := ParseBankDecimal(raw)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}
		c[col] = d.String()
	}
	if details, ok := c[cfg.DetailsColumn]; ok {
		for _, noise := range detailsNoise {
			details = strings.ReplaceAll(details, noise, "")
		}
		c[cfg.DetailsColumn] = strings.TrimSpace(details)
	}
	return c, nil
}
