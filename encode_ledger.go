package stoier

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"maps"
	"slices"

	"github.com/etnz/stoier/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// RecordReader reads records from a JSONL stream, one record per line.
//
// Like a bufio.Scanner it is consumed once, and Err must be checked after the
// iteration.
type RecordReader struct {
	scanner *bufio.Scanner
	line    int
	err     error
}

// NewRecordReader returns a RecordReader reading from r.
func NewRecordReader(r io.Reader) *RecordReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &RecordReader{scanner: scanner}
}

// All returns a single pass iterator over the records.
func (rr *RecordReader) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for rr.err == nil && rr.scanner.Scan() {
			rr.line++
			line := rr.scanner.Bytes()
			if len(line) == 0 {
				continue // Skip empty lines
			}
			var r Record
			if err := json.Unmarshal(line, &r); err != nil {
				rr.err = fmt.Errorf("line %d: %w", rr.line, &InputFormatError{Field: "record", Value: string(line), Err: err})
				return
			}
			if !yield(r) {
				return
			}
		}
		if rr.err == nil {
			if err := rr.scanner.Err(); err != nil {
				rr.err = fmt.Errorf("error reading from input: %w", err)
			}
		}
	}
}

// Err returns the first error met by All.
func (rr *RecordReader) Err() error { return rr.err }

// EncodeRecord writes r as a JSON line.
func EncodeRecord(w io.Writer, r Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// EncodeRecords writes records in JSONL format.
func EncodeRecords(w io.Writer, records []Record) error {
	for _, r := range records {
		if err := EncodeRecord(w, r); err != nil {
			return err
		}
	}
	return nil
}

// ledgerEntry is the persisted form of a record in a ledger bucket.
type ledgerEntry struct {
	ID     int    `json:"id"`
	Fields Record `json:"fields"`
}

// EncodeLedger writes the ledger as a json object mapping each date to its
// ordered records. Dates are written in ascending order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	buckets := make(map[date.Date][]ledgerEntry, len(l.buckets))
	for id, r := range l.All() {
		buckets[id.Date] = append(buckets[id.Date], ledgerEntry{ID: id.Seq, Fields: r})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buckets)
}

// DecodeLedger reads a ledger written by EncodeLedger. Ids in a bucket must be
// dense and in order, and records must be unique.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	var buckets map[date.Date][]ledgerEntry
	if err := json.NewDecoder(r).Decode(&buckets); err != nil {
		return nil, &InputFormatError{Field: "ledger", Err: err}
	}
	l := NewLedger()
	seen := make(map[Hash]TxID)
	for _, day := range slices.SortedFunc(maps.Keys(buckets), date.Date.Compare) {
		for i, e := range buckets[day] {
			if e.ID != i {
				return nil, &InputFormatError{Field: "id", Value: fmt.Sprintf("%s#%d", day, e.ID), Err: fmt.Errorf("want id %d", i)}
			}
			id := TxID{Date: day, Seq: i}
			h := e.Fields.Hash()
			if prev, dup := seen[h]; dup {
				return nil, &InputFormatError{Field: "record", Value: id.String(), Err: fmt.Errorf("duplicate of %v", prev)}
			}
			seen[h] = id
			l.Append(day, e.Fields)
		}
	}
	return l, nil
}

// EncodeAssignments writes assignments as a json object mapping each date to
// its ordered assignments.
func EncodeAssignments(w io.Writer, as *Assignments) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(as.byDate())
}

// DecodeAssignments reads assignments written by EncodeAssignments and
// edited by hand. A VAT value that is not a valid policy fails with an
// UnassignedVatPolicyError naming the transaction.
func DecodeAssignments(r io.Reader) (*Assignments, error) {
	type rawAssignment struct {
		ID            *int            `json:"id"`
		Vat           json.RawMessage `json:"vat"`
		NetAccounts   []string        `json:"net_accounts"`
		GrossAccounts []string        `json:"gross_accounts"`
	}
	var raw map[date.Date][]rawAssignment
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, &InputFormatError{Field: "assignments", Err: err}
	}
	as := NewAssignments()
	seen := make(map[TxID]struct{})
	for day, bucket := range raw {
		for i, ra := range bucket {
			seq := i
			if ra.ID != nil {
				seq = *ra.ID
			}
			id := TxID{Date: day, Seq: seq}
			if _, dup := seen[id]; dup {
				return nil, &InputFormatError{Field: "id", Value: id.String(), Err: fmt.Errorf("duplicate assignment")}
			}
			a := Assignment{NetAccounts: ra.NetAccounts, GrossAccounts: ra.GrossAccounts}
			if len(ra.Vat) > 0 {
				if err := json.Unmarshal(ra.Vat, &a.Vat); err != nil {
					return nil, &UnassignedVatPolicyError{ID: id, Raw: string(ra.Vat)}
				}
			}
			seen[id] = struct{}{}
			as.Set(id, a)
		}
	}
	return as, nil
}
