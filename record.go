package stoier

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Record is a raw transaction as exported by the bank: a set of named fields
// (date, sender, receiver, amount, balance, details, and any extra columns).
type Record map[string]string

// Clone returns an independent copy of the record.
func (r Record) Clone() Record { return maps.Clone(r) }

// Fields returns the field names in ascending order.
func (r Record) Fields() []string { return slices.Sorted(maps.Keys(r)) }

// Decimal parses field as an exact decimal.
func (r Record) Decimal(field string) (decimal.Decimal, error) {
	raw, ok := r[field]
	if !ok {
		return decimal.Zero, &InputFormatError{Field: field, Value: "", Err: errMissingColumn}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &InputFormatError{Field: field, Value: raw, Err: err}
	}
	return d, nil
}

// Hash is the content identity of a record.
type Hash [sha256.Size]byte

func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// Hash computes the content hash of the record over the complete set of its
// field names and values. Fields are sorted by name and every name and value
// is length-prefixed, so the hash does not depend on insertion order and
// cannot be forged by moving characters between adjacent fields.
func (r Record) Hash() Hash {
	h := sha256.New()
	var n [8]byte
	write := func(s string) {
		binary.BigEndian.PutUint64(n[:], uint64(len(s)))
		h.Write(n[:])
		h.Write([]byte(s))
	}
	for _, k := range r.Fields() {
		write(k)
		write(r[k])
	}
	var res Hash
	h.Sum(res[:0])
	return res
}
