package stoier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Round is the number of decimal places of every computed amount.
const Round = 3

// DefaultVatRate is the default VAT percentage.
const DefaultVatRate = 19

var hundred = decimal.NewFromInt(100)

var errNegativeRate = errors.New("negative VAT percentage")

// PolicyKind discriminates the VatPolicy variants.
type PolicyKind int

const (
	// DefaultRate applies the configured default VAT percentage.
	DefaultRate PolicyKind = iota + 1
	// ExplicitAmount means the VAT amount of the transaction is already known.
	ExplicitAmount
	// ExplicitPercentage overrides the default VAT percentage.
	ExplicitPercentage
)

// VatPolicy is the rule used to split a gross amount into net and VAT.
//
// The zero value is not a valid policy.
type VatPolicy struct {
	kind    PolicyKind
	amount  decimal.Decimal
	percent int
}

// Default returns the default rate policy.
func Default() VatPolicy { return VatPolicy{kind: DefaultRate} }

// Amount returns the explicit amount policy for v.
func Amount(v decimal.Decimal) VatPolicy { return VatPolicy{kind: ExplicitAmount, amount: v} }

// Percent returns the explicit percentage policy for p.
func Percent(p int) VatPolicy { return VatPolicy{kind: ExplicitPercentage, percent: p} }

// Kind returns the variant of the policy, or 0 for the zero value.
func (p VatPolicy) Kind() PolicyKind { return p.kind }

// IsZero returns true for the unassigned policy.
func (p VatPolicy) IsZero() bool { return p.kind == 0 }

// Value returns the explicit amount of an ExplicitAmount policy.
func (p VatPolicy) Value() decimal.Decimal { return p.amount }

// Percentage returns the percentage of an ExplicitPercentage policy.
func (p VatPolicy) Percentage() int { return p.percent }

func (p VatPolicy) Equal(q VatPolicy) bool {
	return p.kind == q.kind && p.amount.Equal(q.amount) && p.percent == q.percent
}

func (p VatPolicy) String() string {
	switch p.kind {
	case DefaultRate:
		return "true"
	case ExplicitAmount:
		return p.amount.String()
	case ExplicitPercentage:
		return strconv.Itoa(p.percent) + "%"
	default:
		return "unassigned"
	}
}

// Split divides amount into its net and VAT parts, each rounded to Round
// places with banker's rounding. rate is the default VAT percentage.
// Negative percentages fail with an InputFormatError.
func (p VatPolicy) Split(amount decimal.Decimal, rate int) (net, vat decimal.Decimal, err error) {
	switch p.kind {
	case DefaultRate:
		if rate < 0 {
			return decimal.Zero, decimal.Zero, &InputFormatError{Field: "vat rate", Value: strconv.Itoa(rate), Err: errNegativeRate}
		}
		return ratio(amount, 100, rate), ratio(amount, rate, rate), nil
	case ExplicitAmount:
		return amount.Sub(p.amount).RoundBank(Round), p.amount.RoundBank(Round), nil
	case ExplicitPercentage:
		if p.percent < 0 {
			return decimal.Zero, decimal.Zero, &InputFormatError{Field: "vat percentage", Value: strconv.Itoa(p.percent), Err: errNegativeRate}
		}
		return ratio(amount, 100, p.percent), ratio(amount, p.percent, p.percent), nil
	default:
		return decimal.Zero, decimal.Zero, &UnassignedVatPolicyError{Raw: p.String()}
	}
}

// ratio returns amount * num / (100 + rate).
func ratio(amount decimal.Decimal, num, rate int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(num))).Div(hundred.Add(decimal.NewFromInt(int64(rate)))).RoundBank(Round)
}

// MarshalJSON writes true for the default rate, a decimal string for an
// explicit amount and an integer for an explicit percentage.
func (p VatPolicy) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case DefaultRate:
		return []byte("true"), nil
	case ExplicitAmount:
		return json.Marshal(p.amount.String())
	case ExplicitPercentage:
		return []byte(strconv.Itoa(p.percent)), nil
	default:
		return nil, &UnassignedVatPolicyError{Raw: "<zero>"}
	}
}

// UnmarshalJSON accepts true, an integer percentage, a decimal number with a
// fractional part or a decimal string. Anything else is ErrUnassignedVatPolicy.
func (p *VatPolicy) UnmarshalJSON(b []byte) error {
	raw := string(bytes.TrimSpace(b))
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: %w", &UnassignedVatPolicyError{Raw: raw}, err)
	}
	switch v := v.(type) {
	case bool:
		if v {
			*p = Default()
			return nil
		}
	case json.Number:
		if n, err := strconv.Atoi(v.String()); err == nil {
			if n < 0 {
				break
			}
			*p = Percent(n)
			return nil
		}
		if d, err := decimal.NewFromString(v.String()); err == nil {
			*p = Amount(d)
			return nil
		}
	case string:
		if d, err := decimal.NewFromString(v); err == nil {
			*p = Amount(d)
			return nil
		}
	}
	return &UnassignedVatPolicyError{Raw: raw}
}
