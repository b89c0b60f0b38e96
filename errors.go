package stoier

import (
	"errors"
	"fmt"
)

var (
	// ErrInputFormat is returned for a missing or malformed required field.
	ErrInputFormat = errors.New("input format error")
	// ErrNotFound is returned when a snapshot, a record or an assignment cannot be resolved.
	ErrNotFound = errors.New("not found")
	// ErrUnassignedVatPolicy is returned when a VAT value is neither true, a
	// decimal amount nor an integer percentage.
	ErrUnassignedVatPolicy = errors.New("unassigned vat policy")

	errMissingColumn  = errors.New("missing column")
	errReservedColumn = errors.New("column name is reserved for bookings")
)

// InputFormatError reports the offending field and value.
type InputFormatError struct {
	Field string
	Value string
	Err   error
}

func (e *InputFormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *InputFormatError) Is(target error) bool { return target == ErrInputFormat }
func (e *InputFormatError) Unwrap() error        { return e.Err }

// NotFoundError names what could not be found.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string        { return e.What + ": not found" }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// UnassignedVatPolicyError reports a VAT value that cannot be turned into a VatPolicy.
type UnassignedVatPolicyError struct {
	ID  TxID   // zero when decoding outside of an assignment
	Raw string // raw value as found in the input
}

func (e *UnassignedVatPolicyError) Error() string {
	if e.ID.IsZero() {
		return fmt.Sprintf("unassigned vat policy %s", e.Raw)
	}
	return fmt.Sprintf("unassigned vat policy %s for %v", e.Raw, e.ID)
}

func (e *UnassignedVatPolicyError) Is(target error) bool { return target == ErrUnassignedVatPolicy }
