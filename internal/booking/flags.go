package booking

import (
	"errors"
	"fmt"
)

// FlagType names one of the workflow checkboxes on a booking.
type FlagType string

const (
	FlagOp       FlagType = "op"
	FlagRI       FlagType = "ri"
	FlagCustomer FlagType = "customer"
)

var (
	ErrUnknownFlag        = errors.New("unknown flag type")
	ErrCustomerRequiresOp = errors.New("customer cannot be set before op")
	ErrConcurrentUpdate   = errors.New("booking flags changed concurrently")
)

// StateConflictError is returned when a toggle would leave the booking in
// an illegal state, or when the stored state moved underneath it.
type StateConflictError struct {
	Flag FlagType
	Err  error
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("cannot toggle %s: %v", e.Flag, e.Err)
}

func (e *StateConflictError) Unwrap() error { return e.Err }

// ParseFlagType accepts "op", "ri" or "customer".
func ParseFlagType(s string) (FlagType, error) {
	switch t := FlagType(s); t {
	case FlagOp, FlagRI, FlagCustomer:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFlag, s)
}

// Flags is the (op, ri, customer) triple.
type Flags struct {
	Op       bool `json:"op"`
	RI       bool `json:"ri"`
	Customer bool `json:"customer"`
}

// Valid reports whether customer is only set together with op.
func (f Flags) Valid() bool {
	return f.Op || !f.Customer
}

// Toggle flips one flag. Turning op off also clears customer, and customer
// can only be turned on while op is set. On error f is returned unchanged.
func (f Flags) Toggle(t FlagType) (Flags, error) {
	next := f
	switch t {
	case FlagOp:
		next.Op = !f.Op
		if !next.Op {
			next.Customer = false
		}
	case FlagRI:
		next.RI = !f.RI
	case FlagCustomer:
		if !f.Customer && !f.Op {
			return f, &StateConflictError{Flag: t, Err: ErrCustomerRequiresOp}
		}
		next.Customer = !f.Customer
	default:
		return f, fmt.Errorf("%w: %q", ErrUnknownFlag, t)
	}
	return next, nil
}
