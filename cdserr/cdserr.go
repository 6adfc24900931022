// Package cdserr defines the typed error taxonomy shared by every core
// package (daycount, curve, schedule, valuation, pricer, bootstrap).
//
// Every error the core returns carries one of the four Kind values so a
// caller (eventually an HTTP adapter) can map it to a status code without
// string matching, the same way the teacher's bond package returns sentinel-
// style errors from fmt.Errorf but keyed here on a typed Kind instead of a
// message prefix.
package cdserr

import (
	"errors"
	"fmt"
)

// Kind classifies a core error per the error handling design.
type Kind int

const (
	// InvalidInput covers non-increasing or duplicate curve dates,
	// non-finite rates, recovery_rate outside [0,1), notional <= 0,
	// unrecognized enum values, and maturity <= effective.
	InvalidInput Kind = iota
	// OutOfRange covers a date requested outside a representable calendar.
	OutOfRange
	// NumericalError covers a solver that failed to bracket/converge, or an
	// integration that produced a non-finite value.
	NumericalError
	// Inconsistent covers curve base dates incompatible with a contract's
	// value_date, or a survival curve that is not monotone non-increasing.
	Inconsistent
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case OutOfRange:
		return "OutOfRange"
	case NumericalError:
		return "NumericalError"
	case Inconsistent:
		return "Inconsistent"
	default:
		return "Unknown"
	}
}

// Error is a typed core error. It always carries a Kind and wraps the
// underlying cause (if any) so errors.Is / errors.As keep working.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs a Kind-tagged error.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf constructs a Kind-tagged error with a formatted message.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a Kind and message to an existing error, preserving it for
// errors.Unwrap/errors.Is.
func Wrap(kind Kind, err error, msg string) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Is reports whether err is a *Error of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
