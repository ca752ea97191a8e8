package domain

import "fmt"

type _error string

func (e _error) Error() string {
	return string(e)
}

const (
	ErrDuplicateName    _error = "duplicate name"
	ErrDuplicateAddress _error = "duplicate address"
)

// ValidationKind identifies which grammar a ValidationError violated.
type ValidationKind int

const (
	InvalidAddress ValidationKind = iota + 1
	InvalidName
	MalformedLine
	EmptyDomain
)

func (k ValidationKind) String() string {
	switch k {
	case InvalidAddress:
		return "invalid address"
	case InvalidName:
		return "invalid name"
	case MalformedLine:
		return "malformed line"
	case EmptyDomain:
		return "empty domain"
	default:
		return fmt.Sprintf("validation kind %d", int(k))
	}
}

// ValidationError reports input that does not match the address, name or
// store line grammar. Line is set only for errors raised while loading a
// store, and is 1-based.
type ValidationError struct {
	Kind  ValidationKind
	Input string
	Line  int
}

func (e *ValidationError) Error() string {
	msg := e.Kind.String()
	if e.Kind != EmptyDomain {
		msg = fmt.Sprintf("%s: %q", msg, e.Input)
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

// PersistenceError wraps a failure to read or write the backing store.
type PersistenceError struct {
	Op       string
	Location string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Location, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
