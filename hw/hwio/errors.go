package hwio

import "fmt"

// ErrorKind classifies every failure mode of the core. Errors are plain
// values so tests can assert the exact kind coming out of any interface.
type ErrorKind uint8

//go:generate go tool stringer -type=ErrorKind

const (
	// no error
	Ok ErrorKind = iota

	UnalignedMemoryRead
	UnalignedMemoryWrite
	UnalignedProgramCounter
	UnknownAddressingMode
	UnknownOpcode

	// permission error
	ProtectedRead
	ProtectedWrite

	// bus error
	UnmappedRead
	UnmappedWrite

	// invalid action
	InvalidRead
	InvalidWrite
)

type Error struct {
	Kind ErrorKind
	What string
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.What
}

func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, What: fmt.Sprintf(format, args...)}
}

// KindOf extracts the error kind, or Ok for nil.
func KindOf(err error) ErrorKind {
	if err == nil {
		return Ok
	}
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return InvalidRead
}
