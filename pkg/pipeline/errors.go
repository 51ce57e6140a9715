package pipeline

import "fmt"

// ErrorClass is the taxonomy of engine failures.
type ErrorClass uint8

const (
	// ClassSyntax is structurally invalid markup.
	ClassSyntax ErrorClass = iota + 1
	// ClassSemantic is valid markup disallowed by the strictness or trust
	// options, such as an undefined command or an untrusted construct.
	ClassSemantic
	// ClassUnclassified is an engine fault without a usable offset.
	ClassUnclassified
)

// String returns a short name for the class.
func (c ErrorClass) String() string {
	switch c {
	case ClassSyntax:
		return "syntax"
	case ClassSemantic:
		return "semantic"
	case ClassUnclassified:
		return "unclassified"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c ErrorClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseError is the structured failure reported by engines.
type ParseError struct {
	Message string

	// Position is the zero-based offset of the offending token, in the
	// engine's PositionUnit.
	Position int

	// Length is the length of the offending token, 0 when unknown.
	Length int

	Class ErrorClass
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Message, e.Position)
}

// Offset implements Positioned.
func (e *ParseError) Offset() int {
	return e.Position
}

// NewParseError returns a syntax ParseError.
func NewParseError(position, length int, format string, args ...any) *ParseError {
	return &ParseError{
		Message:  fmt.Sprintf(format, args...),
		Position: position,
		Length:   length,
		Class:    ClassSyntax,
	}
}

// Positioned is implemented by errors that know where in the input they
// occurred.
type Positioned interface {
	error
	Offset() int
}
