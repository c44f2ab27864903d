// internal/schema/errors.go
package schema

import "fmt"

// ErrorKind classifies a SchemaError.
type ErrorKind int

const (
	UnknownField ErrorKind = iota + 1
	ValueOutOfRange
	InvalidGroup
	FamilyMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownField:
		return "unknown field"
	case ValueOutOfRange:
		return "value out of range"
	case InvalidGroup:
		return "invalid group"
	case FamilyMismatch:
		return "family mismatch"
	}
	return "schema error"
}

// SchemaError is a programming or configuration error. It is never suppressed.
type SchemaError struct {
	Kind   ErrorKind
	Family Family
	Field  string
	Value  float64
	Group  int
}

// Sentinels for errors.Is. They match any SchemaError of the same kind.
var (
	ErrUnknownField    = &SchemaError{Kind: UnknownField}
	ErrValueOutOfRange = &SchemaError{Kind: ValueOutOfRange}
	ErrInvalidGroup    = &SchemaError{Kind: InvalidGroup}
	ErrFamilyMismatch  = &SchemaError{Kind: FamilyMismatch}
)

func (e *SchemaError) Error() string {
	switch e.Kind {
	case UnknownField:
		return fmt.Sprintf("schema: unknown field %q for %s family", e.Field, e.Family)
	case ValueOutOfRange:
		return fmt.Sprintf("schema: value %v out of range for %q", e.Value, e.Field)
	case InvalidGroup:
		return fmt.Sprintf("schema: group %d outside 0..%d", e.Group, GroupSlots-1)
	case FamilyMismatch:
		return fmt.Sprintf("schema: unsupported device %q", e.Field)
	}
	return "schema: " + e.Kind.String()
}

func (e *SchemaError) Is(target error) bool {
	t, ok := target.(*SchemaError)
	return ok && t.Kind == e.Kind
}
