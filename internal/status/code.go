// internal/status/code.go
package status

import (
	"errors"

	"github.com/tamzrod/benchpsu/internal/rtu"
	"github.com/tamzrod/benchpsu/internal/schema"
	"github.com/tamzrod/benchpsu/internal/serialport"
)

// ErrorCode extracts a stable uint16 code from an error.
// Errors exposing Code() uint16 (Modbus exceptions) pass their code through.
// If nothing matches, returns CodeGeneric.
func ErrorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	type coder interface{ Code() uint16 }
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}

	switch {
	case errors.Is(err, rtu.ErrCRCMismatch):
		return CodeCRCMismatch
	case errors.Is(err, rtu.ErrUnexpectedLength):
		return CodeUnexpectedLength
	case errors.Is(err, rtu.ErrUnexpectedResponse):
		return CodeUnexpectedResponse
	case errors.Is(err, rtu.ErrInvalidQuantity):
		return CodeInvalidQuantity
	case errors.Is(err, serialport.ErrTimeout):
		return CodeTimeout
	}

	var te *serialport.TransportError
	if errors.As(err, &te) {
		return CodeTransport
	}
	var se *schema.SchemaError
	if errors.As(err, &se) {
		return CodeSchema
	}
	return CodeGeneric
}
