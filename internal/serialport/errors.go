// internal/serialport/errors.go
package serialport

import (
	"errors"
	"fmt"
)

// ErrTimeout is wrapped by every TransportError with Op == OpTimeout.
var ErrTimeout = errors.New("serialport: timeout")

// Op names the transport step that failed.
type Op string

const (
	OpOpen    Op = "open"
	OpWrite   Op = "write"
	OpRead    Op = "read"
	OpTimeout Op = "timeout"
)

// TransportError is fatal to the current transaction. It is never retried here.
type TransportError struct {
	Op   Op
	Path string

	// Want and Got are byte counts for read/timeout failures.
	Want int
	Got  int

	Err error
}

func (e *TransportError) Error() string {
	switch e.Op {
	case OpTimeout:
		return fmt.Sprintf("serialport: %s: timeout after %d of %d bytes", e.Path, e.Got, e.Want)
	case OpOpen:
		return fmt.Sprintf("serialport: open %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("serialport: %s %s: %v", e.Op, e.Path, e.Err)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }
