// internal/status/status_test.go
package status

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tamzrod/benchpsu/internal/rtu"
	"github.com/tamzrod/benchpsu/internal/schema"
	"github.com/tamzrod/benchpsu/internal/serialport"
)

func TestErrorCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want uint16
	}{
		{"nil", nil, 0},
		{"exception passthrough", fmt.Errorf("poller: %w", &rtu.ExceptionError{Function: 3, Exception: rtu.ExSlaveDeviceBusy}), 6},
		{"crc", fmt.Errorf("x: %w", rtu.ErrCRCMismatch), CodeCRCMismatch},
		{"length", rtu.ErrUnexpectedLength, CodeUnexpectedLength},
		{"response", rtu.ErrUnexpectedResponse, CodeUnexpectedResponse},
		{"timeout", &serialport.TransportError{Op: serialport.OpTimeout, Err: serialport.ErrTimeout}, CodeTimeout},
		{"open", &serialport.TransportError{Op: serialport.OpOpen, Err: errors.New("no such file")}, CodeTransport},
		{"schema", &schema.SchemaError{Kind: schema.UnknownField}, CodeSchema},
		{"generic", errors.New("something"), CodeGeneric},
	}

	for _, tc := range cases {
		if got := ErrorCode(tc.err); got != tc.want {
			t.Fatalf("%s: got=%d want=%d", tc.name, got, tc.want)
		}
	}
}

func TestTracker_SecondsInErrorResetOnRecovery(t *testing.T) {
	var tr Tracker
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if s := tr.Snapshot(); s.Health != HealthUnknown {
		t.Fatalf("expected unknown health before first cycle, got %d", s.Health)
	}

	tr.Observe(rtu.ErrCRCMismatch, t0)
	s := tr.Observe(rtu.ErrCRCMismatch, t0.Add(3*time.Second))
	if s.Health != HealthError || s.SecondsInError != 3 || s.LastErrorCode != CodeCRCMismatch {
		t.Fatalf("unexpected error snapshot: %+v", s)
	}
	if s.Failures != 2 || s.Cycles != 2 {
		t.Fatalf("unexpected counters: %+v", s)
	}

	s = tr.Observe(nil, t0.Add(4*time.Second))
	if s.Health != HealthOK || s.SecondsInError != 0 || s.LastErrorCode != 0 {
		t.Fatalf("seconds_in_error not reset: %+v", s)
	}
	if !s.LastSuccess.Equal(t0.Add(4 * time.Second)) {
		t.Fatalf("unexpected last success: %v", s.LastSuccess)
	}
}

func TestTracker_SecondsInErrorSaturates(t *testing.T) {
	var tr Tracker
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tr.Observe(errors.New("down"), t0)
	s := tr.Observe(errors.New("down"), t0.Add(48*time.Hour))
	if s.SecondsInError != MaxSecondsInError {
		t.Fatalf("expected saturation at %d, got %d", MaxSecondsInError, s.SecondsInError)
	}
}
