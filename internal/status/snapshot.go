// internal/status/snapshot.go
package status

import "time"

// Snapshot is the poll health of one device.
type Snapshot struct {
	Health         uint16
	LastErrorCode  uint16
	SecondsInError uint16

	Cycles   uint64
	Failures uint64

	LastSuccess time.Time
	LastError   error
}

// Tracker folds poll cycle outcomes into a Snapshot. Not safe for concurrent use.
type Tracker struct {
	snap       Snapshot
	errorSince time.Time
}

// Observe records the outcome of one cycle finished at `at` and returns the new snapshot.
func (t *Tracker) Observe(err error, at time.Time) Snapshot {
	t.snap.Cycles++

	if err == nil {
		// Recovery resets error state.
		t.snap.Health = HealthOK
		t.snap.LastErrorCode = 0
		t.snap.SecondsInError = 0
		t.snap.LastSuccess = at
		t.snap.LastError = nil
		t.errorSince = time.Time{}
		return t.snap
	}

	t.snap.Failures++
	t.snap.Health = HealthError
	t.snap.LastErrorCode = ErrorCode(err)
	t.snap.LastError = err
	if t.errorSince.IsZero() {
		t.errorSince = at
	}

	secs := at.Sub(t.errorSince) / time.Second
	if secs > MaxSecondsInError {
		secs = MaxSecondsInError
	}
	t.snap.SecondsInError = uint16(secs)
	return t.snap
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() Snapshot { return t.snap }
