// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/benchpsu/internal/schema"
	"github.com/tamzrod/benchpsu/internal/status"
)

// Client abstracts the Modbus operations the session needs.
// Implementations serialize transactions themselves.
type Client interface {
	ReadRegisters(start, count uint16, unit uint8) ([]uint16, error) // FC 3
	WriteRegisters(start uint16, values []uint16, unit uint8) error  // FC 16
}

// Config is the minimal runtime config the session needs.
type Config struct {
	Family schema.Family
	UnitID uint8

	// Groups are read after the primary block, in this order.
	Groups []int

	Interval        time.Duration
	ContinueOnError bool
}

// DefaultInterval is used when Config.Interval is zero.
const DefaultInterval = 5 * time.Second

// Observer is called after every poll cycle with the cycle result
// (nil state on failure) and the updated health.
type Observer func(st *schema.DeviceState, snap status.Snapshot)
