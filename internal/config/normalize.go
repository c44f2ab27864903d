// internal/config/normalize.go
package config

import (
	"strings"

	"github.com/tamzrod/benchpsu/internal/schema"
)

// Defaults applied by Normalize.
const (
	DefaultUnitID      = 1
	DefaultIntervalMs  = 5000
	DefaultTimeoutMs   = 1000
	DefaultTrendPoints = 5
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Device.Family = strings.ToLower(strings.TrimSpace(cfg.Device.Family))

	// Baud follows the family when unset.
	if cfg.Device.Baud == 0 {
		if f, err := schema.ParseFamily(cfg.Device.Family); err == nil {
			cfg.Device.Baud = f.DefaultBaud()
		}
	}
	if cfg.Device.UnitID == nil {
		unit := uint8(DefaultUnitID)
		cfg.Device.UnitID = &unit
	}
	if cfg.Device.TimeoutMs == 0 {
		cfg.Device.TimeoutMs = DefaultTimeoutMs
	}
	if cfg.Device.Driver == "" {
		cfg.Device.Driver = DriverNative
	}

	// all_groups expands to every slot.
	if cfg.Poll.AllGroups {
		cfg.Poll.Groups = make([]int, schema.GroupSlots)
		for i := range cfg.Poll.Groups {
			cfg.Poll.Groups[i] = i
		}
	}
	if cfg.Poll.IntervalMs == 0 {
		cfg.Poll.IntervalMs = DefaultIntervalMs
	}
	if cfg.Poll.ContinueOnError == nil {
		on := true
		cfg.Poll.ContinueOnError = &on
	}

	if cfg.Output.TrendPoints == 0 {
		cfg.Output.TrendPoints = DefaultTrendPoints
	}
}
