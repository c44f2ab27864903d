// internal/config/validate.go
package config

import (
	"fmt"
	"time"

	"github.com/tamzrod/benchpsu/internal/schema"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	family, err := schema.ParseFamily(cfg.Device.Family)
	if err != nil {
		return fmt.Errorf("device.family: %w", err)
	}
	if cfg.Device.Port == "" {
		return fmt.Errorf("device.port is required")
	}
	if cfg.Device.UnitID != nil && *cfg.Device.UnitID == 0 {
		return fmt.Errorf("device.unit_id 0 is the broadcast address and never answers")
	}
	if cfg.Device.Baud < 0 {
		return fmt.Errorf("device.baud must be >= 0, got %d", cfg.Device.Baud)
	}
	if cfg.Device.TimeoutMs < 0 {
		return fmt.Errorf("device.timeout_ms must be >= 0, got %d", cfg.Device.TimeoutMs)
	}
	switch cfg.Device.Driver {
	case "", DriverNative, DriverGoburrow:
	default:
		return fmt.Errorf("device.driver %q is not one of %q, %q", cfg.Device.Driver, DriverNative, DriverGoburrow)
	}

	// ------------------------------------------------------------
	// POLL
	// ------------------------------------------------------------

	seen := make(map[int]bool, len(cfg.Poll.Groups))
	for _, g := range cfg.Poll.Groups {
		if g < 0 || g >= schema.GroupSlots {
			return fmt.Errorf("poll.groups: group %d out of range 0..%d", g, schema.GroupSlots-1)
		}
		if seen[g] {
			return fmt.Errorf("poll.groups: group %d listed twice", g)
		}
		seen[g] = true
	}
	if cfg.Poll.IntervalMs < 0 {
		return fmt.Errorf("poll.interval_ms must be >= 0, got %d", cfg.Poll.IntervalMs)
	}

	// ------------------------------------------------------------
	// SETTINGS (checked against the family's register schema)
	// ------------------------------------------------------------

	if err := validateSettings(family, cfg.Settings); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if !cfg.Settings.Group.Empty() && len(cfg.Poll.Groups) == 0 && !cfg.Poll.AllGroups {
		return fmt.Errorf("settings.group requires poll.groups or poll.all_groups")
	}

	// ------------------------------------------------------------
	// OUTPUT
	// ------------------------------------------------------------

	if cfg.Output.TrendPoints < 0 {
		return fmt.Errorf("output.trend_points must be >= 0, got %d", cfg.Output.TrendPoints)
	}

	return nil
}

func validateSettings(f schema.Family, s SettingsConfig) error {
	type check struct {
		field string
		value *float64
	}

	primary := []check{
		{schema.FieldSettingVolts, s.Volts},
		{schema.FieldSettingAmps, s.Amps},
		{schema.FieldOutputState, boolValue(s.Output)},
		{schema.FieldKeyLock, boolValue(s.KeyLock)},
		{schema.FieldBrightness, intValue(s.Brightness)},
		{schema.FieldGroupLoader, intValue(s.LoadGroup)},
	}
	for _, c := range primary {
		if c.value == nil {
			continue
		}
		if _, err := f.Encode(c.field, *c.value); err != nil {
			return err
		}
	}

	if s.SetClock {
		// Any in-range timestamp proves the family has a clock.
		if _, err := f.EncodeClock(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)); err != nil {
			return err
		}
	}

	g := s.Group
	group := []check{
		{schema.FieldSettingVolts, g.Volts},
		{schema.FieldSettingAmps, g.Amps},
		{schema.FieldCutoffVolts, g.CutoffVolts},
		{schema.FieldCutoffAmps, g.CutoffAmps},
		{schema.FieldCutoffWatts, g.CutoffWatts},
		{schema.FieldBrightness, intValue(g.Brightness)},
		{schema.FieldMaintainOutput, boolValue(g.MaintainOutput)},
		{schema.FieldPowerOnOutput, boolValue(g.PowerOnOutput)},
	}
	for _, c := range group {
		if c.value == nil {
			continue
		}
		if _, err := f.EncodeGroup(0, c.field, *c.value); err != nil {
			return err
		}
	}
	return nil
}

func boolValue(b *bool) *float64 {
	if b == nil {
		return nil
	}
	v := 0.0
	if *b {
		v = 1
	}
	return &v
}

func intValue(i *int) *float64 {
	if i == nil {
		return nil
	}
	v := float64(*i)
	return &v
}
