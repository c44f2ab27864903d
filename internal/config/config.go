// internal/config/config.go
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Device      DeviceConfig   `yaml:"device"`
	Poll        PollConfig     `yaml:"poll"`
	Settings    SettingsConfig `yaml:"settings"`
	Output      OutputConfig   `yaml:"output"`
	MetricsAddr string         `yaml:"metrics_addr"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Family    string `yaml:"family"` // device identifier, e.g. dps5005 or rd6006
	Port      string `yaml:"port"`
	Baud      int    `yaml:"baud"`
	UnitID    *uint8 `yaml:"unit_id"` // nil selects DefaultUnitID
	TimeoutMs int    `yaml:"timeout_ms"`
	Driver    string `yaml:"driver"` // native | goburrow
}

// Drivers.
const (
	DriverNative   = "native"
	DriverGoburrow = "goburrow"
)

// ---- POLL ----

type PollConfig struct {
	Groups          []int `yaml:"groups"`
	AllGroups       bool  `yaml:"all_groups"`
	Watch           bool  `yaml:"watch"`
	IntervalMs      int   `yaml:"interval_ms"`
	ContinueOnError *bool `yaml:"continue_on_error"`
}

// ---- SETTINGS ----

// SettingsConfig holds the writes applied once before polling starts.
// Nil means leave the device value alone.
type SettingsConfig struct {
	Volts      *float64 `yaml:"volts"`
	Amps       *float64 `yaml:"amps"`
	Output     *bool    `yaml:"output"`
	KeyLock    *bool    `yaml:"key_lock"`
	Brightness *int     `yaml:"brightness"`
	LoadGroup  *int     `yaml:"load_group"`
	SetClock   bool     `yaml:"set_clock"`

	// Group settings go to every selected group.
	Group GroupSettingsConfig `yaml:"group"`
}

type GroupSettingsConfig struct {
	Volts          *float64 `yaml:"volts"`
	Amps           *float64 `yaml:"amps"`
	CutoffVolts    *float64 `yaml:"cutoff_volts"`
	CutoffAmps     *float64 `yaml:"cutoff_amps"`
	CutoffWatts    *float64 `yaml:"cutoff_watts"`
	Brightness     *int     `yaml:"brightness"`
	MaintainOutput *bool    `yaml:"maintain_output"`
	PowerOnOutput  *bool    `yaml:"poweron_output"`
}

// Empty reports whether no group setting is present.
func (g GroupSettingsConfig) Empty() bool {
	return g.Volts == nil && g.Amps == nil &&
		g.CutoffVolts == nil && g.CutoffAmps == nil && g.CutoffWatts == nil &&
		g.Brightness == nil && g.MaintainOutput == nil && g.PowerOnOutput == nil
}

// ---- OUTPUT ----

type OutputConfig struct {
	JSON        bool `yaml:"json"`
	TrendPoints int  `yaml:"trend_points"`
}

// Load reads a YAML file. Unknown keys are rejected.
// It does not validate or normalize.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(raw)
}

// Parse decodes YAML bytes into a Config.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
