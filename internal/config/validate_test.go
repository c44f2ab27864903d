// internal/config/validate_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/benchpsu/internal/schema"
)

// helper to build a minimal valid config quickly
func base(family string) *Config {
	return &Config{
		Device: DeviceConfig{Family: family, Port: "/dev/ttyUSB0"},
	}
}

func ptr[T any](v T) *T { return &v }

func TestValidate_Minimal(t *testing.T) {
	require.NoError(t, Validate(base("dps5005")))
	require.NoError(t, Validate(base("RD6006")))
}

func TestValidate_DeviceErrors(t *testing.T) {
	cases := map[string]func(*Config){
		"unknown family": func(c *Config) { c.Device.Family = "dps9999" },
		"missing port":   func(c *Config) { c.Device.Port = "" },
		"negative baud":  func(c *Config) { c.Device.Baud = -1 },
		"bad driver":     func(c *Config) { c.Device.Driver = "tcp" },
		"bad timeout":    func(c *Config) { c.Device.TimeoutMs = -5 },
		"broadcast unit": func(c *Config) { c.Device.UnitID = ptr(uint8(0)) },
	}
	for name, mutate := range cases {
		c := base("dps5005")
		mutate(c)
		assert.Error(t, Validate(c), name)
	}
}

func TestValidate_Groups(t *testing.T) {
	c := base("dps5005")
	c.Poll.Groups = []int{0, 9}
	require.NoError(t, Validate(c))

	c.Poll.Groups = []int{10}
	assert.Error(t, Validate(c))

	c.Poll.Groups = []int{3, 3}
	assert.Error(t, Validate(c))
}

func TestValidate_SettingsCheckedAgainstFamily(t *testing.T) {
	c := base("dps5005")
	c.Settings.Volts = ptr(5.0)
	c.Settings.Output = ptr(true)
	require.NoError(t, Validate(c))

	c.Settings.Brightness = ptr(6)
	err := Validate(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrValueOutOfRange)

	// The compact family has no clock.
	c = base("dps5005")
	c.Settings.SetClock = true
	err = Validate(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrUnknownField)

	c = base("rd6006")
	c.Settings.SetClock = true
	require.NoError(t, Validate(c))
}

func TestValidate_GroupSettings(t *testing.T) {
	c := base("rd6006")
	c.Settings.Group.Volts = ptr(12.0)
	assert.Error(t, Validate(c), "group settings without groups")

	c.Poll.Groups = []int{1}
	require.NoError(t, Validate(c))

	// cutoff_watts exists on the compact family only.
	c.Settings.Group.CutoffWatts = ptr(50.0)
	assert.ErrorIs(t, Validate(c), schema.ErrUnknownField)

	c.Device.Family = "dps5005"
	require.NoError(t, Validate(c))
}

func TestValidate_DoesNotMutate(t *testing.T) {
	c := base("  DPS5005 ")
	require.NoError(t, Validate(c))
	assert.Equal(t, "  DPS5005 ", c.Device.Family)
	assert.Zero(t, c.Device.Baud)
}

func TestNormalize_Defaults(t *testing.T) {
	c := base(" DPS5005 ")
	c.Poll.AllGroups = true
	require.NoError(t, Validate(c))
	Normalize(c)

	assert.Equal(t, "dps5005", c.Device.Family)
	assert.Equal(t, 9600, c.Device.Baud)
	require.NotNil(t, c.Device.UnitID)
	assert.Equal(t, uint8(1), *c.Device.UnitID)
	assert.Equal(t, DefaultTimeoutMs, c.Device.TimeoutMs)
	assert.Equal(t, DriverNative, c.Device.Driver)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, c.Poll.Groups)
	assert.Equal(t, DefaultIntervalMs, c.Poll.IntervalMs)
	require.NotNil(t, c.Poll.ContinueOnError)
	assert.True(t, *c.Poll.ContinueOnError)
	assert.Equal(t, DefaultTrendPoints, c.Output.TrendPoints)

	rd := base("rd6006")
	Normalize(rd)
	assert.Equal(t, 115200, rd.Device.Baud)
}

func TestNormalize_KeepsExplicitValues(t *testing.T) {
	c := base("rd6006")
	c.Device.Baud = 9600
	c.Device.UnitID = ptr(uint8(7))
	c.Poll.ContinueOnError = ptr(false)
	Normalize(c)

	assert.Equal(t, 9600, c.Device.Baud)
	assert.Equal(t, uint8(7), *c.Device.UnitID)
	assert.False(t, *c.Poll.ContinueOnError)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "psu.yaml")
	raw := `
device:
  family: rd6006
  port: /dev/ttyUSB1
  unit_id: 2
poll:
  groups: [1, 2]
  watch: true
settings:
  volts: 12.5
  group:
    amps: 1.5
output:
  json: true
metrics_addr: ":9105"
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "rd6006", c.Device.Family)
	require.NotNil(t, c.Device.UnitID)
	assert.Equal(t, uint8(2), *c.Device.UnitID)
	assert.Equal(t, []int{1, 2}, c.Poll.Groups)
	assert.True(t, c.Poll.Watch)
	require.NotNil(t, c.Settings.Volts)
	assert.Equal(t, 12.5, *c.Settings.Volts)
	require.NotNil(t, c.Settings.Group.Amps)
	assert.Equal(t, 1.5, *c.Settings.Group.Amps)
	assert.True(t, c.Output.JSON)
	assert.Equal(t, ":9105", c.MetricsAddr)
	require.NoError(t, Validate(c))
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("device:\n  famly: rd\n"))
	assert.Error(t, err)
}
