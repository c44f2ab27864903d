// internal/poller/builder.go
package poller

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	cfg "github.com/tamzrod/benchpsu/internal/config"
	pmodbus "github.com/tamzrod/benchpsu/internal/poller/modbus"
	"github.com/tamzrod/benchpsu/internal/rtu"
	"github.com/tamzrod/benchpsu/internal/schema"
	"github.com/tamzrod/benchpsu/internal/serialport"
)

// Build opens the serial line named by a validated, normalized config and
// wires a Session over the selected driver. The returned closer releases the line.
func Build(c *cfg.Config, log logrus.FieldLogger) (*Session, func() error, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	family, err := schema.ParseFamily(c.Device.Family)
	if err != nil {
		return nil, nil, err
	}
	timeout := time.Duration(c.Device.TimeoutMs) * time.Millisecond

	var (
		client Client
		closer func() error
	)

	switch c.Device.Driver {
	case cfg.DriverGoburrow:
		mc, err := pmodbus.New(pmodbus.Config{
			Path:     c.Device.Port,
			BaudRate: c.Device.Baud,
			Timeout:  timeout,
			Logger:   log,
		})
		if err != nil {
			return nil, nil, err
		}
		client, closer = mc, mc.Close

	case cfg.DriverNative, "":
		port, err := serialport.Open(serialport.Config{
			Path:     c.Device.Port,
			BaudRate: c.Device.Baud,
		})
		if err != nil {
			return nil, nil, err
		}
		client = rtu.New(port, rtu.Config{Timeout: timeout, Logger: log})
		closer = port.Close

	default:
		return nil, nil, fmt.Errorf("poller: unknown driver %q", c.Device.Driver)
	}

	unit := uint8(cfg.DefaultUnitID)
	if c.Device.UnitID != nil {
		unit = *c.Device.UnitID
	}
	continueOnError := true
	if c.Poll.ContinueOnError != nil {
		continueOnError = *c.Poll.ContinueOnError
	}

	s, err := New(
		Config{
			Family:          family,
			UnitID:          unit,
			Groups:          c.Poll.Groups,
			Interval:        time.Duration(c.Poll.IntervalMs) * time.Millisecond,
			ContinueOnError: continueOnError,
		},
		client,
		log,
	)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}

	return s, closer, nil
}

// SettingsFromConfig maps the settings section of a config file.
func SettingsFromConfig(sc cfg.SettingsConfig) Settings {
	return Settings{
		Volts:      sc.Volts,
		Amps:       sc.Amps,
		Output:     sc.Output,
		KeyLock:    sc.KeyLock,
		Brightness: sc.Brightness,
		LoadGroup:  sc.LoadGroup,
		SetClock:   sc.SetClock,
		Group: GroupSettings{
			Volts:          sc.Group.Volts,
			Amps:           sc.Group.Amps,
			CutoffVolts:    sc.Group.CutoffVolts,
			CutoffAmps:     sc.Group.CutoffAmps,
			CutoffWatts:    sc.Group.CutoffWatts,
			Brightness:     sc.Group.Brightness,
			MaintainOutput: sc.Group.MaintainOutput,
			PowerOnOutput:  sc.Group.PowerOnOutput,
		},
	}
}
