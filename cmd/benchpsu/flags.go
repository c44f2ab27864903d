// cmd/benchpsu/flags.go
package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tamzrod/benchpsu/internal/config"
	"github.com/tamzrod/benchpsu/internal/schema"
)

// options holds flags that are not part of the config file, plus the
// overrides to apply on top of it.
type options struct {
	configPath string
	logLevel   string
	logJSON    bool
	console    bool

	overrides []func(*config.Config)
}

func parseFlags(fs *flag.FlagSet, args []string) (*options, error) {
	o := &options{}
	set := func(fn func(*config.Config)) { o.overrides = append(o.overrides, fn) }

	fs.StringVar(&o.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&o.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fs.BoolVar(&o.logJSON, "log-json", false, "Log as JSON")
	fs.BoolVar(&o.console, "console", false, "Interactive command console")

	// ---- device ----
	fs.Func("device", "Device model: "+strings.Join(schema.SupportedDevices(), ", "), func(s string) error {
		set(func(c *config.Config) { c.Device.Family = s })
		return nil
	})
	fs.Func("port", "Serial device path", func(s string) error {
		set(func(c *config.Config) { c.Device.Port = s })
		return nil
	})
	fs.Func("baud", "Baud rate (default per device family)", intFlag(func(c *config.Config, v int) { c.Device.Baud = v }, set))
	fs.Func("unit", "Modbus unit ID", func(s string) error {
		v, err := strconv.ParseUint(s, 0, 8)
		if err != nil {
			return err
		}
		unit := uint8(v)
		set(func(c *config.Config) { c.Device.UnitID = &unit })
		return nil
	})
	fs.Func("timeout", "Response timeout (e.g. 500ms)", durationFlag(func(c *config.Config, ms int) { c.Device.TimeoutMs = ms }, set))
	fs.Func("driver", "Modbus driver: native or goburrow", func(s string) error {
		set(func(c *config.Config) { c.Device.Driver = s })
		return nil
	})

	// ---- poll ----
	var groups []int
	fs.Func("group", "Group to read and configure (repeatable, or comma-separated)", func(s string) error {
		for _, part := range strings.Split(s, ",") {
			g, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return fmt.Errorf("invalid group %q", part)
			}
			groups = append(groups, g)
		}
		return nil
	})
	fs.BoolFunc("all-groups", "Read and configure all groups", func(s string) error {
		return boolSet(s, func(c *config.Config, v bool) { c.Poll.AllGroups = v }, set)
	})
	fs.BoolFunc("watch", "Poll continuously", func(s string) error {
		return boolSet(s, func(c *config.Config, v bool) { c.Poll.Watch = v }, set)
	})
	fs.Func("interval", "Watch interval (e.g. 5s)", durationFlag(func(c *config.Config, ms int) { c.Poll.IntervalMs = ms }, set))
	fs.BoolFunc("stop-on-error", "End watch mode on the first failed cycle", func(s string) error {
		return boolSet(s, func(c *config.Config, v bool) {
			cont := !v
			c.Poll.ContinueOnError = &cont
		}, set)
	})

	// ---- output ----
	fs.BoolFunc("json", "Output JSON", func(s string) error {
		return boolSet(s, func(c *config.Config, v bool) { c.Output.JSON = v }, set)
	})
	fs.Func("trend-points", "Values averaged for watch trend arrows", intFlag(func(c *config.Config, v int) { c.Output.TrendPoints = v }, set))
	fs.Func("metrics-addr", "Serve Prometheus metrics on this address", func(s string) error {
		set(func(c *config.Config) { c.MetricsAddr = s })
		return nil
	})

	// ---- settings ----
	fs.Func("set-volts", "Set output voltage (V)", floatFlag(func(c *config.Config, v *float64) { c.Settings.Volts = v }, set))
	fs.Func("set-amps", "Set output current (A)", floatFlag(func(c *config.Config, v *float64) { c.Settings.Amps = v }, set))
	fs.Func("set-output-state", "Set output state (on/off)", onOffFlag(func(c *config.Config, v *bool) { c.Settings.Output = v }, set))
	fs.Func("set-key-lock", "Set key lock (on/off)", onOffFlag(func(c *config.Config, v *bool) { c.Settings.KeyLock = v }, set))
	fs.Func("set-brightness", "Set backlight brightness (0-5)", intPtrFlag(func(c *config.Config, v *int) { c.Settings.Brightness = v }, set))
	fs.Func("load-group", "Load settings from group", intPtrFlag(func(c *config.Config, v *int) { c.Settings.LoadGroup = v }, set))
	fs.BoolFunc("set-clock", "Set the device clock from the local time", func(s string) error {
		return boolSet(s, func(c *config.Config, v bool) { c.Settings.SetClock = v }, set)
	})

	fs.Func("set-group-volts", "Set group voltage (V)", floatFlag(func(c *config.Config, v *float64) { c.Settings.Group.Volts = v }, set))
	fs.Func("set-group-amps", "Set group current (A)", floatFlag(func(c *config.Config, v *float64) { c.Settings.Group.Amps = v }, set))
	fs.Func("set-group-cutoff-volts", "Set group cutoff voltage (V)", floatFlag(func(c *config.Config, v *float64) { c.Settings.Group.CutoffVolts = v }, set))
	fs.Func("set-group-cutoff-amps", "Set group cutoff current (A)", floatFlag(func(c *config.Config, v *float64) { c.Settings.Group.CutoffAmps = v }, set))
	fs.Func("set-group-cutoff-watts", "Set group cutoff power (W)", floatFlag(func(c *config.Config, v *float64) { c.Settings.Group.CutoffWatts = v }, set))
	fs.Func("set-group-brightness", "Set group brightness (0-5)", intPtrFlag(func(c *config.Config, v *int) { c.Settings.Group.Brightness = v }, set))
	fs.Func("set-group-maintain-output", "Set group maintain output (on/off)", onOffFlag(func(c *config.Config, v *bool) { c.Settings.Group.MaintainOutput = v }, set))
	fs.Func("set-group-poweron-output", "Set group output on power-on (on/off)", onOffFlag(func(c *config.Config, v *bool) { c.Settings.Group.PowerOnOutput = v }, set))

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if groups != nil {
		set(func(c *config.Config) { c.Poll.Groups = groups })
	}
	return o, nil
}

type setter func(func(*config.Config))

func intFlag(apply func(*config.Config, int), set setter) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		set(func(c *config.Config) { apply(c, v) })
		return nil
	}
}

func intPtrFlag(apply func(*config.Config, *int), set setter) func(string) error {
	return intFlag(func(c *config.Config, v int) { apply(c, &v) }, set)
}

func floatFlag(apply func(*config.Config, *float64), set setter) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		set(func(c *config.Config) { apply(c, &v) })
		return nil
	}
}

func durationFlag(apply func(*config.Config, int), set setter) func(string) error {
	return func(s string) error {
		d, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		if d < time.Millisecond {
			return fmt.Errorf("duration %s below 1ms", d)
		}
		set(func(c *config.Config) { apply(c, int(d/time.Millisecond)) })
		return nil
	}
}

func onOffFlag(apply func(*config.Config, *bool), set setter) func(string) error {
	return func(s string) error {
		v, err := parseOnOff(s)
		if err != nil {
			return err
		}
		set(func(c *config.Config) { apply(c, &v) })
		return nil
	}
}

func boolSet(s string, apply func(*config.Config, bool), set setter) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	set(func(c *config.Config) { apply(c, v) })
	return nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
