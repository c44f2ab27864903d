// internal/console/parse.go
package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tamzrod/benchpsu/internal/poller"
	"github.com/tamzrod/benchpsu/internal/writer"
)

// Step sizes used by up/down when no amount is given.
const (
	VoltStep = 0.10
	AmpStep  = 0.10
)

// Action is what one console line asks for.
type Action int

const (
	ActionNone Action = iota
	ActionCommand
	ActionHelp
	ActionStatus
	ActionHealth
	ActionQuit
)

// Parsed is one parsed console line. Command is set for ActionCommand only.
type Parsed struct {
	Action  Action
	Command poller.Command
}

// Parse turns one input line into an action.
func Parse(line string) (Parsed, error) {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return Parsed{Action: ActionNone}, nil
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	command := func(c poller.Command) (Parsed, error) {
		return Parsed{Action: ActionCommand, Command: c}, nil
	}

	switch cmd {
	case "help", "?":
		return Parsed{Action: ActionHelp}, nil

	case "status", "s":
		return Parsed{Action: ActionStatus}, nil

	case "health":
		return Parsed{Action: ActionHealth}, nil

	case "quit", "exit", "q":
		return Parsed{Action: ActionQuit}, nil

	case "on":
		return command(poller.SetOutput{On: true})

	case "off":
		return command(poller.SetOutput{On: false})

	case "toggle", "t":
		return command(poller.TogglePower{})

	case "volts", "v":
		v, err := oneFloat(cmd, args)
		if err != nil {
			return Parsed{}, err
		}
		return command(poller.SetVolts{Volts: v})

	case "amps", "a":
		v, err := oneFloat(cmd, args)
		if err != nil {
			return Parsed{}, err
		}
		return command(poller.SetAmps{Amps: v})

	case "up", "down", "aup", "adown":
		step := VoltStep
		if cmd == "aup" || cmd == "adown" {
			step = AmpStep
		}
		if len(args) > 0 {
			v, err := oneFloat(cmd, args)
			if err != nil {
				return Parsed{}, err
			}
			step = v
		}
		if cmd == "down" || cmd == "adown" {
			step = -step
		}
		if cmd == "up" || cmd == "down" {
			return command(poller.StepVolts{Delta: step})
		}
		return command(poller.StepAmps{Delta: step})

	case "write", "w":
		req, err := parseWrites(args)
		if err != nil {
			return Parsed{}, err
		}
		return command(poller.WriteRequest{Request: req})
	}

	return Parsed{}, fmt.Errorf("unknown command: %s (type 'help' for commands)", cmd)
}

func oneFloat(cmd string, args []string) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s <value>", cmd)
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid value %q", cmd, args[0])
	}
	return v, nil
}

// parseWrites reads addr=value pairs. Both sides accept 0x prefixes.
func parseWrites(args []string) (writer.Request, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("usage: write <addr>=<raw> [<addr>=<raw> ...]")
	}
	req := make(writer.Request, len(args))
	for _, a := range args {
		addr, val, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("write: expected addr=value, got %q", a)
		}
		ad, err := strconv.ParseUint(addr, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("write: invalid address %q", addr)
		}
		v, err := strconv.ParseUint(val, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("write: invalid value %q", val)
		}
		req[uint16(ad)] = uint16(v)
	}
	return req, nil
}
