// internal/poller/commands.go
package poller

import (
	"fmt"

	"github.com/tamzrod/benchpsu/internal/schema"
	"github.com/tamzrod/benchpsu/internal/writer"
)

// Command is an interactive action handled by Session.Dispatch.
type Command interface {
	command()
}

// SetOutput switches the output on or off.
type SetOutput struct{ On bool }

// SetVolts changes the voltage setpoint.
type SetVolts struct{ Volts float64 }

// SetAmps changes the current setpoint.
type SetAmps struct{ Amps float64 }

// TogglePower reads the output state and flips it.
type TogglePower struct{}

// StepVolts nudges the voltage setpoint. Ignored while the output is on.
type StepVolts struct{ Delta float64 }

// StepAmps nudges the current setpoint. Ignored while the output is on.
type StepAmps struct{ Delta float64 }

// WriteRequest writes a prepared request as-is.
type WriteRequest struct{ Request writer.Request }

func (SetOutput) command()    {}
func (SetVolts) command()     {}
func (SetAmps) command()      {}
func (TogglePower) command()  {}
func (StepVolts) command()    {}
func (StepAmps) command()     {}
func (WriteRequest) command() {}

// Dispatch executes one command. Read-then-decide commands read the primary
// block first; those reads do not count as poll cycles.
func (s *Session) Dispatch(cmd Command) error {
	switch c := cmd.(type) {
	case SetOutput:
		return s.set(schema.FieldOutputState, boolFloat(c.On))

	case SetVolts:
		return s.set(schema.FieldSettingVolts, c.Volts)

	case SetAmps:
		return s.set(schema.FieldSettingAmps, c.Amps)

	case TogglePower:
		st, err := s.readState(nil)
		if err != nil {
			return err
		}
		return s.set(schema.FieldOutputState, boolFloat(!st.OutputState))

	case StepVolts:
		return s.step(schema.FieldSettingVolts, c.Delta, func(st *schema.DeviceState) float64 { return st.SettingVolts })

	case StepAmps:
		return s.step(schema.FieldSettingAmps, c.Delta, func(st *schema.DeviceState) float64 { return st.SettingAmps })

	case WriteRequest:
		return s.Apply(c.Request)
	}
	return fmt.Errorf("poller: unsupported command %T", cmd)
}

func (s *Session) set(field string, value float64) error {
	w, err := s.cfg.Family.Encode(field, value)
	if err != nil {
		return err
	}
	s.log.Infof("Setting %q to %v", w.Description, w.Value)
	return s.Apply(writer.BuildRequest(w))
}

func (s *Session) step(field string, delta float64, current func(*schema.DeviceState) float64) error {
	st, err := s.readState(nil)
	if err != nil {
		return err
	}
	if st.OutputState {
		s.log.WithField("field", field).Debug("Output is on, step ignored")
		return nil
	}
	return s.set(field, current(st)+delta)
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
