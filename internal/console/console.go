// internal/console/console.go

// Package console provides the interactive command prompt for a session.
package console

import (
	"context"
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"

	"github.com/tamzrod/benchpsu/internal/poller"
	"github.com/tamzrod/benchpsu/internal/report"
	"github.com/tamzrod/benchpsu/internal/schema"
	"github.com/tamzrod/benchpsu/internal/status"
)

// Session is the part of poller.Session the console drives.
type Session interface {
	Dispatch(cmd poller.Command) error
	RunOnce() (*schema.DeviceState, error)
	Health() status.Snapshot
}

// lineReader is satisfied by *readline.Instance.
type lineReader interface {
	Readline() (string, error)
	Close() error
}

// Console handles interactive mode.
type Console struct {
	sess Session
	rl   lineReader
	out  io.Writer
	log  logrus.FieldLogger
	json bool
}

// New creates a console over sess. Status output is JSON when jsonOut is set.
func New(sess Session, log logrus.FieldLogger, jsonOut bool) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "psu> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("console: failed to create readline: %w", err)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Console{sess: sess, rl: rl, out: rl.Stdout(), log: log, json: jsonOut}, nil
}

// Stdout returns a writer that coordinates with the prompt.
// Use it for log output to avoid interfering with input.
func (c *Console) Stdout() io.Writer {
	return c.out
}

// Run reads commands until quit, EOF or ctx is done. cancel is called on exit.
// A done ctx closes the prompt so a pending Readline returns.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
		case <-stop:
		}
		c.rl.Close()
	}()

	c.printHelp()

	for {
		line, err := c.rl.Readline()
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}

		if quit := c.execute(line); quit {
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}
	}
}

// execute runs one line and reports whether the console should exit.
func (c *Console) execute(line string) bool {
	p, err := Parse(line)
	if err != nil {
		fmt.Fprintln(c.out, err)
		return false
	}

	switch p.Action {
	case ActionHelp:
		c.printHelp()

	case ActionStatus:
		st, err := c.sess.RunOnce()
		if err != nil {
			c.printError(err)
			return false
		}
		if c.json {
			err = report.JSON(c.out, st)
		} else {
			err = report.Text(c.out, st, nil)
		}
		if err != nil {
			c.log.WithError(err).Warn("Failed to render status")
		}

	case ActionHealth:
		h := c.sess.Health()
		fmt.Fprintf(c.out, "health=%d cycles=%d failures=%d last_error_code=0x%03x seconds_in_error=%d\n",
			h.Health, h.Cycles, h.Failures, h.LastErrorCode, h.SecondsInError)

	case ActionCommand:
		if err := c.sess.Dispatch(p.Command); err != nil {
			c.printError(err)
			return false
		}
		fmt.Fprintln(c.out, "OK")

	case ActionQuit:
		return true
	}
	return false
}

func (c *Console) printError(err error) {
	fmt.Fprintf(c.out, "Error (code 0x%03x): %v\n", status.ErrorCode(err), err)
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
Power Supply Commands:
  Reading:
    status             - Poll the device once and print its state
    health             - Show poll health counters

  Output:
    on | off           - Switch the output
    toggle             - Flip the output state

  Setpoints:
    volts <V>          - Set the voltage setpoint
    amps <A>           - Set the current setpoint
    up | down [V]      - Step the voltage setpoint (output off only)
    aup | adown [A]    - Step the current setpoint (output off only)
    write <a>=<v> ...  - Write raw register values

  Other:
    help               - Show this help
    quit               - Exit`)
}
