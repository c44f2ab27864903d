// internal/console/console_test.go
package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/benchpsu/internal/poller"
	"github.com/tamzrod/benchpsu/internal/rtu"
	"github.com/tamzrod/benchpsu/internal/schema"
	"github.com/tamzrod/benchpsu/internal/status"
	"github.com/tamzrod/benchpsu/internal/writer"
)

func TestParse_Commands(t *testing.T) {
	cases := map[string]poller.Command{
		"on":                   poller.SetOutput{On: true},
		"OFF":                  poller.SetOutput{On: false},
		"t":                    poller.TogglePower{},
		"volts 12.5":           poller.SetVolts{Volts: 12.5},
		"a 0.25":               poller.SetAmps{Amps: 0.25},
		"up":                   poller.StepVolts{Delta: VoltStep},
		"down 0.5":             poller.StepVolts{Delta: -0.5},
		"aup":                  poller.StepAmps{Delta: AmpStep},
		"adown":                poller.StepAmps{Delta: -AmpStep},
		"write 0x08=100 9=0x1": poller.WriteRequest{Request: writer.Request{0x08: 100, 0x09: 1}},
	}

	for line, want := range cases {
		p, err := Parse(line)
		require.NoError(t, err, line)
		assert.Equal(t, ActionCommand, p.Action, line)
		assert.Equal(t, want, p.Command, line)
	}
}

func TestParse_Actions(t *testing.T) {
	cases := map[string]Action{
		"":       ActionNone,
		"   ":    ActionNone,
		"help":   ActionHelp,
		"?":      ActionHelp,
		"status": ActionStatus,
		"health": ActionHealth,
		"q":      ActionQuit,
		"exit":   ActionQuit,
	}
	for line, want := range cases {
		p, err := Parse(line)
		require.NoError(t, err, line)
		assert.Equal(t, want, p.Action, line)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, line := range []string{
		"volts",
		"volts abc",
		"amps 1 2",
		"write",
		"write 8",
		"write 0x10000=1",
		"write 8=70000",
		"frobnicate",
	} {
		_, err := Parse(line)
		assert.Error(t, err, line)
	}
}

type fakeSession struct {
	commands []poller.Command
	state    *schema.DeviceState
	err      error
}

func (f *fakeSession) Dispatch(cmd poller.Command) error {
	f.commands = append(f.commands, cmd)
	return f.err
}

func (f *fakeSession) RunOnce() (*schema.DeviceState, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.state, nil
}

func (f *fakeSession) Health() status.Snapshot {
	return status.Snapshot{Health: status.HealthOK, Cycles: 3}
}

func newConsole(sess Session, jsonOut bool) (*Console, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Console{sess: sess, out: &buf, json: jsonOut}, &buf
}

func TestExecute_DispatchesCommand(t *testing.T) {
	sess := &fakeSession{}
	c, out := newConsole(sess, false)

	assert.False(t, c.execute("volts 5"))
	assert.Equal(t, []poller.Command{poller.SetVolts{Volts: 5}}, sess.commands)
	assert.Equal(t, "OK\n", out.String())
}

func TestExecute_ReportsClassifiedError(t *testing.T) {
	sess := &fakeSession{err: &rtu.ExceptionError{Function: 0x10, Exception: rtu.ExIllegalDataValue}}
	c, out := newConsole(sess, false)

	assert.False(t, c.execute("on"))
	assert.Contains(t, out.String(), "Error (code 0x003)")
}

func TestExecute_Status(t *testing.T) {
	st := schema.Compact.Decode([]uint16{500, 1000, 0, 0, 0, 1200, 0, 0, 0, 0, 5, 5005, 16}, 0)
	st.CollectionTime = time.Unix(0, 0).UTC()

	c, out := newConsole(&fakeSession{state: st}, false)
	assert.False(t, c.execute("status"))
	assert.Contains(t, out.String(), "Setting:  5.00V,  1.000A (CV)")

	c, out = newConsole(&fakeSession{state: st}, true)
	assert.False(t, c.execute("s"))
	assert.Contains(t, out.String(), `"collection_time":0`)
}

func TestExecute_StatusError(t *testing.T) {
	c, out := newConsole(&fakeSession{err: errors.New("boom")}, false)
	assert.False(t, c.execute("status"))
	assert.Contains(t, out.String(), "Error (code 0x001): boom")
}

func TestExecute_HealthAndQuit(t *testing.T) {
	c, out := newConsole(&fakeSession{}, false)
	assert.False(t, c.execute("health"))
	assert.Contains(t, out.String(), "health=1 cycles=3")

	assert.True(t, c.execute("quit"))
	assert.False(t, c.execute("bogus"))
	assert.Contains(t, out.String(), "unknown command: bogus")
}

// scriptedReader returns queued lines, then blocks until closed.
type scriptedReader struct {
	lines  chan string
	closed chan struct{}
	once   sync.Once
}

func newScriptedReader(lines ...string) *scriptedReader {
	r := &scriptedReader{lines: make(chan string, len(lines)), closed: make(chan struct{})}
	for _, l := range lines {
		r.lines <- l
	}
	return r
}

func (r *scriptedReader) Readline() (string, error) {
	select {
	case l := <-r.lines:
		return l, nil
	case <-r.closed:
		return "", io.EOF
	}
}

func (r *scriptedReader) Close() error {
	r.once.Do(func() { close(r.closed) })
	return nil
}

func runConsole(t *testing.T, c *Console, ctx context.Context, cancel context.CancelFunc) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		c.Run(ctx, cancel)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("console did not exit")
	}
}

func TestRun_CancelUnblocksPrompt(t *testing.T) {
	sess := &fakeSession{}
	c, _ := newConsole(sess, false)
	r := newScriptedReader()
	c.rl = r

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)
	runConsole(t, c, ctx, cancel)

	select {
	case <-r.closed:
	default:
		t.Fatal("prompt not closed")
	}
	assert.Empty(t, sess.commands)
}

func TestRun_QuitCancels(t *testing.T) {
	sess := &fakeSession{}
	c, out := newConsole(sess, false)
	c.rl = newScriptedReader("on", "quit")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runConsole(t, c, ctx, cancel)

	assert.Error(t, ctx.Err())
	assert.Equal(t, []poller.Command{poller.SetOutput{On: true}}, sess.commands)
	assert.Contains(t, out.String(), "Exiting...")
}
