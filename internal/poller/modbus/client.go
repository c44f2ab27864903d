// internal/poller/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/goburrow/modbus"
	"github.com/goburrow/serial"
	"github.com/sirupsen/logrus"

	"github.com/tamzrod/benchpsu/internal/rtu"
	"github.com/tamzrod/benchpsu/internal/serialport"
)

// Client implements poller.Client on top of the goburrow RTU handler.
// It serializes requests because it mutates SlaveId per transaction.
type Client struct {
	mu      sync.Mutex
	path    string
	handler *modbus.RTUClientHandler
	client  modbus.Client
	trace   io.Closer
}

// Config is minimal transport config.
type Config struct {
	Path     string
	BaudRate int
	Timeout  time.Duration

	// Logger receives goburrow's frame traces at debug level. Nil disables tracing.
	Logger logrus.FieldLogger
}

// New opens the serial line at 8N1 and returns a connected client.
func New(cfg Config) (*Client, error) {
	if cfg.Path == "" {
		return nil, errors.New("modbus client: path required")
	}

	h := modbus.NewRTUClientHandler(cfg.Path)
	h.BaudRate = cfg.BaudRate
	h.DataBits = 8
	h.Parity = "N"
	h.StopBits = 1
	h.Timeout = cfg.Timeout

	c := &Client{path: cfg.Path, handler: h}

	// logrus loggers and entries both expose WriterLevel.
	if lw, ok := cfg.Logger.(interface {
		WriterLevel(logrus.Level) *io.PipeWriter
	}); ok {
		w := lw.WriterLevel(logrus.DebugLevel)
		h.Logger = log.New(w, "", 0)
		c.trace = w
	}

	if err := h.Connect(); err != nil {
		c.closeTrace()
		return nil, &serialport.TransportError{Op: serialport.OpOpen, Path: cfg.Path, Err: err}
	}

	c.client = modbus.NewClient(h)
	return c, nil
}

// Close closes the serial line.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.handler.Close()
	c.closeTrace()
	return err
}

func (c *Client) closeTrace() {
	if c.trace != nil {
		c.trace.Close()
		c.trace = nil
	}
}

// ---- poller.Client interface ----

func (c *Client) ReadRegisters(start, count uint16, unit uint8) ([]uint16, error) {
	if count == 0 || count > rtu.MaxReadQuantity {
		return nil, fmt.Errorf("%w: read count %d", rtu.ErrInvalidQuantity, count)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.handler.SlaveId = unit
	raw, err := c.client.ReadHoldingRegisters(start, count)
	if err != nil {
		return nil, c.translate(err)
	}
	if len(raw) != int(count)*2 {
		return nil, fmt.Errorf("%w: got %d bytes for %d registers", rtu.ErrUnexpectedLength, len(raw), count)
	}
	return unpackRegisters(raw), nil
}

func (c *Client) WriteRegisters(start uint16, values []uint16, unit uint8) error {
	if len(values) == 0 || len(values) > rtu.MaxWriteQuantity {
		return fmt.Errorf("%w: write count %d", rtu.ErrInvalidQuantity, len(values))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.handler.SlaveId = unit
	_, err := c.client.WriteMultipleRegisters(start, uint16(len(values)), packRegisters(values))
	if err != nil {
		return c.translate(err)
	}
	return nil
}

// translate maps goburrow errors onto the rtu and serialport error types
// so both drivers classify the same way.
func (c *Client) translate(err error) error {
	var me *modbus.ModbusError
	if errors.As(err, &me) {
		return &rtu.ExceptionError{
			Function:  me.FunctionCode &^ 0x80,
			Exception: rtu.Exception(me.ExceptionCode),
		}
	}
	if errors.Is(err, serial.ErrTimeout) {
		return &serialport.TransportError{Op: serialport.OpTimeout, Path: c.path, Err: serialport.ErrTimeout}
	}
	msg := err.Error()
	for _, m := range frameErrors {
		if strings.HasPrefix(msg, m.prefix) {
			return fmt.Errorf("%w: %s", m.err, msg)
		}
	}
	return fmt.Errorf("modbus client: %w", err)
}

// goburrow reports frame validation failures as plain fmt errors.
var frameErrors = []struct {
	prefix string
	err    error
}{
	{"modbus: response crc", rtu.ErrCRCMismatch},
	{"modbus: response length", rtu.ErrUnexpectedLength},
	{"modbus: response data size", rtu.ErrUnexpectedLength},
	{"modbus: response data is empty", rtu.ErrUnexpectedLength},
	{"modbus: response address", rtu.ErrUnexpectedResponse},
	{"modbus: response quantity", rtu.ErrUnexpectedResponse},
	{"modbus: response slave id", rtu.ErrUnexpectedResponse},
	{"modbus: response function code", rtu.ErrUnexpectedResponse},
}

// ---- helpers (pure geometry) ----

func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
