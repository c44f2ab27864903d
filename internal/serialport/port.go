// internal/serialport/port.go
package serialport

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goburrow/serial"
)

// Config describes one physical serial line.
type Config struct {
	Path     string
	BaudRate int
	DataBits int
	StopBits int
	Parity   string

	// Timeout bounds a single driver-level read. ReadExact loops over it.
	Timeout time.Duration
}

// Port owns a serial line. One owner per process, no concurrent use.
type Port struct {
	rw   io.ReadWriteCloser
	path string
}

// Open opens the device at cfg.Path. Zero framing fields default to 8N1.
func Open(cfg Config) (*Port, error) {
	if cfg.Path == "" {
		return nil, &TransportError{Op: OpOpen, Err: errors.New("path required")}
	}
	if cfg.BaudRate <= 0 {
		return nil, &TransportError{Op: OpOpen, Path: cfg.Path, Err: fmt.Errorf("invalid baud rate %d", cfg.BaudRate)}
	}

	sc := &serial.Config{
		Address:  cfg.Path,
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		StopBits: cfg.StopBits,
		Parity:   cfg.Parity,
		Timeout:  cfg.Timeout,
	}
	if sc.DataBits == 0 {
		sc.DataBits = 8
	}
	if sc.StopBits == 0 {
		sc.StopBits = 1
	}
	if sc.Parity == "" {
		sc.Parity = "N"
	}
	if sc.Timeout <= 0 {
		sc.Timeout = 100 * time.Millisecond
	}

	p, err := serial.Open(sc)
	if err != nil {
		return nil, &TransportError{Op: OpOpen, Path: cfg.Path, Err: err}
	}
	return &Port{rw: p, path: cfg.Path}, nil
}

// New wraps an already open stream. Used for tests and non-tty devices.
func New(rw io.ReadWriteCloser, path string) *Port {
	return &Port{rw: rw, path: path}
}

// Path returns the device path the port was opened with.
func (p *Port) Path() string { return p.path }

// Write sends the whole frame.
func (p *Port) Write(b []byte) error {
	for len(b) > 0 {
		n, err := p.rw.Write(b)
		if err != nil {
			return &TransportError{Op: OpWrite, Path: p.path, Err: err}
		}
		b = b[n:]
	}
	return nil
}

// ReadExact reads exactly n bytes or fails with a timeout once the deadline passes.
// Driver-level idle timeouts are polled through until the deadline.
func (p *Port) ReadExact(n int, timeout time.Duration) ([]byte, error) {
	buf := make([]byte, n)
	deadline := time.Now().Add(timeout)

	got := 0
	for got < n {
		m, err := p.rw.Read(buf[got:])
		got += m
		if got >= n {
			break
		}

		switch {
		case err == nil:
		case errors.Is(err, serial.ErrTimeout):
		case errors.Is(err, io.EOF):
			// nothing more is coming on this stream
			return nil, &TransportError{Op: OpTimeout, Path: p.path, Want: n, Got: got, Err: ErrTimeout}
		default:
			return nil, &TransportError{Op: OpRead, Path: p.path, Want: n, Got: got, Err: err}
		}

		if !time.Now().Before(deadline) {
			return nil, &TransportError{Op: OpTimeout, Path: p.path, Want: n, Got: got, Err: ErrTimeout}
		}
	}
	return buf, nil
}

// Close releases the device.
func (p *Port) Close() error {
	if p == nil || p.rw == nil {
		return nil
	}
	return p.rw.Close()
}
