// internal/rtu/client.go
package rtu

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Transport is the half-duplex line the client talks over.
type Transport interface {
	Write(p []byte) error
	ReadExact(n int, timeout time.Duration) ([]byte, error)
}

// Config tunes a Client.
type Config struct {
	// Timeout bounds each blocking read of a response. Default 1s.
	Timeout time.Duration

	// Logger receives debug-level frame traces. Nil uses the standard logger.
	Logger logrus.FieldLogger
}

// Client is a Modbus RTU master. Transactions are serialized: one request,
// then a blocking read of its response. No retries.
type Client struct {
	mu      sync.Mutex
	tr      Transport
	timeout time.Duration
	log     logrus.FieldLogger
}

// New creates a client over tr.
func New(tr Transport, cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	return &Client{
		tr:      tr,
		timeout: cfg.Timeout,
		log:     cfg.Logger.WithField("component", "rtu"),
	}
}

// ReadRegisters reads count holding registers starting at start (function 0x03).
func (c *Client) ReadRegisters(start, count uint16, unit uint8) ([]uint16, error) {
	if count == 0 || count > MaxReadQuantity {
		return nil, fmt.Errorf("%w: read count %d", ErrInvalidQuantity, count)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.send(buildReadRequest(unit, start, count)); err != nil {
		return nil, err
	}

	hdr, err := c.tr.ReadExact(3, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("rtu: read header: %w", err)
	}
	if hdr[1]&exceptionFlag != 0 {
		return nil, c.readException(hdr, unit, FuncReadHoldingRegisters)
	}

	rest, err := c.tr.ReadExact(int(hdr[2])+2, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("rtu: read body: %w", err)
	}
	frame := append(hdr, rest...)
	c.trace("rx", frame)

	regs, err := parseReadResponse(frame, unit, count)
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// WriteRegisters writes values starting at start (function 0x10) and
// validates the echoed start and count.
func (c *Client) WriteRegisters(start uint16, values []uint16, unit uint8) error {
	if len(values) == 0 || len(values) > MaxWriteQuantity {
		return fmt.Errorf("%w: write count %d", ErrInvalidQuantity, len(values))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.send(buildWriteRequest(unit, start, values)); err != nil {
		return err
	}

	hdr, err := c.tr.ReadExact(3, c.timeout)
	if err != nil {
		return fmt.Errorf("rtu: read header: %w", err)
	}
	if hdr[1]&exceptionFlag != 0 {
		return c.readException(hdr, unit, FuncWriteMultipleRegisters)
	}

	rest, err := c.tr.ReadExact(5, c.timeout)
	if err != nil {
		return fmt.Errorf("rtu: read echo: %w", err)
	}
	frame := append(hdr, rest...)
	c.trace("rx", frame)

	return parseWriteResponse(frame, unit, start, uint16(len(values)))
}

func (c *Client) send(frame []byte) error {
	c.trace("tx", frame)
	if err := c.tr.Write(frame); err != nil {
		return fmt.Errorf("rtu: write request: %w", err)
	}
	return nil
}

// readException completes a 5-byte exception frame whose header was already read.
func (c *Client) readException(hdr []byte, unit, fc uint8) error {
	tail, err := c.tr.ReadExact(2, c.timeout)
	if err != nil {
		return fmt.Errorf("rtu: read exception crc: %w", err)
	}
	frame := append(hdr, tail...)
	c.trace("rx", frame)
	return parseException(frame, unit, fc)
}

func (c *Client) trace(dir string, frame []byte) {
	c.log.WithField("dir", dir).Debugf("% x", frame)
}
