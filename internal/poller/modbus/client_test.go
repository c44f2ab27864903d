// internal/poller/modbus/client_test.go
package modbus

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/goburrow/modbus"
	"github.com/goburrow/serial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/benchpsu/internal/rtu"
	"github.com/tamzrod/benchpsu/internal/serialport"
	"github.com/tamzrod/benchpsu/internal/status"
)

func TestPackUnpackRegisters(t *testing.T) {
	regs := []uint16{0x0001, 0xABCD, 0xFF00}
	raw := packRegisters(regs)
	assert.Equal(t, []byte{0x00, 0x01, 0xAB, 0xCD, 0xFF, 0x00}, raw)
	assert.Equal(t, regs, unpackRegisters(raw))
}

func TestTranslate_Exception(t *testing.T) {
	c := &Client{path: "/dev/ttyUSB0"}
	err := c.translate(&modbus.ModbusError{FunctionCode: 0x83, ExceptionCode: 2})

	var ex *rtu.ExceptionError
	require.True(t, errors.As(err, &ex))
	assert.Equal(t, uint8(0x03), ex.Function)
	assert.Equal(t, rtu.ExIllegalDataAddress, ex.Exception)
	assert.Equal(t, uint16(2), status.ErrorCode(err))
}

func TestTranslate_Timeout(t *testing.T) {
	c := &Client{path: "/dev/ttyUSB0"}
	err := c.translate(serial.ErrTimeout)
	assert.ErrorIs(t, err, serialport.ErrTimeout)
	assert.Equal(t, status.CodeTimeout, status.ErrorCode(err))
}

func TestTranslate_FrameErrors(t *testing.T) {
	c := &Client{path: "/dev/ttyUSB0"}
	cases := []struct {
		name string
		msg  string
		want error
		code uint16
	}{
		{"crc", "modbus: response crc '4660' does not match expected '22136'", rtu.ErrCRCMismatch, status.CodeCRCMismatch},
		{"address echo", "modbus: response address '5' does not match request '0'", rtu.ErrUnexpectedResponse, status.CodeUnexpectedResponse},
		{"quantity echo", "modbus: response quantity '2' does not match request '3'", rtu.ErrUnexpectedResponse, status.CodeUnexpectedResponse},
		{"slave id", "modbus: response slave id '2' does not match request '1'", rtu.ErrUnexpectedResponse, status.CodeUnexpectedResponse},
		{"data size", "modbus: response data size '4' does not match count '6'", rtu.ErrUnexpectedLength, status.CodeUnexpectedLength},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := c.translate(fmt.Errorf("%s", tc.msg))
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, tc.code, status.ErrorCode(err))
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestTranslate_Other(t *testing.T) {
	c := &Client{path: "/dev/ttyUSB0"}
	cause := errors.New("serial: port busy")
	err := c.translate(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, status.CodeGeneric, status.ErrorCode(err))
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	_, err = New(Config{Path: filepath.Join(t.TempDir(), "missing-tty"), BaudRate: 9600})
	var te *serialport.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, serialport.OpOpen, te.Op)
}

func TestQuantityLimits(t *testing.T) {
	c := &Client{}
	_, err := c.ReadRegisters(0, 0, 1)
	assert.ErrorIs(t, err, rtu.ErrInvalidQuantity)
	_, err = c.ReadRegisters(0, rtu.MaxReadQuantity+1, 1)
	assert.ErrorIs(t, err, rtu.ErrInvalidQuantity)
	assert.ErrorIs(t, c.WriteRegisters(0, nil, 1), rtu.ErrInvalidQuantity)
}
