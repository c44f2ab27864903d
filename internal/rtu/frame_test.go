// internal/rtu/frame_test.go
package rtu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReadRequest(t *testing.T) {
	assert.Equal(t,
		[]byte{0x01, 0x03, 0x00, 0x00, 0x00, 0x0A, 0xC5, 0xCD},
		buildReadRequest(1, 0x0000, 10))
	assert.Equal(t,
		[]byte{0x11, 0x03, 0x00, 0x6B, 0x00, 0x03, 0x76, 0x87},
		buildReadRequest(0x11, 0x006B, 3))
}

func TestBuildWriteRequest(t *testing.T) {
	assert.Equal(t,
		[]byte{0x11, 0x10, 0x00, 0x01, 0x00, 0x02, 0x04, 0x00, 0x0A, 0x01, 0x02, 0xC6, 0xF0},
		buildWriteRequest(0x11, 0x0001, []uint16{0x000A, 0x0102}))
}

func TestParseReadResponse(t *testing.T) {
	frame := AppendCRC([]byte{0x01, 0x03, 0x04, 0x04, 0xB0, 0x01, 0xF4})

	regs, err := parseReadResponse(frame, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint16{1200, 500}, regs)

	_, err = parseReadResponse(frame, 2, 2)
	assert.ErrorIs(t, err, ErrUnexpectedResponse)

	_, err = parseReadResponse(frame, 1, 3)
	assert.ErrorIs(t, err, ErrUnexpectedLength)
}

func TestParseWriteResponse(t *testing.T) {
	echo := AppendCRC([]byte{0x01, 0x10, 0x00, 0x08, 0x00, 0x02})

	assert.NoError(t, parseWriteResponse(echo, 1, 0x08, 2))
	assert.ErrorIs(t, parseWriteResponse(echo, 1, 0x09, 2), ErrUnexpectedResponse)
	assert.ErrorIs(t, parseWriteResponse(echo, 1, 0x08, 3), ErrUnexpectedResponse)

	echo[6] ^= 0xFF
	assert.ErrorIs(t, parseWriteResponse(echo, 1, 0x08, 2), ErrCRCMismatch)
}

func TestParseException(t *testing.T) {
	frame := AppendCRC([]byte{0x01, 0x83, 0x02})

	err := parseException(frame, 1, FuncReadHoldingRegisters)
	var ex *ExceptionError
	require.ErrorAs(t, err, &ex)
	assert.Equal(t, ExIllegalDataAddress, ex.Exception)
	assert.Equal(t, uint16(2), ex.Code())
	assert.Contains(t, ex.Error(), "illegal data address")
}
