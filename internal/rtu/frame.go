// internal/rtu/frame.go
package rtu

import (
	"encoding/binary"
	"fmt"
)

const (
	FuncReadHoldingRegisters   uint8 = 0x03
	FuncWriteMultipleRegisters uint8 = 0x10

	exceptionFlag uint8 = 0x80

	// Protocol limits for a single PDU.
	MaxReadQuantity  = 125
	MaxWriteQuantity = 123
)

// buildReadRequest builds an RTU ADU for function 0x03.
//
//	unit(1) fc(1) start(2) count(2) crc(2)
func buildReadRequest(unit uint8, start, count uint16) []byte {
	f := make([]byte, 6, 8)
	f[0] = unit
	f[1] = FuncReadHoldingRegisters
	binary.BigEndian.PutUint16(f[2:4], start)
	binary.BigEndian.PutUint16(f[4:6], count)
	return AppendCRC(f)
}

// buildWriteRequest builds an RTU ADU for function 0x10.
//
//	unit(1) fc(1) start(2) count(2) byte_count(1) data(2n) crc(2)
func buildWriteRequest(unit uint8, start uint16, values []uint16) []byte {
	n := len(values)
	f := make([]byte, 7+2*n, 9+2*n)
	f[0] = unit
	f[1] = FuncWriteMultipleRegisters
	binary.BigEndian.PutUint16(f[2:4], start)
	binary.BigEndian.PutUint16(f[4:6], uint16(n))
	f[6] = byte(2 * n)
	for i, v := range values {
		binary.BigEndian.PutUint16(f[7+2*i:], v)
	}
	return AppendCRC(f)
}

// parseReadResponse validates a complete read response frame and unpacks its registers.
// Validation order: crc, echo, byte count.
func parseReadResponse(frame []byte, unit uint8, count uint16) ([]uint16, error) {
	if !ValidCRC(frame) {
		return nil, fmt.Errorf("%w: read response % x", ErrCRCMismatch, frame)
	}
	if frame[0] != unit || frame[1] != FuncReadHoldingRegisters {
		return nil, fmt.Errorf("%w: unit=%d fc=0x%02x want unit=%d fc=0x%02x",
			ErrUnexpectedResponse, frame[0], frame[1], unit, FuncReadHoldingRegisters)
	}
	byteCount := int(frame[2])
	if byteCount != int(count)*2 {
		return nil, fmt.Errorf("%w: byte count %d want %d", ErrUnexpectedLength, byteCount, int(count)*2)
	}
	data := frame[3 : 3+byteCount]
	out := make([]uint16, count)
	for i := range out {
		out[i] = binary.BigEndian.Uint16(data[2*i:])
	}
	return out, nil
}

// parseWriteResponse validates the 8-byte echo of a write request.
func parseWriteResponse(frame []byte, unit uint8, start, count uint16) error {
	if !ValidCRC(frame) {
		return fmt.Errorf("%w: write response % x", ErrCRCMismatch, frame)
	}
	if len(frame) != 8 {
		return fmt.Errorf("%w: write response is %d bytes", ErrUnexpectedLength, len(frame))
	}
	gotStart := binary.BigEndian.Uint16(frame[2:4])
	gotCount := binary.BigEndian.Uint16(frame[4:6])
	if frame[0] != unit || frame[1] != FuncWriteMultipleRegisters || gotStart != start || gotCount != count {
		return fmt.Errorf("%w: echo unit=%d fc=0x%02x start=%d count=%d want unit=%d start=%d count=%d",
			ErrUnexpectedResponse, frame[0], frame[1], gotStart, gotCount, unit, start, count)
	}
	return nil
}

// parseException validates a 5-byte exception frame and returns the error it carries.
func parseException(frame []byte, unit, fc uint8) error {
	if !ValidCRC(frame) {
		return fmt.Errorf("%w: exception response % x", ErrCRCMismatch, frame)
	}
	if frame[0] != unit || frame[1] != fc|exceptionFlag {
		return fmt.Errorf("%w: exception unit=%d fc=0x%02x", ErrUnexpectedResponse, frame[0], frame[1])
	}
	return &ExceptionError{Function: fc, Exception: Exception(frame[2])}
}
