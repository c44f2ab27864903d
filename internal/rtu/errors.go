// internal/rtu/errors.go
package rtu

import (
	"errors"
	"fmt"
)

var (
	ErrCRCMismatch        = errors.New("rtu: crc mismatch")
	ErrUnexpectedLength   = errors.New("rtu: unexpected length")
	ErrUnexpectedResponse = errors.New("rtu: unexpected response")
	ErrInvalidQuantity    = errors.New("rtu: invalid quantity")
)

// Exception is a Modbus exception code.
type Exception uint8

const (
	ExIllegalFunction Exception = 1 + iota
	ExIllegalDataAddress
	ExIllegalDataValue
	ExSlaveDeviceFailure
	ExAcknowledge
	ExSlaveDeviceBusy
	_
	ExMemoryParityError
	_
	ExGatewayPathUnavailable
	ExGatewayTargetFailedToRespond
)

func (x Exception) String() string {
	switch x {
	case ExIllegalFunction:
		return "illegal function"
	case ExIllegalDataAddress:
		return "illegal data address"
	case ExIllegalDataValue:
		return "illegal data value"
	case ExSlaveDeviceFailure:
		return "slave device failure"
	case ExAcknowledge:
		return "acknowledge"
	case ExSlaveDeviceBusy:
		return "slave device busy"
	case ExMemoryParityError:
		return "memory parity error"
	case ExGatewayPathUnavailable:
		return "gateway path unavailable"
	case ExGatewayTargetFailedToRespond:
		return "gateway target device failed to respond"
	}
	return fmt.Sprintf("unknown exception 0x%02x", uint8(x))
}

// ExceptionError is returned when the device answers with the function code high bit set.
type ExceptionError struct {
	Function  uint8 // request function code, without the 0x80 flag
	Exception Exception
}

func (e *ExceptionError) Error() string {
	return fmt.Sprintf("rtu: exception response fc=0x%02x code=%d (%s)", e.Function, uint8(e.Exception), e.Exception)
}

// Code exposes the raw exception code.
func (e *ExceptionError) Code() uint16 { return uint16(e.Exception) }
