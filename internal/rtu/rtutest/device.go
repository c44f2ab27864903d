// internal/rtu/rtutest/device.go

// Package rtutest provides an in-memory Modbus RTU slave that satisfies the
// rtu.Transport contract, for tests that need real frames on the wire.
package rtutest

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/tamzrod/benchpsu/internal/rtu"
	"github.com/tamzrod/benchpsu/internal/serialport"
)

// Device is a simulated slave holding 16-bit registers.
type Device struct {
	mu sync.Mutex

	Unit      uint8
	Registers map[uint16]uint16

	// Fault injection, applied to every response while set.
	Exception      uint8 // answer with this exception code
	CorruptCRC     bool  // flip the last CRC byte
	Silent         bool  // never answer
	ShortByteCount bool  // report one register less than requested

	// Requests holds every request frame received, in order.
	Requests [][]byte
	// Writes holds every accepted function 0x10 request as base + values.
	Writes []Write

	pending []byte
}

// Write is one accepted write-multiple-registers request.
type Write struct {
	Base   uint16
	Values []uint16
}

// New returns a device answering on unit with all registers zero.
func New(unit uint8) *Device {
	return &Device{Unit: unit, Registers: make(map[uint16]uint16)}
}

// Set loads consecutive registers starting at base.
func (d *Device) Set(base uint16, values ...uint16) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, v := range values {
		d.Registers[base+uint16(i)] = v
	}
}

// Get returns the current value of one register.
func (d *Device) Get(addr uint16) uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Registers[addr]
}

// Write receives one request frame and queues the response.
func (d *Device) Write(p []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	req := append([]byte(nil), p...)
	d.Requests = append(d.Requests, req)
	d.pending = nil

	if d.Silent || !rtu.ValidCRC(req) || len(req) < 8 || req[0] != d.Unit {
		return nil
	}

	var resp []byte
	fc := req[1]
	switch {
	case d.Exception != 0:
		resp = []byte{d.Unit, fc | 0x80, d.Exception}
	case fc == rtu.FuncReadHoldingRegisters:
		resp = d.read(req)
	case fc == rtu.FuncWriteMultipleRegisters:
		resp = d.write(req)
	default:
		resp = []byte{d.Unit, fc | 0x80, uint8(rtu.ExIllegalFunction)}
	}

	resp = rtu.AppendCRC(resp)
	if d.CorruptCRC {
		resp[len(resp)-1] ^= 0xFF
	}
	d.pending = resp
	return nil
}

// ReadExact pops n bytes of the queued response.
func (d *Device) ReadExact(n int, timeout time.Duration) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.pending) < n {
		got := len(d.pending)
		d.pending = nil
		return nil, &serialport.TransportError{Op: serialport.OpTimeout, Path: "rtutest", Want: n, Got: got, Err: serialport.ErrTimeout}
	}
	out := d.pending[:n:n]
	d.pending = d.pending[n:]
	return out, nil
}

func (d *Device) read(req []byte) []byte {
	start := binary.BigEndian.Uint16(req[2:4])
	count := binary.BigEndian.Uint16(req[4:6])
	if d.ShortByteCount && count > 0 {
		count--
	}

	resp := make([]byte, 3+2*int(count))
	resp[0] = d.Unit
	resp[1] = rtu.FuncReadHoldingRegisters
	resp[2] = byte(2 * count)
	for i := uint16(0); i < count; i++ {
		binary.BigEndian.PutUint16(resp[3+2*i:], d.Registers[start+i])
	}
	return resp
}

func (d *Device) write(req []byte) []byte {
	start := binary.BigEndian.Uint16(req[2:4])
	count := binary.BigEndian.Uint16(req[4:6])
	if len(req) != 9+2*int(count) || int(req[6]) != 2*int(count) {
		return []byte{d.Unit, rtu.FuncWriteMultipleRegisters | 0x80, uint8(rtu.ExIllegalDataValue)}
	}

	w := Write{Base: start, Values: make([]uint16, count)}
	for i := uint16(0); i < count; i++ {
		v := binary.BigEndian.Uint16(req[7+2*i:])
		d.Registers[start+i] = v
		w.Values[i] = v
	}
	d.Writes = append(d.Writes, w)

	return append([]byte(nil), req[:6]...)
}
