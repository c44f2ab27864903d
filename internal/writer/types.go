// internal/writer/types.go
package writer

// MaxRunLength is the largest number of registers the devices accept in one write.
const MaxRunLength = 32

// Request maps register address to an already encoded raw value.
// Assigning the same address twice keeps the last value.
type Request map[uint16]uint16

// Run is one contiguous write transaction.
type Run struct {
	Base   uint16
	Values []uint16
}

// Writer applies register write requests to a device.
type Writer interface {
	Apply(req Request) error
}
