// internal/rtu/crc.go
package rtu

// CRC16/Modbus: reflected polynomial 0xA001, initial value 0xFFFF.
const (
	crcPoly uint16 = 0xA001
	crcInit uint16 = 0xFFFF
)

// Checksum computes the Modbus CRC16 of frame.
func Checksum(frame []byte) uint16 {
	crc := crcInit
	for _, b := range frame {
		crc ^= uint16(b)
		for i := 0; i < 8; i++ {
			if crc&1 != 0 {
				crc = crc>>1 ^ crcPoly
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}

// AppendCRC appends the checksum of frame, low byte first.
func AppendCRC(frame []byte) []byte {
	crc := Checksum(frame)
	return append(frame, byte(crc), byte(crc>>8))
}

// ValidCRC reports whether the last two bytes of frame are the checksum of the rest.
func ValidCRC(frame []byte) bool {
	if len(frame) < 3 {
		return false
	}
	n := len(frame) - 2
	crc := Checksum(frame[:n])
	return frame[n] == byte(crc) && frame[n+1] == byte(crc>>8)
}
