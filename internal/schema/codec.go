// internal/schema/codec.go
package schema

import (
	"errors"
	"math"
)

var errOutOfRange = errors.New("out of range")

// codec converts between a physical value and its raw register word.
type codec struct {
	to   func(float64) (uint16, error)
	from func(uint16) float64
}

// scaled is a fixed-point codec: raw = round(value * factor).
func scaled(factor float64) codec {
	return codec{
		to: func(v float64) (uint16, error) {
			r := math.Round(v * factor)
			if math.IsNaN(r) || r < 0 || r > math.MaxUint16 {
				return 0, errOutOfRange
			}
			return uint16(r), nil
		},
		from: func(raw uint16) float64 { return float64(raw) / factor },
	}
}

// bounded is an integer codec accepting [min, max].
func bounded(min, max uint16) codec {
	return codec{
		to: func(v float64) (uint16, error) {
			r := math.Round(v)
			if math.IsNaN(r) || r < float64(min) || r > float64(max) {
				return 0, errOutOfRange
			}
			return uint16(r), nil
		},
		from: func(raw uint16) float64 { return float64(raw) },
	}
}

func word() codec { return bounded(0, math.MaxUint16) }

// flag packs a boolean: 0 or 1 only.
func flag() codec { return bounded(0, 1) }

// protection packs a Protection code up to max.
func protection(max Protection) codec { return bounded(0, uint16(max)) }
