// internal/writer/batch_test.go
package writer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimize_NonContiguousSplit(t *testing.T) {
	runs := Optimize(Request{0x08: 1200, 0x09: 500, 0x0B: 3})

	require.Len(t, runs, 2)
	assert.Equal(t, Run{Base: 0x08, Values: []uint16{1200, 500}}, runs[0])
	assert.Equal(t, Run{Base: 0x0B, Values: []uint16{3}}, runs[1])
}

func TestOptimize_Empty(t *testing.T) {
	assert.Nil(t, Optimize(nil))
	assert.Nil(t, Optimize(Request{}))
}

func TestOptimize_RunCap(t *testing.T) {
	req := Request{}
	for a := uint16(0x50); a < 0x50+70; a++ {
		req[a] = a
	}

	runs := Optimize(req)
	require.Len(t, runs, 3)
	assert.Equal(t, uint16(0x50), runs[0].Base)
	assert.Len(t, runs[0].Values, 32)
	assert.Equal(t, uint16(0x50+32), runs[1].Base)
	assert.Len(t, runs[1].Values, 32)
	assert.Equal(t, uint16(0x50+64), runs[2].Base)
	assert.Len(t, runs[2].Values, 6)
	assert.Equal(t, uint16(0x50+64), runs[2].Values[0])
}

func TestOptimize_TopOfAddressSpace(t *testing.T) {
	runs := Optimize(Request{0xFFFE: 1, 0xFFFF: 2, 0x0000: 3})

	require.Len(t, runs, 2)
	assert.Equal(t, Run{Base: 0x0000, Values: []uint16{3}}, runs[0])
	assert.Equal(t, Run{Base: 0xFFFE, Values: []uint16{1, 2}}, runs[1])
}

// The runs must partition the request exactly, stay contiguous and respect the cap.
func TestOptimize_PartitionProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for iter := 0; iter < 500; iter++ {
		req := Request{}
		n := 1 + rng.Intn(120)
		span := 1 + rng.Intn(200)
		for i := 0; i < n; i++ {
			req[uint16(rng.Intn(span))] = uint16(rng.Intn(0x10000))
		}

		runs := Optimize(req)
		seen := map[uint16]bool{}
		lastBase := -1
		for _, r := range runs {
			require.NotEmpty(t, r.Values)
			require.LessOrEqual(t, len(r.Values), MaxRunLength)
			require.Greater(t, int(r.Base), lastBase, "runs out of order")
			lastBase = int(r.Base)

			for i, v := range r.Values {
				a := r.Base + uint16(i)
				require.False(t, seen[a], "address %d written twice", a)
				seen[a] = true

				want, ok := req[a]
				require.True(t, ok, "address %d not requested", a)
				require.Equal(t, want, v)
			}
		}
		require.Len(t, seen, len(req))
	}
}
