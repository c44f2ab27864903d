// internal/writer/batch.go
package writer

import "sort"

// Optimize coalesces a request into contiguous runs of at most MaxRunLength
// registers, in one ascending pass.
//
// Each address is appended to the first open run (in discovery order) that
// ends right before it and still has room; otherwise it opens a new run.
// The packing is greedy, not globally minimal. Runs are returned in
// discovery order, which is ascending by base.
func Optimize(req Request) []Run {
	if len(req) == 0 {
		return nil
	}

	addrs := make([]int, 0, len(req))
	for a := range req {
		addrs = append(addrs, int(a))
	}
	sort.Ints(addrs)

	var runs []*Run
	for _, a := range addrs {
		v := req[uint16(a)]

		placed := false
		for _, r := range runs {
			if int(r.Base)+len(r.Values) == a && len(r.Values) < MaxRunLength {
				r.Values = append(r.Values, v)
				placed = true
				break
			}
		}
		if !placed {
			runs = append(runs, &Run{Base: uint16(a), Values: []uint16{v}})
		}
	}

	out := make([]Run, len(runs))
	for i, r := range runs {
		out[i] = *r
	}
	return out
}
