// internal/report/trends.go
package report

// Trend arrows.
const (
	TrendUp   = "\u2197"
	TrendDown = "\u2198"
	TrendFlat = " "
)

// Trends tracks a fixed window of recent values per quantity and compares
// each new value against the window mean. Not safe for concurrent use.
type Trends struct {
	points  int
	history map[string][]float64
}

// NewTrends returns a tracker with a window of points values. Points below 1 become 1.
func NewTrends(points int) *Trends {
	if points < 1 {
		points = 1
	}
	return &Trends{points: points, history: make(map[string][]float64)}
}

// Arrow records value for name and returns its trend marker.
// The first value seen fills the window and is flat.
// A nil tracker renders no marker at all.
func (t *Trends) Arrow(name string, value float64) string {
	if t == nil {
		return ""
	}

	window, ok := t.history[name]
	if !ok {
		window = make([]float64, t.points)
		for i := range window {
			window[i] = value
		}
		t.history[name] = window
		return TrendFlat
	}

	var sum float64
	for _, v := range window {
		sum += v
	}
	mean := sum / float64(len(window))

	copy(window, window[1:])
	window[len(window)-1] = value

	switch {
	case value > mean:
		return TrendUp
	case value < mean:
		return TrendDown
	}
	return TrendFlat
}
