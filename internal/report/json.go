// internal/report/json.go
package report

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/tamzrod/benchpsu/internal/schema"
)

// JSON writes one line holding every decoded field, collection_time in
// seconds since the epoch and groups keyed by index. Keys are sorted.
func JSON(w io.Writer, st *schema.DeviceState) error {
	out := make(map[string]any, len(st.Fields)+2)
	for name, v := range st.Fields {
		out[name] = v
	}
	out["collection_time"] = float64(st.CollectionTime.UnixNano()) / 1e9

	groups := make(map[string]map[string]float64, len(st.Groups))
	for idx, g := range st.Groups {
		groups[strconv.Itoa(idx)] = g.Fields
	}
	out["groups"] = groups

	return json.NewEncoder(w).Encode(out)
}
