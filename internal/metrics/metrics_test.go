// internal/metrics/metrics_test.go
package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/benchpsu/internal/schema"
	"github.com/tamzrod/benchpsu/internal/status"
)

func TestObserve_State(t *testing.T) {
	m := New(schema.Compact, 1)

	st := &schema.DeviceState{
		Family:         schema.Compact,
		SettingVolts:   5,
		Volts:          4.99,
		Amps:           0.12,
		OutputState:    true,
		Protection:     schema.ProtectionOverCurrent,
		CollectionTime: time.Unix(1700000000, 0),
		Groups: map[int]*schema.GroupState{
			2: {Index: 2, SettingVolts: 3.3},
		},
	}
	m.Observe(st, status.Snapshot{Health: status.HealthOK})

	assert.Equal(t, 5.0, testutil.ToFloat64(m.gauges["setting_volts"]))
	assert.Equal(t, 4.99, testutil.ToFloat64(m.gauges["volts"]))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gauges["output_on"]))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.gauges["protection"]))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(m.gauges["collection_timestamp_seconds"]))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gauges["health"]))
	assert.Equal(t, 3.3, testutil.ToFloat64(m.groups["group_setting_volts"].WithLabelValues("2")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cycles))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.failures))
}

func TestObserve_FailureKeepsLastState(t *testing.T) {
	m := New(schema.Compact, 1)
	m.Observe(&schema.DeviceState{Volts: 12}, status.Snapshot{Health: status.HealthOK})
	m.Observe(nil, status.Snapshot{Health: status.HealthError, LastErrorCode: status.CodeTimeout, SecondsInError: 4})

	assert.Equal(t, 12.0, testutil.ToFloat64(m.gauges["volts"]))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.gauges["health"]))
	assert.Equal(t, float64(status.CodeTimeout), testutil.ToFloat64(m.gauges["last_error_code"]))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.gauges["seconds_in_error"]))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cycles))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures))
}

func TestHighRangeOnlyGauges(t *testing.T) {
	compact := New(schema.Compact, 1)
	_, ok := compact.gauges["temperature_celsius"]
	assert.False(t, ok)

	rd := New(schema.HighRange, 1)
	rd.Observe(&schema.DeviceState{HighRange: &schema.HighRangeExtras{TempC: -4, WattHours: 1.5}}, status.Snapshot{Health: status.HealthOK})
	assert.Equal(t, -4.0, testutil.ToFloat64(rd.gauges["temperature_celsius"]))
	assert.Equal(t, 1.5, testutil.ToFloat64(rd.gauges["watt_hours"]))
}

func TestHandler_Exposition(t *testing.T) {
	m := New(schema.HighRange, 3)
	m.Observe(&schema.DeviceState{Volts: 1.25}, status.Snapshot{Health: status.HealthOK})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.True(t, strings.Contains(string(body), `benchpsu_volts{family="high-range",unit="3"} 1.25`), string(body))
	assert.True(t, strings.Contains(string(body), "benchpsu_poll_cycles_total"))
}
