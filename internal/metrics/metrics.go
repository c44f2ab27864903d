// internal/metrics/metrics.go

// Package metrics exposes decoded device state and poll health as Prometheus gauges.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tamzrod/benchpsu/internal/schema"
	"github.com/tamzrod/benchpsu/internal/status"
)

const namespace = "benchpsu"

// Metrics owns a private registry so several sessions or tests never collide.
type Metrics struct {
	reg *prometheus.Registry

	gauges map[string]prometheus.Gauge
	groups map[string]*prometheus.GaugeVec

	cycles   prometheus.Counter
	failures prometheus.Counter
}

// New registers every gauge for one device.
func New(family schema.Family, unit uint8) *Metrics {
	m := &Metrics{
		reg:    prometheus.NewRegistry(),
		gauges: map[string]prometheus.Gauge{},
		groups: map[string]*prometheus.GaugeVec{},
	}
	labels := prometheus.Labels{
		"family": family.String(),
		"unit":   strconv.Itoa(int(unit)),
	}

	m.addGauge(labels, "setting_volts", "Output voltage setpoint (V)")
	m.addGauge(labels, "setting_amps", "Output current setpoint (A)")
	m.addGauge(labels, "volts", "Output voltage (V)")
	m.addGauge(labels, "amps", "Output current (A)")
	m.addGauge(labels, "watts", "Output power (W)")
	m.addGauge(labels, "input_volts", "Input voltage (V)")
	m.addGauge(labels, "output_on", "Output enabled (1/0)")
	m.addGauge(labels, "constant_current", "Constant current mode (1/0)")
	m.addGauge(labels, "protection", "Protection status code")
	m.addGauge(labels, "collection_timestamp_seconds", "Time of the last successful poll")

	m.addGauge(labels, "health", "Poll health (0 unknown, 1 ok, 2 error)")
	m.addGauge(labels, "last_error_code", "Classified code of the last poll error")
	m.addGauge(labels, "seconds_in_error", "Seconds since the current error streak began")

	if family == schema.HighRange {
		m.addGauge(labels, "temperature_celsius", "Internal temperature (C)")
		m.addGauge(labels, "external_temperature_celsius", "External probe temperature (C)")
		m.addGauge(labels, "battery_volts", "Battery voltage (V)")
		m.addGauge(labels, "amp_hours", "Accumulated charge (Ah)")
		m.addGauge(labels, "watt_hours", "Accumulated energy (Wh)")
	}

	m.addGroupGauge(labels, "group_setting_volts", "Group voltage setpoint (V)")
	m.addGroupGauge(labels, "group_setting_amps", "Group current setpoint (A)")
	m.addGroupGauge(labels, "group_cutoff_volts", "Group over-voltage protection (V)")
	m.addGroupGauge(labels, "group_cutoff_amps", "Group over-current protection (A)")

	m.cycles = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "poll_cycles_total",
		Help:        "Poll cycles attempted",
		ConstLabels: labels,
	})
	m.failures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "poll_failures_total",
		Help:        "Poll cycles that failed",
		ConstLabels: labels,
	})

	// Register all defined collectors
	for _, g := range m.gauges {
		m.reg.MustRegister(g)
	}
	for _, gv := range m.groups {
		m.reg.MustRegister(gv)
	}
	m.reg.MustRegister(m.cycles, m.failures)

	return m
}

func (m *Metrics) addGauge(labels prometheus.Labels, name, help string) {
	m.gauges[name] = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	})
}

func (m *Metrics) addGroupGauge(labels prometheus.Labels, name, help string) {
	m.groups[name] = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	}, []string{"group"})
}

// Registry returns the registry holding every collector.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Observe updates metrics from one poll cycle. A nil state only updates health.
// Its signature matches the session's cycle observer.
func (m *Metrics) Observe(st *schema.DeviceState, snap status.Snapshot) {
	m.cycles.Inc()
	if snap.Health == status.HealthError {
		m.failures.Inc()
	}
	m.setGauge("health", float64(snap.Health))
	m.setGauge("last_error_code", float64(snap.LastErrorCode))
	m.setGauge("seconds_in_error", float64(snap.SecondsInError))

	if st == nil {
		return
	}

	m.setGauge("setting_volts", st.SettingVolts)
	m.setGauge("setting_amps", st.SettingAmps)
	m.setGauge("volts", st.Volts)
	m.setGauge("amps", st.Amps)
	m.setGauge("watts", st.Watts)
	m.setGauge("input_volts", st.InputVolts)
	m.setGauge("output_on", boolGauge(st.OutputState))
	m.setGauge("constant_current", boolGauge(st.ConstantCurrent))
	m.setGauge("protection", float64(st.Protection))
	if !st.CollectionTime.IsZero() {
		m.setGauge("collection_timestamp_seconds", float64(st.CollectionTime.UnixNano())/1e9)
	}

	if hr := st.HighRange; hr != nil {
		m.setGauge("temperature_celsius", hr.TempC)
		m.setGauge("external_temperature_celsius", hr.ExtTempC)
		m.setGauge("battery_volts", hr.BatteryVolts)
		m.setGauge("amp_hours", hr.AmpHours)
		m.setGauge("watt_hours", hr.WattHours)
	}

	for idx, g := range st.Groups {
		label := strconv.Itoa(idx)
		m.groups["group_setting_volts"].WithLabelValues(label).Set(g.SettingVolts)
		m.groups["group_setting_amps"].WithLabelValues(label).Set(g.SettingAmps)
		m.groups["group_cutoff_volts"].WithLabelValues(label).Set(g.CutoffVolts)
		m.groups["group_cutoff_amps"].WithLabelValues(label).Set(g.CutoffAmps)
	}
}

func (m *Metrics) setGauge(name string, v float64) {
	if g, ok := m.gauges[name]; ok {
		g.Set(v)
	}
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
