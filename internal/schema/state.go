// internal/schema/state.go
package schema

import "time"

// Protection is the device protection status.
type Protection int

const (
	ProtectionNormal Protection = iota
	ProtectionOverVoltage
	ProtectionOverCurrent
	ProtectionOverPower
)

func (p Protection) String() string {
	switch p {
	case ProtectionNormal:
		return "normal"
	case ProtectionOverVoltage:
		return "over-voltage"
	case ProtectionOverCurrent:
		return "over-current"
	case ProtectionOverPower:
		return "over-power"
	}
	return "unknown"
}

// DeviceState is one decoded snapshot. It is created per poll and not
// mutated after it is handed out.
type DeviceState struct {
	Family Family

	SettingVolts float64
	SettingAmps  float64

	Volts      float64
	Amps       float64
	Watts      float64
	InputVolts float64

	Protection      Protection
	ConstantCurrent bool
	Brightness      int
	KeyLock         bool
	OutputState     bool

	Model    int
	Firmware float64
	Serial   *uint32 // high-range only

	CollectionTime time.Time

	// HighRange carries the extra telemetry of the high-range family; nil otherwise.
	HighRange *HighRangeExtras

	// Fields holds every decoded value by field name, composites included.
	Fields map[string]float64

	Groups map[int]*GroupState
}

// HighRangeExtras is telemetry only the high-range family reports.
type HighRangeExtras struct {
	TempC        float64
	TempF        float64
	ExtTempC     float64
	ExtTempF     float64
	BatteryMode  bool
	BatteryVolts float64
	AmpHours     float64
	WattHours    float64

	// Clock is the device clock; zero when the registers do not form a valid date.
	Clock time.Time
}

// GroupState is one decoded preset slot. Optional fields are nil when the
// family does not define them.
type GroupState struct {
	Index int

	SettingVolts float64
	SettingAmps  float64
	CutoffVolts  float64
	CutoffAmps   float64

	CutoffWatts    *float64
	Brightness     *int
	MaintainOutput *bool
	PowerOnOutput  *bool

	Fields map[string]float64
}
