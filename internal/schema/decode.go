// internal/schema/decode.go
package schema

import "time"

// Decode turns a raw primary block read at base into a DeviceState.
// Definitions outside the block are ignored. Groups start empty.
// An invalid family decodes to an empty state.
func (f Family) Decode(regs []uint16, base uint16) *DeviceState {
	st := &DeviceState{
		Family: f,
		Fields: make(map[string]float64),
		Groups: make(map[int]*GroupState),
	}
	if !f.Valid() {
		return st
	}
	fields := f.Schema().decode(regs, base, 0)
	st.Fields = fields

	if f == HighRange {
		st.HighRange = decodeHighRange(fields)
		if hi, lo, ok := pair(fields, FieldSerialHigh, FieldSerialLow); ok {
			serial := hi<<16 | lo
			st.Serial = &serial
			fields[FieldSerial] = float64(serial)
		}
		if hi, lo, ok := pair(fields, FieldWattsHigh, FieldWattsLow); ok {
			fields[FieldWatts] = float64(hi<<16|lo) / 100
		}
	}

	st.SettingVolts = fields[FieldSettingVolts]
	st.SettingAmps = fields[FieldSettingAmps]
	st.Volts = fields[FieldVolts]
	st.Amps = fields[FieldAmps]
	st.Watts = fields[FieldWatts]
	st.InputVolts = fields[FieldInputVolts]
	st.Protection = Protection(fields[FieldProtection])
	st.ConstantCurrent = fields[FieldConstantCurrent] != 0
	st.Brightness = int(fields[FieldBrightness])
	st.KeyLock = fields[FieldKeyLock] != 0
	st.OutputState = fields[FieldOutputState] != 0
	st.Model = int(fields[FieldModel])
	st.Firmware = fields[FieldFirmware]

	return st
}

// DecodeGroup turns a raw group block read at base into a GroupState for index.
func (f Family) DecodeGroup(index int, regs []uint16, base uint16) (*GroupState, error) {
	if !f.Valid() {
		return nil, &SchemaError{Kind: FamilyMismatch, Family: f, Field: f.String()}
	}
	if !validGroup(index) {
		return nil, &SchemaError{Kind: InvalidGroup, Family: f, Group: index}
	}
	gs := f.GroupSchema()
	fields := gs.decode(regs, base, f.GroupAddress(index))

	g := &GroupState{
		Index:        index,
		SettingVolts: fields[FieldSettingVolts],
		SettingAmps:  fields[FieldSettingAmps],
		CutoffVolts:  fields[FieldCutoffVolts],
		CutoffAmps:   fields[FieldCutoffAmps],
		Fields:       fields,
	}

	if v, ok := optional(gs, fields, FieldCutoffWatts); ok {
		g.CutoffWatts = &v
	}
	if v, ok := optional(gs, fields, FieldBrightness); ok {
		b := int(v)
		g.Brightness = &b
	}
	if v, ok := optional(gs, fields, FieldMaintainOutput); ok {
		b := v != 0
		g.MaintainOutput = &b
	}
	if v, ok := optional(gs, fields, FieldPowerOnOutput); ok {
		b := v != 0
		g.PowerOnOutput = &b
	}
	return g, nil
}

func optional(s *Schema, fields map[string]float64, name string) (float64, bool) {
	if !s.Optional(name) {
		return 0, false
	}
	v, ok := fields[name]
	return v, ok
}

func decodeHighRange(fields map[string]float64) *HighRangeExtras {
	x := &HighRangeExtras{
		TempC:        signed(fields, FieldTempCNegative, FieldTempC),
		TempF:        signed(fields, FieldTempFNegative, FieldTempF),
		ExtTempC:     signed(fields, FieldExtTempCNegative, FieldExtTempC),
		ExtTempF:     signed(fields, FieldExtTempFNegative, FieldExtTempF),
		BatteryMode:  fields[FieldBatteryMode] != 0,
		BatteryVolts: fields[FieldBatteryVolts],
	}
	if hi, lo, ok := pair(fields, FieldAmpHoursHigh, FieldAmpHoursLow); ok {
		x.AmpHours = float64(hi<<16|lo) / 1000
		fields[FieldAmpHours] = x.AmpHours
	}
	if hi, lo, ok := pair(fields, FieldWattHoursHigh, FieldWattHoursLow); ok {
		x.WattHours = float64(hi<<16|lo) / 1000
		fields[FieldWattHours] = x.WattHours
	}
	x.Clock = clock(fields)
	return x
}

func pair(fields map[string]float64, high, low string) (uint32, uint32, bool) {
	hi, ok1 := fields[high]
	lo, ok2 := fields[low]
	return uint32(hi), uint32(lo), ok1 && ok2
}

func signed(fields map[string]float64, negative, magnitude string) float64 {
	v := fields[magnitude]
	if fields[negative] != 0 {
		return -v
	}
	return v
}

func clock(fields map[string]float64) time.Time {
	y, ok := fields[FieldDatetimeYear]
	if !ok || y == 0 {
		return time.Time{}
	}
	mo, d := int(fields[FieldDatetimeMonth]), int(fields[FieldDatetimeDay])
	h, mi, s := int(fields[FieldDatetimeHour]), int(fields[FieldDatetimeMinute]), int(fields[FieldDatetimeSecond])
	if mo < 1 || mo > 12 || d < 1 || d > 31 || h > 23 || mi > 59 || s > 59 {
		return time.Time{}
	}
	return time.Date(int(y), time.Month(mo), d, h, mi, s, 0, time.Local)
}
