// internal/schema/fields.go
package schema

// Field names shared by both families.
const (
	FieldSettingVolts    = "setting_volts"
	FieldSettingAmps     = "setting_amps"
	FieldVolts           = "volts"
	FieldAmps            = "amps"
	FieldWatts           = "watts"
	FieldInputVolts      = "input_volts"
	FieldKeyLock         = "key_lock"
	FieldProtection      = "protection"
	FieldConstantCurrent = "constant_current"
	FieldOutputState     = "output_state"
	FieldBrightness      = "brightness"
	FieldModel           = "model"
	FieldFirmware        = "firmware"
	FieldGroupLoader     = "group_loader"
)

// Group field names.
const (
	FieldCutoffVolts    = "cutoff_volts"
	FieldCutoffAmps     = "cutoff_amps"
	FieldCutoffWatts    = "cutoff_watts"
	FieldMaintainOutput = "maintain_output"
	FieldPowerOnOutput  = "poweron_output"
)

// High-range only.
const (
	FieldSerialHigh       = "serial_high"
	FieldSerialLow        = "serial_low"
	FieldTempCNegative    = "temp_c_negative"
	FieldTempC            = "temp_c"
	FieldTempFNegative    = "temp_f_negative"
	FieldTempF            = "temp_f"
	FieldWattsHigh        = "watts_high"
	FieldWattsLow         = "watts_low"
	FieldBatteryMode      = "battery_mode"
	FieldBatteryVolts     = "battery_volts"
	FieldExtTempCNegative = "ext_temp_c_negative"
	FieldExtTempC         = "ext_temp_c"
	FieldExtTempFNegative = "ext_temp_f_negative"
	FieldExtTempF         = "ext_temp_f"
	FieldAmpHoursHigh     = "amp_hours_high"
	FieldAmpHoursLow      = "amp_hours_low"
	FieldWattHoursHigh    = "watt_hours_high"
	FieldWattHoursLow     = "watt_hours_low"
	FieldDatetimeYear     = "datetime_year"
	FieldDatetimeMonth    = "datetime_month"
	FieldDatetimeDay      = "datetime_day"
	FieldDatetimeHour     = "datetime_hour"
	FieldDatetimeMinute   = "datetime_minute"
	FieldDatetimeSecond   = "datetime_second"
	FieldSerial           = "serial"
	FieldAmpHours         = "amp_hours"
	FieldWattHours        = "watt_hours"
)
