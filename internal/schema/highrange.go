// internal/schema/highrange.go
package schema

// Direct-control registers of the high-range family.
const (
	CommandVoltsRegister  uint16 = 0x08
	CommandAmpsRegister   uint16 = 0x09
	CommandOutputRegister uint16 = 0x12
)

// RD primary block, 0x00..0x54. 32-bit quantities are split into high/low
// words and recombined after decode.
var highRangeDevice = newSchema(
	def(0x00, FieldModel, "Product model", word()),
	def(0x01, FieldSerialHigh, "Serial number (high word)", word()),
	def(0x02, FieldSerialLow, "Serial number (low word)", word()),
	def(0x03, FieldFirmware, "Firmware version", scaled(100)),
	def(0x04, FieldTempCNegative, "Internal temperature (C) negative", flag()),
	def(0x05, FieldTempC, "Internal temperature (C)", word()),
	def(0x06, FieldTempFNegative, "Internal temperature (F) negative", flag()),
	def(0x07, FieldTempF, "Internal temperature (F)", word()),
	def(CommandVoltsRegister, FieldSettingVolts, "Output voltage setting", scaled(100)),
	def(CommandAmpsRegister, FieldSettingAmps, "Output current setting", scaled(1000)),
	def(0x0A, FieldVolts, "Output voltage", scaled(100)),
	def(0x0B, FieldAmps, "Output current", scaled(1000)),
	def(0x0C, FieldWattsHigh, "Output power (high word)", word()),
	def(0x0D, FieldWattsLow, "Output power (low word)", word()),
	def(0x0E, FieldInputVolts, "Input voltage", scaled(100)),
	def(0x0F, FieldKeyLock, "Key lock", flag()),
	def(0x10, FieldProtection, "Protection status", protection(ProtectionOverCurrent)),
	def(0x11, FieldConstantCurrent, "Constant current mode", flag()),
	def(CommandOutputRegister, FieldOutputState, "Output state", flag()),
	def(0x13, FieldGroupLoader, "Load group", bounded(0, GroupSlots-1)),
	def(0x20, FieldBatteryMode, "Battery mode", flag()),
	def(0x21, FieldBatteryVolts, "Battery voltage", scaled(100)),
	def(0x22, FieldExtTempCNegative, "External temperature (C) negative", flag()),
	def(0x23, FieldExtTempC, "External temperature (C)", word()),
	def(0x24, FieldExtTempFNegative, "External temperature (F) negative", flag()),
	def(0x25, FieldExtTempF, "External temperature (F)", word()),
	def(0x26, FieldAmpHoursHigh, "Amp-hours (high word)", word()),
	def(0x27, FieldAmpHoursLow, "Amp-hours (low word)", word()),
	def(0x28, FieldWattHoursHigh, "Watt-hours (high word)", word()),
	def(0x29, FieldWattHoursLow, "Watt-hours (low word)", word()),
	def(0x30, FieldDatetimeYear, "Clock year", bounded(2000, 2099)),
	def(0x31, FieldDatetimeMonth, "Clock month", bounded(1, 12)),
	def(0x32, FieldDatetimeDay, "Clock day", bounded(1, 31)),
	def(0x33, FieldDatetimeHour, "Clock hour", bounded(0, 23)),
	def(0x34, FieldDatetimeMinute, "Clock minute", bounded(0, 59)),
	def(0x35, FieldDatetimeSecond, "Clock second", bounded(0, 59)),
	def(0x48, FieldBrightness, "Backlight brightness", bounded(0, 5)),
)

// Relative to GroupAddress(index).
var highRangeGroup = newSchema(
	def(0x00, FieldSettingVolts, "Voltage setting", scaled(100)),
	def(0x01, FieldSettingAmps, "Current setting", scaled(1000)),
	def(0x02, FieldCutoffVolts, "Over-voltage protection", scaled(100)),
	def(0x03, FieldCutoffAmps, "Over-current protection", scaled(1000)),
)
