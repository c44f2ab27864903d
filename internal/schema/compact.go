// internal/schema/compact.go
package schema

// DPS/DPH primary block, 0x00..0x0C. group_loader sits outside the read block
// and is write-only in practice.
var compactDevice = newSchema(
	def(0x00, FieldSettingVolts, "Output voltage setting", scaled(100)),
	def(0x01, FieldSettingAmps, "Output current setting", scaled(1000)),
	def(0x02, FieldVolts, "Output voltage", scaled(100)),
	def(0x03, FieldAmps, "Output current", scaled(1000)),
	def(0x04, FieldWatts, "Output power", scaled(100)),
	def(0x05, FieldInputVolts, "Input voltage", scaled(100)),
	def(0x06, FieldKeyLock, "Key lock", flag()),
	def(0x07, FieldProtection, "Protection status", protection(ProtectionOverPower)),
	def(0x08, FieldConstantCurrent, "Constant current mode", flag()),
	def(0x09, FieldOutputState, "Output state", flag()),
	def(0x0A, FieldBrightness, "Backlight brightness", bounded(0, 5)),
	def(0x0B, FieldModel, "Product model", word()),
	def(0x0C, FieldFirmware, "Firmware version", scaled(10)),
	def(0x23, FieldGroupLoader, "Load group", bounded(0, GroupSlots-1)),
)

// Relative to GroupAddress(index).
var compactGroup = newSchema(
	def(0x00, FieldSettingVolts, "Voltage setting", scaled(100)),
	def(0x01, FieldSettingAmps, "Current setting", scaled(1000)),
	def(0x02, FieldCutoffVolts, "Over-voltage protection", scaled(100)),
	def(0x03, FieldCutoffAmps, "Over-current protection", scaled(1000)),
	def(0x04, FieldCutoffWatts, "Over-power protection", scaled(10)),
	def(0x05, FieldBrightness, "Backlight brightness", bounded(0, 5)),
	def(0x06, FieldMaintainOutput, "Maintain output state", flag()),
	def(0x07, FieldPowerOnOutput, "Output on power-on", flag()),
).withOptional(FieldCutoffWatts, FieldBrightness, FieldMaintainOutput, FieldPowerOnOutput)
