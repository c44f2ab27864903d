// internal/status/constants.go
package status

// ---- HEALTH CODES ----

// HealthUnknown represents the state before the first poll cycle.
const HealthUnknown uint16 = 0

// HealthOK represents a device whose last cycle succeeded.
const HealthOK uint16 = 1

// HealthError represents a device whose last cycle failed.
const HealthError uint16 = 2

// ---- ERROR CODES ----
// Modbus exception codes (1..255) pass through unchanged.

// CodeGeneric is used when an error carries no better classification.
const CodeGeneric uint16 = 1

// Protocol failures.
const (
	CodeCRCMismatch        uint16 = 0x100
	CodeUnexpectedLength   uint16 = 0x101
	CodeUnexpectedResponse uint16 = 0x102
	CodeInvalidQuantity    uint16 = 0x103
)

// Transport failures.
const (
	CodeTimeout   uint16 = 0x200
	CodeTransport uint16 = 0x201
)

// CodeSchema marks configuration errors surfaced by the register schema.
const CodeSchema uint16 = 0x300

// ---- LIMITS ----

// MaxSecondsInError is where SecondsInError saturates. It never wraps.
const MaxSecondsInError = 65535
