// internal/device/constants.go
package device

// Layout of the "Information" array returned next to the register block.
// These positions are fixed by the vendor API and MUST NOT be configurable.

// ---- SLOT INDICES ----

// SlotMaxPower holds the rated power in kW.
const SlotMaxPower = 0

// SlotTypeCode holds the vendor device type code.
const SlotTypeCode = 1

// SlotSerial holds the inverter/wallbox serial number.
const SlotSerial = 2

// ---- LIMITS ----

// SerialMaxChars is the longest serial number accepted; longer values are truncated.
const SerialMaxChars = 32
