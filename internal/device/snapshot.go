// internal/device/snapshot.go
package device

import "time"

// Snapshot is one complete read of a device.
// Registers is immutable once produced; decoders only read it.
type Snapshot struct {
	Registers []uint16
	Info      Info
	At        time.Time
}
