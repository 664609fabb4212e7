// internal/source/source.go
package source

import (
	"context"

	"github.com/tamzrod/solax-explain/internal/device"
)

// Kinds of acquisition adapters.
const (
	KindHTTP   = "http"
	KindModbus = "modbus"
)

// Fetcher performs exactly one best-effort read of the device.
// No retries, no loops.
type Fetcher interface {
	Fetch(ctx context.Context) (*device.Snapshot, error)
}
