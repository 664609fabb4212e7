// internal/publish/types.go
package publish

import (
	"context"
	"time"

	"github.com/tamzrod/solax-explain/internal/decoder"
	"github.com/tamzrod/solax-explain/internal/device"
	"github.com/tamzrod/solax-explain/internal/table"
)

// Report is one decoded snapshot ready for delivery.
type Report struct {
	Model table.Model
	Title string
	Host  string
	Info  device.Info
	At    time.Time
	Rows  []decoder.Row
}

// Publisher delivers a report to an external sink.
type Publisher interface {
	Publish(ctx context.Context, r Report) error
}

// Nop discards reports. Used when no sink is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Report) error { return nil }
