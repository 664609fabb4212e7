// internal/table/table.go
package table

import (
	"fmt"
	"strings"

	"github.com/tamzrod/solax-explain/internal/regs"
)

// Model identifies a device family with its own register layout.
type Model string

const (
	ModelWallbox Model = "wallbox" // Solax X3 EVC 11k (QCells EDrive A11T)
	ModelHybrid  Model = "hybrid"  // Solax X3 G4 hybrid (QCells Q.HOME+ ESS HYB-G3)
)

// Models lists the built-in models in a stable order.
func Models() []Model {
	return []Model{ModelWallbox, ModelHybrid}
}

// ParseModel resolves a model name or one of its aliases.
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wallbox", "evc", "x3-evc", "x3-evc11k":
		return ModelWallbox, nil
	case "hybrid", "g4", "x3-g4":
		return ModelHybrid, nil
	default:
		return "", fmt.Errorf("table: unknown model %q (want wallbox or hybrid)", s)
	}
}

// Descriptor describes how to interpret one field of the register array.
// A 32-bit field consumes Index (low half) and Index+1 (high half).
type Descriptor struct {
	Index   int        `yaml:"index"`
	Width   regs.Width `yaml:"width"`
	Signed  bool       `yaml:"signed"`
	Divisor *float64   `yaml:"divisor"`
	Unit    string     `yaml:"unit"`
	Name    string     `yaml:"name"`
}

// Passthrough reports an entry that only documents an unknown field.
func (d Descriptor) Passthrough() bool {
	return d.Name == "" && d.Divisor == nil
}

// Span is the number of registers the field occupies.
func (d Descriptor) Span() int {
	if d.Width == regs.W32 {
		return 2
	}
	return 1
}

// Table is the ordered field list of one device model.
// Tables are read-only once loaded.
type Table struct {
	Model       Model        `yaml:"model"`
	Title       string       `yaml:"title"`
	Length      int          `yaml:"length"`
	SerialLabel string       `yaml:"serial_label"`
	Fields      []Descriptor `yaml:"fields"`
}

// Named returns the descriptors that carry a name.
func (t *Table) Named() []Descriptor {
	var out []Descriptor
	for _, d := range t.Fields {
		if d.Name != "" {
			out = append(out, d)
		}
	}
	return out
}

// Div is a helper for building descriptors in code.
func Div(v float64) *float64 {
	return &v
}
