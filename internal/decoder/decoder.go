// internal/decoder/decoder.go
package decoder

import (
	"errors"
	"fmt"
	"math"

	"github.com/tamzrod/solax-explain/internal/regs"
	"github.com/tamzrod/solax-explain/internal/table"
)

// ErrOutOfRange matches every *OutOfRangeError.
var ErrOutOfRange = errors.New("decoder: register index out of range")

// OutOfRangeError reports a descriptor that points past the register array.
// It means the table does not match the device firmware.
type OutOfRangeError struct {
	Model  table.Model
	Index  int // first missing register
	Length int // length of the supplied array
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("decoder: model %s: register %d out of range (array length %d)",
		e.Model, e.Index, e.Length)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// Row is the decoded form of one descriptor.
type Row struct {
	Index int
	Width regs.Width

	// Raw is the 16-bit register after optional sign recovery.
	// For 32-bit fields it is the low register as read.
	Raw int64

	// Value is nil when the field has no divisor or cannot be interpreted.
	Value *float64

	Unit string
	Name string
}

// Decode walks t against a register snapshot.
// Rows come out in table order; hidden fields are skipped.
// Any out-of-range descriptor aborts the pass with no rows.
func Decode(registers []uint16, t *table.Table) ([]Row, error) {
	if t == nil {
		return nil, errors.New("decoder: nil table")
	}

	rows := make([]Row, 0, len(t.Fields))

	for _, d := range t.Fields {
		row, visible, err := decodeField(registers, d)
		if err != nil {
			var oor *OutOfRangeError
			if errors.As(err, &oor) {
				oor.Model = t.Model
			}
			return nil, err
		}
		if visible {
			rows = append(rows, row)
		}
	}

	return rows, nil
}

func decodeField(registers []uint16, d table.Descriptor) (Row, bool, error) {
	row := Row{
		Index: d.Index,
		Width: d.Width,
		Unit:  d.Unit,
		Name:  d.Name,
	}

	if d.Index < 0 || d.Index >= len(registers) {
		return Row{}, false, &OutOfRangeError{Index: d.Index, Length: len(registers)}
	}
	low := registers[d.Index]

	if d.Width == regs.W32 {
		if d.Index+1 >= len(registers) {
			return Row{}, false, &OutOfRangeError{Index: d.Index + 1, Length: len(registers)}
		}
		high := registers[d.Index+1]

		sum := int64(regs.Combine(low, high))
		if d.Signed {
			sum = regs.Signed32(uint32(sum))
		}

		row.Width = regs.W32
		row.Raw = int64(low)
		row.Value = interpret(sum, d.Divisor)

		// 32-bit pairs are rarely flags: only a zero low half is hidden.
		return row, d.Name != "" || row.Raw != 0, nil
	}

	raw := int64(low)
	if d.Signed {
		raw = regs.Signed16(low)
	}

	row.Width = regs.W16
	row.Raw = raw
	row.Value = interpret(raw, d.Divisor)

	// Unnamed 0/1 registers are inactive flags or padding.
	return row, d.Name != "" || (raw != 0 && raw != 1), nil
}

// interpret scales v by divisor.
// A missing divisor, or a result that is not a finite number, yields nil.
func interpret(v int64, divisor *float64) *float64 {
	if divisor == nil || *divisor == 0 {
		return nil
	}

	f := float64(v) / *divisor
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
