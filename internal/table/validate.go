// internal/table/validate.go
package table

import (
	"errors"
	"fmt"
)

// Validate checks table geometry and scaling.
// It performs declarative validation only.
// It MUST NOT mutate the table.
func Validate(t *Table) error {
	if t == nil {
		return errors.New("table: nil table")
	}
	if t.Model == "" {
		return errors.New("table: model required")
	}
	if t.Length <= 0 {
		return fmt.Errorf("table %s: length must be > 0", t.Model)
	}
	if len(t.Fields) == 0 {
		return fmt.Errorf("table %s: at least one field required", t.Model)
	}

	// next is the first register index not yet owned by a previous field.
	next := 0

	for i, d := range t.Fields {
		if !d.Width.Valid() {
			return fmt.Errorf("table %s: field %d (index %d): width must be 16 or 32, got %d",
				t.Model, i, d.Index, d.Width)
		}
		if d.Index < 0 {
			return fmt.Errorf("table %s: field %d: negative index %d", t.Model, i, d.Index)
		}

		// ordering + overlap (a 32-bit field owns index+1)
		if d.Index < next {
			return fmt.Errorf("table %s: field %d: index %d overlaps or precedes register %d",
				t.Model, i, d.Index, next-1)
		}

		last := d.Index + d.Span() - 1
		if last >= t.Length {
			return fmt.Errorf("table %s: field %d: register %d beyond length %d",
				t.Model, i, last, t.Length)
		}

		if d.Divisor != nil && !(*d.Divisor > 0) {
			return fmt.Errorf("table %s: field %d (index %d): divisor must be > 0, got %v",
				t.Model, i, d.Index, *d.Divisor)
		}

		next = last + 1
	}

	return nil
}
