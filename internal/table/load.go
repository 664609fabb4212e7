// internal/table/load.go
package table

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/solax-explain/internal/regs"
)

//go:embed tables/*.yaml
var embedded embed.FS

var (
	builtinOnce sync.Once
	builtin     map[Model]*Table
	builtinErr  error
)

// ForModel returns the built-in table of a model.
// The returned table is shared and MUST NOT be modified.
func ForModel(m Model) (*Table, error) {
	builtinOnce.Do(loadBuiltin)
	if builtinErr != nil {
		return nil, builtinErr
	}

	t, ok := builtin[m]
	if !ok {
		return nil, fmt.Errorf("table: no built-in table for model %q", m)
	}
	return t, nil
}

func loadBuiltin() {
	builtin = make(map[Model]*Table)

	for _, m := range Models() {
		data, err := embedded.ReadFile("tables/" + string(m) + ".yaml")
		if err != nil {
			builtinErr = fmt.Errorf("table: read built-in %s: %w", m, err)
			return
		}

		t, err := Parse(data)
		if err != nil {
			builtinErr = fmt.Errorf("table: built-in %s: %w", m, err)
			return
		}
		if t.Model != m {
			builtinErr = fmt.Errorf("table: built-in %s declares model %q", m, t.Model)
			return
		}

		builtin[m] = t
	}
}

// LoadFile reads a custom table from a YAML file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes and validates a YAML table document.
// Fields without an explicit width are 16-bit.
func Parse(data []byte) (*Table, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var t Table
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("table: decode: %w", err)
	}

	for i := range t.Fields {
		if t.Fields[i].Width == 0 {
			t.Fields[i].Width = regs.W16
		}
	}

	if err := Validate(&t); err != nil {
		return nil, err
	}
	return &t, nil
}
