// internal/source/builder.go
package source

import (
	"fmt"
	"log"
	"time"

	"github.com/tamzrod/solax-explain/internal/config"
	smodbus "github.com/tamzrod/solax-explain/internal/source/modbus"
	"github.com/tamzrod/solax-explain/internal/source/solax"
)

// Build constructs the Fetcher selected by configuration.
// registers is the array length expected by the selected table; the Modbus
// adapter reads exactly that many registers.
// The returned cleanup releases any open connection.
func Build(c config.SourceConfig, registers int) (Fetcher, func(), error) {
	timeout := time.Duration(c.TimeoutMs) * time.Millisecond

	switch c.Kind {
	case KindHTTP:
		f, err := solax.New(solax.Config{
			Host:     c.Host,
			Password: c.Password,
			Timeout:  timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return f, func() {}, nil

	case KindModbus:
		if registers <= 0 || registers > 0xFFFF {
			return nil, nil, fmt.Errorf("source: invalid register count %d", registers)
		}

		f, err := smodbus.New(smodbus.Config{
			Endpoint: c.Modbus.Endpoint,
			UnitID:   c.Modbus.UnitID,
			Timeout:  timeout,
			Address:  c.Modbus.Address,
			Quantity: uint16(registers),
			Input:    c.Modbus.Input,
		})
		if err != nil {
			return nil, nil, err
		}
		return f, func() {
			if err := f.Close(); err != nil {
				log.Printf("modbus source close failed (endpoint=%s): %v", c.Modbus.Endpoint, err)
			}
		}, nil

	default:
		return nil, nil, fmt.Errorf("source: unsupported kind %q", c.Kind)
	}
}
