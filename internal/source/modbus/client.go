// internal/source/modbus/client.go
package modbus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/solax-explain/internal/device"
)

// maxPerRead is the Modbus limit for FC 3/4 register counts.
const maxPerRead = 125

// API is the subset of modbus.Client the adapter needs.
type API interface {
	ReadHoldingRegisters(address, quantity uint16) (results []byte, err error) // FC 3
	ReadInputRegisters(address, quantity uint16) (results []byte, err error)   // FC 4
}

// Config is minimal transport config plus the block geometry.
type Config struct {
	Endpoint string
	UnitID   uint8
	Timeout  time.Duration

	Address  uint16 // register mapped to array index 0
	Quantity uint16 // array length
	Input    bool   // FC 4 instead of FC 3
}

// Client reads the register block over Modbus TCP, typically from a
// replicator that mirrors the device's real-time block.
// This adapter is geometry-only: it builds requests and unpacks raw responses.
type Client struct {
	mu      sync.Mutex
	handler *modbus.TCPClientHandler
	api     API
	cfg     Config
}

// New creates a connected Modbus TCP client.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus source: endpoint required")
	}
	if cfg.Quantity == 0 {
		return nil, errors.New("modbus source: quantity must be > 0")
	}
	if uint32(cfg.Address)+uint32(cfg.Quantity) > 0x10000 {
		return nil, fmt.Errorf("modbus source: block %d+%d exceeds address space", cfg.Address, cfg.Quantity)
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("modbus source: connect %s: %w", cfg.Endpoint, err)
	}

	return &Client{
		handler: h,
		api:     modbus.NewClient(h),
		cfg:     cfg,
	}, nil
}

// newWithAPI builds a client on an existing API (tests).
func newWithAPI(cfg Config, api API) *Client {
	return &Client{api: api, cfg: cfg}
}

// Close closes the TCP connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// Fetch reads the whole block in FC-limited chunks.
// All-or-nothing: any failure aborts the read.
func (c *Client) Fetch(ctx context.Context) (*device.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]uint16, 0, c.cfg.Quantity)

	for _, ch := range chunks(c.cfg.Address, c.cfg.Quantity) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var (
			raw []byte
			err error
		)
		if c.cfg.Input {
			raw, err = c.api.ReadInputRegisters(ch.addr, ch.qty)
		} else {
			raw, err = c.api.ReadHoldingRegisters(ch.addr, ch.qty)
		}
		if err != nil {
			return nil, fmt.Errorf("modbus source: read addr=%d qty=%d: %w", ch.addr, ch.qty, err)
		}
		if len(raw) != int(ch.qty)*2 {
			return nil, fmt.Errorf("modbus source: short read addr=%d: got %d bytes, want %d",
				ch.addr, len(raw), int(ch.qty)*2)
		}

		out = append(out, unpackRegisters(raw)...)
	}

	return &device.Snapshot{
		Registers: out,
		At:        time.Now(),
	}, nil
}

// ---- helpers (pure geometry) ----

type chunk struct {
	addr uint16
	qty  uint16
}

func chunks(addr, qty uint16) []chunk {
	var out []chunk
	for qty > 0 {
		n := qty
		if n > maxPerRead {
			n = maxPerRead
		}
		out = append(out, chunk{addr: addr, qty: n})
		addr += n
		qty -= n
	}
	return out
}

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
