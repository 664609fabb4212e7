// internal/regs/regs.go
package regs

import "fmt"

// Width is the bit width of a register value.
type Width int

const (
	W16 Width = 16
	W32 Width = 32
)

// Valid reports whether w is a supported register width.
func (w Width) Valid() bool {
	return w == W16 || w == W32
}

// Signed reinterprets v as a two's-complement value of width w.
// Values above 2^(w-1)-1 wrap to v-2^w; all others are returned unchanged.
//
// Precondition: w is W16 or W32 and v < 2^w.
// Violations are caller bugs and panic.
func Signed(v uint32, w Width) int64 {
	switch w {
	case W16:
		if v > 0xFFFF {
			panic(fmt.Sprintf("regs: value %d does not fit in 16 bits", v))
		}
		if v > 0x7FFF {
			return int64(v) - 1<<16
		}
		return int64(v)

	case W32:
		if v > 0x7FFFFFFF {
			return int64(v) - 1<<32
		}
		return int64(v)

	default:
		panic(fmt.Sprintf("regs: unsupported width %d", w))
	}
}

// Signed16 is Signed(v, W16).
func Signed16(v uint16) int64 {
	return Signed(uint32(v), W16)
}

// Signed32 is Signed(v, W32).
func Signed32(v uint32) int64 {
	return Signed(v, W32)
}

// Combine merges a register pair into one 32-bit value.
// Vendor order: low register first, high register second.
func Combine(low, high uint16) uint32 {
	return uint32(high)<<16 | uint32(low)
}
