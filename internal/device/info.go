// internal/device/info.go
package device

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Info is the device metadata reported next to the register block.
// It contains no logic beyond extraction.
type Info struct {
	MaxPower string // as reported, unit kW
	TypeCode string
	Serial   string
	Firmware string
}

// ParseInformation extracts Info from the vendor "Information" array.
// Missing or null slots are left empty.
func ParseInformation(info []any, firmware string) Info {
	out := Info{
		MaxPower: slot(info, SlotMaxPower),
		TypeCode: slot(info, SlotTypeCode),
		Serial:   slot(info, SlotSerial),
		Firmware: strings.TrimSpace(firmware),
	}

	if len(out.Serial) > SerialMaxChars {
		out.Serial = out.Serial[:SerialMaxChars]
	}
	return out
}

func slot(info []any, i int) string {
	if i >= len(info) || info[i] == nil {
		return ""
	}

	switch v := info[i].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
