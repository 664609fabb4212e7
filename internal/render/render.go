// internal/render/render.go
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tamzrod/solax-explain/internal/decoder"
	"github.com/tamzrod/solax-explain/internal/device"
)

// Legend is printed under the title of every report.
const Legend = "All attributes whose interpretation is known or which have a value other than 0 or 1 are displayed."

const rule = "---------------------------------------------"

// Header is everything printed above the data rows.
type Header struct {
	Title       string
	SerialLabel string // label of the credential line, e.g. "WiFi serial number"
	At          time.Time
	Host        string
	Password    string // the local API password is the device/dongle serial
	Info        device.Info
}

// WriteHeader writes the report preamble.
func WriteHeader(w io.Writer, h Header) error {
	label := h.SerialLabel
	if label == "" {
		label = "Serial number"
	}

	lines := []string{
		"",
		h.Title,
		Legend,
		"",
		field("Time", h.At.Format("2006-01-02 15:04:05 -0700")),
		field("IP address", h.Host),
		field(label, h.Password),
		field("Firmware version", h.Info.Firmware),
		field("Inverter max. power", h.Info.MaxPower+" KW"),
		"",
		field("Inverter serial no.", h.Info.Serial),
		"",
		field("Data attributes", ""),
		rule,
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func field(label, value string) string {
	return strings.TrimRight(fmt.Sprintf("%-20s: %s", label, value), " ")
}

// WriteRows writes one line per row.
func WriteRows(w io.Writer, rows []decoder.Row) error {
	for _, r := range rows {
		if _, err := io.WriteString(w, FormatRow(r)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// FormatRow renders: index (3, right), raw (6, right), value (8, right, blank
// when absent), unit (4, left), name.
func FormatRow(r decoder.Row) string {
	value := ""
	if r.Value != nil {
		value = FormatValue(*r.Value)
	}
	return fmt.Sprintf("%3d: %6d %8s %-4s %s", r.Index, r.Raw, value, r.Unit, r.Name)
}

// FormatValue prints a float with at least one fractional digit
// (230 -> "230.0", 13107.4 -> "13107.4") and exponent form for very large
// or very small magnitudes.
func FormatValue(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}

	if abs >= 1e16 || (abs != 0 && abs < 1e-4) {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		if mant, exp, ok := strings.Cut(s, "e"); ok && !strings.Contains(mant, ".") {
			s = mant + ".0e" + exp
		}
		return s
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
