// internal/publish/discovery.go
package publish

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Device is the Home Assistant device block.
type Device struct {
	Identifiers  []string `json:"identifiers,omitempty"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	Model        string   `json:"model,omitempty"`
	Name         string   `json:"name,omitempty"`
	SWVersion    string   `json:"sw_version,omitempty"`
}

// SensorConfig is a Home Assistant MQTT discovery payload.
type SensorConfig struct {
	Name        string  `json:"name"`
	UniqueID    string  `json:"unique_id"`
	StateTopic  string  `json:"state_topic"`
	ValueTpl    string  `json:"value_template,omitempty"`
	DeviceClass string  `json:"device_class,omitempty"`
	StateClass  string  `json:"state_class,omitempty"`
	UnitOfMeas  string  `json:"unit_of_measurement,omitempty"`
	Device      *Device `json:"device,omitempty"`
}

func (c *SensorConfig) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

// TopicSensorConfig is the retained discovery topic of one field.
func TopicSensorConfig(field, unique string) string {
	return fmt.Sprintf("homeassistant/sensor/%s/%s/config", unique, field)
}

var nonIdent = regexp.MustCompile(`[^a-zA-Z0-9_]+`)

func sanitize(s string) string {
	return strings.Trim(strings.ToLower(nonIdent.ReplaceAllString(s, "_")), "_")
}

// FieldKey is the stable JSON key of a register field.
func FieldKey(index int) string {
	return fmt.Sprintf("r%03d", index)
}

// deviceClass maps display units to Home Assistant classes.
func deviceClass(unit string) (class, state string) {
	switch unit {
	case "V":
		return "voltage", "measurement"
	case "A":
		return "current", "measurement"
	case "W":
		return "power", "measurement"
	case "kWh":
		return "energy", "total_increasing"
	case "Hz":
		return "frequency", "measurement"
	case "°C":
		return "temperature", "measurement"
	case "%":
		return "battery", "measurement"
	default:
		return "", ""
	}
}
