// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/solax-explain/internal/table"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	if cfg.Device.Table == "" {
		if cfg.Device.Model == "" {
			return errors.New("device: model or table required")
		}
		if _, err := table.ParseModel(cfg.Device.Model); err != nil {
			return fmt.Errorf("device: %w", err)
		}
	}

	// ------------------------------------------------------------
	// SOURCE
	// ------------------------------------------------------------

	s := cfg.Source
	if s.TimeoutMs < 0 {
		return fmt.Errorf("source: timeout_ms must be >= 0, got %d", s.TimeoutMs)
	}

	switch strings.ToLower(strings.TrimSpace(s.Kind)) {
	case "http", "":
		if strings.TrimSpace(s.Host) == "" {
			return errors.New("source: host required for http source")
		}
		if s.Password == "" {
			return errors.New("source: password (device serial number) required for http source")
		}
		if strings.HasPrefix(strings.TrimSpace(s.Host), "https://") {
			return errors.New("source: the local API is plain http; drop the https:// scheme")
		}

	case "modbus":
		if s.Modbus.Endpoint == "" {
			return errors.New("source: modbus.endpoint required for modbus source")
		}
		if !strings.Contains(s.Modbus.Endpoint, ":") {
			return fmt.Errorf("source: modbus.endpoint %q must be host:port", s.Modbus.Endpoint)
		}

	default:
		return fmt.Errorf("source: unknown kind %q (want http or modbus)", s.Kind)
	}

	// ------------------------------------------------------------
	// MQTT (opt-in)
	// ------------------------------------------------------------

	m := cfg.MQTT
	if !m.Enabled() {
		return nil
	}
	if !strings.Contains(m.Broker, "://") {
		return fmt.Errorf("mqtt: broker %q must include a scheme (tcp://, ssl://, ws://)", m.Broker)
	}
	if strings.ContainsAny(m.TopicPrefix, "+#") {
		return fmt.Errorf("mqtt: topic_prefix %q must not contain wildcards", m.TopicPrefix)
	}
	if m.Password != "" && m.Username == "" {
		return errors.New("mqtt: password set without username")
	}
	if m.TimeoutMs < 0 {
		return fmt.Errorf("mqtt: timeout_ms must be >= 0, got %d", m.TimeoutMs)
	}

	return nil
}
