// internal/config/normalize.go
package config

import "strings"

const (
	DefaultTimeoutMs   = 5000
	DefaultClientID    = "solax-explain"
	DefaultTopicPrefix = "solax"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Device.Model = strings.ToLower(strings.TrimSpace(cfg.Device.Model))
	cfg.Source.Kind = strings.ToLower(strings.TrimSpace(cfg.Source.Kind))
	if cfg.Source.Kind == "" {
		cfg.Source.Kind = "http"
	}

	// host: bare "ip[:port]", no scheme, no trailing slash
	h := strings.TrimSpace(cfg.Source.Host)
	h = strings.TrimPrefix(h, "http://")
	h = strings.TrimRight(h, "/")
	cfg.Source.Host = h

	if cfg.Source.TimeoutMs == 0 {
		cfg.Source.TimeoutMs = DefaultTimeoutMs
	}

	if !cfg.MQTT.Enabled() {
		return
	}
	if cfg.MQTT.ClientID == "" {
		cfg.MQTT.ClientID = DefaultClientID
	}
	if cfg.MQTT.TopicPrefix == "" {
		cfg.MQTT.TopicPrefix = DefaultTopicPrefix
	}
	cfg.MQTT.TopicPrefix = strings.Trim(cfg.MQTT.TopicPrefix, "/")
	if cfg.MQTT.TimeoutMs == 0 {
		cfg.MQTT.TimeoutMs = DefaultTimeoutMs
	}
}
