// internal/config/env.go
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment overrides.
const (
	EnvHost         = "SOLAX_HOST"
	EnvPassword     = "SOLAX_PASSWORD"
	EnvModel        = "SOLAX_MODEL"
	EnvMQTTURL      = "MQTT_URL"
	EnvMQTTUsername = "MQTT_USERNAME"
	EnvMQTTPassword = "MQTT_PASSWORD"
)

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// A missing file is not an error. Variables already set are kept.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// ApplyEnv overlays non-empty environment variables onto cfg.
func ApplyEnv(cfg *Config) {
	if cfg == nil {
		return
	}

	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	set(&cfg.Source.Host, EnvHost)
	set(&cfg.Source.Password, EnvPassword)
	set(&cfg.Device.Model, EnvModel)
	set(&cfg.MQTT.Broker, EnvMQTTURL)
	set(&cfg.MQTT.Username, EnvMQTTUsername)
	set(&cfg.MQTT.Password, EnvMQTTPassword)
}
