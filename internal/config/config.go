// internal/config/config.go
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Device DeviceConfig `yaml:"device"`
	Source SourceConfig `yaml:"source"`
	MQTT   MQTTConfig   `yaml:"mqtt"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Model string `yaml:"model"` // wallbox | hybrid (aliases accepted)
	Table string `yaml:"table"` // optional custom descriptor table (YAML)
}

// ---- SOURCE ----

type SourceConfig struct {
	Kind      string `yaml:"kind"` // http | modbus
	Host      string `yaml:"host"`
	Password  string `yaml:"password"`
	TimeoutMs int    `yaml:"timeout_ms"`

	Modbus ModbusConfig `yaml:"modbus"`
}

type ModbusConfig struct {
	Endpoint string `yaml:"endpoint"`
	UnitID   uint8  `yaml:"unit_id"`
	Address  uint16 `yaml:"address"`
	Input    bool   `yaml:"input"` // FC 4 instead of FC 3
}

// ---- MQTT (optional sink) ----

type MQTTConfig struct {
	Broker      string `yaml:"broker"` // empty disables publishing
	ClientID    string `yaml:"client_id"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	TopicPrefix string `yaml:"topic_prefix"`
	Discovery   bool   `yaml:"discovery"` // Home Assistant discovery configs
	Retain      bool   `yaml:"retain"`
	TimeoutMs   int    `yaml:"timeout_ms"`
}

// Enabled reports whether the MQTT sink is configured.
func (m MQTTConfig) Enabled() bool {
	return m.Broker != ""
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{Model: "hybrid"},
		Source: SourceConfig{Kind: "http"},
	}
}

// Load reads a YAML config file on top of Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}
