// internal/publish/mqtt.go
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// API is the subset of mqtt.Client the publisher uses.
type API interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
	IsConnectionOpen() bool
}

// MQTTConfig is the runtime config of the MQTT publisher.
type MQTTConfig struct {
	TopicPrefix string
	Discovery   bool
	Retain      bool
	Timeout     time.Duration
}

// MQTTPublisher sends one state message per report, plus retained
// discovery configs for every named field with a physical value.
type MQTTPublisher struct {
	api API
	cfg MQTTConfig
}

const qos = 1

func NewMQTTPublisher(api API, cfg MQTTConfig) *MQTTPublisher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &MQTTPublisher{api: api, cfg: cfg}
}

// fieldState is one decoded row in the state payload.
type fieldState struct {
	Raw   int64    `json:"raw"`
	Value *float64 `json:"value,omitempty"`
	Unit  string   `json:"unit,omitempty"`
	Name  string   `json:"name,omitempty"`
}

type statePayload struct {
	Ts       int64                 `json:"ts"`
	Model    string                `json:"model"`
	Serial   string                `json:"serial,omitempty"`
	Firmware string                `json:"firmware,omitempty"`
	Fields   map[string]fieldState `json:"fields"`
}

// DeviceID is the topic segment identifying the device.
func DeviceID(r Report) string {
	if id := sanitize(r.Info.Serial); id != "" {
		return id
	}
	if id := sanitize(r.Host); id != "" {
		return id
	}
	return sanitize(string(r.Model))
}

// StateTopic is where the decoded snapshot of a device is published.
func (p *MQTTPublisher) StateTopic(r Report) string {
	return p.cfg.TopicPrefix + "/" + DeviceID(r) + "/state"
}

// Publish delivers the report. Discovery failures do not stop the state
// message; all errors are joined.
func (p *MQTTPublisher) Publish(ctx context.Context, r Report) error {
	var errs []string

	if p.cfg.Discovery {
		for _, e := range p.discovery(ctx, r) {
			errs = append(errs, e.Error())
		}
	}

	payload := statePayload{
		Ts:       r.At.Unix(),
		Model:    string(r.Model),
		Serial:   r.Info.Serial,
		Firmware: r.Info.Firmware,
		Fields:   make(map[string]fieldState, len(r.Rows)),
	}
	for _, row := range r.Rows {
		payload.Fields[FieldKey(row.Index)] = fieldState{
			Raw:   row.Raw,
			Value: row.Value,
			Unit:  row.Unit,
			Name:  row.Name,
		}
	}

	b, err := json.Marshal(payload)
	if err != nil {
		errs = append(errs, fmt.Sprintf("publish: marshal state: %v", err))
	} else if err := p.send(ctx, p.StateTopic(r), p.cfg.Retain, b); err != nil {
		errs = append(errs, fmt.Sprintf("publish: state: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, " | "))
	}
	return nil
}

func (p *MQTTPublisher) discovery(ctx context.Context, r Report) []error {
	id := DeviceID(r)
	dev := &Device{
		Identifiers:  []string{id},
		Manufacturer: "Solax",
		Model:        r.Title,
		Name:         "Solax " + id,
		SWVersion:    r.Info.Firmware,
	}

	var errs []error
	for _, row := range r.Rows {
		if row.Name == "" || row.Value == nil {
			continue
		}

		key := FieldKey(row.Index)
		class, stateClass := deviceClass(row.Unit)
		cfg := &SensorConfig{
			Name:        row.Name,
			UniqueID:    id + "_" + key,
			StateTopic:  p.StateTopic(r),
			ValueTpl:    fmt.Sprintf("{{ value_json.fields.%s.value }}", key),
			DeviceClass: class,
			StateClass:  stateClass,
			UnitOfMeas:  row.Unit,
			Device:      dev,
		}

		b, err := cfg.Marshal()
		if err != nil {
			errs = append(errs, fmt.Errorf("publish: marshal discovery %s: %w", key, err))
			continue
		}
		if err := p.send(ctx, TopicSensorConfig(key, id), true, b); err != nil {
			errs = append(errs, fmt.Errorf("publish: discovery %s: %w", key, err))
		}
	}
	return errs
}

func (p *MQTTPublisher) send(ctx context.Context, topic string, retain bool, payload []byte) error {
	t := p.api.Publish(topic, qos, retain, payload)

	timer := time.NewTimer(p.cfg.Timeout)
	defer timer.Stop()

	select {
	case <-t.Done():
		return t.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return fmt.Errorf("timeout after %s on %s", p.cfg.Timeout, topic)
	}
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	if p.api.IsConnectionOpen() {
		p.api.Disconnect(250)
	}
}
