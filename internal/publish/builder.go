// internal/publish/builder.go
package publish

import (
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/tamzrod/solax-explain/internal/config"
)

// Build connects the configured sink.
// With no broker configured it returns Nop.
// The returned cleanup disconnects from the broker.
func Build(c config.MQTTConfig) (Publisher, func(), error) {
	if !c.Enabled() {
		return Nop{}, func() {}, nil
	}

	timeout := time.Duration(c.TimeoutMs) * time.Millisecond

	opts := mqtt.NewClientOptions().
		AddBroker(c.Broker).
		SetClientID(c.ClientID).
		SetConnectTimeout(timeout).
		SetAutoReconnect(false).
		SetOrderMatters(false)

	if c.Username != "" {
		opts.SetUsername(c.Username)
		opts.SetPassword(c.Password)
	}
	if strings.HasPrefix(c.Broker, "ssl://") || strings.HasPrefix(c.Broker, "tls://") {
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	client := mqtt.NewClient(opts)
	t := client.Connect()
	if ok := t.WaitTimeout(timeout); !ok {
		return nil, nil, fmt.Errorf("publish: mqtt connect %s: timeout after %s", c.Broker, timeout)
	}
	if err := t.Error(); err != nil {
		return nil, nil, fmt.Errorf("publish: mqtt connect %s: %w", c.Broker, err)
	}

	p := NewMQTTPublisher(client, MQTTConfig{
		TopicPrefix: c.TopicPrefix,
		Discovery:   c.Discovery,
		Retain:      c.Retain,
		Timeout:     timeout,
	})
	return p, p.Close, nil
}
