// internal/source/solax/client.go
package solax

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tamzrod/solax-explain/internal/device"
)

const (
	contentType = "application/x-www-form-urlencoded"
	optType     = "ReadRealTimeData"

	// bodyLimit caps how much of a response is read.
	bodyLimit = 1 << 20
)

// StatusError is returned when the device answers with a non-200 status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("solax: unexpected status %d: %s", e.Code, e.Body)
}

// Config is the minimal local API config.
type Config struct {
	Host     string // IP address or host[:port]
	Password string // registration/serial number of the WiFi dongle or wallbox
	Timeout  time.Duration

	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Client reads the real-time block from the device's local web API.
// One Fetch is exactly one POST.
type Client struct {
	endpoint string
	password string
	http     *http.Client
}

// New validates config and builds a client. No I/O happens here.
func New(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		return nil, errors.New("solax: host required")
	}
	if cfg.Password == "" {
		return nil, errors.New("solax: password required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		endpoint: endpointURL(cfg.Host),
		password: cfg.Password,
		http:     hc,
	}, nil
}

func endpointURL(host string) string {
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return strings.TrimRight(host, "/") + "/"
	}
	return "http://" + strings.TrimRight(host, "/") + "/"
}

// response is the JSON envelope of ReadRealTimeData.
type response struct {
	SerialNo    string  `json:"sn"`
	Version     string  `json:"ver"`
	Type        any     `json:"type"`
	Data        []int64 `json:"Data"`
	Information []any   `json:"Information"`
}

// Fetch issues the POST and returns the register snapshot.
func (c *Client) Fetch(ctx context.Context) (*device.Snapshot, error) {
	form := url.Values{}
	form.Set("optType", optType)
	form.Set("pwd", c.password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("solax: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("solax: post %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, bodyLimit))
	if err != nil {
		return nil, fmt.Errorf("solax: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return parse(body, time.Now())
}

func parse(body []byte, at time.Time) (*device.Snapshot, error) {
	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("solax: decode response: %w", err)
	}
	if len(r.Data) == 0 {
		return nil, errors.New("solax: response has no Data")
	}

	registers := make([]uint16, len(r.Data))
	for i, v := range r.Data {
		if v < 0 || v > 0xFFFF {
			return nil, fmt.Errorf("solax: Data[%d]=%d does not fit in 16 bits", i, v)
		}
		registers[i] = uint16(v)
	}

	return &device.Snapshot{
		Registers: registers,
		Info:      device.ParseInformation(r.Information, r.Version),
		At:        at,
	}, nil
}
