// internal/explain/explain_test.go
package explain

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/tamzrod/solax-explain/internal/decoder"
	"github.com/tamzrod/solax-explain/internal/device"
	"github.com/tamzrod/solax-explain/internal/mocks"
	"github.com/tamzrod/solax-explain/internal/publish"
	"github.com/tamzrod/solax-explain/internal/regs"
	"github.com/tamzrod/solax-explain/internal/table"
)

func testTable() *table.Table {
	return &table.Table{
		Model:       table.ModelHybrid,
		Title:       "Test inverter",
		Length:      4,
		SerialLabel: "WiFi serial number",
		Fields: []table.Descriptor{
			{Index: 0, Width: regs.W16, Divisor: table.Div(10), Unit: "V", Name: "Voltage"},
			{Index: 1, Width: regs.W32, Signed: true, Divisor: table.Div(1), Unit: "W", Name: "Power"},
			{Index: 3, Width: regs.W16},
		},
	}
}

func snapshot(registers ...uint16) *device.Snapshot {
	return &device.Snapshot{
		Registers: registers,
		Info:      device.Info{MaxPower: "10.0", Serial: "H34A15I1234567", Firmware: "3.008.10"},
		At:        time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRun_RendersAndPublishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockFetcher(ctrl)
	pub := mocks.NewMockPublisher(ctrl)

	fetcher.EXPECT().Fetch(gomock.Any()).Return(snapshot(2305, 64336, 65535, 1), nil)

	var published publish.Report
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r publish.Report) error {
			published = r
			return nil
		})

	var out bytes.Buffer
	r := New(fetcher, testTable(), pub, &out, Options{Host: "192.168.1.50", Password: "SWABCDEFGH"})

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run err=%v", err)
	}

	text := out.String()
	for _, want := range []string{
		"Test inverter",
		"WiFi serial number  : SWABCDEFGH",
		"Inverter serial no. : H34A15I1234567",
		"  0:   2305    230.5 V    Voltage",
		"  1:  64336  -1200.0 W    Power",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, text)
		}
	}
	// raw 1 on an unnamed field is hidden
	if strings.Contains(text, "  3: ") {
		t.Fatalf("expected index 3 to be hidden, got:\n%s", text)
	}

	if published.Model != table.ModelHybrid || published.Host != "192.168.1.50" {
		t.Fatalf("unexpected published report: %+v", published)
	}
	if len(published.Rows) != 2 {
		t.Fatalf("expected 2 published rows, got %d", len(published.Rows))
	}
}

func TestRun_FetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockFetcher(ctrl)
	pub := mocks.NewMockPublisher(ctrl)

	boom := errors.New("connection refused")
	fetcher.EXPECT().Fetch(gomock.Any()).Return(nil, boom)

	var out bytes.Buffer
	err := New(fetcher, testTable(), pub, &out, Options{}).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestRun_OutOfRangeWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockFetcher(ctrl)
	pub := mocks.NewMockPublisher(ctrl)

	fetcher.EXPECT().Fetch(gomock.Any()).Return(snapshot(2305, 1), nil)

	var out bytes.Buffer
	err := New(fetcher, testTable(), pub, &out, Options{}).Run(context.Background())
	if !errors.Is(err, decoder.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}

	var oor *decoder.OutOfRangeError
	if !errors.As(err, &oor) || oor.Length != 2 {
		t.Fatalf("expected OutOfRangeError with length 2, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no partial output, got %q", out.String())
	}
}

func TestRun_PublishErrorAfterOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockFetcher(ctrl)
	pub := mocks.NewMockPublisher(ctrl)

	fetcher.EXPECT().Fetch(gomock.Any()).Return(snapshot(2305, 0, 0, 0), nil)
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	var out bytes.Buffer
	err := New(fetcher, testTable(), pub, &out, Options{}).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "broker down") {
		t.Fatalf("expected publish error, got %v", err)
	}
	if out.Len() == 0 {
		t.Fatalf("expected the report to be written before publishing")
	}
}
