// internal/source/solax/client_test.go
package solax

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const sampleBody = `{"sn":"SWABCDEFGH","ver":"3.008.10","type":14,
"Data":[2305,2311,2298,12,65526,0,280,65436,300,480],
"Information":[15.000,14,"H34A15I1234567",8,1.34,0,1.27,0,0.00,1]}`

func TestFetch_PostsFormAndParses(t *testing.T) {
	var gotMethod, gotCT, gotBody, gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotCT = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = io.WriteString(w, sampleBody)
	}))
	defer srv.Close()

	c, err := New(Config{Host: srv.URL, Password: "SWABCDEFGH", Timeout: time.Second})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	snap, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch err=%v", err)
	}

	if gotMethod != http.MethodPost {
		t.Fatalf("expected POST, got %s", gotMethod)
	}
	if gotPath != "/" {
		t.Fatalf("expected path /, got %q", gotPath)
	}
	if gotCT != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type %q", gotCT)
	}
	if gotBody != "optType=ReadRealTimeData&pwd=SWABCDEFGH" {
		t.Fatalf("unexpected body %q", gotBody)
	}

	if len(snap.Registers) != 10 {
		t.Fatalf("expected 10 registers, got %d", len(snap.Registers))
	}
	if snap.Registers[4] != 65526 {
		t.Fatalf("expected raw 65526, got %d", snap.Registers[4])
	}
	if snap.Info.MaxPower != "15" || snap.Info.Serial != "H34A15I1234567" || snap.Info.Firmware != "3.008.10" {
		t.Fatalf("unexpected info: %+v", snap.Info)
	}
	if snap.At.IsZero() {
		t.Fatalf("expected snapshot time")
	}
}

func TestFetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	c, err := New(Config{Host: srv.URL, Password: "x"})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	_, err = c.Fetch(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.Code != http.StatusForbidden || se.Body != "denied" {
		t.Fatalf("unexpected status error: %+v", se)
	}
}

func TestFetch_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "Error: password")
	}))
	defer srv.Close()

	c, _ := New(Config{Host: srv.URL, Password: "x"})
	if _, err := c.Fetch(context.Background()); err == nil {
		t.Fatalf("expected decode error, got nil")
	}
}

func TestFetch_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, sampleBody)
	}))
	defer srv.Close()

	c, _ := New(Config{Host: srv.URL, Password: "x"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Fetch(ctx); err == nil {
		t.Fatalf("expected error on canceled context, got nil")
	}
}

func TestParse_RejectsOutOfRangeRegister(t *testing.T) {
	_, err := parse([]byte(`{"Data":[1,65536]}`), time.Now())
	if err == nil || !strings.Contains(err.Error(), "Data[1]") {
		t.Fatalf("expected Data[1] range error, got %v", err)
	}

	_, err = parse([]byte(`{"Data":[-1]}`), time.Now())
	if err == nil {
		t.Fatalf("expected negative value error, got nil")
	}
}

func TestParse_EmptyData(t *testing.T) {
	if _, err := parse([]byte(`{"Data":[]}`), time.Now()); err == nil {
		t.Fatalf("expected empty data error, got nil")
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{Password: "x"}); err == nil {
		t.Fatalf("expected host error")
	}
	if _, err := New(Config{Host: "10.0.0.1"}); err == nil {
		t.Fatalf("expected password error")
	}
}

func TestEndpointURL(t *testing.T) {
	cases := map[string]string{
		"192.168.1.50":         "http://192.168.1.50/",
		"192.168.1.50:8080/":   "http://192.168.1.50:8080/",
		"http://inverter.lan":  "http://inverter.lan/",
		"https://inverter.lan": "https://inverter.lan/",
	}
	for in, want := range cases {
		if got := endpointURL(in); got != want {
			t.Fatalf("endpointURL(%q): expected %q, got %q", in, want, got)
		}
	}
}
