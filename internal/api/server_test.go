package api

import (
	"bufio"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/smazurov/lighthal/internal/api/models"
	"github.com/smazurov/lighthal/internal/events"
	"github.com/smazurov/lighthal/internal/hw"
	"github.com/smazurov/lighthal/internal/lights"
	"github.com/smazurov/lighthal/internal/power"
)

var quietLog = slog.New(slog.NewTextHandler(io.Discard, nil))

type stubBattery struct {
	battery power.Battery
	err     error
}

func (s stubBattery) Battery() (power.Battery, error) { return s.battery, s.err }

func newTestServer(t *testing.T, mutate func(*Options)) *httptest.Server {
	t.Helper()
	bus := events.New()
	opts := &Options{
		Device:   lights.NewDevice(hw.NewNoop(quietLog), hw.Paths{}, lights.WithLogger(quietLog), lights.WithBus(bus)),
		Battery:  stubBattery{battery: power.Battery{Capacity: 57, Status: power.StatusCharging}},
		EventBus: bus,
		PrometheusHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("# metrics\n"))
		}),
	}
	if mutate != nil {
		mutate(opts)
	}
	ts := httptest.NewServer(NewServer(opts).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string, header http.Header) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatal(err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestHealthAndVersion(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := do(t, http.MethodGet, ts.URL+"/api/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d", resp.StatusCode)
	}
	if got := decode[models.HealthData](t, resp); got.Status != "ok" {
		t.Errorf("health = %+v", got)
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/version", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("version status = %d", resp.StatusCode)
	}
	if got := decode[models.VersionData](t, resp); got.Version == "" || got.GoVersion == "" {
		t.Errorf("version = %+v", got)
	}
}

func TestSetLightAndSnapshot(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := do(t, http.MethodPost, ts.URL+"/api/lights/battery", `{"color":"#00ff0000"}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("set battery status = %d", resp.StatusCode)
	}
	result := decode[models.SetLightResult](t, resp)
	if result.Code != 0 || result.Color != "#00ff0000" || result.Light != "battery" {
		t.Errorf("result = %+v", result)
	}

	do(t, http.MethodPost, ts.URL+"/api/lights/notifications", `{"color":"ff0000","flash_mode":"timed","flash_on_ms":500,"flash_off_ms":1000}`, nil)
	do(t, http.MethodPost, ts.URL+"/api/lights/backlight", `{"color":"#808080"}`, nil)

	resp = do(t, http.MethodGet, ts.URL+"/api/lights", "", nil)
	snap := decode[models.LightsData](t, resp)
	if snap.Winner != "notification" {
		t.Errorf("winner = %q, want notification", snap.Winner)
	}
	if len(snap.Active) != 2 || snap.Active[0] != "notification" || snap.Active[1] != "battery" {
		t.Errorf("active = %v", snap.Active)
	}
	if snap.Backlight == nil || *snap.Backlight != 128 {
		t.Errorf("backlight = %v, want 128", snap.Backlight)
	}
	if len(snap.Sources) != 4 {
		t.Fatalf("sources = %d, want 4", len(snap.Sources))
	}
	n := snap.Sources[0]
	if n.Source != "notification" || n.FlashMode != "timed" || n.FlashOnMS != 500 || n.Brightness != 255 || !n.Active {
		t.Errorf("notification source = %+v", n)
	}
}

func TestSetLightValidation(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"unknown light", "/api/lights/keyboard", `{"color":"#ff0000"}`},
		{"bad color", "/api/lights/battery", `{"color":"red"}`},
		{"bad flash mode", "/api/lights/battery", `{"color":"#ff0000","flash_mode":"strobe"}`},
		{"negative flash", "/api/lights/battery", `{"color":"#ff0000","flash_on_ms":-1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+tt.path, tt.body, nil)
			if resp.StatusCode != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422", resp.StatusCode)
			}
		})
	}
}

func TestSetLightHardwareFailureIsAdvisory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	paths := hw.Paths{
		Backlight: filepath.Join(missing, "brightness"),
		Selector:  filepath.Join(missing, "outn"),
		BlinkMode: filepath.Join(missing, "blink_mode"),
		Grade:     filepath.Join(missing, "grade_parameter"),
	}
	ts := newTestServer(t, func(o *Options) {
		o.Device = lights.NewDevice(hw.NewSysfs(quietLog), paths, lights.WithLogger(quietLog))
	})

	resp := do(t, http.MethodPost, ts.URL+"/api/lights/attention", `{"color":"#ff0000"}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	result := decode[models.SetLightResult](t, resp)
	if result.Code != -int(syscall.ENOENT) || result.Error == "" {
		t.Errorf("result = %+v", result)
	}

	snap := decode[models.LightsData](t, do(t, http.MethodGet, ts.URL+"/api/lights", "", nil))
	if snap.Winner != "attention" {
		t.Errorf("winner = %q, want attention", snap.Winner)
	}
}

func TestBattery(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := do(t, http.MethodGet, ts.URL+"/api/power/battery", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	got := decode[models.BatteryData](t, resp)
	if got.Capacity != 57 || !got.Charging {
		t.Errorf("battery = %+v", got)
	}

	ts = newTestServer(t, func(o *Options) { o.Battery = stubBattery{err: errors.New("no battery")} })
	resp = do(t, http.MethodGet, ts.URL+"/api/power/battery", "", nil)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}

	ts = newTestServer(t, func(o *Options) { o.Battery = nil })
	resp = do(t, http.MethodGet, ts.URL+"/api/power/battery", "", nil)
	if resp.StatusCode == http.StatusOK {
		t.Error("battery route should not exist without a reader")
	}
}

func basic(user, pass string) string {
	return base64.StdEncoding.EncodeToString([]byte(user + ":" + pass))
}

func TestBasicAuth(t *testing.T) {
	ts := newTestServer(t, func(o *Options) {
		o.AuthUsername = "admin"
		o.AuthPassword = "secret"
	})

	tests := []struct {
		name   string
		url    string
		header http.Header
		want   int
	}{
		{"health is public", "/api/health", nil, http.StatusOK},
		{"no credentials", "/api/lights", nil, http.StatusUnauthorized},
		{"wrong scheme", "/api/lights", http.Header{"Authorization": {"Bearer x"}}, http.StatusUnauthorized},
		{"wrong password", "/api/lights", http.Header{"Authorization": {"Basic " + basic("admin", "nope")}}, http.StatusUnauthorized},
		{"not base64", "/api/lights", http.Header{"Authorization": {"Basic !!!"}}, http.StatusUnauthorized},
		{"header", "/api/lights", http.Header{"Authorization": {"Basic " + basic("admin", "secret")}}, http.StatusOK},
		{"query", "/api/lights?auth=" + basic("admin", "secret"), nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodGet, ts.URL+tt.url, "", tt.header)
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
			if tt.want == http.StatusUnauthorized && resp.Header.Get("WWW-Authenticate") == "" {
				t.Error("missing WWW-Authenticate header")
			}
		})
	}
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, func(o *Options) { o.CORSOrigin = "http://panel.local" })

	resp := do(t, http.MethodOptions, ts.URL+"/api/lights/battery", "", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://panel.local" {
		t.Errorf("preflight origin = %q", got)
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/health", "", nil)
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://panel.local" {
		t.Errorf("origin = %q", got)
	}
}

func TestMetricsMounted(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := do(t, http.MethodGet, ts.URL+"/metrics", "", nil)
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "# metrics") {
		t.Errorf("metrics status=%d body=%q", resp.StatusCode, body)
	}
}

func TestEventStream(t *testing.T) {
	var device *lights.Device
	ts := newTestServer(t, func(o *Options) { device = o.Device })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/events", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("content type = %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	waitFor := func(event string) {
		t.Helper()
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				t.Fatalf("stream ended before %s: %v", event, err)
			}
			if strings.TrimSpace(line) == "event: "+event {
				return
			}
		}
	}

	waitFor("winner-changed")

	if err := device.SetAttention(lights.State{Color: 0x00FF0000}); err != nil {
		t.Fatal(err)
	}
	waitFor("light-requested")
}
