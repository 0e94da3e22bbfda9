package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"chauffeur.local/gee"
	"chauffeur.local/internal/app/chatlog"
	"chauffeur.local/internal/platform/metrics"
)

const baseDir = "/srv/chatlogs"

func newEngine(t *testing.T) *gee.Engine {
	t.Helper()
	resolver := chatlog.NewPathResolver(baseDir, chatlog.DefaultLocation())
	resolver.Now = func() time.Time { return time.Date(2024, 6, 17, 21, 30, 0, 0, time.UTC) }
	formatter, err := chatlog.NewTimeFormatter(chatlog.DefaultLocation(), "")
	if err != nil {
		t.Fatalf("NewTimeFormatter: %v", err)
	}
	zones, err := chatlog.NewZoneCache(8)
	if err != nil {
		t.Fatalf("NewZoneCache: %v", err)
	}
	t.Cleanup(zones.Close)

	r := gee.New()
	RegisterAPIRoutes(r.Group("/api/v1"), &Handlers{Resolver: resolver, Formatter: formatter, Zones: zones}, nil)
	return r
}

func get(r http.Handler, path string, q url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path+"?"+q.Encode(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestLogPath(t *testing.T) {
	r := newEngine(t)

	cases := []struct {
		name      string
		q         url.Values
		wantDay   string
		wantInput string
	}{
		{"now is converted to kyiv", url.Values{}, "2024-06-18", "now"},
		{"aware instant is converted", url.Values{"date": {"2024-06-17T23:30:00-04:00"}}, "2024-06-18", "aware"},
		{"wall clock is not shifted", url.Values{"wall": {"2024-06-17T23:30:00"}}, "2024-06-17", "wallclock"},
		{"tz override", url.Values{"date": {"2024-06-18T02:00:00+03:00"}, "tz": {"America/New_York"}}, "2024-06-17", "aware"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(r, "/api/v1/logs/path", tc.q)
			if rec.Code != http.StatusOK {
				t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
			}
			var resp LogPathResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			want := filepath.Join(baseDir, "chat_"+tc.wantDay+".log")
			if resp.Path != want || resp.Input != tc.wantInput {
				t.Fatalf("got %+v, want path=%q input=%q", resp, want, tc.wantInput)
			}
		})
	}
}

func TestLogPath_CountsInputKind(t *testing.T) {
	r := newEngine(t)
	before := testutil.ToFloat64(metrics.LogPathResolutionsTotal.WithLabelValues("wallclock"))

	get(r, "/api/v1/logs/path", url.Values{"wall": {"2024-01-01T00:00:00"}})

	if got := testutil.ToFloat64(metrics.LogPathResolutionsTotal.WithLabelValues("wallclock")); got != before+1 {
		t.Fatalf("wallclock counter: got %v, want %v", got, before+1)
	}
}

func TestLogPath_BadRequests(t *testing.T) {
	r := newEngine(t)

	cases := map[string]url.Values{
		"both date and wall": {"date": {"2024-06-17T00:00:00Z"}, "wall": {"2024-06-17T00:00:00"}},
		"date not rfc3339":   {"date": {"17.06.2024"}},
		"bare date as wall":  {"wall": {"2024-06-17"}},
		"invalid wall":       {"wall": {"2024-02-30T10:00:00"}},
		"unknown tz":         {"tz": {"Mars/Olympus_Mons"}},
	}
	for name, q := range cases {
		t.Run(name, func(t *testing.T) {
			rec := get(r, "/api/v1/logs/path", q)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400 (body=%s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	r := newEngine(t)

	cases := []struct {
		name string
		q    url.Values
		want string
	}{
		{"default pattern", url.Values{"ts": {"1718625600"}}, "2024-06-17 15:00:00 +0300"},
		{"custom pattern", url.Values{"ts": {"1718625600"}, "pattern": {"%d-%m-%Y %H:%M"}}, "17-06-2024 15:00"},
		{"winter offset", url.Values{"ts": {"1704067200"}}, "2024-01-01 02:00:00 +0200"},
		{"fractional seconds", url.Values{"ts": {"1718625600.75"}}, "2024-06-17 15:00:00 +0300"},
		{"tz override", url.Values{"ts": {"1718625600"}, "tz": {"UTC"}}, "2024-06-17 12:00:00 +0000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(r, "/api/v1/time/format", tc.q)
			if rec.Code != http.StatusOK {
				t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
			}
			var resp FormatTimeResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Time != tc.want {
				t.Fatalf("time: got %q, want %q", resp.Time, tc.want)
			}
		})
	}
}

func TestFormatTime_BadRequests(t *testing.T) {
	r := newEngine(t)
	before := testutil.ToFloat64(metrics.TimestampFormatErrorsTotal)

	cases := map[string]url.Values{
		"missing ts":     {},
		"non numeric ts": {"ts": {"yesterday"}},
		"nan":            {"ts": {"NaN"}},
		"unknown verb":   {"ts": {"1718625600"}, "pattern": {"%Q"}},
	}
	for name, q := range cases {
		t.Run(name, func(t *testing.T) {
			rec := get(r, "/api/v1/time/format", q)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400 (body=%s)", rec.Code, rec.Body.String())
			}
		})
	}

	// missing ts 在进入格式化前就被拒绝，不计数
	if got := testutil.ToFloat64(metrics.TimestampFormatErrorsTotal); got != before+3 {
		t.Fatalf("format error counter: got %v, want %v", got, before+3)
	}
}
