package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/morikuni/failure/v2"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.BackoffBase = time.Millisecond
	cfg.RetryAfterDefault = time.Millisecond
	cfg.RateInterval = time.Millisecond
	return cfg
}

func testFetcher(cfg Config) *Fetcher {
	return New(cfg, NewRateLimiter(cfg.RateInterval))
}

func TestFetchRecoversFrom429(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("<html><body>privacy policy content</body></html>"))
	}))
	defer srv.Close()

	f := testFetcher(testConfig())
	res, err := f.Fetch(context.Background(), srv.URL+"/privacy")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", res.StatusCode)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("request count = %d, want 3", got)
	}
}

func TestFetchExhausts429Retries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := testFetcher(testConfig())
	_, err := f.Fetch(context.Background(), srv.URL+"/privacy")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !failure.Is(err, ErrRateLimited) {
		t.Errorf("error = %v, want code %v", err, ErrRateLimited)
	}
}

func TestFetchExhaustsServerErrorRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := testConfig()
	f := testFetcher(cfg)
	_, err := f.Fetch(context.Background(), srv.URL+"/privacy")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !failure.Is(err, ErrUpstreamServer) {
		t.Errorf("error = %v, want code %v", err, ErrUpstreamServer)
	}
	if got := calls.Load(); got != int32(cfg.MaxAttempts) {
		t.Errorf("request count = %d, want %d", got, cfg.MaxAttempts)
	}
}

func TestFetchRotatesUserAgentsOn403(t *testing.T) {
	aggressiveAntiBotDomains["127.0.0.1"] = true
	defer delete(aggressiveAntiBotDomains, "127.0.0.1")

	var mu sync.Mutex
	agents := map[string]bool{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		agents[r.Header.Get("User-Agent")] = true
		mu.Unlock()
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := testFetcher(testConfig())
	_, err := f.Fetch(context.Background(), srv.URL+"/privacy")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !failure.Is(err, ErrForbidden) {
		t.Errorf("error = %v, want code %v", err, ErrForbidden)
	}
	if len(agents) != len(browserUserAgents) {
		t.Errorf("distinct user agents tried = %d, want %d", len(agents), len(browserUserAgents))
	}
}

func TestFetchDetectsLoginWall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><form><input type="password" name="pw"></form></body></html>`))
	}))
	defer srv.Close()

	f := testFetcher(testConfig())
	_, err := f.Fetch(context.Background(), srv.URL+"/privacy")
	if !failure.Is(err, ErrAuthWall) {
		t.Errorf("error = %v, want code %v", err, ErrAuthWall)
	}
}

func TestFetchRejectsBlockedURL(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	f := testFetcher(testConfig())
	_, err := f.Fetch(context.Background(), srv.URL+"/login")
	if !failure.Is(err, ErrInvalidTarget) {
		t.Errorf("error = %v, want code %v", err, ErrInvalidTarget)
	}
	if calls.Load() != 0 {
		t.Errorf("request count = %d, want 0", calls.Load())
	}
}

func TestFetchCorrectsLocaleRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/de/privacy", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>Datenschutzerklärung</body></html>"))
	})
	mux.HandleFunc("/en/privacy", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>Privacy Policy</body></html>"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := testFetcher(testConfig())
	res, err := f.Fetch(context.Background(), srv.URL+"/de/privacy")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if res.FinalURL != srv.URL+"/en/privacy" {
		t.Errorf("FinalURL = %q, want %q", res.FinalURL, srv.URL+"/en/privacy")
	}
	if !res.LocaleCorrected {
		t.Error("LocaleCorrected = false, want true")
	}
}

func TestFetchKeepsLocaleWhenNoEnglishVariant(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/de/privacy", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>Datenschutzerklärung</body></html>"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := testFetcher(testConfig())
	res, err := f.Fetch(context.Background(), srv.URL+"/de/privacy")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !res.LocaleFlagged {
		t.Error("LocaleFlagged = false, want true")
	}
	if res.FinalURL != srv.URL+"/de/privacy" {
		t.Errorf("FinalURL = %q, want the localized original", res.FinalURL)
	}
}

func TestRetryAfterHeader(t *testing.T) {
	def := 5 * time.Second
	limit := 60 * time.Second

	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "empty uses default", value: "", want: def},
		{name: "seconds", value: "7", want: 7 * time.Second},
		{name: "capped", value: "600", want: limit},
		{name: "garbage uses default", value: "soon", want: def},
		{name: "negative uses default", value: "-3", want: def},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryAfterHeader(tt.value, def, limit); got != tt.want {
				t.Errorf("retryAfterHeader(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestHeadProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s, want HEAD", r.Method)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}))
	defer srv.Close()

	f := testFetcher(testConfig())
	res, err := f.Head(context.Background(), srv.URL+"/privacy")
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", res.StatusCode)
	}
	if res.ContentType != "text/html; charset=utf-8" {
		t.Errorf("ContentType = %q", res.ContentType)
	}
}
