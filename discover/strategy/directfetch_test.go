package strategy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poliscout/poliscout/discover"
)

func TestDirectFetchFindsPriorityPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/privacy-policy", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(policyPageHTML))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := &DirectFetch{Fetcher: newTestFetcher(srv.URL)}
	cands := s.Execute(context.Background(), "example.com", discover.TypePrivacy)

	if len(cands) != 1 {
		t.Fatalf("candidates = %d, want 1", len(cands))
	}
	c := cands[0]
	if c.URL != "https://example.com/privacy-policy" {
		t.Errorf("URL = %q", c.URL)
	}
	if c.Source != discover.SourceDirectFetch {
		t.Errorf("Source = %v", c.Source)
	}
	// 75 base, +10 URL keyword, +5 indicator density, +5 title match
	if c.Confidence != 95 {
		t.Errorf("Confidence = %d, want 95", c.Confidence)
	}
}

func TestDirectFetchRejectsThinContent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/privacy", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Read our privacy policy soon.</p></body></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := &DirectFetch{Fetcher: newTestFetcher(srv.URL)}
	cands := s.Execute(context.Background(), "example.com", discover.TypePrivacy)

	if len(cands) != 0 {
		t.Errorf("candidates = %v, want none for a one-indicator page", cands)
	}
}

func TestDirectFetchEmptySite(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	s := &DirectFetch{Fetcher: newTestFetcher(srv.URL)}
	cands := s.Execute(context.Background(), "example.com", discover.TypePrivacy)

	if len(cands) != 0 {
		t.Errorf("candidates = %v, want none", cands)
	}
}

func TestCountIndicators(t *testing.T) {
	body := []byte("We collect Personal Data and set cookies. Your privacy matters to third parties.")
	got := countIndicators(body, rulesByType[discover.TypePrivacy].Indicators)
	// personal data, cookies, your privacy, third parties
	if got != 4 {
		t.Errorf("countIndicators = %d, want 4", got)
	}
}
