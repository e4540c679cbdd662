package strategy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poliscout/poliscout/discover"
)

func TestStandardPathProbesHTMLPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/privacy", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := &StandardPath{Fetcher: newTestFetcher(srv.URL)}
	cands := s.Execute(context.Background(), "example.com", discover.TypePrivacy)

	if len(cands) != 1 {
		t.Fatalf("candidates = %d (%v), want 1", len(cands), cands)
	}
	c := cands[0]
	if c.URL != "https://example.com/privacy" {
		t.Errorf("URL = %q", c.URL)
	}
	if c.Confidence != standardPathConfidence {
		t.Errorf("Confidence = %d, want %d", c.Confidence, standardPathConfidence)
	}
	if c.Source != discover.SourceStandardPath {
		t.Errorf("Source = %v", c.Source)
	}
}

func TestStandardPathSkipsNonHTML(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/privacy", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := &StandardPath{Fetcher: newTestFetcher(srv.URL)}
	if cands := s.Execute(context.Background(), "example.com", discover.TypePrivacy); len(cands) != 0 {
		t.Errorf("candidates = %v, want none for a non-HTML resource", cands)
	}
}
