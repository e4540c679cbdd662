package strategy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poliscout/poliscout/discover"
)

func TestFooterScrapeScoresPlacementAndPhrase(t *testing.T) {
	home := `<html><body>
	<p>Welcome. Read about <a href="/blog/privacy-matters">privacy in tech</a>.</p>
	<footer>
	<a href="/privacy-policy">Privacy Policy</a>
	<a href="/legal">Legal</a>
	<a href="https://other.example.org/privacy">Partner privacy</a>
	</footer>
	</body></html>`

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(home))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := &FooterScrape{Fetcher: newTestFetcher(srv.URL)}
	cands := s.Execute(context.Background(), "example.com", discover.TypePrivacy)

	if len(cands) != 2 {
		t.Fatalf("candidates = %d (%v), want 2", len(cands), cands)
	}

	best := cands[0]
	if best.URL != "https://example.com/privacy-policy" {
		t.Errorf("best URL = %q", best.URL)
	}
	// 70 base, +8 footer placement, +7 exact phrase
	if best.Confidence != 85 {
		t.Errorf("best Confidence = %d, want 85", best.Confidence)
	}
	if best.Source != discover.SourceFooterLink {
		t.Errorf("best Source = %v", best.Source)
	}

	// the in-body blog link matches the pattern but earns no bonuses
	if cands[1].Confidence != 70 {
		t.Errorf("second Confidence = %d, want 70", cands[1].Confidence)
	}
}

func TestFooterScrapeFallsBackToLegalHub(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<html><body><a href="/about">About us</a></body></html>`))
	})
	mux.HandleFunc("/legal", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><a href="/legal/privacy">Privacy Policy</a></body></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := &FooterScrape{Fetcher: newTestFetcher(srv.URL)}
	cands := s.Execute(context.Background(), "example.com", discover.TypePrivacy)

	if len(cands) != 1 {
		t.Fatalf("candidates = %d (%v), want 1", len(cands), cands)
	}
	if cands[0].URL != "https://example.com/legal/privacy" {
		t.Errorf("URL = %q", cands[0].URL)
	}
	if cands[0].Source != discover.SourceLegalPage {
		t.Errorf("Source = %v, want legal page", cands[0].Source)
	}
}

func TestFooterScrapeSkipsHubOnlyDestinations(t *testing.T) {
	home := `<html><body><footer>
	<a href="/privacy-center">Privacy Center</a>
	<a href="/legal/">Legal</a>
	</footer></body></html>`

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(home))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := &FooterScrape{Fetcher: newTestFetcher(srv.URL)}
	cands := s.Execute(context.Background(), "example.com", discover.TypePrivacy)

	for _, c := range cands {
		if c.URL == "https://example.com/privacy-center" || c.URL == "https://example.com/legal/" {
			t.Errorf("hub-only URL surfaced as a candidate: %q", c.URL)
		}
	}
}

func TestSameDomain(t *testing.T) {
	tests := []struct {
		host   string
		domain string
		want   bool
	}{
		{host: "example.com", domain: "example.com", want: true},
		{host: "www.example.com", domain: "example.com", want: true},
		{host: "legal.example.com", domain: "example.com", want: true},
		{host: "example.com", domain: "www.example.com", want: true},
		{host: "evil-example.com", domain: "example.com", want: false},
		{host: "example.org", domain: "example.com", want: false},
	}
	for _, tt := range tests {
		if got := sameDomain(tt.host, tt.domain); got != tt.want {
			t.Errorf("sameDomain(%q, %q) = %v, want %v", tt.host, tt.domain, got, tt.want)
		}
	}
}
