package strategy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poliscout/poliscout/discover"
	"github.com/poliscout/poliscout/discover/validate"
)

func TestSearchFallbackValidatesResults(t *testing.T) {
	results := `<html><body>
	<div class="result">
	<a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fprivacy-policy&rut=abc">Privacy Policy - Example</a>
	</div>
	<div class="result">
	<a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fother.example.org%2Fprivacy&rut=def">Unrelated</a>
	</div>
	</body></html>`

	mux := http.NewServeMux()
	mux.HandleFunc("/html/", func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "site:example.com privacy policy" {
			t.Errorf("query = %q", q)
		}
		w.Write([]byte(results))
	})
	mux.HandleFunc("/privacy-policy", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(policyPageHTML))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := &SearchFallback{
		Fetcher:   newTestFetcher(srv.URL),
		Validator: validate.New(),
	}
	cands := s.Execute(context.Background(), "example.com", discover.TypePrivacy)

	if len(cands) != 1 {
		t.Fatalf("candidates = %d (%v), want 1", len(cands), cands)
	}
	c := cands[0]
	if c.URL != "https://example.com/privacy-policy" {
		t.Errorf("URL = %q", c.URL)
	}
	if c.Source != discover.SourceSearchFallback {
		t.Errorf("Source = %v", c.Source)
	}
	if c.Confidence > searchMaxConfidence {
		t.Errorf("Confidence = %d, want <= %d", c.Confidence, searchMaxConfidence)
	}
}

func TestSearchFallbackRejectsInvalidContent(t *testing.T) {
	results := `<html><body>
	<a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fshop">Shop - Example</a>
	</body></html>`

	mux := http.NewServeMux()
	mux.HandleFunc("/html/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(results))
	})
	mux.HandleFunc("/shop", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Great sneakers. Add to cart. Free shipping.</p></body></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := &SearchFallback{
		Fetcher:   newTestFetcher(srv.URL),
		Validator: validate.New(),
	}
	if cands := s.Execute(context.Background(), "example.com", discover.TypePrivacy); len(cands) != 0 {
		t.Errorf("candidates = %v, want none", cands)
	}
}

func TestUnwrapRedirect(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{
			name: "uddg redirect",
			href: "//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fprivacy&rut=x",
			want: "https://example.com/privacy",
		},
		{
			name: "direct link",
			href: "https://example.com/privacy",
			want: "https://example.com/privacy",
		},
		{
			name: "no redirect param",
			href: "https://duckduckgo.com/l/?other=1",
			want: "https://duckduckgo.com/l/?other=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unwrapRedirect(tt.href); got != tt.want {
				t.Errorf("unwrapRedirect(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}
