package discover

import "testing"

func TestClampConfidence(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{in: -10, want: 0},
		{in: 0, want: 0},
		{in: 55, want: 55},
		{in: 100, want: 100},
		{in: 140, want: 100},
	}
	for _, tt := range tests {
		if got := ClampConfidence(tt.in); got != tt.want {
			t.Errorf("ClampConfidence(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lowercases scheme and host",
			in:   "HTTPS://Example.COM/privacy",
			want: "https://example.com/privacy",
		},
		{
			name: "keeps path case",
			in:   "https://example.com/Privacy",
			want: "https://example.com/Privacy",
		},
		{
			name: "strips trailing slash",
			in:   "https://example.com/privacy/",
			want: "https://example.com/privacy",
		},
		{
			name: "drops fragment",
			in:   "https://example.com/privacy#section-2",
			want: "https://example.com/privacy",
		},
		{
			name: "keeps query",
			in:   "https://example.com/help?page=privacy",
			want: "https://example.com/help?page=privacy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalURL(tt.in); got != tt.want {
				t.Errorf("CanonicalURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDocumentTypeFromString(t *testing.T) {
	if dt, ok := DocumentTypeFromString("  Privacy "); !ok || dt != TypePrivacy {
		t.Errorf("DocumentTypeFromString(privacy) = %v, %v", dt, ok)
	}
	if dt, ok := DocumentTypeFromString("ACCEPTABLE_USE"); !ok || dt != TypeAcceptableUse {
		t.Errorf("DocumentTypeFromString(acceptable_use) = %v, %v", dt, ok)
	}
	if _, ok := DocumentTypeFromString("warranty"); ok {
		t.Error("DocumentTypeFromString(warranty) = ok, want unknown")
	}
}

func TestSpecialTableLookup(t *testing.T) {
	table := DefaultSpecialTable()

	u, ok := table.Lookup("facebook.com", TypePrivacy)
	if !ok || u == "" {
		t.Fatalf("Lookup(facebook.com) = %q, %v", u, ok)
	}
	if wu, ok := table.Lookup("www.facebook.com", TypePrivacy); !ok || wu != u {
		t.Errorf("Lookup(www.facebook.com) = %q, %v, want %q", wu, ok, u)
	}
	if _, ok := table.Lookup("facebook.com", TypeAI); ok {
		t.Error("Lookup(facebook.com, ai) = ok, want miss")
	}
	if _, ok := table.Lookup("example.com", TypePrivacy); ok {
		t.Error("Lookup(example.com) = ok, want miss")
	}
}
