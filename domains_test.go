package logofetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"slices"
	"strings"
	"testing"
)

func TestDomainCandidates(t *testing.T) {
	t.Parallel()

	got := DomainCandidates("Acme Rockets")

	joined := slices.Index(got, "acmerockets.com")
	hyphened := slices.Index(got, "acme-rockets.com")
	if joined < 0 {
		t.Fatal("candidates missing acmerockets.com")
	}
	if hyphened < 0 {
		t.Fatal("candidates missing acme-rockets.com")
	}

	// Both .com forms of the base token precede every country-code
	// candidate, whatever token that candidate was derived from.
	firstCC := -1
	for i, c := range got {
		for _, cc := range countryTLDs {
			if strings.HasSuffix(c, "."+cc) {
				firstCC = i
				break
			}
		}
		if firstCC >= 0 {
			break
		}
	}
	if firstCC >= 0 {
		if joined > firstCC {
			t.Errorf("acmerockets.com at %d follows first country-code candidate %q at %d", joined, got[firstCC], firstCC)
		}
		if hyphened > firstCC {
			t.Errorf("acme-rockets.com at %d follows first country-code candidate %q at %d", hyphened, got[firstCC], firstCC)
		}
	}

	// Stable across repeated runs on identical input.
	if again := DomainCandidates("Acme Rockets"); !reflect.DeepEqual(got, again) {
		t.Error("candidate ordering not stable across runs")
	}

	// No duplicates.
	seen := make(map[string]bool, len(got))
	for _, c := range got {
		if seen[c] {
			t.Errorf("duplicate candidate %q", c)
		}
		seen[c] = true
	}

	// Prefix/suffix crossings present.
	for _, want := range []string{"getacmerockets.com", "acmerocketsapp.com", "rockets.com"} {
		if !slices.Contains(got, want) {
			t.Errorf("candidates missing %q", want)
		}
	}
}

func TestDomainCandidatesFoldsDiacritics(t *testing.T) {
	t.Parallel()

	got := DomainCandidates("Škoda")
	if !slices.Contains(got, "skoda.com") {
		t.Errorf("diacritics not folded: candidates = %v...", got[:min(len(got), 6)])
	}
}

func TestDomainCandidatesEmpty(t *testing.T) {
	t.Parallel()

	if got := DomainCandidates("!!!"); got != nil {
		t.Errorf("expected no candidates for punctuation-only brand, got %v", got)
	}
}

func TestVerifyDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		code int
		want bool
	}{
		{
			name: "brand word in title",
			body: "<html><head><title>Acme Rockets — official site</title></head></html>",
			code: http.StatusOK,
			want: true,
		},
		{
			name: "brand word in body only",
			body: "<html><body>Welcome to acme headquarters</body></html>",
			code: http.StatusOK,
			want: true,
		},
		{
			name: "parked page without brand words",
			body: "<html><body>This domain is for sale.</body></html>",
			code: http.StatusOK,
			want: false,
		},
		{
			name: "server error rejects candidate",
			body: "oops",
			code: http.StatusInternalServerError,
			want: false,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.code)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			cfg := testConfig(t, srv)
			got := cfg.VerifyDomain(context.Background(), "acmerockets.com", "Acme Rockets")
			if got != tc.want {
				t.Errorf("VerifyDomain = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDiscoverDomainShortCircuits(t *testing.T) {
	t.Parallel()

	var homepageHits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			homepageHits++
		}
		_, _ = w.Write([]byte("<html><title>Openly insurance</title></html>"))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv)
	got := cfg.DiscoverDomain(context.Background(), "Openly")
	if got != "openly.com" {
		t.Fatalf("DiscoverDomain = %q, want %q (first candidate)", got, "openly.com")
	}
	if homepageHits != 1 {
		t.Errorf("homepage fetched %d times, want 1 (short-circuit on first verified candidate)", homepageHits)
	}
}

func TestFoldASCII(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Škoda", "skoda"},
		{"Café", "cafe"},
		{"Acme!", "acme"},
		{"Über App", "uberapp"},
		{"123 Go", "123go"},
	}
	for _, tc := range tests {
		tc := tc
		if got := foldASCII(strings.ToLower(tc.in)); got != tc.want {
			t.Errorf("foldASCII(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
