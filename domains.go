package logofetch

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Candidate domain generation inputs. Every generic-TLD crossing of
// every token is emitted before any country-code crossing.
var (
	domainPrefixes = []string{"", "get", "go", "my"}
	domainSuffixes = []string{"", "app", "group", "company"}
	genericTLDs    = []string{"com", "io", "net", "org", "co", "app"}
	countryTLDs    = []string{"de", "fr", "es", "it", "nl", "pl", "se", "lt"}
)

// foldASCII lowercases s, strips diacritics, and drops everything
// outside [a-z0-9].
func foldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}
	var b strings.Builder
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DomainCandidates generates candidate hostnames for brand, most likely
// first. The ordering is stable across runs on identical input, and
// duplicates are removed preserving first occurrence.
func DomainCandidates(brand string) []string {
	var words []string
	for _, w := range strings.Fields(brand) {
		if f := foldASCII(w); f != "" {
			words = append(words, f)
		}
	}
	if len(words) == 0 {
		return nil
	}

	// Base token, hyphen-joined multi-word form, then per-word tokens.
	tokens := []string{strings.Join(words, "")}
	if len(words) > 1 {
		tokens = append(tokens, strings.Join(words, "-"))
	}
	for _, w := range words {
		if utf8.RuneCountInString(w) >= minTokenRunes {
			tokens = append(tokens, w)
		}
	}

	seen := make(map[string]bool)
	var out []string
	add := func(host string) {
		if !seen[host] {
			seen[host] = true
			out = append(out, host)
		}
	}

	expand := func(tok string) []string {
		var hosts []string
		for _, p := range domainPrefixes {
			for _, s := range domainSuffixes {
				hosts = append(hosts, p+tok+s)
			}
		}
		return hosts
	}

	// Generic TLDs of all tokens first, country codes only after.
	for _, tok := range tokens {
		for _, e := range expand(tok) {
			for _, tld := range genericTLDs {
				add(e + "." + tld)
			}
		}
	}
	for _, tok := range tokens {
		for _, e := range expand(tok) {
			for _, tld := range countryTLDs {
				add(e + "." + tld)
			}
		}
	}
	return out
}

// probeHost issues a lightweight existence probe against host, HTTPS
// first with HTTP fallback. Transport failures and server-error
// statuses reject the candidate; anything the server answers coherently
// (including 404) counts as existing.
func (cfg *Config) probeHost(ctx context.Context, host string) (string, bool) {
	cfg.defaults()
	for _, scheme := range []string{"https", "http"} {
		pctx, cancel := context.WithTimeout(ctx, probeTimeout)
		req, err := http.NewRequestWithContext(pctx, http.MethodHead, scheme+"://"+host+"/", nil)
		if err != nil {
			cancel()
			continue
		}
		req.Header.Set("User-Agent", cfg.UserAgent)
		resp, err := cfg.HTTPClient.Do(req)
		cancel()
		if err != nil {
			continue
		}
		resp.Body.Close()
		if resp.StatusCode >= 500 {
			continue
		}
		return scheme, true
	}
	return "", false
}

// VerifyDomain accepts host only if its homepage title or body mentions
// a brand word token. This rejects parked and squatted domains, but the
// check is heuristic: an unrelated site that happens to mention a brand
// word passes it, and no bound on that false-positive rate is enforced.
func (cfg *Config) VerifyDomain(ctx context.Context, host, brand string) bool {
	scheme, ok := cfg.probeHost(ctx, host)
	if !ok {
		return false
	}
	res := cfg.fetch(ctx, scheme+"://"+host+"/", fetchOpts{maxBytes: homepageMaxBytes})
	if res == nil {
		return false
	}
	page := strings.ToLower(string(res.Data))
	for _, tok := range BrandTokens(brand) {
		if strings.Contains(page, tok) {
			return true
		}
	}
	return false
}

// DiscoverDomain guesses and verifies an official domain for brand when
// the entity resolver found none. It short-circuits on the first
// verified candidate; the full candidate space is never exhaustively
// probed when an early candidate succeeds. Returns "" when nothing
// verifies.
func (cfg *Config) DiscoverDomain(ctx context.Context, brand string) string {
	for _, host := range DomainCandidates(brand) {
		if ctx.Err() != nil {
			return ""
		}
		if cfg.VerifyDomain(ctx, host, brand) {
			slog.Info("logofetch: discovered domain", "brand", brand, "domain", host)
			return host
		}
	}
	return ""
}
