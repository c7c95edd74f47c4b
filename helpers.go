package logofetch

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

var ogImageRe = regexp.MustCompile(
	`(?i)<meta\s+[^>]*property=["']og:image["'][^>]*content=["']([^"']+)["']|` +
		`<meta\s+[^>]*content=["']([^"']+)["'][^>]*property=["']og:image["']`,
)

// ExtractOGImageURL pulls the first og:image URL from raw HTML.
// Returns empty string if not found.
func ExtractOGImageURL(pageHTML string) string {
	m := ogImageRe.FindStringSubmatch(pageHTML)
	if m == nil {
		return ""
	}
	img := m[1]
	if img == "" {
		img = m[2]
	}
	if img == "" {
		return ""
	}
	return html.UnescapeString(img)
}

// isSameOrSubdomain reports whether rawURL's host equals domain or is a
// subdomain of it. This is the host check behind every official=true
// authority decision based on provenance.
func isSameOrSubdomain(rawURL, domain string) bool {
	if domain == "" {
		return false
	}
	host := hostOf(rawURL)
	if host == "" {
		return false
	}
	domain = strings.ToLower(domain)
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// hostOf returns the lowercased hostname of rawURL, or "".
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// resolveRef absolutizes ref against base. Protocol-relative references
// ("//cdn.example/x.svg") are pinned to https.
func resolveRef(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}
