package logofetch

import (
	"bytes"
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// brandPaths are the path suffixes crawled under the official domain.
var brandPaths = []string{
	"brand", "brand-assets", "brandassets", "brand-resources",
	"press", "media", "media-kit", "newsroom", "about", "corporate", "design",
}

// assetExtensions are the downloadable logo file extensions kept by the
// official-site crawl.
var assetExtensions = []string{".svg", ".png"}

func hasAssetExtension(lowerURL string) bool {
	for _, ext := range assetExtensions {
		if strings.HasSuffix(lowerURL, ext) {
			return true
		}
	}
	return false
}

// officialStage crawls brand/press-style pages under the resolved
// domain for vector and raster links on that domain.
type officialStage struct {
	cfg *Config
}

func (s *officialStage) Name() string { return "official-site" }

func (s *officialStage) Attempt(ctx context.Context, res *Resolution) *Asset {
	if res.Domain == "" {
		return nil
	}
	for _, link := range s.cfg.officialAssetLinks(ctx, res.Domain) {
		a := s.cfg.downloadAsset(ctx, link)
		if a == nil {
			continue
		}
		a.Official = isSameOrSubdomain(a.SourceURL, res.Domain)
		a.Quality = QualityHigh
		return a
	}
	return nil
}

// officialAssetLinks scans the known brand paths and returns asset
// links hosted on domain (or a subdomain), vector before raster, then
// ascending URL length as a canonicality tie-break.
func (cfg *Config) officialAssetLinks(ctx context.Context, domain string) []string {
	seen := make(map[string]bool)
	var links []string

	for _, path := range brandPaths {
		pageURL := "https://" + domain + "/" + path + "/"
		res := cfg.fetch(ctx, pageURL, fetchOpts{})
		if res == nil {
			continue
		}
		base, err := url.Parse(res.FinalURL)
		if err != nil {
			continue
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Data))
		if err != nil {
			continue
		}
		doc.Find("a, img").Each(func(_ int, sel *goquery.Selection) {
			for _, attr := range []string{"href", "src"} {
				v, ok := sel.Attr(attr)
				if !ok {
					continue
				}
				full := resolveRef(base, v)
				if full == "" || !isSameOrSubdomain(full, domain) {
					continue
				}
				if !hasAssetExtension(strings.ToLower(full)) {
					continue
				}
				if !seen[full] {
					seen[full] = true
					links = append(links, full)
				}
			}
		})
	}

	sort.SliceStable(links, func(i, j int) bool {
		vi := strings.HasSuffix(strings.ToLower(links[i]), ".svg")
		vj := strings.HasSuffix(strings.ToLower(links[j]), ".svg")
		if vi != vj {
			return vi
		}
		return len(links[i]) < len(links[j])
	})
	return links
}
