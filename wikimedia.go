package logofetch

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const commonsBaseURL = "https://commons.wikimedia.org"

// wikimediaStage searches the community media repository for
// "<brand> logo" and resolves file-description pages to the original
// file URL. Community-hosted, so never official.
type wikimediaStage struct {
	cfg *Config
}

func (s *wikimediaStage) Name() string { return "wikimedia-commons" }

func (s *wikimediaStage) Attempt(ctx context.Context, res *Resolution) *Asset {
	q := url.Values{"search": {res.Brand + " logo"}}
	r := s.cfg.fetch(ctx, commonsBaseURL+"/w/index.php?"+q.Encode(), fetchOpts{})
	if r == nil {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Data))
	if err != nil {
		return nil
	}

	var filePages []string
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || !strings.Contains(href, "File:") {
			return
		}
		low := strings.ToLower(href)
		if strings.Contains(low, "svg") || strings.Contains(low, "logo") {
			filePages = append(filePages, href)
		}
	})

	for _, href := range filePages {
		if a := s.resolveFilePage(ctx, href); a != nil {
			return a
		}
	}
	return nil
}

// resolveFilePage fetches a file-description page and downloads the
// original file it points at.
func (s *wikimediaStage) resolveFilePage(ctx context.Context, href string) *Asset {
	pageURL := href
	if strings.HasPrefix(href, "/") {
		pageURL = commonsBaseURL + href
	}
	r := s.cfg.fetch(ctx, pageURL, fetchOpts{})
	if r == nil {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Data))
	if err != nil {
		return nil
	}
	orig, ok := doc.Find("a.internal").First().Attr("href")
	if !ok || orig == "" {
		return nil
	}
	if strings.HasPrefix(orig, "//") {
		orig = "https:" + orig
	}

	a := s.cfg.downloadAsset(ctx, orig)
	if a == nil {
		return nil
	}
	a.Official = false
	if a.Format == FormatVector {
		a.Quality = QualityHigh
	} else {
		a.Quality = QualityMedium
	}
	return a
}
