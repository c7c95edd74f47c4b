package logofetch

import (
	"context"
	"net/url"
)

// socialStage fetches the brand's social profile pages and takes the
// first open-graph preview image. A social identity resolved from the
// knowledge base is treated as verified, so the result is official by
// contract even though its bytes come off a social CDN.
type socialStage struct {
	cfg *Config
}

func (s *socialStage) Name() string { return "social-profile" }

func (s *socialStage) Attempt(ctx context.Context, res *Resolution) *Asset {
	var pages []string
	if h := res.Entity.FacebookHandle; h != "" {
		pages = append(pages, "https://www.facebook.com/"+url.PathEscape(h))
	}
	if id := res.Entity.LinkedInOrgID; id != "" {
		pages = append(pages, "https://www.linkedin.com/company/"+url.PathEscape(id))
	}

	for _, page := range pages {
		r := s.cfg.fetch(ctx, page, fetchOpts{})
		if r == nil {
			continue
		}
		img := ExtractOGImageURL(string(r.Data))
		if img == "" {
			continue
		}
		a := s.cfg.downloadAsset(ctx, img)
		if a == nil {
			continue
		}
		a.Official = true
		a.Quality = QualityMediumHigh
		return a
	}
	return nil
}
