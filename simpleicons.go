package logofetch

import (
	"context"
	"net/url"
)

const simpleIconsURL = "https://cdn.simpleicons.org/"

// simpleIconsStage hits the slug-keyed monochrome icon directory.
// Deterministic and always vector, but community-maintained, so never
// official.
type simpleIconsStage struct {
	cfg *Config
}

func (s *simpleIconsStage) Name() string { return "simple-icons" }

func (s *simpleIconsStage) Attempt(ctx context.Context, res *Resolution) *Asset {
	a := s.cfg.downloadAsset(ctx, simpleIconsURL+url.PathEscape(res.Slug))
	if a == nil || a.Format != FormatVector {
		return nil
	}
	a.Official = false
	a.Quality = QualityMedium
	return a
}
