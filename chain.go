package logofetch

import (
	"context"
	"log/slog"
)

// Quality tiers assigned to assets by source convention.
const (
	QualityHigh       = "high"
	QualityMediumHigh = "medium-high"
	QualityMedium     = "medium"
)

// Asset is a downloaded, classified logo candidate. Immutable once a
// stage returns it.
type Asset struct {
	Format    Format
	Data      []byte
	SourceURL string
	Official  bool   // believed to originate from the brand's own source
	Quality   string // tier assigned by the producing stage
}

// Resolution is the per-brand context handed to every stage.
type Resolution struct {
	Brand  string
	Slug   string
	Domain string // resolved or discovered official domain, may be empty
	Entity Entity
}

// Stage is one provider in the source chain. Attempt returns an asset
// or nil; it must suppress its own network and parse failures rather
// than propagate them.
type Stage interface {
	Name() string
	Attempt(ctx context.Context, res *Resolution) *Asset
}

// runChain executes stages strictly in order and stops at the first
// non-empty result. No stage runs twice and no later stage overrides an
// earlier success; the ordering is also the retry policy.
func runChain(ctx context.Context, stages []Stage, res *Resolution) *Asset {
	for _, s := range stages {
		if ctx.Err() != nil {
			return nil
		}
		asset := s.Attempt(ctx, res)
		if asset == nil || len(asset.Data) == 0 {
			continue
		}
		slog.Debug("logofetch: stage succeeded",
			"stage", s.Name(),
			"brand", res.Brand,
			"format", asset.Format.String(),
			"official", asset.Official,
			"url", asset.SourceURL)
		return asset
	}
	return nil
}
