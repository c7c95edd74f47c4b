package logofetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	clearbitURL   = "https://logo.clearbit.com/%s?size=%d"
	clearbitSize  = 1024
	brandfetchURL = "https://api.brandfetch.io/v2/brands/%s"
	iconHorseURL  = "https://icon.horse/icon/%s"
)

// vendorStage tries the domain-keyed vendor logo services in fixed
// sub-order: the Clearbit CDN, the Brandfetch API (skipped without a
// credential), then Icon Horse. Each is treated as official by
// domain-match convention; the returned asset's actual provenance is
// not verified further.
type vendorStage struct {
	cfg *Config
}

func (s *vendorStage) Name() string { return "vendor-api" }

func (s *vendorStage) Attempt(ctx context.Context, res *Resolution) *Asset {
	if res.Domain == "" {
		return nil
	}
	if a := s.clearbit(ctx, res.Domain); a != nil {
		return a
	}
	if a := s.brandfetch(ctx, res.Domain); a != nil {
		return a
	}
	return s.iconHorse(ctx, res.Domain)
}

// clearbit hits the direct domain-keyed CDN endpoint at a large size.
func (s *vendorStage) clearbit(ctx context.Context, domain string) *Asset {
	a := s.cfg.downloadAsset(ctx, fmt.Sprintf(clearbitURL, url.PathEscape(domain), clearbitSize))
	if a == nil {
		return nil
	}
	a.Official = true
	a.Quality = vendorQuality(a.Format)
	return a
}

// brandfetch queries the credentialed brand-data API and prefers vector
// entries over raster ones from its structured asset list.
func (s *vendorStage) brandfetch(ctx context.Context, domain string) *Asset {
	if s.cfg.BrandfetchKey == "" {
		return nil
	}

	res := s.cfg.fetch(ctx, fmt.Sprintf(brandfetchURL, url.PathEscape(domain)), fetchOpts{
		header: http.Header{"Authorization": {"Bearer " + s.cfg.BrandfetchKey}},
	})
	if res == nil {
		return nil
	}

	var body struct {
		Logos []struct {
			Formats []struct {
				Src string `json:"src"`
			} `json:"formats"`
		} `json:"logos"`
	}
	if json.Unmarshal(res.Data, &body) != nil {
		return nil
	}

	var vectors, rasters []string
	for _, block := range body.Logos {
		for _, f := range block.Formats {
			if f.Src == "" {
				continue
			}
			if strings.HasSuffix(strings.ToLower(f.Src), ".svg") {
				vectors = append(vectors, f.Src)
			} else {
				rasters = append(rasters, f.Src)
			}
		}
	}

	for _, src := range append(vectors, rasters...) {
		a := s.cfg.downloadAsset(ctx, src)
		if a == nil {
			continue
		}
		a.Official = true
		a.Quality = vendorQuality(a.Format)
		return a
	}
	return nil
}

// iconHorse hits the simple domain-keyed logo-image service.
func (s *vendorStage) iconHorse(ctx context.Context, domain string) *Asset {
	a := s.cfg.downloadAsset(ctx, fmt.Sprintf(iconHorseURL, url.PathEscape(domain)))
	if a == nil {
		return nil
	}
	a.Official = true
	a.Quality = QualityMedium
	return a
}

func vendorQuality(f Format) string {
	if f == FormatVector {
		return QualityHigh
	}
	return QualityMediumHigh
}
