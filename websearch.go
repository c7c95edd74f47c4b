package logofetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// webSearchStage is the credentialed generic web-search fallback,
// filtered to the vector file type and optionally scoped to the
// resolved domain. Authority is inferred from host match.
type webSearchStage struct {
	cfg *Config
}

func (s *webSearchStage) Name() string { return "web-search" }

func (s *webSearchStage) Attempt(ctx context.Context, res *Resolution) *Asset {
	if s.cfg.SerpAPIKey == "" {
		return nil
	}

	query := fmt.Sprintf("%q logo filetype:svg", res.Brand)
	if res.Domain != "" {
		query += " site:" + res.Domain
	}
	q := url.Values{
		"engine":  {"google"},
		"q":       {query},
		"api_key": {s.cfg.SerpAPIKey},
	}
	r := s.cfg.fetch(ctx, serpAPIURL+"?"+q.Encode(), fetchOpts{})
	if r == nil {
		return nil
	}

	var sr struct {
		OrganicResults []struct {
			Link string `json:"link"`
		} `json:"organic_results"`
	}
	if json.Unmarshal(r.Data, &sr) != nil {
		return nil
	}

	for _, hit := range sr.OrganicResults {
		if hit.Link == "" || !strings.HasSuffix(strings.ToLower(hit.Link), ".svg") {
			continue
		}
		a := s.cfg.downloadAsset(ctx, hit.Link)
		if a == nil || a.Format != FormatVector {
			continue
		}
		a.Official = isSameOrSubdomain(hit.Link, res.Domain)
		a.Quality = QualityMedium
		return a
	}
	return nil
}
