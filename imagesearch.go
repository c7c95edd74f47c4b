package logofetch

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
)

const serpAPIURL = "https://serpapi.com/search.json"

// imageSearchStage queries a credentialed image-search engine for
// "<brand> logo". Each hit is accepted only when its referring page's
// host passes the same homepage brand-token check used by domain
// discovery, which filters unrelated image hits. Hits that embed a
// stock-agency credit are rejected, and later hits perceptually
// identical to a rejected one are skipped without re-evaluation.
type imageSearchStage struct {
	cfg *Config
}

func (s *imageSearchStage) Name() string { return "image-search" }

func (s *imageSearchStage) Attempt(ctx context.Context, res *Resolution) *Asset {
	if s.cfg.SerpAPIKey == "" {
		return nil
	}

	q := url.Values{
		"engine":  {"google_images"},
		"q":       {res.Brand + " logo"},
		"api_key": {s.cfg.SerpAPIKey},
	}
	r := s.cfg.fetch(ctx, serpAPIURL+"?"+q.Encode(), fetchOpts{})
	if r == nil {
		return nil
	}

	var sr struct {
		ImagesResults []struct {
			Original string `json:"original"`
			Link     string `json:"link"`
		} `json:"images_results"`
	}
	if json.Unmarshal(r.Data, &sr) != nil {
		return nil
	}

	dedup := newDedupFilter()
	for _, hit := range sr.ImagesResults {
		if ctx.Err() != nil {
			return nil
		}
		if hit.Original == "" {
			continue
		}
		host := hostOf(hit.Link)
		if host == "" {
			continue
		}
		if !s.cfg.VerifyDomain(ctx, host, res.Brand) {
			slog.Debug("logofetch: referring host failed verification", "host", host)
			continue
		}

		a := s.cfg.downloadAsset(ctx, hit.Original)
		if a == nil {
			continue
		}
		if a.Format != FormatVector {
			if dedup.isDuplicate(a.Data) {
				slog.Debug("logofetch: duplicate of a rejected hit", "url", hit.Original)
				continue
			}
			if credit := ExtractAssetCredit(a.Data); credit.IsStock() {
				slog.Debug("logofetch: stock credit embedded", "url", hit.Original, "credit", credit.Line())
				continue
			}
		}

		a.Official = isSameOrSubdomain(hit.Link, res.Domain)
		if a.Format == FormatVector {
			a.Quality = QualityHigh
		} else {
			a.Quality = QualityMedium
		}
		return a
	}
	return nil
}
