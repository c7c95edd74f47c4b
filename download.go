package logofetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// defaultMaxBytes bounds a buffered response body. Press-kit vectors
	// and large PNG masters can run into megabytes.
	defaultMaxBytes  = 10 << 20
	homepageMaxBytes = 512 << 10
	probeTimeout     = 5 * time.Second
)

type fetchOpts struct {
	maxBytes int64
	timeout  time.Duration
	header   http.Header
}

type fetchResult struct {
	Data        []byte
	ContentType string // lowercased, MIME parameters stripped
	FinalURL    string // after redirects
}

// fetch retrieves rawURL fully buffered. The stealth client, when
// configured, is tried before the regular client. Returns nil on any
// recoverable failure (bad URL, transport error, non-2xx status) so
// callers degrade instead of propagating errors.
func (cfg *Config) fetch(ctx context.Context, rawURL string, opts fetchOpts) *fetchResult {
	cfg.defaults()

	if opts.maxBytes <= 0 {
		opts.maxBytes = defaultMaxBytes
	}
	if opts.timeout <= 0 {
		opts.timeout = cfg.Timeout
	}

	if cfg.StealthClient != nil {
		if r := fetchWith(ctx, cfg.StealthClient, rawURL, cfg.UserAgent, opts); r != nil {
			return r
		}
	}
	return fetchWith(ctx, cfg.HTTPClient, rawURL, cfg.UserAgent, opts)
}

func fetchWith(ctx context.Context, client *http.Client, rawURL, ua string, opts fetchOpts) *fetchResult {
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", ua)
	for k, vs := range opts.header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, opts.maxBytes))
	if err != nil {
		return nil
	}

	ct := resp.Header.Get("Content-Type")
	if idx := strings.IndexByte(ct, ';'); idx >= 0 {
		ct = ct[:idx]
	}

	final := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}

	return &fetchResult{
		Data:        data,
		ContentType: strings.ToLower(strings.TrimSpace(ct)),
		FinalURL:    final,
	}
}

// downloadAsset fetches rawURL and classifies the payload. Returns nil
// when the bytes are neither vector nor a recognizable raster/photo;
// the owning stage then reports empty.
func (cfg *Config) downloadAsset(ctx context.Context, rawURL string) *Asset {
	res := cfg.fetch(ctx, rawURL, fetchOpts{})
	if res == nil {
		return nil
	}
	format, ok := SniffFormat(res.Data, res.ContentType)
	if !ok {
		slog.Debug("logofetch: unclassifiable payload", "url", rawURL, "content_type", res.ContentType)
		return nil
	}
	return &Asset{Format: format, Data: res.Data, SourceURL: res.FinalURL}
}
