// Package logofetch resolves brand names to canonical logo assets by
// querying a prioritized chain of external sources, classifying each
// candidate by its bytes, and normalizing the result into a vector
// archive entry plus a fixed-canvas raster preview.
//
// The package is built around graceful degradation: every source stage
// suppresses its own network and parse failures and yields nothing
// instead of an error, so a single flaky provider never fails a brand
// and a brand exhausting every provider never fails the batch.
package logofetch

import (
	"net/http"
	"time"
)

// Defaults carried over from the established pipeline settings.
const (
	DefaultCanvasSize        = 1024             // normalized raster canvas, px
	DefaultVectorRenderWidth = 2048             // raster preview width rendered from vectors, px
	DefaultTimeout           = 25 * time.Second // per external call
	DefaultPause             = 200 * time.Millisecond
	DefaultOutDir            = "logos"
)

// Capabilities holds optional processing features, resolved once at
// startup rather than re-probed per call.
type Capabilities struct {
	// RenderVector rasterizes vector markup at the given pixel width.
	// nil means no renderer is available; a vector-only resolution is
	// still a success.
	RenderVector func(data []byte, width int) ([]byte, error)
}

// Config holds all dependencies and knobs injected by the consumer.
// It is treated as immutable for the duration of a batch.
type Config struct {
	HTTPClient    *http.Client // default: http.DefaultClient
	StealthClient *http.Client // optional: tried before HTTPClient on every fetch
	UserAgent     string

	OutDir string // root of the svg/ and png/ archive (default "logos")

	BrandfetchKey string // enables the brand-data API sub-stage
	SerpAPIKey    string // enables the image-search and web-search stages

	// Resolution is restricted to the official-site crawl only when
	// OfficialPriority is set and EnableFallbacks is not. Every other
	// combination runs domain discovery and the full source chain.
	OfficialPriority bool
	EnableFallbacks  bool

	CanvasSize        int
	VectorRenderWidth int
	Timeout           time.Duration
	Pause             time.Duration // inserted between brands

	Capabilities Capabilities

	// Stages overrides the built-in source chain. When non-empty these
	// run in order instead of the default providers, which makes every
	// stage independently substitutable in tests.
	Stages []Stage
}

// defaults fills zero-value fields with sensible defaults.
func (c *Config) defaults() {
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.UserAgent == "" {
		c.UserAgent = "Mozilla/5.0 (compatible; logofetch/1.0)"
	}
	if c.OutDir == "" {
		c.OutDir = DefaultOutDir
	}
	if c.CanvasSize <= 0 {
		c.CanvasSize = DefaultCanvasSize
	}
	if c.VectorRenderWidth <= 0 {
		c.VectorRenderWidth = DefaultVectorRenderWidth
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Pause <= 0 {
		c.Pause = DefaultPause
	}
}
