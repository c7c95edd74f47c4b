package logofetch

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Pipeline resolves brands one at a time against the configured source
// chain. Strictly sequential: no parallelism, a fixed pause between
// brands, every external call synchronous and bounded by a timeout.
type Pipeline struct {
	cfg      *Config
	store    *fileStore
	recorder *Recorder
}

// NewPipeline prepares the output archive and returns a pipeline bound
// to cfg. Directory bootstrap failure is the only construction error.
func NewPipeline(cfg *Config) (*Pipeline, error) {
	cfg.defaults()
	store, err := newFileStore(cfg.OutDir)
	if err != nil {
		return nil, fmt.Errorf("prepare output dir: %w", err)
	}
	return &Pipeline{cfg: cfg, store: store, recorder: NewRecorder()}, nil
}

// Recorder exposes the accumulated batch records.
func (p *Pipeline) Recorder() *Recorder { return p.recorder }

// officialOnly reports whether resolution is restricted to the
// official-site crawl. Only the OfficialPriority-without-fallbacks
// combination restricts; every other toggle pairing runs the full chain.
func (p *Pipeline) officialOnly() bool {
	return p.cfg.OfficialPriority && !p.cfg.EnableFallbacks
}

// stages returns the source chain in priority order, honoring the
// Stages override and the fallback toggles.
func (p *Pipeline) stages() []Stage {
	if len(p.cfg.Stages) > 0 {
		return p.cfg.Stages
	}
	stages := []Stage{&officialStage{cfg: p.cfg}}
	if p.officialOnly() {
		return stages
	}
	return append(stages,
		&socialStage{cfg: p.cfg},
		&vendorStage{cfg: p.cfg},
		&wikimediaStage{cfg: p.cfg},
		&imageSearchStage{cfg: p.cfg},
		&simpleIconsStage{cfg: p.cfg},
		&webSearchStage{cfg: p.cfg},
	)
}

// Resolve runs the full resolution for one brand: entity lookup,
// domain discovery when needed, the source chain, classification,
// normalization, and archiving. It always returns a record; a brand
// that exhausts every stage gets an explanatory note and null paths.
func (p *Pipeline) Resolve(ctx context.Context, brand string) ResolutionRecord {
	rec := ResolutionRecord{Brand: brand, Slug: Slugify(brand)}

	entity := p.cfg.ResolveEntity(ctx, brand)
	domain := entity.Domain
	if domain == "" && !p.officialOnly() {
		domain = p.cfg.DiscoverDomain(ctx, brand)
	}
	rec.Domain = domain

	if domain == "" && p.officialOnly() {
		rec.appendNote("No official domain found.")
		return rec
	}

	res := &Resolution{Brand: brand, Slug: rec.Slug, Domain: domain, Entity: entity}
	asset := runChain(ctx, p.stages(), res)
	if asset == nil {
		rec.appendNote("No logo found (official nor fallbacks).")
		return rec
	}

	rec.SourceURL = asset.SourceURL
	rec.Official = asset.Official
	p.persist(&rec, asset)
	return rec
}

// persist archives the asset for rec's slug. Vector originals are kept
// byte-identical; the raster preview is best-effort and its failure
// never fails the record.
func (p *Pipeline) persist(rec *ResolutionRecord, asset *Asset) {
	switch asset.Format {
	case FormatVector:
		if path, err := p.store.SaveVector(rec.Slug, asset.Data); err == nil {
			rec.SavedSVG = &path
		} else {
			slog.Warn("logofetch: vector save failed", "slug", rec.Slug, "error", err)
		}
		render := p.cfg.Capabilities.RenderVector
		if render == nil {
			return
		}
		raster, err := render(asset.Data, p.cfg.VectorRenderWidth)
		if err != nil {
			slog.Debug("logofetch: vector render failed", "slug", rec.Slug, "error", err)
			return
		}
		p.saveRaster(rec, NormalizeCanvas(raster, p.cfg.CanvasSize))

	case FormatRaster:
		p.saveRaster(rec, NormalizeCanvas(asset.Data, p.cfg.CanvasSize))
		p.recordCredit(rec, asset.Data)

	case FormatPhoto:
		data := ReencodeLossless(asset.Data)
		if data == nil {
			data = asset.Data
		}
		p.saveRaster(rec, NormalizeCanvas(data, p.cfg.CanvasSize))
		p.recordCredit(rec, asset.Data)
	}
}

func (p *Pipeline) saveRaster(rec *ResolutionRecord, data []byte) {
	path, err := p.store.SaveRaster(rec.Slug, data)
	if err != nil {
		slog.Warn("logofetch: raster save failed", "slug", rec.Slug, "error", err)
		return
	}
	rec.SavedPNG = &path
}

// recordCredit surfaces an embedded rights/credit field in the record
// notes when the archived raster carries one.
func (p *Pipeline) recordCredit(rec *ResolutionRecord, data []byte) {
	if line := ExtractAssetCredit(data).Line(); line != "" {
		rec.appendNote("credit: " + line)
	}
}

// RunBatch reads the brand list and processes each brand sequentially
// in input order, flushing the aggregate metadata document after the
// last brand. A missing or unreadable brand list is the only fatal
// error; individual brand failures degrade to annotated records.
func (p *Pipeline) RunBatch(ctx context.Context, listPath string) error {
	brands, err := ReadBrandList(listPath)
	if err != nil {
		return fmt.Errorf("brand list %s: %w", listPath, err)
	}

	for i, brand := range brands {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.cfg.Pause):
			}
		}
		slog.Info("logofetch: resolving", "brand", brand)
		rec := p.Resolve(ctx, brand)
		p.recorder.Add(rec)
		slog.Info("logofetch: resolved",
			"brand", brand,
			"official", rec.Official,
			"svg", rec.SavedSVG != nil,
			"png", rec.SavedPNG != nil)
	}

	if err := p.recorder.Flush(p.store.MetadataPath()); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

// ReadBrandList reads the single-column brand table. The first row is a
// header; a column named "brand" is used when present, the first column
// otherwise. Blank entries are skipped.
func ReadBrandList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := 0
	for i, name := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(name), "brand") {
			col = i
			break
		}
	}

	var brands []string
	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		if b := strings.TrimSpace(row[col]); b != "" {
			brands = append(brands, b)
		}
	}
	return brands, nil
}
