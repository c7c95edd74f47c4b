package logofetch

import (
	"encoding/json"
	"os"
)

// ResolutionRecord is the per-brand output row. JSON field names follow
// the archive's established metadata.json layout. Saved paths and notes
// are pointers so an absent value serializes as null.
type ResolutionRecord struct {
	Brand     string  `json:"brand"`
	Slug      string  `json:"slug"`
	Domain    string  `json:"domain"`
	SourceURL string  `json:"source_url"`
	Official  bool    `json:"official"`
	SavedSVG  *string `json:"saved_svg"`
	SavedPNG  *string `json:"saved_png"`
	Notes     *string `json:"notes"`
}

// appendNote adds a note line, separating multiple notes with "; ".
func (r *ResolutionRecord) appendNote(note string) {
	if note == "" {
		return
	}
	if r.Notes == nil {
		r.Notes = &note
		return
	}
	joined := *r.Notes + "; " + note
	r.Notes = &joined
}

// Recorder accumulates one record per brand in input order and persists
// the full batch as a single structured document only after all brands
// are processed.
type Recorder struct {
	records []ResolutionRecord
}

func NewRecorder() *Recorder {
	return &Recorder{records: make([]ResolutionRecord, 0)}
}

func (r *Recorder) Add(rec ResolutionRecord) {
	r.records = append(r.records, rec)
}

// Records returns the accumulated records in input order.
func (r *Recorder) Records() []ResolutionRecord {
	return r.records
}

// Flush writes the aggregate document to path.
func (r *Recorder) Flush(path string) error {
	data, err := json.MarshalIndent(r.records, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
