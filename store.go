package logofetch

import (
	"os"
	"path/filepath"
)

// fileStore owns the on-disk vector/raster archive. File names are
// deterministic (by slug) and writes overwrite, so re-running a batch
// is safe. Asset files are written incrementally as each brand
// completes, independent of the aggregate metadata document.
type fileStore struct {
	root string
}

func newFileStore(root string) (*fileStore, error) {
	for _, sub := range []string{"svg", "png"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, err
		}
	}
	return &fileStore{root: root}, nil
}

// SaveVector writes the archived vector bytes verbatim for slug and
// returns the written path.
func (s *fileStore) SaveVector(slug string, data []byte) (string, error) {
	p := filepath.Join(s.root, "svg", slug+".svg")
	return p, os.WriteFile(p, data, 0o644)
}

// SaveRaster writes the raster preview bytes for slug and returns the
// written path.
func (s *fileStore) SaveRaster(slug string, data []byte) (string, error) {
	p := filepath.Join(s.root, "png", slug+".png")
	return p, os.WriteFile(p, data, 0o644)
}

// MetadataPath is where the aggregate batch document is flushed.
func (s *fileStore) MetadataPath() string {
	return filepath.Join(s.root, "metadata.json")
}
