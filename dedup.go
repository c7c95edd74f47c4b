package logofetch

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/corona10/goimagehash"
	_ "golang.org/x/image/webp"
)

// dedupThreshold is the maximum Hamming distance between two dHash
// values below which payloads are considered perceptually identical.
const dedupThreshold = 10

// dedupFilter remembers the perceptual hash of every raster payload it
// has seen within one stage attempt. The pipeline is strictly
// sequential, so no locking is needed.
type dedupFilter struct {
	hashes []*goimagehash.ImageHash
}

func newDedupFilter() *dedupFilter { return &dedupFilter{} }

// isDuplicate decodes data and compares its difference hash against
// previously seen payloads. The first sighting of any image is never a
// duplicate; decode or hash failure accepts the payload.
func (d *dedupFilter) isDuplicate(data []byte) bool {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return false
	}
	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return false
	}

	for _, h := range d.hashes {
		if dist, err := hash.Distance(h); err == nil && dist < dedupThreshold {
			return true
		}
	}
	d.hashes = append(d.hashes, hash)
	return false
}
