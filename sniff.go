package logofetch

import (
	"bytes"
	"strings"
)

// Format classifies a downloaded asset by its payload.
type Format int

const (
	FormatVector Format = iota // scalable markup (SVG)
	FormatRaster               // lossless pixel image (PNG)
	FormatPhoto                // lossy photographic image (JPEG)
)

func (f Format) String() string {
	switch f {
	case FormatVector:
		return "vector"
	case FormatRaster:
		return "raster"
	case FormatPhoto:
		return "photo"
	default:
		return "unknown"
	}
}

// sniffWindow is how many leading bytes are decoded as text when
// looking for vector markup.
const sniffWindow = 200

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G'}
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
)

// SniffFormat classifies raw bytes as vector, raster, or photo. The
// declared transport content type is never trusted alone: the bytes are
// inspected first, and declaredType is consulted only when they are
// inconclusive. ok is false when neither the bytes nor the declared
// type are recognized, in which case the download must be discarded.
func SniffFormat(data []byte, declaredType string) (Format, bool) {
	if len(data) == 0 {
		return 0, false
	}

	head := strings.ToLower(string(data[:min(len(data), sniffWindow)]))
	if strings.HasPrefix(head, "<?xml") || strings.Contains(head, "<svg") {
		return FormatVector, true
	}
	if bytes.HasPrefix(data, pngMagic) {
		return FormatRaster, true
	}
	if bytes.HasPrefix(data, jpegMagic) {
		return FormatPhoto, true
	}

	ct := strings.ToLower(declaredType)
	switch {
	case strings.Contains(ct, "image/svg"):
		return FormatVector, true
	case strings.Contains(ct, "image/png"):
		return FormatRaster, true
	case strings.Contains(ct, "image/jpeg"), strings.Contains(ct, "image/jpg"):
		return FormatPhoto, true
	}
	return 0, false
}
