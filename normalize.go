package logofetch

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// NormalizeCanvas composites a raster image centered on a transparent
// square canvas of size×size pixels, downscaling to fit while
// preserving aspect ratio. Images are never upscaled: an input already
// inside the canvas keeps its pixel dimensions, so normalizing an
// already-canvas-sized centered image is a geometric no-op. Returns
// data unchanged when decoding or re-encoding fails — normalization is
// cosmetic and must never fail a resolution.
func NormalizeCanvas(data []byte, size int) []byte {
	if size <= 0 {
		return data
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return data
	}

	scale := math.Min(math.Min(float64(size)/float64(w), float64(size)/float64(h)), 1.0)
	if scale < 1.0 {
		nw := max(int(float64(w)*scale), 1)
		nh := max(int(float64(h)*scale), 1)
		scaled := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, draw.Over, nil)
		img, b = scaled, scaled.Bounds()
		w, h = nw, nh
	}

	canvas := image.NewRGBA(image.Rect(0, 0, size, size))
	offset := image.Pt((size-w)/2, (size-h)/2)
	draw.Draw(canvas, image.Rectangle{Min: offset, Max: offset.Add(image.Pt(w, h))}, img, b.Min, draw.Over)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return data
	}
	return buf.Bytes()
}

// ReencodeLossless decodes data and re-encodes it losslessly. Returns
// nil when the payload cannot be decoded; the caller falls back to the
// original bytes.
func ReencodeLossless(data []byte) []byte {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}
