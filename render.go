package logofetch

import (
	"bytes"
	"errors"
	"image"
	"image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// DefaultCapabilities resolves the optional processing features built
// into this binary. Resolved once at startup; the pipeline never
// re-probes availability per call.
func DefaultCapabilities() Capabilities {
	return Capabilities{RenderVector: renderVector}
}

// renderVector rasterizes vector markup at the requested pixel width,
// deriving the height from the document view box to preserve aspect
// ratio.
func renderVector(data []byte, width int) ([]byte, error) {
	if width <= 0 {
		return nil, errors.New("render width must be positive")
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		return nil, errors.New("vector markup has no usable view box")
	}

	height := max(int(float64(width)*vh/vw), 1)
	icon.SetTarget(0, 0, float64(width), float64(height))

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
