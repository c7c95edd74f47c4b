package logofetch

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

// rewriteTransport redirects every request to the test server while
// preserving the original URL on the response, so code that records
// final URLs and checks hosts sees the logical address. The logical
// host travels in the Host header, letting handlers branch per host.
type rewriteTransport struct {
	host string
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r2 := req.Clone(req.Context())
	r2.Host = req.URL.Host
	r2.URL.Scheme = "http"
	r2.URL.Host = rt.host
	resp, err := http.DefaultTransport.RoundTrip(r2)
	if resp != nil {
		resp.Request = req
	}
	return resp, err
}

// newRewriteClient returns a client that sends every request, whatever
// its host, to srv.
func newRewriteClient(t *testing.T, srv *httptest.Server) *http.Client {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse test server URL: %v", err)
	}
	return &http.Client{Transport: rewriteTransport{host: u.Host}}
}

func testConfig(t *testing.T, srv *httptest.Server) *Config {
	t.Helper()
	return &Config{
		HTTPClient: newRewriteClient(t, srv),
		Timeout:    5 * time.Second,
	}
}

// encodePNG returns the PNG encoding of an opaque w×h image.
func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// encodeStripesPNG returns a PNG of alternating 8px black/white
// vertical stripes, perceptually far from any uniform image.
func encodeStripesPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 72, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 72; x++ {
			c := color.RGBA{A: 255}
			if (x/8)%2 == 0 {
				c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// encodePNGWithCopyright returns the encodePNG output with an eXIf
// chunk inserted after IHDR carrying copyright as the EXIF Copyright
// (0x8298) field.
func encodePNGWithCopyright(t *testing.T, w, h int, copyright string) []byte {
	t.Helper()
	base := encodePNG(t, w, h)

	text := append([]byte(copyright), 0)
	tiff := []byte("II\x2a\x00")
	tiff = binary.LittleEndian.AppendUint32(tiff, 8)      // IFD0 offset
	tiff = binary.LittleEndian.AppendUint16(tiff, 1)      // entry count
	tiff = binary.LittleEndian.AppendUint16(tiff, 0x8298) // Copyright tag
	tiff = binary.LittleEndian.AppendUint16(tiff, 2)      // ASCII type
	tiff = binary.LittleEndian.AppendUint32(tiff, uint32(len(text)))
	tiff = binary.LittleEndian.AppendUint32(tiff, 26) // value offset
	tiff = binary.LittleEndian.AppendUint32(tiff, 0)  // no next IFD
	tiff = append(tiff, text...)

	chunk := binary.BigEndian.AppendUint32(nil, uint32(len(tiff)))
	chunk = append(chunk, "eXIf"...)
	chunk = append(chunk, tiff...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	const afterIHDR = 8 + 25 // signature + IHDR chunk
	out := make([]byte, 0, len(base)+len(chunk))
	out = append(out, base[:afterIHDR]...)
	out = append(out, chunk...)
	out = append(out, base[afterIHDR:]...)
	return out
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return img
}
