package logofetch

import (
	"bytes"
	"strings"

	"github.com/bep/imagemeta"
)

// AssetCredit holds the rights and credit fields embedded in raster
// bytes. The first non-empty field is surfaced in the resolution
// record's notes; a stock-agency fingerprint rejects the asset in the
// image-search stage.
type AssetCredit struct {
	Copyright string
	Artist    string
	Credit    string
	Source    string
}

// stockCreditKeywords are substrings that indicate a stock-photo agency
// when found (case-insensitive) in any credit field.
var stockCreditKeywords = []string{
	"shutterstock",
	"gettyimages",
	"getty images",
	"istockphoto",
	"istock",
	"alamy",
	"depositphotos",
	"dreamstime",
	"123rf",
	"adobestock",
	"adobe stock",
	"vectorstock",
	"freepik",
}

// Line returns the first non-empty credit field, for record notes.
func (c *AssetCredit) Line() string {
	if c == nil {
		return ""
	}
	for _, f := range []string{c.Copyright, c.Credit, c.Artist, c.Source} {
		if f != "" {
			return f
		}
	}
	return ""
}

// IsStock reports whether any credit field carries a stock-agency
// fingerprint.
func (c *AssetCredit) IsStock() bool {
	if c == nil {
		return false
	}
	for _, f := range []string{c.Copyright, c.Artist, c.Credit, c.Source} {
		if f == "" {
			continue
		}
		lower := strings.ToLower(f)
		for _, kw := range stockCreditKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

// wantedCreditTags maps (source, tag-name) → true for every tag the
// pipeline records.
var wantedCreditTags = map[imagemeta.Source]map[string]bool{
	imagemeta.EXIF: {
		"Copyright": true,
		"Artist":    true,
	},
	imagemeta.IPTC: {
		"CopyrightNotice": true,
		"Credit":          true,
		"Source":          true,
	},
	imagemeta.XMP: {
		"Rights":  true,
		"Creator": true,
	},
}

// ExtractAssetCredit parses EXIF/IPTC/XMP rights fields from raw image
// bytes. Returns nil when the data is empty, carries no such fields, or
// cannot be parsed; it never returns an error.
func ExtractAssetCredit(data []byte) *AssetCredit {
	if len(data) == 0 {
		return nil
	}

	format, ok := creditImageFormat(data)
	if !ok {
		return nil
	}

	credit := &AssetCredit{}
	found := false

	err := imagemeta.Decode(imagemeta.Options{
		R:           bytes.NewReader(data),
		ImageFormat: format,
		Sources:     imagemeta.EXIF | imagemeta.IPTC | imagemeta.XMP,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			if tags, ok := wantedCreditTags[ti.Source]; ok {
				return tags[ti.Tag]
			}
			return false
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			s := creditValueString(ti.Value)
			if s == "" {
				return nil
			}
			switch ti.Tag {
			case "Copyright", "CopyrightNotice", "Rights":
				credit.Copyright = s
			case "Artist", "Creator":
				credit.Artist = s
			case "Credit":
				credit.Credit = s
			case "Source":
				credit.Source = s
			default:
				return nil
			}
			found = true
			return nil
		},
	})

	if err != nil || !found {
		return nil
	}
	return credit
}

// creditImageFormat identifies the image container from its magic
// bytes, since imagemeta.Decode requires the format up front.
func creditImageFormat(data []byte) (imagemeta.ImageFormat, bool) {
	switch {
	case bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}):
		return imagemeta.PNG, true
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return imagemeta.JPEG, true
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return imagemeta.TIFF, true
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return imagemeta.WebP, true
	}
	return imagemeta.ImageFormatAuto, false
}

// creditValueString extracts a string from a tag value. XMP values may
// be string or list-valued.
func creditValueString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		if len(val) > 0 {
			return val[0]
		}
	case []any:
		if len(val) > 0 {
			if s, ok := val[0].(string); ok {
				return s
			}
		}
	}
	return ""
}
