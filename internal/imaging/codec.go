// Package imaging decodes base64 image payloads and prepares them for embedding.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MaxPixels caps width×height of any payload. Headers are checked against it
// before pixel data is decoded, so a forged size cannot force a huge allocation.
const MaxPixels = 40_000_000

// Info describes a decoded image payload.
type Info struct {
	Format string
	Width  int
	Height int
}

// Embeddable reports whether the bytes can be handed to the PDF writer as-is.
// Only JPEG qualifies: the writer rejects interlaced and 16-bit PNGs.
func (i Info) Embeddable() bool {
	return i.Format == "jpeg"
}

var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// Decode converts base64 text into image bytes. An optional data URL prefix
// and embedded whitespace are ignored. Text that is not base64, whose header
// declares more than MaxPixels, or whose bytes do not fully decode as an image,
// returns an error wrapping ErrDecode.
func Decode(text string) ([]byte, error) {
	payload := strings.TrimSpace(text)
	if payload == "" {
		return nil, ErrEmpty
	}

	payload = stripDataURL(payload)
	payload = strings.Join(strings.Fields(payload), "")
	if payload == "" {
		return nil, ErrEmpty
	}

	data, err := decodeBase64(payload)
	if err != nil {
		return nil, err
	}

	if _, err := Inspect(data); err != nil {
		return nil, err
	}

	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return data, nil
}

// Inspect reports the format and pixel dimensions of image bytes. Only the
// header is read; sizes above MaxPixels are rejected with ErrDecode.
func Inspect(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Info{}, fmt.Errorf("%w: zero dimension %dx%d", ErrDecode, cfg.Width, cfg.Height)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return Info{}, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrDecode, cfg.Width, cfg.Height, MaxPixels)
	}

	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Normalize returns data unchanged when it is Embeddable, otherwise the image
// redrawn as 8-bit non-interlaced RGBA and encoded as PNG.
func Normalize(data []byte) ([]byte, Info, error) {
	info, err := Inspect(data)
	if err != nil {
		return nil, Info{}, err
	}
	if info.Embeddable() {
		return data, info, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, Info{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	flat := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(flat, flat.Bounds(), img, bounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, flat); err != nil {
		return nil, Info{}, fmt.Errorf("re-encode %s as png: %w", info.Format, err)
	}

	info.Format = "png"
	return buf.Bytes(), info, nil
}

func stripDataURL(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if i := strings.Index(s, ","); i >= 0 {
		return s[i+1:]
	}
	return s
}

func decodeBase64(s string) ([]byte, error) {
	var firstErr error
	for _, enc := range encodings {
		data, err := enc.DecodeString(s)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrDecode, firstErr)
}
