package imaging_test

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"runtime"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/JaimeStill/unifix/internal/imaging"
)

func sample(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, sample(w, h)); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

// headerPNG returns a PNG that stops after its IHDR chunk, declaring w×h
// RGBA pixels it never supplies.
func headerPNG(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // truecolor with alpha

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestDecodeValid(t *testing.T) {
	raw := encodePNG(t, 20, 10)
	std := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name string
		text string
	}{
		{"standard", std},
		{"unpadded", strings.TrimRight(std, "=")},
		{"url safe", base64.URLEncoding.EncodeToString(raw)},
		{"data url", "data:image/png;base64," + std},
		{"wrapped lines", std[:40] + "\n" + std[40:80] + "\r\n" + std[80:]},
		{"surrounding space", "  " + std + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := imaging.Decode(tt.text)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !bytes.Equal(got, raw) {
				t.Errorf("decoded %d bytes, want %d", len(got), len(raw))
			}
		})
	}
}

func TestDecodeFailures(t *testing.T) {
	raw := encodePNG(t, 20, 10)
	std := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty", "", imaging.ErrEmpty},
		{"whitespace", " \n\t ", imaging.ErrEmpty},
		{"bare data url", "data:image/png;base64,", imaging.ErrEmpty},
		{"not an image", "not-an-image", imaging.ErrDecode},
		{"invalid characters", "@@@###", imaging.ErrDecode},
		{"base64 of text", base64.StdEncoding.EncodeToString([]byte("hello world")), imaging.ErrDecode},
		{"truncated", std[:len(std)/2], imaging.ErrDecode},
		{"header only", base64.StdEncoding.EncodeToString(headerPNG(100, 100)), imaging.ErrDecode},
		{"oversized header", base64.StdEncoding.EncodeToString(headerPNG(200000, 200000)), imaging.ErrDecode},
		{"just over pixel limit", base64.StdEncoding.EncodeToString(headerPNG(imaging.MaxPixels/1000+1, 1000)), imaging.ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := imaging.Decode(tt.text)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode = %v, want %v", err, tt.want)
			}
			if got != nil {
				t.Errorf("Decode returned %d bytes on failure", len(got))
			}
		})
	}
}

func TestInspect(t *testing.T) {
	info, err := imaging.Inspect(encodePNG(t, 30, 12))
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Format != "png" || info.Width != 30 || info.Height != 12 {
		t.Errorf("info = %+v", info)
	}
	if info.Embeddable() {
		t.Error("png should be redrawn before embedding")
	}

	if _, err := imaging.Inspect([]byte("nope")); !errors.Is(err, imaging.ErrDecode) {
		t.Errorf("Inspect garbage = %v, want ErrDecode", err)
	}
}

func TestInspectPixelLimit(t *testing.T) {
	info, err := imaging.Inspect(headerPNG(8000, 5000))
	if err != nil {
		t.Fatalf("Inspect at limit: %v", err)
	}
	if info.Width != 8000 || info.Height != 5000 {
		t.Errorf("info = %+v", info)
	}

	_, err = imaging.Inspect(headerPNG(200000, 200000))
	if !errors.Is(err, imaging.ErrDecode) {
		t.Errorf("Inspect oversized = %v, want ErrDecode", err)
	}
}

func TestDecodeOversizedHeaderAllocation(t *testing.T) {
	text := base64.StdEncoding.EncodeToString(headerPNG(30000, 30000))

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	if _, err := imaging.Decode(text); !errors.Is(err, imaging.ErrDecode) {
		t.Fatalf("Decode = %v, want ErrDecode", err)
	}
	runtime.ReadMemStats(&after)

	if grew := after.TotalAlloc - before.TotalAlloc; grew > 1<<20 {
		t.Errorf("Decode allocated %d bytes for a rejected header", grew)
	}
}

func TestNormalize(t *testing.T) {
	img := sample(8, 6)

	encode := map[string]func(*bytes.Buffer) error{
		"jpeg": func(b *bytes.Buffer) error { return jpeg.Encode(b, img, nil) },
		"png":  func(b *bytes.Buffer) error { return png.Encode(b, img) },
		"bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, img) },
		"tiff": func(b *bytes.Buffer) error { return tiff.Encode(b, img, nil) },
	}

	tests := []struct {
		format     string
		wantFormat string
		unchanged  bool
	}{
		{"jpeg", "jpeg", true},
		{"png", "png", false},
		{"bmp", "png", false},
		{"tiff", "png", false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := encode[tt.format](&buf); err != nil {
				t.Fatalf("encode: %v", err)
			}
			input := buf.Bytes()

			out, info, err := imaging.Normalize(input)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if info.Format != tt.wantFormat {
				t.Errorf("format = %s, want %s", info.Format, tt.wantFormat)
			}
			if info.Width != 8 || info.Height != 6 {
				t.Errorf("dimensions = %dx%d", info.Width, info.Height)
			}
			if tt.unchanged && !bytes.Equal(out, input) {
				t.Error("embeddable input should be returned unchanged")
			}

			check, err := imaging.Inspect(out)
			if err != nil || check.Format != tt.wantFormat {
				t.Errorf("normalized bytes inspect = %+v, %v", check, err)
			}
		})
	}
}
