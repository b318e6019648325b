package ocr

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"
)

func testPNGBytes(t *testing.T, size int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestExtractIsDeterministic(t *testing.T) {
	svc := NewService(0)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	data := testPNGBytes(t, 64)

	first, err := svc.Extract("image/png", data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	second, err := svc.Extract("", data)
	if err != nil {
		t.Fatalf("extract with sniffed type: %v", err)
	}
	if first.Result != second.Result {
		t.Fatalf("same image produced different results: %+v vs %+v", first.Result, second.Result)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct scan ids")
	}
	if first.Result.Date != "2025-03-01" || first.Confidence != Confidence {
		t.Fatalf("unexpected scan: %+v", first)
	}
	if first.Width != 64 || first.Height != 64 || first.ContentType != "image/png" {
		t.Fatalf("unexpected image metadata: %+v", first)
	}
}

func TestExtractRejectsBadUploads(t *testing.T) {
	svc := NewService(1024)
	cases := []struct {
		name        string
		contentType string
		data        []byte
		want        error
	}{
		{"empty", "image/png", nil, ErrImageMissing},
		{"too large", "image/png", make([]byte, 2048), ErrImageTooLarge},
		{"wrong type", "text/plain", []byte("hello"), ErrImageTypeUnsupported},
		{"corrupt png", "image/png", []byte("\x89PNG\r\n\x1a\nnot really"), ErrImageInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Extract(tc.contentType, tc.data); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
