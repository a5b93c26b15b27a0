package qrscan

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"rsc.io/qr"
)

var testRender = RenderOptions{
	Dark:        color.RGBA{0, 0, 0, 0xff},
	Light:       color.RGBA{0xff, 0xff, 0xff, 0xff},
	QuietZone:   DefaultQuietZone,
	Scale:       8,
	JPEGQuality: 95,
}

func qrImage(t *testing.T, text string) image.Image {
	t.Helper()
	m, err := Encode(text, qr.M)
	if err != nil {
		t.Fatalf("unable to encode %q: %v", text, err)
	}
	return m.Image(testRender)
}

func blankImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("unable to encode png: %v", err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
