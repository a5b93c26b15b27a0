// render.go - render QR matrices as images and text.
//
// To the extent possible under law, Ivan Markin waived all copyright
// and related or neighboring rights to this module of qrscan, using the creative
// commons "cc0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package qrscan

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
)

// RenderOptions controls how a Matrix is drawn into images and files.
type RenderOptions struct {
	Dark        color.RGBA
	Light       color.RGBA
	QuietZone   int
	Scale       int
	JPEGQuality int
}

// RenderOptions derives rendering options from c.
func (c Config) RenderOptions() (RenderOptions, error) {
	dark, light, err := c.Colors()
	if err != nil {
		return RenderOptions{}, err
	}
	return RenderOptions{
		Dark:        dark,
		Light:       light,
		QuietZone:   c.QuietZone(),
		Scale:       c.Scale,
		JPEGQuality: c.JPEGQuality,
	}, nil
}

// Image rasterizes m with opts.Scale pixels per module.
func (m *Matrix) Image(opts RenderOptions) *image.RGBA {
	scale := max(opts.Scale, 1)
	side := (m.Size + 2*opts.QuietZone) * scale
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), &image.Uniform{opts.Light}, image.Point{}, draw.Src)
	dark := &image.Uniform{opts.Dark}
	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			if !m.Black(x, y) {
				continue
			}
			px := (x + opts.QuietZone) * scale
			py := (y + opts.QuietZone) * scale
			draw.Draw(img, image.Rect(px, py, px+scale, py+scale), dark, image.Point{}, draw.Src)
		}
	}
	return img
}

// PNG renders m as a PNG image.
func (m *Matrix) PNG(opts RenderOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, m.Image(opts)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JPEG renders m as a JPEG image.
func (m *Matrix) JPEG(opts RenderOptions) ([]byte, error) {
	var buf bytes.Buffer
	quality := opts.JPEGQuality
	if quality == 0 {
		quality = jpeg.DefaultQuality
	}
	if err := jpeg.Encode(&buf, m.Image(opts), &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SVG renders m as an SVG document measured in modules.
func (m *Matrix) SVG(opts RenderOptions) []byte {
	side := m.Size + 2*opts.QuietZone
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<?xml version="1.0" standalone="yes"?>`+"\n")
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`+"\n",
		side*max(opts.Scale, 1), side*max(opts.Scale, 1), side, side)
	fmt.Fprintf(&buf, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n", side, side, hexColor(opts.Light))
	fmt.Fprintf(&buf, `<path fill="%s" d="`, hexColor(opts.Dark))
	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			if m.Black(x, y) {
				fmt.Fprintf(&buf, "M%d %dh1v1h-1z", x+opts.QuietZone, y+opts.QuietZone)
			}
		}
	}
	buf.WriteString("\"/>\n</svg>\n")
	return buf.Bytes()
}

// ASCII renders m as text, two characters per module.
func (m *Matrix) ASCII(opts RenderOptions) []byte {
	var buf bytes.Buffer
	q := opts.QuietZone
	for y := -q; y < m.Size+q; y++ {
		for x := -q; x < m.Size+q; x++ {
			if m.Black(x, y) {
				buf.WriteString("##")
			} else {
				buf.WriteString("  ")
			}
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
