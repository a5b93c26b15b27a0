// color.go - parse colors given on the command line.
//
// To the extent possible under law, Ivan Markin waived all copyright
// and related or neighboring rights to this module of qrscan, using the creative
// commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package util

import (
	"fmt"
	"image/color"
	"strings"

	gcolor "github.com/gookit/color"
)

var named = map[string]string{
	"black": "000",
	"white": "fff",
	"red":   "f00",
	"green": "008000",
	"blue":  "00f",
}

// ParseColor parses "#rgb", "#rrggbb" or one of a few color names.
// The leading '#' is optional.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := named[s]; ok {
		s = hex
	}
	rgb := gcolor.HexToRgb(s)
	if len(rgb) != 3 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2]), A: 0xff}, nil
}

// Background returns s as an ANSI background cell of the given width.
func Background(c color.RGBA, cell string) string {
	return gcolor.RGB(c.R, c.G, c.B, true).Sprint(cell)
}
