package util

import (
	"image/color"
	"testing"

	"github.com/matryer/is"
)

func TestParseColor(t *testing.T) {
	is := is.New(t)
	for _, tc := range []struct {
		in   string
		want color.RGBA
	}{
		{"#000", color.RGBA{0, 0, 0, 0xff}},
		{"#fff", color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"#1a2b3c", color.RGBA{0x1a, 0x2b, 0x3c, 0xff}},
		{"FF0000", color.RGBA{0xff, 0, 0, 0xff}},
		{"white", color.RGBA{0xff, 0xff, 0xff, 0xff}},
	} {
		got, err := ParseColor(tc.in)
		is.NoErr(err)
		is.Equal(got, tc.want)
	}
}

func TestParseColorInvalid(t *testing.T) {
	is := is.New(t)
	for _, in := range []string{"", "#12", "zzzzzz", "#1234567"} {
		_, err := ParseColor(in)
		is.True(err != nil)
	}
}
