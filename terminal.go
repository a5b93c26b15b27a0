// terminal.go - draw QR codes and camera frames on the terminal.
//
// To the extent possible under law, Ivan Markin waived all copyright
// and related or neighboring rights to this module of qrscan, using the creative
// commons "cc0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package qrscan

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	gcolor "github.com/gookit/color"
	"github.com/mdp/qrterminal/v3"
	"github.com/nogoegst/byteqr"
	"github.com/nogoegst/terminal"
	"github.com/unkaktus/qrscan/util"
	"golang.org/x/image/draw"
)

// Half-block characters, named by the (upper, lower) module colors.
// Dark modules are drawn as blanks, as terminals usually have a dark
// background.
var halfBlocks = map[bool]qrterminal.Config{
	false: {
		BlackChar:      " ",
		WhiteChar:      "█",
		BlackWhiteChar: "▄",
		WhiteBlackChar: "▀",
	},
	true: {
		BlackChar:      "█",
		WhiteChar:      " ",
		BlackWhiteChar: "▀",
		WhiteBlackChar: "▄",
	},
}

var (
	isTerminal   = fileTerminal
	supportColor = gcolor.SupportColor
)

func fileTerminal(w io.Writer) (fd int, ok bool) {
	f, isFile := w.(*os.File)
	if !isFile {
		return -1, false
	}
	fd = int(f.Fd())
	return fd, terminal.IsTerminal(fd)
}

// WriteQR draws m on w. Terminals with color support get colored cells in
// the configured colors with a one module quiet zone; anything else gets
// Unicode half blocks.
func WriteQR(w io.Writer, m *Matrix, cfg Config) error {
	if _, tty := isTerminal(w); tty && supportColor() {
		dark, light, err := cfg.Colors()
		if err != nil {
			return err
		}
		white := []byte(util.Background(light, "  "))
		black := []byte(util.Background(dark, "  "))
		return byteqr.Write(&nulTrimmer{w: w}, m.Content, m.Level, white, black)
	}
	return writeHalfBlocks(w, m, cfg)
}

// nulTrimmer drops the NUL bytes byteqr leaves in front of its first row.
type nulTrimmer struct {
	w    io.Writer
	past bool
}

func (t *nulTrimmer) Write(p []byte) (int, error) {
	n := len(p)
	if !t.past {
		p = bytes.TrimLeft(p, "\x00")
		t.past = len(p) > 0
	}
	if len(p) == 0 {
		return n, nil
	}
	if _, err := t.w.Write(p); err != nil {
		return 0, err
	}
	return n, nil
}

func writeHalfBlocks(w io.Writer, m *Matrix, cfg Config) error {
	bw := bufio.NewWriter(w)
	qc := halfBlocks[cfg.InvertColors]
	qc.Level = m.Level
	qc.Writer = bw
	qc.HalfBlocks = true
	qc.QuietZone = max(cfg.QuietZone(), 1)
	qrterminal.GenerateWithConfig(m.Content, qc)
	return bw.Flush()
}

// previewFrame draws a camera frame with half blocks at the configured
// terminal position.
func (s *Scanner) previewFrame(frame image.Image) error {
	cols, rows := s.Config.PreviewW, s.Config.PreviewH
	if cols == 0 || rows == 0 {
		tw, th := 80, 24
		if fd, tty := isTerminal(s.stderr()); tty {
			if w, h, err := terminal.GetSize(fd); err == nil {
				tw, th = w, h
			}
		}
		b := frame.Bounds()
		switch {
		case cols == 0 && rows == 0:
			cols = tw - s.Config.PreviewX
			rows = cols * b.Dy() / b.Dx() / 2
			if rows > th-s.Config.PreviewY-1 {
				rows = th - s.Config.PreviewY - 1
				cols = rows * 2 * b.Dx() / b.Dy()
			}
		case cols == 0:
			cols = rows * 2 * b.Dx() / b.Dy()
		default:
			rows = cols * b.Dy() / b.Dx() / 2
		}
	}
	if cols < 1 || rows < 1 {
		return nil
	}
	small := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), frame, frame.Bounds(), draw.Src, nil)

	out := bufio.NewWriter(s.stderr())
	for row := 0; row < rows; row++ {
		fmt.Fprintf(out, "\x1b[%d;%dH", s.Config.PreviewY+row+1, s.Config.PreviewX+1)
		for x := 0; x < cols; x++ {
			top := small.RGBAAt(x, row*2)
			bottom := small.RGBAAt(x, row*2+1)
			style := gcolor.NewRGBStyle(gcolor.RGB(top.R, top.G, top.B), gcolor.RGB(bottom.R, bottom.G, bottom.B))
			out.WriteString(style.Sprint("▀"))
		}
	}
	return out.Flush()
}
