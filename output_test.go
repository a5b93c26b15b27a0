package qrscan

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func formatter(cfg Config) (*Formatter, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Formatter{Config: cfg, Stdout: &stdout, Stderr: &stderr}, &stdout, &stderr
}

var testCode = &Code{
	Text:     "qrscan payload",
	Version:  2,
	GridSize: 25,
	Level:    "M",
}

func TestFormatContent(t *testing.T) {
	is := is.New(t)
	f, stdout, stderr := formatter(DefaultConfig())
	is.NoErr(f.Format(testCode))
	is.Equal(stdout.String(), "qrscan payload\n")
	is.Equal(stderr.Len(), 0)
}

func TestFormatContentThenMetadata(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.Metadata = true
	f, stdout, _ := formatter(cfg)
	is.NoErr(f.Format(testCode))
	is.Equal(stdout.String(), "qrscan payload\n\nVersion: 2\nGrid Size: 25\nEC Level: M\n")
}

func TestFormatNoContent(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.NoContent = true
	f, stdout, _ := formatter(cfg)
	is.NoErr(f.Format(testCode))
	is.Equal(stdout.String(), "")

	cfg.Metadata = true
	f, stdout, _ = formatter(cfg)
	is.NoErr(f.Format(testCode))
	is.True(!strings.Contains(stdout.String(), "qrscan payload"))
	is.True(strings.HasPrefix(stdout.String(), "Version: 2\n"))
}

func TestFormatNotFound(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.Metadata = true
	f, stdout, stderr := formatter(cfg)
	err := f.Format(nil)
	is.True(errors.Is(err, ErrNoCode))
	is.Equal(ExitCode(err), ExitNotFound)
	is.Equal(stdout.Len(), 0)
	is.Equal(stderr.String(), "qrscan: no QR code found\n")
}

func TestFormatPrintQR(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.PrintQR = true
	f, stdout, _ := formatter(cfg)
	is.NoErr(f.Format(testCode))
	out := stdout.String()
	is.True(strings.ContainsAny(out, "▀▄█"))
	is.True(strings.HasSuffix(out, "\nqrscan payload\n"))
}

func TestExportAll(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.SVG = filepath.Join(dir, "qr.svg")
	cfg.PNG = filepath.Join(dir, "qr.png")
	cfg.JPEG = filepath.Join(dir, "qr.jpeg")
	cfg.ASCII = filepath.Join(dir, "qr.ascii")
	f, stdout, _ := formatter(cfg)
	is.NoErr(f.Format(testCode))
	is.Equal(stdout.String(), "qrscan payload\n")

	for _, p := range []string{cfg.SVG, cfg.PNG, cfg.JPEG, cfg.ASCII} {
		fi, err := os.Stat(p)
		is.NoErr(err)
		is.True(fi.Size() > 0)
	}
	for _, p := range []string{cfg.PNG, cfg.JPEG} {
		img, err := OpenImage(p)
		is.NoErr(err)
		code, err := Decode(img)
		is.NoErr(err)
		is.True(code != nil)
		is.Equal(code.Text, "qrscan payload")
	}
	svg, err := os.ReadFile(cfg.SVG)
	is.NoErr(err)
	is.True(bytes.HasPrefix(svg, []byte("<?xml")))
}

func TestExportPartialFailure(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.SVG = filepath.Join(dir, "missing", "qr.svg")
	cfg.PNG = filepath.Join(dir, "qr.png")
	cfg.ASCII = filepath.Join(dir, "qr.ascii")
	f, _, _ := formatter(cfg)
	err := f.Format(testCode)
	is.True(err != nil)
	is.Equal(KindOf(err), IoError)
	is.Equal(ExitCode(err), ExitFailure)

	_, err = os.Stat(cfg.PNG)
	is.NoErr(err)
	_, err = os.Stat(cfg.ASCII)
	is.NoErr(err)
}

func TestExportStdout(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.NoContent = true
	cfg.ASCII = StdioPath
	f, stdout, _ := formatter(cfg)
	is.NoErr(f.Format(testCode))
	is.True(strings.Contains(stdout.String(), "##"))
}

func TestExportRespectsLevel(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.Level = "H"
	cfg.PNG = filepath.Join(t.TempDir(), "qr.png")
	f, _, _ := formatter(cfg)
	is.NoErr(f.Format(testCode))
	img, err := OpenImage(cfg.PNG)
	is.NoErr(err)
	code, err := Decode(img)
	is.NoErr(err)
	is.Equal(code.Level, "H")
}
