// output.go - print decoded codes and export them.
//
// To the extent possible under law, Ivan Markin waived all copyright
// and related or neighboring rights to this module of qrscan, using the creative
// commons "cc0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package qrscan

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Formatter writes a decoded code to the terminal and to the requested
// export files.
type Formatter struct {
	Config Config
	Stdout io.Writer
	Stderr io.Writer

	blocks int
}

// Format prints code according to the configuration: the QR code itself,
// then the content, then the metadata, separated by blank lines. A nil code
// prints a notice on Stderr and yields ErrNoCode.
func (f *Formatter) Format(code *Code) error {
	if code == nil {
		fmt.Fprintf(f.Stderr, "qrscan: %v\n", ErrNoCode)
		return ErrNoCode
	}
	var m *Matrix
	if f.Config.PrintQR || f.Config.Exports() {
		level, err := ParseLevel(f.Config.Level)
		if err != nil {
			return newError(UsageError, "", "", err)
		}
		m, err = Encode(code.Text, level)
		if err != nil {
			return err
		}
	}
	if f.Config.PrintQR {
		f.separate()
		if err := WriteQR(f.Stdout, m, f.Config); err != nil {
			return newError(IoError, "write", "stdout", err)
		}
	}
	if !f.Config.NoContent {
		f.separate()
		fmt.Fprintln(f.Stdout, code.Text)
	}
	if f.Config.Metadata {
		f.separate()
		f.writeMetadata(code)
	}
	if m == nil {
		return nil
	}
	return f.Export(m)
}

func (f *Formatter) separate() {
	if f.blocks > 0 {
		fmt.Fprintln(f.Stdout)
	}
	f.blocks++
}

func (f *Formatter) writeMetadata(code *Code) {
	fmt.Fprintf(f.Stdout, "Version: %d\n", code.Version)
	fmt.Fprintf(f.Stdout, "Grid Size: %d\n", code.GridSize)
	fmt.Fprintf(f.Stdout, "EC Level: %s\n", code.Level)
	if len(code.Points) > 0 {
		b := code.Bounds
		fmt.Fprintf(f.Stdout, "Bounds: %d,%d %d,%d\n", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
	}
}

// Export writes m to every requested export path. Each export is attempted
// regardless of earlier failures; all failures are returned together.
func (f *Formatter) Export(m *Matrix) error {
	opts, err := f.Config.RenderOptions()
	if err != nil {
		return newError(UsageError, "", "", err)
	}
	exports := []struct {
		path   string
		format string
		render func() ([]byte, error)
	}{
		{f.Config.SVG, "svg", func() ([]byte, error) { return m.SVG(opts), nil }},
		{f.Config.ASCII, "ascii", func() ([]byte, error) { return m.ASCII(opts), nil }},
		{f.Config.PNG, "png", func() ([]byte, error) { return m.PNG(opts) }},
		{f.Config.JPEG, "jpeg", func() ([]byte, error) { return m.JPEG(opts) }},
	}
	var errs []error
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		l := log.WithFields(logrus.Fields{"component": "output", "format": e.format, "path": e.path})
		data, err := e.render()
		if err != nil {
			errs = append(errs, newError(EncodeError, "render "+e.format, "", err))
			continue
		}
		if err := f.write(e.path, data); err != nil {
			l.WithError(err).Debug("export failed")
			errs = append(errs, err)
			continue
		}
		l.WithField("bytes", len(data)).Debug("exported")
	}
	return errors.Join(errs...)
}

func (f *Formatter) write(path string, data []byte) error {
	if path == StdioPath {
		if _, err := f.Stdout.Write(data); err != nil {
			return newError(IoError, "write", "stdout", err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return newError(IoError, "", "", err)
	}
	return nil
}
