// qrscan.go - scan QR codes from images and cameras.
//
// To the extent possible under law, Ivan Markin waived all copyright
// and related or neighboring rights to this module of qrscan, using the creative
// commons "cc0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

// Package qrscan reads a QR code from an image file, standard input or a
// camera, prints what it holds, and re-renders it to the terminal or to
// SVG, PNG, JPEG and ASCII files.
package qrscan

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger()

// SetLogger replaces the logger used by the package.
func SetLogger(l *logrus.Logger) {
	log = l
}

// Scanner runs one scan as described by Config.
type Scanner struct {
	Config Config
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// OpenCamera overrides the camera backend.
	OpenCamera CameraOpener
}

func (s *Scanner) stdin() io.Reader {
	if s.Stdin == nil {
		return os.Stdin
	}
	return s.Stdin
}

func (s *Scanner) stdout() io.Writer {
	if s.Stdout == nil {
		return os.Stdout
	}
	return s.Stdout
}

func (s *Scanner) stderr() io.Writer {
	if s.Stderr == nil {
		return os.Stderr
	}
	return s.Stderr
}

// Scan resolves the image and decodes it. Without an input path the camera
// is scanned until a code shows up, unless Config.Once is set.
func (s *Scanner) Scan(ctx context.Context) (*Code, error) {
	if s.Config.Input == "" && !s.Config.Once {
		return s.scanCamera(ctx)
	}
	img, err := s.Resolve()
	if err != nil {
		return nil, err
	}
	return Decode(img)
}

// Run validates the configuration, scans, and formats the result.
func (s *Scanner) Run(ctx context.Context) error {
	if err := s.Config.Validate(); err != nil {
		return err
	}
	code, err := s.Scan(ctx)
	if err != nil {
		return err
	}
	if code != nil {
		log.WithFields(logrus.Fields{"version": code.Version, "level": code.Level}).Debug("decoded")
		if s.Config.Preview && s.Config.Input == "" {
			fmt.Fprintln(s.stdout())
		}
	}
	f := &Formatter{Config: s.Config, Stdout: s.stdout(), Stderr: s.stderr()}
	return f.Format(code)
}
