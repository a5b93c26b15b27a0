// source.go - resolve the image to scan.
//
// To the extent possible under law, Ivan Markin waived all copyright
// and related or neighboring rights to this module of qrscan, using the creative
// commons "cc0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package qrscan

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MaxImagePixels bounds the dimensions an image may declare before its pixel
// data is decoded.
const MaxImagePixels = 1 << 26

// Resolve produces the image to scan: the file at cfg.Input, standard input
// when cfg.Input is StdioPath, or a single camera frame otherwise.
func (s *Scanner) Resolve() (image.Image, error) {
	switch s.Config.Input {
	case "":
		var img image.Image
		err := s.withCamera(func(cam Camera) error {
			var err error
			img, err = cam.Frame()
			return err
		})
		return img, err
	case StdioPath:
		return ReadImage(s.stdin())
	default:
		return OpenImage(s.Config.Input)
	}
}

// OpenImage reads and decodes the image file at path.
func OpenImage(path string) (image.Image, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(IoError, "", path, errNoSuchFile)
		}
		return nil, newError(IoError, "", "", err)
	}
	if fileInfo.IsDir() {
		return nil, newError(IoError, "", path, errIsDirectory)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(IoError, "", "", err)
	}
	defer f.Close()
	img, format, err := decodeImage(f, path)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"component": "source", "path": path, "format": format}).Debug("image loaded")
	return img, nil
}

// ReadImage reads r to the end and decodes the bytes as an image.
func ReadImage(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, newError(IoError, "read", "stdin", err)
	}
	img, format, err := decodeImage(bytes.NewReader(data), "stdin")
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"component": "source", "bytes": len(data), "format": format}).Debug("image loaded")
	return img, nil
}

func decodeImage(r io.ReadSeeker, name string) (image.Image, string, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return nil, "", newError(DecodeError, "decode", name, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return nil, "", newError(DecodeError, "decode", name, fmt.Errorf("image too large: %dx%d", cfg.Width, cfg.Height))
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, "", newError(IoError, "read", name, err)
	}
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", newError(DecodeError, "decode", name, err)
	}
	return img, format, nil
}
