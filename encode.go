// encode.go - encode content into a QR matrix.
//
// To the extent possible under law, Ivan Markin waived all copyright
// and related or neighboring rights to this module of qrscan, using the creative
// commons "cc0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package qrscan

import (
	"github.com/sirupsen/logrus"
	"rsc.io/qr"
	"rsc.io/qr/coding"
)

// DefaultQuietZone is the standard quiet zone width in modules.
const DefaultQuietZone = 4

// Matrix is an encoded QR symbol.
type Matrix struct {
	Content string
	Level   qr.Level
	Size    int

	code *qr.Code
}

// Encode encodes content at the given error correction level, picking the
// smallest version that fits.
func Encode(content string, level qr.Level) (*Matrix, error) {
	code, err := qr.Encode(content, level)
	if err != nil {
		return nil, newError(EncodeError, "encode", "", err)
	}
	m := &Matrix{Content: content, Level: level, Size: code.Size, code: code}
	log.WithFields(logrus.Fields{"component": "encode", "version": m.Version(), "bytes": len(content)}).Debug("encoded")
	return m, nil
}

// Black reports whether the module at column x, row y is dark. Modules
// outside the symbol are light.
func (m *Matrix) Black(x, y int) bool {
	return m.code.Black(x, y)
}

// Version returns the QR version (1 to 40).
func (m *Matrix) Version() int {
	return (m.Size - 17) / 4
}

// MaxContentBytes returns how many bytes of 8-bit content fit into the
// largest QR version at level.
func MaxContentBytes(level qr.Level) int {
	v := coding.Version(coding.MaxVersion)
	// mode indicator and a 16-bit character count precede the data.
	return (v.DataBytes(coding.Level(level))*8 - 4 - 16) / 8
}
