// decode.go - locate and decode QR codes in an image.
//
// To the extent possible under law, Ivan Markin waived all copyright
// and related or neighboring rights to this module of qrscan, using the creative
// commons "cc0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package qrscan

import (
	"fmt"
	"image"
	"math"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/common"
	multidetector "github.com/makiuchi-d/gozxing/multi/qrcode/detector"
	"github.com/makiuchi-d/gozxing/qrcode/decoder"
	"github.com/makiuchi-d/gozxing/qrcode/detector"
	"github.com/sirupsen/logrus"
)

// Code is a decoded QR code.
type Code struct {
	Text     string
	Version  int
	GridSize int
	// Level is the error correction level letter (L, M, Q or H).
	Level  string
	Bounds image.Rectangle
	Points []image.Point
}

var decodeHints = map[gozxing.DecodeHintType]interface{}{
	gozxing.DecodeHintType_TRY_HARDER: true,
}

// Decode scans img for QR codes and returns the first one that decodes, in
// the order the detector reports them. That order is not a ranking: with
// several codes in view any of them may be returned. A nil Code with a nil
// error means no code could be read.
func Decode(img image.Image) (*Code, error) {
	l := log.WithField("component", "decode")
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, newError(DecodeError, "decode", "", fmt.Errorf("empty image %dx%d", b.Dx(), b.Dy()))
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, newError(DecodeError, "binarize", "", err)
	}
	matrix, err := bmp.GetBlackMatrix()
	if err != nil {
		l.WithError(err).Debug("no black matrix")
		return nil, nil
	}
	candidates := detect(matrix)
	l.WithField("candidates", len(candidates)).Debug("detected")
	dec := decoder.NewDecoder()
	for i, dr := range candidates {
		res, err := dec.Decode(dr.GetBits(), decodeHints)
		if err != nil {
			l.WithFields(logrus.Fields{"candidate": i, "error": err}).Debug("candidate did not decode")
			continue
		}
		return newCode(res, dr), nil
	}
	return nil, nil
}

func detect(matrix *gozxing.BitMatrix) []*common.DetectorResult {
	results, err := multidetector.NewMultiDetector(matrix).DetectMulti(decodeHints)
	if err == nil && len(results) > 0 {
		return results
	}
	dr, err := detector.NewDetector(matrix).Detect(decodeHints)
	if err != nil {
		return nil
	}
	return []*common.DetectorResult{dr}
}

func newCode(res *common.DecoderResult, dr *common.DetectorResult) *Code {
	grid := dr.GetBits().GetWidth()
	code := &Code{
		Text:     res.GetText(),
		GridSize: grid,
		Version:  (grid - 17) / 4,
		Level:    res.GetECLevel(),
	}
	for _, p := range dr.GetPoints() {
		code.Points = append(code.Points, image.Pt(int(math.Round(p.GetX())), int(math.Round(p.GetY()))))
	}
	code.Bounds = symbolBounds(dr.GetPoints(), grid)
	return code
}

// symbolBounds returns the pixel extent of the symbol. The detector reports
// the finder pattern centres first (bottom left, top left, top right), each
// 3.5 modules in from the symbol's corners.
func symbolBounds(points []gozxing.ResultPoint, grid int) image.Rectangle {
	if len(points) == 0 {
		return image.Rectangle{}
	}
	var corners [][2]float64
	if len(points) >= 3 && grid > 7 {
		bl, tl, tr := points[0], points[1], points[2]
		span := float64(grid - 7)
		ux, uy := (tr.GetX()-tl.GetX())/span, (tr.GetY()-tl.GetY())/span
		vx, vy := (bl.GetX()-tl.GetX())/span, (bl.GetY()-tl.GetY())/span
		for _, c := range [][2]float64{{-3.5, -3.5}, {span + 3.5, -3.5}, {-3.5, span + 3.5}, {span + 3.5, span + 3.5}} {
			corners = append(corners, [2]float64{
				tl.GetX() + c[0]*ux + c[1]*vx,
				tl.GetY() + c[0]*uy + c[1]*vy,
			})
		}
	} else {
		for _, p := range points {
			corners = append(corners, [2]float64{p.GetX(), p.GetY()})
		}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		minX, minY = math.Min(minX, c[0]), math.Min(minY, c[1])
		maxX, maxY = math.Max(maxX, c[0]), math.Max(maxY, c[1])
	}
	return image.Rect(int(math.Round(minX)), int(math.Round(minY)), int(math.Round(maxX)), int(math.Round(maxY)))
}
