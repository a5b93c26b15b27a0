// camera_gocv.go - camera capture through OpenCV.
//
// To the extent possible under law, Ivan Markin waived all copyright
// and related or neighboring rights to this module of qrscan, using the creative
// commons "cc0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

//go:build camera
// +build camera

package qrscan

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

type gocvCamera struct {
	vc  *gocv.VideoCapture
	mat gocv.Mat
}

func openCamera(device, width, height int) (Camera, error) {
	vc, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("unable to open camera %d: %v", device, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("camera %d is not available", device)
	}
	vc.Set(gocv.VideoCaptureFrameWidth, float64(width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(height))
	return &gocvCamera{vc: vc, mat: gocv.NewMat()}, nil
}

func (c *gocvCamera) Frame() (image.Image, error) {
	if ok := c.vc.Read(&c.mat); !ok {
		return nil, errors.New("unable to read frame")
	}
	if c.mat.Empty() {
		return nil, errors.New("empty frame")
	}
	return c.mat.ToImage()
}

func (c *gocvCamera) Close() error {
	merr := c.mat.Close()
	if err := c.vc.Close(); err != nil {
		return err
	}
	return merr
}
