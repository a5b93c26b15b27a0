// nocamera.go - camera stub for builds without OpenCV.
//
// To the extent possible under law, Ivan Markin waived all copyright
// and related or neighboring rights to this module of qrscan, using the creative
// commons "cc0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

//go:build !camera
// +build !camera

package qrscan

import "errors"

func openCamera(device, width, height int) (Camera, error) {
	return nil, errors.New("qrscan was built without camera support (rebuild with -tags camera), please specify path to an image")
}
