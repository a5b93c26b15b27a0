// camera.go - scan QR codes from a camera.
//
// To the extent possible under law, Ivan Markin waived all copyright
// and related or neighboring rights to this module of qrscan, using the creative
// commons "cc0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package qrscan

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/sirupsen/logrus"
)

// Capture geometry requested from the device.
const (
	CaptureWidth  = 640
	CaptureHeight = 480
)

var progress = []string{".  ", ".. ", "..."}

// Camera is an open capture device.
type Camera interface {
	Frame() (image.Image, error)
	Close() error
}

// CameraOpener opens capture device number device.
type CameraOpener func(device, width, height int) (Camera, error)

// ErrCameraTimeout is returned when no code was seen before Config.Timeout.
var ErrCameraTimeout = errors.New("timed out waiting for a QR code")

func (s *Scanner) opener() CameraOpener {
	if s.OpenCamera != nil {
		return s.OpenCamera
	}
	return openCamera
}

// withCamera holds the device for the duration of fn only. The device is
// closed on every return path, panics included.
func (s *Scanner) withCamera(fn func(Camera) error) (err error) {
	l := log.WithFields(logrus.Fields{"component": "camera", "device": s.Config.Device})
	cam, err := s.opener()(s.Config.Device, CaptureWidth, CaptureHeight)
	if err != nil {
		return newError(DeviceError, "open camera", "", err)
	}
	l.Debug("camera opened")
	defer func() {
		if cerr := cam.Close(); cerr != nil {
			l.WithError(cerr).Warn("unable to release camera")
		}
		l.Debug("camera released")
	}()
	if err := fn(cam); err != nil {
		var e *Error
		if errors.As(err, &e) {
			return err
		}
		return newError(DeviceError, "capture", "", err)
	}
	return nil
}

// scanCamera captures frames every Config.Interval until one decodes, the
// context is done, or Config.Timeout elapses.
func (s *Scanner) scanCamera(ctx context.Context) (*Code, error) {
	var code *Code
	err := s.withCamera(func(cam Camera) error {
		var err error
		code, err = s.scanFrames(ctx, cam)
		return err
	})
	return code, err
}

func (s *Scanner) scanFrames(ctx context.Context, cam Camera) (*Code, error) {
	if s.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Config.Timeout)
		defer cancel()
	}
	t := time.NewTicker(s.interval())
	defer t.Stop()
	spinner := 0
	for frames := 1; ; frames++ {
		frame, err := cam.Frame()
		if err != nil {
			return nil, newError(DeviceError, "capture", "", err)
		}
		code, err := Decode(frame)
		if err != nil {
			return nil, err
		}
		if code != nil {
			log.WithFields(logrus.Fields{"component": "camera", "frames": frames}).Debug("code found")
			if !s.Config.Preview {
				fmt.Fprint(s.stderr(), "\r                        \r")
			}
			return code, nil
		}
		if s.Config.Preview {
			if err := s.previewFrame(frame); err != nil {
				return nil, newError(IoError, "preview", "", err)
			}
		} else {
			fmt.Fprintf(s.stderr(), "\rScanning via camera%s", progress[spinner])
			spinner = (spinner + 1) % len(progress)
		}
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, newError(DeviceError, "capture", "", ErrCameraTimeout)
			}
			return nil, newError(DeviceError, "capture", "", ctx.Err())
		case <-t.C:
		}
	}
}

func (s *Scanner) interval() time.Duration {
	if s.Config.Interval <= 0 {
		return time.Millisecond
	}
	return s.Config.Interval
}
