package qrscan

import (
	"errors"
	"fmt"
	"testing"

	"github.com/matryer/is"
)

func TestExitCode(t *testing.T) {
	is := is.New(t)
	for _, tc := range []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{ErrNoCode, ExitNotFound},
		{fmt.Errorf("scan: %w", ErrNoCode), ExitNotFound},
		{Usagef("bad flag"), ExitUsage},
		{newError(IoError, "", "x.png", errNoSuchFile), ExitNoSuch},
		{newError(IoError, "", "dir", errIsDirectory), ExitUsage},
		{newError(IoError, "read", "stdin", errors.New("broken pipe")), ExitFailure},
		{newError(DecodeError, "decode", "x.png", errors.New("unknown format")), ExitFailure},
		{newError(DeviceError, "open camera", "", errors.New("busy")), ExitFailure},
		{newError(EncodeError, "encode", "", errors.New("too long")), ExitFailure},
		{errors.Join(newError(IoError, "", "", errors.New("a")), newError(IoError, "", "", errors.New("b"))), ExitFailure},
	} {
		is.Equal(ExitCode(tc.err), tc.want)
	}
}

func TestErrorMessage(t *testing.T) {
	is := is.New(t)
	is.Equal(newError(IoError, "", "a.png", errNoSuchFile).Error(), "a.png: No such file")
	is.Equal(newError(IoError, "", "dir", errIsDirectory).Error(), "cannot scan dir: Is a directory")
	is.Equal(newError(DecodeError, "decode", "a.png", errors.New("bad")).Error(), "decode a.png: bad")
	is.Equal(newError(DeviceError, "capture", "", errors.New("gone")).Error(), "capture: gone")
	is.Equal(DeviceError.String(), "device error")
}
