// errors.go - error kinds and exit codes.
//
// To the extent possible under law, Ivan Markin waived all copyright
// and related or neighboring rights to this module of qrscan, using the creative
// commons "cc0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package qrscan

import (
	"errors"
	"fmt"
)

// Kind classifies a failure of one invocation.
type Kind int

const (
	UsageError Kind = iota + 1
	IoError
	DecodeError
	DeviceError
	EncodeError
)

func (k Kind) String() string {
	switch k {
	case UsageError:
		return "usage error"
	case IoError:
		return "i/o error"
	case DecodeError:
		return "decode error"
	case DeviceError:
		return "device error"
	case EncodeError:
		return "encode error"
	}
	return "error"
}

// Process exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitNoSuch   = 3
	ExitNotFound = 4
)

// ErrNoCode is returned when the image holds no decodable QR code.
var ErrNoCode = errors.New("no QR code found")

var (
	errNoSuchFile  = errors.New("No such file")
	errIsDirectory = errors.New("Is a directory")
)

// Error is a failure of one pipeline step.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err == errNoSuchFile:
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	case e.Err == errIsDirectory:
		return fmt.Sprintf("cannot scan %s: %v", e.Path, e.Err)
	case e.Op != "" && e.Path != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// Usagef builds a UsageError.
func Usagef(format string, args ...interface{}) error {
	return newError(UsageError, "", "", fmt.Errorf(format, args...))
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// ExitCode maps the result of Scanner.Run to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, ErrNoCode) {
		return ExitNotFound
	}
	switch {
	case errors.Is(err, errNoSuchFile):
		return ExitNoSuch
	case errors.Is(err, errIsDirectory):
		return ExitUsage
	}
	if KindOf(err) == UsageError {
		return ExitUsage
	}
	return ExitFailure
}
