package office

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotLaunched is returned when an application is used before launch.
	ErrNotLaunched = errors.New("application is not launched")
	// ErrNoDocument is returned when an operation needs an open document,
	// workbook or presentation and there is none.
	ErrNoDocument = errors.New("no active document")
	// ErrOutOfRange is returned for slide, shape, sheet or table indexes that
	// do not exist.
	ErrOutOfRange = errors.New("index out of range")
	// ErrInvalidArgument is returned for arguments that pass schema
	// validation but cannot be applied, e.g. an unknown alignment name.
	ErrInvalidArgument = errors.New("invalid argument")
)

// InvalidArgument wraps ErrInvalidArgument with a message.
func InvalidArgument(format string, args ...any) error {
	return errors.Wrap(ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// OutOfRange wraps ErrOutOfRange with a message.
func OutOfRange(format string, args ...any) error {
	return errors.Wrap(ErrOutOfRange, fmt.Sprintf(format, args...))
}
