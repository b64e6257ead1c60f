// Package hw writes the device control files that drive the indicator LED
// and the display backlight.
package hw

import (
	"errors"
	"fmt"
	"syscall"
)

// Writer performs synchronous writes to device control files. Values are
// written as text followed by a newline.
type Writer interface {
	WriteInt(path string, value int) error
	WriteString(path string, value string) error
}

// Reader reads a device status file, trimming surrounding whitespace.
type Reader interface {
	ReadString(path string) (string, error)
}

// WriteError describes a failed control file write.
type WriteError struct {
	Op   string // "open" or "write"
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Errno returns the OS error number behind the failure, or EIO when the
// underlying error carries none (a short write, for example).
func (e *WriteError) Errno() syscall.Errno {
	var errno syscall.Errno
	if errors.As(e.Err, &errno) {
		return errno
	}
	return syscall.EIO
}

// Code converts a write result into a status code: 0 on success, otherwise
// the negated errno.
func Code(err error) int {
	if err == nil {
		return 0
	}
	var werr *WriteError
	if errors.As(err, &werr) {
		return -int(werr.Errno())
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return -int(errno)
	}
	return -int(syscall.EIO)
}
