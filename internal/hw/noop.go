package hw

import (
	"errors"
	"log/slog"
	"strconv"
)

// ErrNoHardware is returned by Noop reads.
var ErrNoHardware = errors.New("no LED hardware available")

// Noop implements Writer and Reader for systems without the LED driver.
// Writes are logged and always succeed so arbitration can still be observed.
type Noop struct {
	logger *slog.Logger
}

// NewNoop creates a new no-op adapter.
func NewNoop(logger *slog.Logger) *Noop {
	return &Noop{logger: logger}
}

// WriteInt logs the write.
func (n *Noop) WriteInt(path string, value int) error {
	return n.WriteString(path, strconv.Itoa(value))
}

// WriteString logs the write.
func (n *Noop) WriteString(path string, value string) error {
	n.logger.Debug("LED hardware not available (no-op)", "path", path, "value", value)
	return nil
}

// ReadString always fails with ErrNoHardware.
func (n *Noop) ReadString(path string) (string, error) {
	return "", ErrNoHardware
}
