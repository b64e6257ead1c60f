package hw

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/smazurov/lighthal/internal/logging"
	"github.com/smazurov/lighthal/internal/metrics"
)

// Sysfs implements Writer and Reader on top of Linux sysfs attribute files.
// Every write opens the file, writes one line and closes it again; the LED
// driver acts on each write.
type Sysfs struct {
	logger *slog.Logger
	warner *logging.Warner
}

// NewSysfs creates a sysfs adapter. Open failures are warned about once per
// path per rate-limit interval.
func NewSysfs(logger *slog.Logger) *Sysfs {
	return &Sysfs{
		logger: logger,
		warner: logging.NewWarner(logger, logging.DefaultWarnInterval),
	}
}

// WriteInt writes value as decimal text.
func (s *Sysfs) WriteInt(path string, value int) error {
	return s.write(path, strconv.Itoa(value))
}

// WriteString writes value verbatim.
func (s *Sysfs) WriteString(path string, value string) error {
	return s.write(path, value)
}

func (s *Sysfs) write(path, value string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		werr := &WriteError{Op: "open", Path: path, Err: err}
		s.warner.Warn(path, "Failed to open control file", "path", path, "error", err)
		metrics.RecordHardwareWrite(path, werr)
		return werr
	}
	defer f.Close()

	// A file that opens again gets a fresh warning the next time it fails.
	s.warner.Reset(path)

	if _, err := f.WriteString(value + "\n"); err != nil {
		werr := &WriteError{Op: "write", Path: path, Err: err}
		s.logger.Debug("Control file write failed", "path", path, "value", value, "error", err)
		metrics.RecordHardwareWrite(path, werr)
		return werr
	}

	s.logger.Debug("Control file written", "path", path, "value", value)
	metrics.RecordHardwareWrite(path, nil)
	return nil
}

// ReadString reads a status file.
func (s *Sysfs) ReadString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
