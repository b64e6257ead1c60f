package hw

import (
	"log/slog"
	"os"
)

// Adapter is the full capability set the daemon needs from the hardware.
type Adapter interface {
	Writer
	Reader
}

// New picks the sysfs adapter when the LED control directory exists and
// falls back to the no-op adapter otherwise. forceNoop selects the no-op
// adapter unconditionally.
func New(paths Paths, forceNoop bool, logger *slog.Logger) Adapter {
	if forceNoop {
		logger.Info("Dry run requested, using no-op hardware adapter")
		return NewNoop(logger)
	}

	dir := paths.LEDDir()
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		logger.Warn("LED control directory not found, using no-op hardware adapter", "dir", dir)
		return NewNoop(logger)
	}

	logger.Info("Using sysfs hardware adapter", "dir", dir)
	return NewSysfs(logger)
}
