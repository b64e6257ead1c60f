// Package logging provides structured logging with per-module log level configuration.
//
// # Overview
//
// The logging system uses Go's slog package with automatic output routing:
//   - Logs to systemd journal when available (Linux systems with journald)
//   - Logs to stdout when a terminal, pipe, or file is connected
//   - Logs to both when both are available
//
// # Usage
//
// Initialize the logging system once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",      // Global log level: debug, info, warn, error
//		Format: "text",      // Output format: text or json
//		Modules: map[string]string{
//			"lights": "debug",  // Per-module overrides
//			"api":    "warn",
//		},
//	})
//
// Get a logger for your module:
//
//	logger := logging.GetLogger("hw")
//	logger.Info("Using sysfs adapter", "dir", dir)
//	logger.Warn("Write failed", "path", path, "error", err)
//
// Add contextual attributes:
//
//	logger := logging.GetLogger("lights").With("light", id)
//	logger.Debug("State stored")  // Includes light in all logs
//
// Levels can be changed at runtime with SetLevels; the config watcher calls it
// whenever the [logging] section of the config file changes.
//
// # Rate-limited warnings
//
// Warner limits repeated warnings per key. The hardware adapter keys it by
// device file path so one missing file does not silence reports about others:
//
//	warner := logging.NewWarner(logger, time.Minute)
//	warner.Warn(path, "Failed to open control file", "path", path, "error", err)
//
// # Log Levels
//
//	debug - Verbose debugging information
//	info  - General operational messages
//	warn  - Warning conditions
//	error - Error conditions
//
// # Output Destinations
//
// The system automatically detects available outputs:
//
//	Journal available + stdout available → MultiHandler (both)
//	Journal available only              → JournalHandler
//	Stdout available only               → TextHandler or JSONHandler
//
// Journal availability is checked via [github.com/coreos/go-systemd/v22/journal.Enabled].
//
// # Viewing Logs
//
// When running as a systemd service or on a system with journald:
//
//	journalctl -t lighthal              # All lighthal logs
//	journalctl -t lighthal -f           # Follow live
//	journalctl -t lighthal -p err       # Errors only
//
// Filter by structured fields:
//
//	journalctl -t lighthal MODULE=hw
//	journalctl -t lighthal LIGHT=notifications
//
// # Configuration
//
// Log levels can be set globally or per-module. Module-specific levels
// override the global level for that module only.
//
// Example TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//	lights = "debug"   # any other key is a module name
//	api = "warn"
package logging
