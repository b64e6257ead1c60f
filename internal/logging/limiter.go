package logging

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultWarnInterval is how often a repeating warning for the same key is
// let through.
const DefaultWarnInterval = time.Minute

// Warner emits warnings rate limited per key. Each key (typically a device
// file path) gets its own limiter so a failing path cannot hide the first
// failure of another one.
type Warner struct {
	logger   *slog.Logger
	interval time.Duration

	mu         sync.Mutex
	limiters   map[string]*rate.Limiter
	suppressed map[string]int
}

// NewWarner creates a Warner that logs through logger. An interval <= 0 uses
// DefaultWarnInterval.
func NewWarner(logger *slog.Logger, interval time.Duration) *Warner {
	if interval <= 0 {
		interval = DefaultWarnInterval
	}
	return &Warner{
		logger:     logger,
		interval:   interval,
		limiters:   make(map[string]*rate.Limiter),
		suppressed: make(map[string]int),
	}
}

// Warn logs msg for key unless a warning for the same key was logged within
// the interval. The number of dropped warnings is attached to the next one
// that gets through. Returns whether the warning was logged.
func (w *Warner) Warn(key, msg string, args ...any) bool {
	w.mu.Lock()
	limiter, ok := w.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(w.interval), 1)
		w.limiters[key] = limiter
	}
	if !limiter.Allow() {
		w.suppressed[key]++
		w.mu.Unlock()
		return false
	}
	dropped := w.suppressed[key]
	delete(w.suppressed, key)
	w.mu.Unlock()

	if dropped > 0 {
		args = append(args, "suppressed", dropped)
	}
	w.logger.Warn(msg, args...)
	return true
}

// Reset forgets the limiter state for key so its next warning is logged.
func (w *Warner) Reset(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.limiters, key)
	delete(w.suppressed, key)
}
