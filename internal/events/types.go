package events

import (
	"time"

	"github.com/google/uuid"
)

// Event type constants for kelindar/event.
const (
	TypeLightRequested uint32 = iota + 1
	TypeWinnerChanged
	TypeHardwareWriteFailed
	TypeBacklightChanged
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// NewID returns a unique identifier for an event.
func NewID() string {
	return uuid.NewString()
}

// Now returns the timestamp format used by all events.
func Now() string {
	return time.Now().Format(time.RFC3339)
}

// LightRequestedEvent is published after a logical light accepted a new state.
type LightRequestedEvent struct {
	ID        string `json:"id" example:"0b9f3c1e-6d2a-4d8e-9a51-2f4c7d1e8b90" doc:"Event identifier"`
	Light     string `json:"light" example:"notifications" doc:"Logical light id"`
	Color     string `json:"color" example:"#00ff0000" doc:"Requested color as #AARRGGBB"`
	Code      int    `json:"code" example:"0" doc:"0, or the negated errno of the first failed hardware write"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for LightRequestedEvent.
func (e LightRequestedEvent) Type() uint32 { return TypeLightRequested }

// WinnerChangedEvent is published when a different source starts driving the
// indicator LED, including the transition to none.
type WinnerChangedEvent struct {
	ID        string   `json:"id" doc:"Event identifier"`
	Previous  string   `json:"previous" example:"battery" doc:"Source that drove the LED before"`
	Winner    string   `json:"winner" example:"notification" doc:"Source now driving the LED, or none"`
	Active    []string `json:"active" doc:"Sources currently requesting light, highest priority first"`
	Timestamp string   `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for WinnerChangedEvent.
func (e WinnerChangedEvent) Type() uint32 { return TypeWinnerChanged }

// HardwareWriteFailedEvent reports the first failed control file write of a
// request. The request itself was still accepted.
type HardwareWriteFailedEvent struct {
	ID        string `json:"id" doc:"Event identifier"`
	Light     string `json:"light" example:"battery" doc:"Logical light id of the request"`
	Path      string `json:"path" example:"/sys/class/leds/nubia_led/outn" doc:"Control file that failed"`
	Error     string `json:"error" doc:"Failure description"`
	Code      int    `json:"code" example:"-2" doc:"Negated errno"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for HardwareWriteFailedEvent.
func (e HardwareWriteFailedEvent) Type() uint32 { return TypeHardwareWriteFailed }

// BacklightChangedEvent is published after a backlight write.
type BacklightChangedEvent struct {
	ID         string `json:"id" doc:"Event identifier"`
	Brightness int    `json:"brightness" example:"128" doc:"Brightness written, 0-255"`
	Code       int    `json:"code" example:"0" doc:"0, or the negated errno of the failed write"`
	Timestamp  string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for BacklightChangedEvent.
func (e BacklightChangedEvent) Type() uint32 { return TypeBacklightChanged }
