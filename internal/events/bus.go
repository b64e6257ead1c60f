package events

import (
	"github.com/kelindar/event"
)

// Bus wraps a kelindar/event dispatcher for event broadcasting.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers.
//
//	bus.Publish(WinnerChangedEvent{...})
func (b *Bus) Publish(ev Event) {
	// kelindar/event dispatches on the static type, so unwrap the interface.
	switch e := ev.(type) {
	case LightRequestedEvent:
		event.Publish(b.dispatcher, e)
	case WinnerChangedEvent:
		event.Publish(b.dispatcher, e)
	case HardwareWriteFailedEvent:
		event.Publish(b.dispatcher, e)
	case BacklightChangedEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe registers handler for the event type named by its parameter and
// returns an unsubscribe function. Unsupported handler types are ignored.
//
//	unsub := bus.Subscribe(func(e LightRequestedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(LightRequestedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(WinnerChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(HardwareWriteFailedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(BacklightChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}
