package events

import "github.com/kelindar/event"

// SubscribeToChannel forwards events of type T to ch. Events are dropped
// when ch is full so a slow SSE client never blocks publishers.
func SubscribeToChannel[T Event](bus *Bus, ch chan<- any) func() {
	return event.Subscribe(bus.dispatcher, func(e T) {
		select {
		case ch <- e:
		default:
		}
	})
}

// SubscribeAll forwards every light event type to ch and returns a single
// unsubscribe function.
func SubscribeAll(bus *Bus, ch chan<- any) func() {
	unsubs := []func(){
		SubscribeToChannel[LightRequestedEvent](bus, ch),
		SubscribeToChannel[WinnerChangedEvent](bus, ch),
		SubscribeToChannel[HardwareWriteFailedEvent](bus, ch),
		SubscribeToChannel[BacklightChangedEvent](bus, ch),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

// Names maps the SSE event name of each event type to a zero value.
func Names() map[string]any {
	return map[string]any{
		"light-requested":       LightRequestedEvent{},
		"winner-changed":        WinnerChangedEvent{},
		"hardware-write-failed": HardwareWriteFailedEvent{},
		"backlight-changed":     BacklightChangedEvent{},
	}
}
