package lights

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/smazurov/lighthal/internal/events"
	"github.com/smazurov/lighthal/internal/hw"
	"github.com/smazurov/lighthal/internal/logging"
	"github.com/smazurov/lighthal/internal/metrics"
)

// Device is the entry point for every logical light. One mutex serializes
// the state slots, the arbitration state and all hardware writes, including
// the backlight.
type Device struct {
	mu        sync.Mutex
	store     Store
	arbiter   *Arbiter
	w         hw.Writer
	paths     hw.Paths
	backlight int

	bus    *events.Bus
	logger *slog.Logger
}

// Option configures a Device.
type Option func(*Device)

// WithBus publishes light events on bus. Events are published while the
// Device lock is held, so handlers must not call back into the Device.
func WithBus(bus *events.Bus) Option {
	return func(d *Device) { d.bus = bus }
}

// WithLogger overrides the "lights" module logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Device) { d.logger = logger }
}

// NewDevice creates a Device writing through w. Empty paths fall back to the
// defaults.
func NewDevice(w hw.Writer, paths hw.Paths, opts ...Option) *Device {
	d := &Device{
		w:         w,
		paths:     paths.WithDefaults(),
		backlight: -1,
		logger:    logging.GetLogger("lights"),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.arbiter = NewArbiter(d.w, d.paths, d.logger)
	return d
}

// SetNotification sets the notifications light.
func (d *Device) SetNotification(state State) error {
	return d.set(IDNotifications, SourceNotification, state)
}

// SetBattery sets the battery light.
func (d *Device) SetBattery(state State) error {
	return d.set(IDBattery, SourceBattery, state)
}

// SetButtons sets the buttons light.
func (d *Device) SetButtons(state State) error {
	return d.set(IDButtons, SourceButtons, state)
}

// SetAttention sets the attention light.
func (d *Device) SetAttention(state State) error {
	return d.set(IDAttention, SourceAttention, state)
}

// SetBacklight writes the average of the color channels to the backlight.
// Arbitration state is left alone.
func (d *Device) SetBacklight(state State) error {
	brightness := state.Luma()

	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.w.WriteInt(d.paths.Backlight, brightness)
	d.backlight = brightness

	metrics.RecordRequest(string(IDBacklight))
	metrics.SetBacklightBrightness(brightness)
	d.logger.Debug("Backlight set", "brightness", brightness, "error", err)

	if d.bus != nil {
		d.bus.Publish(events.BacklightChangedEvent{
			ID:         events.NewID(),
			Brightness: brightness,
			Code:       hw.Code(err),
			Timestamp:  events.Now(),
		})
	}
	d.publishFailure(IDBacklight, err)
	return err
}

// Set dispatches to the entry point for id.
func (d *Device) Set(id ID, state State) error {
	if id == IDBacklight {
		return d.SetBacklight(state)
	}
	src, ok := id.Source()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLight, id)
	}
	return d.set(id, src, state)
}

func (d *Device) set(id ID, src Source, state State) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	stored := d.store.Set(src, state)
	res := d.arbiter.Apply(src, stored)

	d.logger.Debug("Light requested",
		"light", id,
		"color", stored.Hex(),
		"active", res.Active.Names(),
		"winner", res.Winner.String(),
		"writes", res.Writes)

	// Gauges and events are emitted under the lock so they follow
	// arbitration order. Bus subscribers must not call back into the Device.
	d.record(id, res)

	if d.bus != nil {
		d.bus.Publish(events.LightRequestedEvent{
			ID:        events.NewID(),
			Light:     string(id),
			Color:     stored.Hex(),
			Code:      hw.Code(res.Err),
			Timestamp: events.Now(),
		})
		if res.WinnerChanged() {
			d.bus.Publish(events.WinnerChangedEvent{
				ID:        events.NewID(),
				Previous:  res.Previous.String(),
				Winner:    res.Winner.String(),
				Active:    res.Active.Names(),
				Timestamp: events.Now(),
			})
		}
	}
	d.publishFailure(id, res.Err)
	return res.Err
}

func (d *Device) record(id ID, res Result) {
	metrics.RecordRequest(string(id))
	names := make([]string, len(DefaultPriority))
	for i, src := range DefaultPriority {
		names[i] = src.String()
		metrics.SetSourceActive(names[i], res.Active.Has(src))
	}
	winner := ""
	if res.Winner != SourceNone {
		winner = res.Winner.String()
	}
	metrics.SetWinner(names, winner)
}

func (d *Device) publishFailure(id ID, err error) {
	if err == nil || d.bus == nil {
		return
	}
	path := ""
	var werr *hw.WriteError
	if errors.As(err, &werr) {
		path = werr.Path
	}
	d.bus.Publish(events.HardwareWriteFailedEvent{
		ID:        events.NewID(),
		Light:     string(id),
		Path:      path,
		Error:     err.Error(),
		Code:      hw.Code(err),
		Timestamp: events.Now(),
	})
}

// Snapshot is a consistent copy of the arbitration state.
type Snapshot struct {
	Active SourceSet
	Winner Source
	Slots  map[Source]State
	// Backlight is the last brightness written, or -1.
	Backlight int
}

// Snapshot copies the current state under the lock.
func (d *Device) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	slots := make(map[Source]State, len(DefaultPriority))
	for _, src := range DefaultPriority {
		slots[src] = d.store.Get(src)
	}
	return Snapshot{
		Active:    d.arbiter.Active(),
		Winner:    d.arbiter.Last(),
		Slots:     slots,
		Backlight: d.backlight,
	}
}
