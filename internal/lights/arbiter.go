package lights

import (
	"log/slog"

	"github.com/smazurov/lighthal/internal/hw"
)

// Result describes what one arbitration step did.
type Result struct {
	Previous Source
	Winner   Source
	Active   SourceSet
	// Writes is the number of control file writes attempted.
	Writes int
	// Err is the first failed write, if any. The update was applied anyway.
	Err error
}

// WinnerChanged reports whether a different source drives the LED now.
func (r Result) WinnerChanged() bool {
	return r.Previous != r.Winner
}

// Arbiter owns the arbitration state: which sources are active and which one
// drove the hardware last. Callers serialize access.
type Arbiter struct {
	w        hw.Writer
	paths    hw.Paths
	priority []Source
	logger   *slog.Logger

	active SourceSet
	last   Source
}

// NewArbiter creates an arbiter using DefaultPriority.
func NewArbiter(w hw.Writer, paths hw.Paths, logger *slog.Logger) *Arbiter {
	return &Arbiter{
		w:        w,
		paths:    paths,
		priority: DefaultPriority,
		logger:   logger,
		last:     SourceNone,
	}
}

// Active returns the current active set.
func (a *Arbiter) Active() SourceSet { return a.active }

// Last returns the source that drove the hardware most recently.
func (a *Arbiter) Last() Source { return a.last }

// Apply folds a new state for src into the active set and programs the
// hardware for the winning source.
func (a *Arbiter) Apply(src Source, state State) (res Result) {
	seq := &writeSeq{w: a.w}
	res.Previous = a.last
	defer func() {
		res.Winner = a.last
		res.Active = a.active
		res.Writes = seq.n
		res.Err = seq.err
	}()

	if state.Brightness() > 0 {
		a.active = a.active.With(src)
	} else {
		a.active = a.active.Without(src)

		seq.int(a.paths.Selector, ChannelButtons)
		seq.str(a.paths.BlinkMode, BlinkOff)
		seq.int(a.paths.Selector, ChannelRed)
		seq.str(a.paths.BlinkMode, BlinkOff)

		if a.active.Empty() {
			a.last = SourceNone
			return res
		}
	}

	winner := a.resolve()
	if winner == SourceNone {
		a.last = SourceNone
		a.logger.Error("No active source after arbitration", "active", uint8(a.active))
		return res
	}

	// The buttons light is steady, so reprogramming it would only flicker.
	if winner == SourceButtons && a.last == SourceButtons {
		return res
	}

	a.last = winner

	if winner != SourceButtons {
		a.logger.Debug("Red LED on", "source", winner.String())
		seq.int(a.paths.Selector, ChannelRed)
		seq.str(a.paths.BlinkMode, BlinkBreath)
		return res
	}

	a.logger.Debug("Button LED on")
	seq.int(a.paths.Selector, ChannelButtons)
	seq.int(a.paths.Grade, GradeButtons)
	seq.str(a.paths.BlinkMode, BlinkOn)
	seq.int(a.paths.Selector, ChannelRed)
	seq.int(a.paths.Grade, GradeRed)
	seq.str(a.paths.BlinkMode, BlinkOn)
	return res
}

func (a *Arbiter) resolve() Source {
	for _, src := range a.priority {
		if a.active.Has(src) {
			return src
		}
	}
	return SourceNone
}

// writeSeq issues writes in order, remembering the first failure.
type writeSeq struct {
	w   hw.Writer
	n   int
	err error
}

func (s *writeSeq) int(path string, value int) {
	s.record(s.w.WriteInt(path, value))
}

func (s *writeSeq) str(path, value string) {
	s.record(s.w.WriteString(path, value))
}

func (s *writeSeq) record(err error) {
	s.n++
	if err != nil && s.err == nil {
		s.err = err
	}
}
