package lights

import (
	"io"
	"log/slog"
	"strconv"
	"sync"
	"syscall"

	"github.com/smazurov/lighthal/internal/hw"
)

type write struct {
	Path  string
	Value string
}

// fakeWriter records writes and fails the paths listed in fail.
type fakeWriter struct {
	mu     sync.Mutex
	writes []write
	fail   map[string]syscall.Errno
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{fail: make(map[string]syscall.Errno)}
}

func (f *fakeWriter) WriteInt(path string, value int) error {
	return f.WriteString(path, strconv.Itoa(value))
}

func (f *fakeWriter) WriteString(path string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, write{Path: path, Value: value})
	if errno, ok := f.fail[path]; ok {
		return &hw.WriteError{Op: "open", Path: path, Err: errno}
	}
	return nil
}

// take returns the writes recorded so far and clears them.
func (f *fakeWriter) take() []write {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.writes
	f.writes = nil
	return out
}

var (
	testPaths  = hw.DefaultPaths()
	quietLog   = slog.New(slog.NewTextHandler(io.Discard, nil))
	red        = State{Color: 0x00FF0000}
	dim        = State{Color: 0x00010000}
	off        = State{}
	greenOnly  = State{Color: 0x0000FF00}
	offWrites  = []write{sel(ChannelButtons), blink(BlinkOff), sel(ChannelRed), blink(BlinkOff)}
	breathOn   = []write{sel(ChannelRed), blink(BlinkBreath)}
	buttonsOn  = []write{sel(ChannelButtons), grade(GradeButtons), blink(BlinkOn), sel(ChannelRed), grade(GradeRed), blink(BlinkOn)}
	allSources = []Source{SourceNotification, SourceBattery, SourceButtons, SourceAttention}
)

func sel(ch int) write        { return write{Path: testPaths.Selector, Value: strconv.Itoa(ch)} }
func blink(mode string) write { return write{Path: testPaths.BlinkMode, Value: mode} }
func grade(g int) write       { return write{Path: testPaths.Grade, Value: strconv.Itoa(g)} }

func concat(parts ...[]write) []write {
	var out []write
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
