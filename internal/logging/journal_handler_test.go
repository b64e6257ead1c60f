package logging

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/coreos/go-systemd/v22/journal"
)

type journalEntry struct {
	msg      string
	priority journal.Priority
	fields   map[string]string
}

func newCapturingJournal(level slog.Leveler) (*JournalHandler, *[]journalEntry) {
	var entries []journalEntry
	h := NewJournalHandler(level)
	h.send = func(msg string, p journal.Priority, vars map[string]string) error {
		entries = append(entries, journalEntry{msg: msg, priority: p, fields: vars})
		return nil
	}
	return h, &entries
}

func TestJournalHandler_Fields(t *testing.T) {
	h, entries := newCapturingJournal(slog.LevelDebug)
	logger := slog.New(h).With("module", "lights").WithGroup("req")

	logger.Warn("Control file write failed",
		"path", "/sys/class/leds/nubia_led/outn",
		"code", -2,
		slog.Group("winner", "source", "battery"),
		"took", 3*time.Millisecond,
		"content-type", "text")

	if len(*entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(*entries))
	}
	e := (*entries)[0]
	if e.msg != "Control file write failed" {
		t.Errorf("msg = %q", e.msg)
	}
	if e.priority != journal.PriWarning {
		t.Errorf("priority = %d, want %d", e.priority, journal.PriWarning)
	}

	want := map[string]string{
		"SYSLOG_IDENTIFIER": SyslogIdentifier,
		"MODULE":            "lights",
		"REQ_PATH":          "/sys/class/leds/nubia_led/outn",
		"REQ_CODE":          "-2",
		"REQ_WINNER_SOURCE": "battery",
		"REQ_TOOK":          "3ms",
		"REQ_CONTENT_TYPE":  "text",
	}
	for k, v := range want {
		if got := e.fields[k]; got != v {
			t.Errorf("field %s = %q, want %q", k, got, v)
		}
	}
}

func TestJournalHandler_Level(t *testing.T) {
	level := &slog.LevelVar{}
	level.Set(slog.LevelWarn)
	h, entries := newCapturingJournal(level)
	logger := slog.New(h)

	logger.Info("dropped")
	logger.Error("kept")
	if len(*entries) != 1 || (*entries)[0].priority != journal.PriErr {
		t.Fatalf("entries = %+v", *entries)
	}

	level.Set(slog.LevelDebug)
	logger.Debug("now kept")
	if len(*entries) != 2 || (*entries)[1].priority != journal.PriDebug {
		t.Errorf("entries = %+v", *entries)
	}
}

func TestJournalHandler_WithAttrsDoesNotLeak(t *testing.T) {
	h, entries := newCapturingJournal(slog.LevelInfo)
	base := slog.New(h)
	base.With("light", "battery").Info("one")
	base.Info("two")

	if got := (*entries)[1].fields["LIGHT"]; got != "" {
		t.Errorf("LIGHT leaked into parent handler: %q", got)
	}
}

func TestMultiHandler_JoinsErrors(t *testing.T) {
	failing := NewJournalHandler(slog.LevelInfo)
	failing.send = func(string, journal.Priority, map[string]string) error { return errors.New("socket closed") }
	ok, entries := newCapturingJournal(slog.LevelInfo)

	m := NewMultiHandler(failing, ok)
	logger := slog.New(m)
	logger.Info("hello")

	if len(*entries) != 1 {
		t.Errorf("working handler got %d entries, want 1", len(*entries))
	}
}

func TestFieldName(t *testing.T) {
	tests := map[string]string{
		"path":         "PATH",
		"content-type": "CONTENT_TYPE",
		"a.b":          "A_B",
		"Code2":        "CODE2",
	}
	for in, want := range tests {
		if got := fieldName(in); got != want {
			t.Errorf("fieldName(%q) = %q, want %q", in, got, want)
		}
	}
}
