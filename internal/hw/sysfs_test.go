package hw

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSysfs(buf *bytes.Buffer) *Sysfs {
	return NewSysfs(slog.New(slog.NewTextHandler(buf, nil)))
}

func TestSysfs_WriteInt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outn")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s := newTestSysfs(&bytes.Buffer{})
	require.NoError(t, s.WriteInt(path, 16))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "16\n", string(data))
}

func TestSysfs_WriteString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blink_mode")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s := newTestSysfs(&bytes.Buffer{})
	require.NoError(t, s.WriteString(path, "3"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "3\n", string(data))
}

func TestSysfs_OpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "grade_parameter")

	s := newTestSysfs(&bytes.Buffer{})
	err := s.WriteInt(path, 8)
	require.Error(t, err)

	var werr *WriteError
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, "open", werr.Op)
	assert.Equal(t, path, werr.Path)
	assert.Equal(t, syscall.ENOENT, werr.Errno())
	assert.Equal(t, -int(syscall.ENOENT), Code(err))
}

func TestSysfs_OpenFailureWarnsOncePerPath(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "missing", "outn")
	second := filepath.Join(dir, "missing", "blink_mode")

	var buf bytes.Buffer
	s := newTestSysfs(&buf)

	for i := 0; i < 3; i++ {
		_ = s.WriteInt(first, 16)
	}
	_ = s.WriteString(second, "2")

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "path="+first), "repeated failures on one path should warn once")
	assert.Equal(t, 1, strings.Count(out, "path="+second), "a different path should still warn")
}

func TestSysfs_ReadString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capacity")
	require.NoError(t, os.WriteFile(path, []byte("87\n"), 0o644))

	s := newTestSysfs(&bytes.Buffer{})
	got, err := s.ReadString(path)
	require.NoError(t, err)
	assert.Equal(t, "87", got)
}

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"write error with errno", &WriteError{Op: "open", Path: "/x", Err: &os.PathError{Op: "open", Path: "/x", Err: syscall.EACCES}}, -int(syscall.EACCES)},
		{"short write", &WriteError{Op: "write", Path: "/x", Err: io.ErrShortWrite}, -int(syscall.EIO)},
		{"bare errno", syscall.EBUSY, -int(syscall.EBUSY)},
		{"other", errors.New("boom"), -int(syscall.EIO)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Code(tt.err))
		})
	}
}
