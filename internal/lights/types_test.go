package lights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Brightness(t *testing.T) {
	tests := []struct {
		color uint32
		want  int
	}{
		{0x00000000, 0},
		{0x00FF0000, 255},
		{0x00010000, 1},
		{0xFF00FFFF, 0},
		{0x7F800000, 128},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, State{Color: tt.color}.Brightness(), "color %#08x", tt.color)
	}
}

func TestState_Luma(t *testing.T) {
	tests := []struct {
		color uint32
		want  int
	}{
		{0x00000000, 0},
		{0x00FFFFFF, 255},
		{0xFFFFFFFF, 255},
		{0x00FF0000, 85},
		{0x00030303, 3},
		{0x00010100, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, State{Color: tt.color}.Luma(), "color %#08x", tt.color)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"#ff0000", 0x00FF0000, false},
		{"#80ff0000", 0x80FF0000, false},
		{"0x00FF0000", 0x00FF0000, false},
		{"00ff00", 0x0000FF00, false},
		{" #000000 ", 0, false},
		{"#fff", 0, true},
		{"#zzzzzz", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSourceSet(t *testing.T) {
	var s SourceSet
	assert.True(t, s.Empty())

	s = s.With(SourceAttention).With(SourceNotification)
	assert.True(t, s.Has(SourceNotification))
	assert.True(t, s.Has(SourceAttention))
	assert.False(t, s.Has(SourceBattery))
	assert.False(t, s.Has(SourceNone))
	assert.Equal(t, []string{"notification", "attention"}, s.Names())

	s = s.Without(SourceNotification).Without(SourceAttention)
	assert.True(t, s.Empty())
}

func TestIDSource(t *testing.T) {
	for _, id := range IDs {
		src, ok := id.Source()
		if id == IDBacklight {
			assert.False(t, ok)
			assert.Equal(t, SourceNone, src)
			continue
		}
		assert.True(t, ok, id)
	}
}

func TestStore(t *testing.T) {
	var s Store
	st := State{Color: 0x00FF0000, FlashMode: FlashTimed, FlashOnMS: 500, FlashOffMS: 1000}

	got := s.Set(SourceBattery, st)
	assert.Equal(t, st, got)
	assert.Equal(t, st, s.Get(SourceBattery))
	assert.Equal(t, State{}, s.Get(SourceNotification))

	s.Set(SourceBattery, off)
	assert.Equal(t, off, s.Get(SourceBattery))

	assert.Equal(t, State{}, s.Get(SourceNone))
}

func TestModeNames(t *testing.T) {
	for _, name := range []string{"none", "timed", "hardware"} {
		m, err := ParseFlashMode(name)
		require.NoError(t, err)
		assert.Equal(t, name, m.String())
	}
	for _, name := range []string{"user", "sensor", "low_persistence"} {
		m, err := ParseBrightnessMode(name)
		require.NoError(t, err)
		assert.Equal(t, name, m.String())
	}

	m, err := ParseFlashMode("")
	require.NoError(t, err)
	assert.Equal(t, FlashNone, m)

	_, err = ParseFlashMode("strobe")
	assert.Error(t, err)
	_, err = ParseBrightnessMode("auto")
	assert.Error(t, err)
}
