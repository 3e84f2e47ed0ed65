package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeFromTag(t *testing.T) {
	tests := []struct {
		tag  int
		want Mode
		name string
	}{
		{0, ModeFast, "fast"},
		{1, ModeSlow, "slow"},
		{2, ModeNormal, "normal"},
	}
	for _, tt := range tests {
		got, err := ModeFromTag(tt.tag)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.name, got.String())
		assert.Equal(t, tt.tag, got.Tag())
	}
}

func TestModeFromTagRejectsUnknown(t *testing.T) {
	for _, tag := range []int{-1, 3, 42} {
		_, err := ModeFromTag(tag)
		assert.ErrorIs(t, err, ErrUnknownMode, "tag %d", tag)
	}
}

func TestModeName(t *testing.T) {
	assert.Equal(t, "SLOW", ModeSlow.Name())
	assert.Equal(t, "Mode(0)", Mode(0).Name())
}

func TestSessionDuration(t *testing.T) {
	start := time.Date(2021, 3, 1, 10, 0, 0, 0, time.FixedZone("", 3600))
	s := Session{StartedAt: start, FinishedAt: start.Add(1500 * time.Millisecond)}
	assert.Equal(t, 1500*time.Millisecond, s.Duration())
}
