package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/gotypist-stats/internal/model"
)

func TestPrintPlain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, model.ColorAuto)
	err := p.Print([]model.Report{
		{Title: "Overall stats", Content: "line one\nline two"},
		{Title: "Biggest failure", Content: "No data available yet."},
	})
	require.NoError(t, err)
	assert.Equal(t, "\n🟄 Overall stats 🟄\n\nline one\nline two\n"+
		"\n🟄 Biggest failure 🟄\n\nNo data available yet.\n", buf.String())
}

func TestTitleColor(t *testing.T) {
	var buf bytes.Buffer
	plain := NewPrinter(&buf, model.ColorNever).Title("Hitmap")
	assert.Equal(t, "🟄 Hitmap 🟄", plain)

	styled := NewPrinter(&buf, model.ColorAlways).Title("Hitmap")
	assert.Contains(t, styled, "\x1b[")
	assert.Contains(t, styled, "Hitmap")
}

func TestShouldUseColorHonorsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	assert.False(t, shouldUseColor(&buf, model.ColorAuto))
	assert.True(t, shouldUseColor(&buf, model.ColorAlways))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestPrintWriteError(t *testing.T) {
	err := NewPrinter(failingWriter{}, model.ColorNever).Print([]model.Report{{Title: "x", Content: "y"}})
	assert.ErrorContains(t, err, "failed to write output")
}
