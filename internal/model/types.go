// Package model defines shared data structures.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// SupportedVersion is the only stats record schema version that is read.
const SupportedVersion = 1

// ErrUnknownMode is returned for mode tags outside the known range.
var ErrUnknownMode = errors.New("unknown mode")

// Mode is the practice mode a session was typed in.
type Mode int

// Modes start at 1; the zero value is not a valid mode.
const (
	ModeFast Mode = iota + 1
	ModeSlow
	ModeNormal
)

// ModeFromTag converts the mode tag written by gotypist into a Mode.
//
// gotypist numbers its modes from 0 (0=fast, 1=slow, 2=normal) while Mode
// starts at 1, so the tag is shifted by one. Older readers that skipped the
// shift reported every slow session as fast.
func ModeFromTag(tag int) (Mode, error) {
	m := Mode(tag + 1)
	if m < ModeFast || m > ModeNormal {
		return 0, fmt.Errorf("%w: tag %d", ErrUnknownMode, tag)
	}
	return m, nil
}

// Tag returns the gotypist numbering of the mode.
func (m Mode) Tag() int {
	return int(m) - 1
}

// Name returns the upper-case mode name.
func (m Mode) Name() string {
	switch m {
	case ModeFast:
		return "FAST"
	case ModeSlow:
		return "SLOW"
	case ModeNormal:
		return "NORMAL"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// String implements fmt.Stringer with the lower-case mode name.
func (m Mode) String() string {
	return strings.ToLower(m.Name())
}

// Typo is a single mistake: the character that was expected and the one
// that was typed instead. It is comparable and used as a map key.
type Typo struct {
	Expected string
	Actual   string
}

// Session is one completed typing exercise read from the stats log.
type Session struct {
	Text       string
	StartedAt  time.Time
	FinishedAt time.Time
	Errors     int
	Typos      []Typo
	Mode       Mode
	Seconds    float64
	CPS        float64
	WPM        float64
	Version    int
}

// Duration returns the time spent on the session.
func (s Session) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// Report is a titled, pre-formatted block of text.
type Report struct {
	Title   string
	Content string
}

// ColorMode controls styled output.
type ColorMode string

// Color modes accepted by --color.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ReportConfig defines where records come from and how reports are printed.
type ReportConfig struct {
	StatsFile string
	DBPath    string
	FromDB    bool
	Color     ColorMode
	Today     time.Time
}
