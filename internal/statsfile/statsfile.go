// Package statsfile decodes the JSON-lines stats log written by gotypist.
package statsfile

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/gotypist-stats/internal/model"
)

const maxLineSize = 1 << 20

// ErrMalformedRecord is returned when a line cannot be decoded into a session.
var ErrMalformedRecord = errors.New("malformed record")

// rawRecord mirrors one log line. Pointers tell missing fields apart from
// zero values.
type rawRecord struct {
	Text       *string    `json:"text"`
	StartedAt  *string    `json:"started_at"`
	FinishedAt *string    `json:"finished_at"`
	Errors     *int       `json:"errors"`
	Typos      *[]rawTypo `json:"typos"`
	Mode       *int       `json:"mode"`
	Seconds    *float64   `json:"seconds"`
	CPS        *float64   `json:"cps"`
	WPM        *float64   `json:"wpm"`
	Version    *int       `json:"version"`
}

type rawTypo struct {
	Expected *glyph `json:"expected"`
	Actual   *glyph `json:"actual"`
}

// glyph accepts a character encoded either as a JSON string or as a code point.
type glyph string

func (g *glyph) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*g = glyph(s)
		return nil
	}
	var r int32
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("expected string or code point, got %s", data)
	}
	*g = glyph(string(rune(r)))
	return nil
}

// Decoder reads sessions from a stats log one line at a time.
type Decoder struct {
	r       io.Reader
	line    int
	skipped int
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Skipped returns how many records were dropped for an unsupported version.
func (d *Decoder) Skipped() int {
	return d.skipped
}

// Records yields every supported session in file order. Iteration stops at
// the first read or decode error, which is yielded with a zero Session.
func (d *Decoder) Records() iter.Seq2[model.Session, error] {
	return func(yield func(model.Session, error) bool) {
		scanner := bufio.NewScanner(d.r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			d.line++
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			session, ok, err := decodeLine([]byte(line))
			if err != nil {
				yield(model.Session{}, fmt.Errorf("line %d: %w", d.line, err))
				return
			}
			if !ok {
				d.skipped++
				continue
			}
			if !yield(session, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(model.Session{}, fmt.Errorf("failed to read stats: %w", err))
		}
	}
}

// Collect drains a record sequence into a slice.
func Collect(records iter.Seq2[model.Session, error]) ([]model.Session, error) {
	var sessions []model.Session
	for s, err := range records {
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// Load reads every supported session from the stats file at path.
func Load(ctx context.Context, path string) ([]model.Session, error) {
	logger := zerolog.Ctx(ctx)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stats file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logger.Warn().Err(cerr).Str("path", path).Msg("failed to close stats file")
		}
	}()

	dec := NewDecoder(file)
	sessions, err := Collect(dec.Records())
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	logger.Debug().
		Str("path", path).
		Int("sessions", len(sessions)).
		Int("skipped", dec.Skipped()).
		Msg("loaded stats file")
	return sessions, nil
}

// decodeLine returns ok=false for records of an unsupported version.
func decodeLine(line []byte) (model.Session, bool, error) {
	var raw rawRecord
	if err := json.Unmarshal(line, &raw); err != nil {
		return model.Session{}, false, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if raw.Version == nil || *raw.Version != model.SupportedVersion {
		return model.Session{}, false, nil
	}
	if err := raw.checkRequired(); err != nil {
		return model.Session{}, false, err
	}

	startedAt, err := ParseTimestamp(*raw.StartedAt)
	if err != nil {
		return model.Session{}, false, fmt.Errorf("%w: started_at: %v", ErrMalformedRecord, err)
	}
	finishedAt, err := ParseTimestamp(*raw.FinishedAt)
	if err != nil {
		return model.Session{}, false, fmt.Errorf("%w: finished_at: %v", ErrMalformedRecord, err)
	}
	mode, err := model.ModeFromTag(*raw.Mode)
	if err != nil {
		return model.Session{}, false, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	typos := make([]model.Typo, 0, len(*raw.Typos))
	for i, t := range *raw.Typos {
		if t.Expected == nil || t.Actual == nil {
			return model.Session{}, false, fmt.Errorf("%w: typo %d: missing expected or actual", ErrMalformedRecord, i)
		}
		typos = append(typos, model.Typo{Expected: string(*t.Expected), Actual: string(*t.Actual)})
	}

	return model.Session{
		Text:       *raw.Text,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Errors:     *raw.Errors,
		Typos:      typos,
		Mode:       mode,
		Seconds:    *raw.Seconds,
		CPS:        *raw.CPS,
		WPM:        *raw.WPM,
		Version:    *raw.Version,
	}, true, nil
}

func (r rawRecord) checkRequired() error {
	var missing []string
	if r.Text == nil {
		missing = append(missing, "text")
	}
	if r.StartedAt == nil {
		missing = append(missing, "started_at")
	}
	if r.FinishedAt == nil {
		missing = append(missing, "finished_at")
	}
	if r.Errors == nil {
		missing = append(missing, "errors")
	}
	if r.Typos == nil {
		missing = append(missing, "typos")
	}
	if r.Mode == nil {
		missing = append(missing, "mode")
	}
	if r.Seconds == nil {
		missing = append(missing, "seconds")
	}
	if r.CPS == nil {
		missing = append(missing, "cps")
	}
	if r.WPM == nil {
		missing = append(missing, "wpm")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrMalformedRecord, strings.Join(missing, ", "))
	}
	return nil
}
