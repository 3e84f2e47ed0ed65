package statsfile

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02T15:04:05.000000-07:00"

var timestampPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2})(?:\.(\d+))?(?:(Z)|([+\-]\d{2}):?(\d{2}))$`)

// ParseTimestamp parses an ISO-8601 timestamp with an optional fractional
// part of any length and either a ±HH:MM offset or Z. The fraction is
// truncated or zero-padded to microseconds.
func ParseTimestamp(value string) (time.Time, error) {
	m := timestampPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
	}
	offset := "+00:00"
	if m[3] == "" {
		offset = m[4] + ":" + m[5]
	}
	normalized := m[1] + "." + normalizeFraction(m[2]) + offset
	t, err := time.Parse(timestampLayout, normalized)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return t, nil
}

func normalizeFraction(frac string) string {
	const digits = 6
	if len(frac) >= digits {
		return frac[:digits]
	}
	return frac + strings.Repeat("0", digits-len(frac))
}
