package stats

import (
	"strings"
	"time"

	"github.com/verte-zerg/gotypist-stats/internal/model"
)

const (
	// HitmapTitle is the title of the practice calendar report.
	HitmapTitle = "6 months hitmap"

	hitmapDays  = 182
	glyphHeavy  = "▓▓"
	glyphLight  = "▒▒"
	glyphEmpty  = "░░"
	daysPerWeek = 7
)

// HitmapGrid holds per-day session counts for whole weeks.
type HitmapGrid struct {
	Start  time.Time // Monday of the first week
	Weeks  int
	Median float64
	counts map[time.Time]int
}

// Count returns the number of sessions started on the given day of the given
// week, both zero-based with Monday as day 0.
func (g HitmapGrid) Count(week, weekday int) int {
	return g.counts[g.Start.AddDate(0, 0, week*daysPerWeek+weekday)]
}

// BuildHitmapGrid counts sessions per day over the half year ending today,
// widened to whole Monday-aligned weeks. The median is taken over every day
// of the grid, including days without practice.
func BuildHitmapGrid(today time.Time, sessions []model.Session) HitmapGrid {
	today = Day(today)
	begin := today.AddDate(0, 0, -hitmapDays)
	firstMonday := WeekStart(begin)
	lastMonday := WeekStart(today)
	weeks := 1 + int(lastMonday.Sub(firstMonday).Hours()/24)/daysPerWeek
	end := firstMonday.AddDate(0, 0, weeks*daysPerWeek)

	counts := make(map[time.Time]int)
	for _, s := range sessions {
		day := Day(s.StartedAt)
		if day.Before(firstMonday) || !day.Before(end) {
			continue
		}
		counts[day]++
	}

	grid := HitmapGrid{Start: firstMonday, Weeks: weeks, counts: counts}
	values := make([]float64, 0, weeks*daysPerWeek)
	for week := 0; week < weeks; week++ {
		for weekday := 0; weekday < daysPerWeek; weekday++ {
			values = append(values, float64(grid.Count(week, weekday)))
		}
	}
	grid.Median = Median(values)
	return grid
}

// Hitmap renders one line per weekday, one glyph per week, oldest week first.
func Hitmap(today time.Time, sessions []model.Session) model.Report {
	grid := BuildHitmapGrid(today, sessions)
	lines := make([]string, 0, daysPerWeek)
	for weekday := 0; weekday < daysPerWeek; weekday++ {
		var b strings.Builder
		b.WriteString(grid.Start.AddDate(0, 0, weekday).Weekday().String()[:3])
		b.WriteByte(' ')
		for week := 0; week < grid.Weeks; week++ {
			b.WriteString(hitGlyph(grid.Count(week, weekday), grid.Median))
		}
		lines = append(lines, b.String())
	}
	return model.Report{Title: HitmapTitle, Content: strings.Join(lines, "\n")}
}

// hitGlyph picks the density glyph. Days without sessions are always empty,
// even when the median itself is zero.
func hitGlyph(count int, median float64) string {
	switch {
	case count == 0:
		return glyphEmpty
	case float64(count) >= median:
		return glyphHeavy
	default:
		return glyphLight
	}
}
