package stats

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

const (
	minutesThreshold = 120.0
	hoursThreshold   = 2 * 3600.0
)

// HumanDuration renders d as seconds up to two minutes, as minutes and
// seconds up to two hours, and as hours and minutes beyond that. Both
// thresholds belong to the shorter form.
func HumanDuration(d time.Duration) string {
	secs := d.Seconds()
	switch {
	case secs <= minutesThreshold:
		return strconv.FormatFloat(secs, 'f', -1, 64) + " seconds"
	case secs <= hoursThreshold:
		return fmt.Sprintf("%.0f minutes %.0fs", math.Floor(secs/60), math.Mod(secs, 60))
	default:
		return fmt.Sprintf("%.0f hours %.0fmin", math.Floor(secs/3600), math.Floor(math.Mod(secs, 3600)/60))
	}
}

// Day truncates t to its calendar date in t's own location. The result is
// expressed in UTC so it can be compared and used as a map key.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of the ISO week containing day.
func WeekStart(day time.Time) time.Time {
	return day.AddDate(0, 0, -weekdayIndex(day))
}

// weekdayIndex numbers days from Monday=0 to Sunday=6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month of t in t's own location.
func MonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Label formats the month as "Jan 2006".
func (ym YearMonth) Label() string {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}
