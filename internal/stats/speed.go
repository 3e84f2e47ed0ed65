package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/verte-zerg/gotypist-stats/internal/model"
)

// SpeedProgressTitle is the title of the monthly speed report.
const SpeedProgressTitle = "Characters per second (slow mode)"

const boxPlotWidth = 30

// MonthlySpeed summarizes the cps of the slow sessions of one month.
type MonthlySpeed struct {
	Month    YearMonth
	Summary  [5]float64 // min, q1, median, q3, max
	Sessions int
}

// MonthlySlowSpeeds groups slow-mode sessions by the month they started in,
// in order of first appearance, and summarizes their cps.
func MonthlySlowSpeeds(sessions []model.Session) ([]MonthlySpeed, error) {
	var months []YearMonth
	cps := make(map[YearMonth][]float64)
	for _, s := range sessions {
		if s.Mode != model.ModeSlow {
			continue
		}
		key := MonthOf(s.StartedAt)
		if _, ok := cps[key]; !ok {
			months = append(months, key)
		}
		cps[key] = append(cps[key], s.CPS)
	}
	if len(months) == 0 {
		return nil, ErrNoData
	}

	out := make([]MonthlySpeed, 0, len(months))
	for _, month := range months {
		summary, err := fiveNumberSummary(cps[month])
		if err != nil {
			return nil, fmt.Errorf("failed to summarize %s: %w", month.Label(), err)
		}
		out = append(out, MonthlySpeed{Month: month, Summary: summary, Sessions: len(cps[month])})
	}
	return out, nil
}

// SpeedProgress plots the monthly cps distribution of slow sessions on a
// shared scale from zero to the fastest session.
func SpeedProgress(sessions []model.Session) (model.Report, error) {
	months, err := MonthlySlowSpeeds(sessions)
	if err != nil {
		return model.Report{}, err
	}
	globalMax := 0.0
	for _, m := range months {
		globalMax = math.Max(globalMax, m.Summary[4])
	}

	rows := make([][]string, 0, len(months))
	for _, m := range months {
		var pos [5]int
		for i, v := range m.Summary {
			pos[i] = screenPosition(v, globalMax, boxPlotWidth)
		}
		rows = append(rows, []string{
			m.Month.Label(),
			fmt.Sprintf("%.2g", m.Summary[2]),
			BoxPlot(pos[0], pos[1], pos[2], pos[3], pos[4]),
			strconv.Itoa(m.Sessions),
		})
	}
	headers := []string{"Month", "Median cps", "Plot", "Sessions..."}
	return model.Report{
		Title:   SpeedProgressTitle,
		Content: simpleTable(headers, rows, map[int]bool{1: true, 3: true}),
	}, nil
}

// screenPosition maps value onto [0, width] with 0 at column 0 and max at
// column width.
func screenPosition(value, maxValue float64, width int) int {
	if maxValue <= 0 {
		return 0
	}
	return int(math.Round(float64(width) * value / maxValue))
}

// BoxPlot draws a five-number summary given as screen columns. Columns are
// tested in order: before min, median, min, max, box, whisker.
func BoxPlot(start, q25, med, q75, end int) string {
	var b strings.Builder
	for i := 0; i <= end; i++ {
		switch {
		case i < start:
			b.WriteRune(' ')
		case i == med:
			b.WriteRune('▣')
		case i == start:
			b.WriteRune('├')
		case i == end:
			b.WriteRune('┤')
		case i >= q25 && i < med, i > med && i <= q75:
			b.WriteRune('□')
		case i > start && i < q25, i > q75 && i < end:
			b.WriteRune('─')
		}
	}
	return b.String()
}
