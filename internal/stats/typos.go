package stats

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/verte-zerg/gotypist-stats/internal/model"
)

// CommonTyposTitle is the title of the most frequent mistakes report.
const CommonTyposTitle = "Most common typos"

const commonTyposTop = 6

// TypoCount is a typo with the number of times it was made.
type TypoCount struct {
	Typo  model.Typo
	Count int
}

// CountTypos counts every typo of sessions that have at least one error.
// Results are sorted by count, descending; equal counts keep the order in
// which the typos were first seen. total is the number of typos counted.
func CountTypos(sessions []model.Session) (counts []TypoCount, total int) {
	index := make(map[model.Typo]int)
	for _, s := range sessions {
		if s.Errors <= 0 {
			continue
		}
		for _, typo := range s.Typos {
			i, ok := index[typo]
			if !ok {
				i = len(counts)
				index[typo] = i
				counts = append(counts, TypoCount{Typo: typo})
			}
			counts[i].Count++
		}
		total += len(s.Typos)
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts, total
}

// CommonTypos reports the six most frequent typos and their share of all
// counted typos.
func CommonTypos(sessions []model.Session) (model.Report, error) {
	counts, total := CountTypos(sessions)
	if total == 0 {
		return model.Report{}, ErrNoData
	}
	if len(counts) > commonTyposTop {
		counts = counts[:commonTyposTop]
	}

	rows := make([][]string, 0, len(counts))
	for i, c := range counts {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%s instead of %s", c.Typo.Actual, c.Typo.Expected),
			strconv.Itoa(c.Count),
			fmt.Sprintf("%.2f%%", 100*float64(c.Count)/float64(total)),
		})
	}
	headers := []string{"", "Typo", "Mistakes", "% of mistakes"}
	rightAlign := map[int]bool{0: true, 2: true}
	return model.Report{
		Title:   CommonTyposTitle,
		Content: simpleTable(headers, rows, rightAlign),
	}, nil
}
