// Package stats contains statistics calculations and reporting.
package stats

import (
	"errors"
	"time"

	"github.com/verte-zerg/gotypist-stats/internal/model"
)

// ErrNoData is returned by reports that are undefined without sessions.
var ErrNoData = errors.New("no data")

// NoDataContent replaces the content of a report that has nothing to show.
const NoDataContent = "No data available yet."

type generator struct {
	title string
	build func(today time.Time, sessions []model.Session) (model.Report, error)
}

var generators = []generator{
	{HitmapTitle, func(today time.Time, sessions []model.Session) (model.Report, error) {
		return Hitmap(today, sessions), nil
	}},
	{TrainingTimeTitle, func(_ time.Time, sessions []model.Session) (model.Report, error) {
		return TrainingTime(sessions), nil
	}},
	{TypoRecordTitle, func(_ time.Time, sessions []model.Session) (model.Report, error) {
		return TypoRecord(sessions)
	}},
	{CommonTyposTitle, func(_ time.Time, sessions []model.Session) (model.Report, error) {
		return CommonTypos(sessions)
	}},
	{SpeedProgressTitle, func(_ time.Time, sessions []model.Session) (model.Report, error) {
		return SpeedProgress(sessions)
	}},
}

// Generate builds every report in display order. Reports without data get
// NoDataContent instead of failing the whole run.
func Generate(today time.Time, sessions []model.Session) ([]model.Report, error) {
	reports := make([]model.Report, 0, len(generators))
	for _, g := range generators {
		report, err := g.build(today, sessions)
		if errors.Is(err, ErrNoData) {
			report = model.Report{Title: g.title, Content: NoDataContent}
		} else if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
