package stats

import (
	"fmt"
	"time"

	"github.com/verte-zerg/gotypist-stats/internal/model"
)

// Report titles.
const (
	TrainingTimeTitle = "Overall stats"
	TypoRecordTitle   = "Biggest failure"
)

// TotalTrainingTime sums the duration of every session.
func TotalTrainingTime(sessions []model.Session) time.Duration {
	var total time.Duration
	for _, s := range sessions {
		total += s.Duration()
	}
	return total
}

// TrainingTime reports the total time spent practicing.
func TrainingTime(sessions []model.Session) model.Report {
	return model.Report{
		Title: TrainingTimeTitle,
		Content: gridTable([][]string{
			{"Total training time:", HumanDuration(TotalTrainingTime(sessions))},
		}, nil),
	}
}

// WorstSession returns the session with the most errors. The earliest one in
// input order wins ties.
func WorstSession(sessions []model.Session) (model.Session, error) {
	if len(sessions) == 0 {
		return model.Session{}, ErrNoData
	}
	worst := sessions[0]
	for _, s := range sessions[1:] {
		if s.Errors > worst.Errors {
			worst = s
		}
	}
	return worst, nil
}

// TypoRecord reports the session with the highest number of errors.
func TypoRecord(sessions []model.Session) (model.Report, error) {
	worst, err := WorstSession(sessions)
	if err != nil {
		return model.Report{}, err
	}
	// Month name, month number and year, as gotypist-stats always printed it.
	happenedOn := worst.StartedAt.Format("Jan 01 2006")
	return model.Report{
		Title: TypoRecordTitle,
		Content: gridTable([][]string{
			{"was typing", worst.Text},
			{"mode", worst.Mode.String()},
			{"failed", fmt.Sprintf("%d times", worst.Errors)},
			{"happened on", happenedOn},
			{"struggled for", HumanDuration(worst.Duration())},
		}, nil),
	}, nil
}
