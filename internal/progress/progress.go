// Package progress aggregates a user's completed patterns into dashboard
// statistics.
package progress

import (
	"fmt"

	"github.com/vytor/patternmaster/internal/models"
)

const noStatsRecommendation = "Complete a few patterns to get a personalised recommendation."

// Summarize computes totals, rates and per-type stats over records.
func Summarize(records []models.CompletedPattern) models.Progress {
	p := models.Progress{PatternStats: map[models.PatternType]models.PatternStat{}}

	attempts := 0
	for _, r := range records {
		p.GamesPlayed++
		p.TotalScore += r.Score
		attempts += r.Attempts

		stat := p.PatternStats[r.Type]
		stat.Attempted++
		if r.Correct {
			p.CorrectAnswers++
			stat.Correct++
		}
		p.PatternStats[r.Type] = stat
	}

	if p.GamesPlayed > 0 {
		p.SuccessRate = float64(p.CorrectAnswers) / float64(p.GamesPlayed) * 100
		p.AverageAttempts = float64(attempts) / float64(p.GamesPlayed)
	}
	p.Recommendation = Recommend(p.PatternStats)
	return p
}

// Recommend names the type with the lowest success rate. Ties go to the
// earlier type in models.PatternTypes order.
func Recommend(stats map[models.PatternType]models.PatternStat) string {
	var (
		weakest models.PatternType
		lowest  float64
		found   bool
	)
	for _, t := range models.PatternTypes {
		s, ok := stats[t]
		if !ok || s.Attempted == 0 {
			continue
		}
		rate := float64(s.Correct) / float64(s.Attempted)
		if !found || rate < lowest {
			weakest, lowest, found = t, rate, true
		}
	}
	if !found {
		return noStatsRecommendation
	}
	return fmt.Sprintf("Focus on %s patterns to improve your overall performance.", weakest)
}
