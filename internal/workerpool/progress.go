package workerpool

import (
	"time"

	"github.com/SaaiAravindhRaja/CodeCoach/internal/models"
)

// ApplyCompletion folds one completed session into the progress record:
// session count, running average, practice streak, and badge awards.
// Badges are awarded at most once each.
func ApplyCompletion(progress *models.UserProgress, overallScore, communicationScore int, averageScore float64, now time.Time) {
	progress.TotalSessions++
	progress.AverageScore = averageScore
	progress.StreakDays = nextStreak(progress.StreakDays, progress.LastPracticeDate, now)
	progress.LastPracticeDate = &now

	if progress.TotalSessions == 1 {
		progress.AwardBadge(models.BadgeFirstSolve)
	}
	if overallScore == 10 {
		progress.AwardBadge(models.BadgePerfectScore)
	}
	if communicationScore >= 9 {
		progress.AwardBadge(models.BadgeClearCommunicator)
	}
}

// nextStreak extends the daily streak when the previous practice was
// yesterday, keeps it for a same-day session, and resets it otherwise.
func nextStreak(current int, last *time.Time, now time.Time) int {
	if last == nil {
		return 1
	}

	today := now.Truncate(24 * time.Hour)
	lastDay := last.UTC().Truncate(24 * time.Hour)

	switch today.Sub(lastDay) {
	case 0:
		if current == 0 {
			return 1
		}
		return current
	case 24 * time.Hour:
		return current + 1
	default:
		return 1
	}
}
