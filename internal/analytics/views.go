// Package analytics builds read-only summaries over a client's logged
// history: the performance analysis and the dashboard.
package analytics

import (
	"math"
	"slices"
	"time"

	"github.com/2beens/squatcoach/internal/history"
)

const (
	scoreHistoryLen   = 10
	consistencyWindow = 30 // days
	weeklyWindow      = 7  // days

	lowScoreMean  = 60.0
	highScoreMean = 85.0
	minRecentLen  = 3
)

const (
	RecommendStart       = "Start tracking your workouts!"
	RecommendFundamental = "Focus on form fundamentals before increasing intensity"
	RecommendHarder      = "Great progress! Consider increasing workout difficulty"
	RecommendTrackMore   = "Track more workouts for better analysis"
)

type PerformanceAnalysis struct {
	OverallScore    int           `json:"overall_score"`
	AverageScore    int           `json:"average_score"`
	BestScore       int           `json:"best_score"`
	Improvement     float64       `json:"improvement"`
	Trend           history.Trend `json:"trend"`
	WeeklyTrend     string        `json:"weekly_trend"`
	TotalSessions   int           `json:"total_sessions"`
	ScoreHistory    []int         `json:"score_history"`
	Recommendations []string      `json:"recommendations"`
}

// AnalyzePerformance compares the recent scores with the older ones and
// turns the result into recommendations.
func AnalyzePerformance(snap history.Snapshot) PerformanceAnalysis {
	scores := snap.PerformanceScores
	if len(scores) == 0 {
		return PerformanceAnalysis{
			Trend:           history.TrendNoData,
			WeeklyTrend:     "No data",
			ScoreHistory:    []int{},
			Recommendations: []string{RecommendStart},
		}
	}

	cmp := history.Compare(scores)
	recent, _ := history.Windows(scores)

	recommendations := []string{}
	switch {
	case cmp.RecentMean < lowScoreMean:
		recommendations = append(recommendations, RecommendFundamental)
	case cmp.RecentMean > highScoreMean:
		recommendations = append(recommendations, RecommendHarder)
	}
	if !cmp.Trend.Sufficient() || len(recent) < minRecentLen {
		recommendations = append(recommendations, RecommendTrackMore)
	}

	last := scores
	if len(last) > scoreHistoryLen {
		last = last[len(last)-scoreHistoryLen:]
	}

	mean := int(math.Round(cmp.RecentMean))
	return PerformanceAnalysis{
		OverallScore:    mean,
		AverageScore:    mean,
		BestScore:       slices.Max(scores),
		Improvement:     cmp.Improvement,
		Trend:           cmp.Trend,
		WeeklyTrend:     cmp.Trend.Label(),
		TotalSessions:   len(scores),
		ScoreHistory:    slices.Clone(last),
		Recommendations: recommendations,
	}
}

const (
	ScoreTrendStarting  = "→ Starting"
	ScoreTrendImproving = "↑ Improving"
	ScoreTrendDeclining = "↓ Declining"
	ScoreTrendStable    = "→ Stable"
)

type Dashboard struct {
	WeeklyReps       int        `json:"weekly_workouts"`
	ConsistencyScore int        `json:"consistency_score"`
	PerformanceTrend string     `json:"performance_trend"`
	CurrentStreak    int        `json:"current_streak"`
	LoggedReps       int        `json:"logged_reps"`
	LastActivity     *time.Time `json:"last_activity,omitempty"`
}

// BuildDashboard summarizes the logged reps relative to now. Days are
// calendar days in now's location.
func BuildDashboard(snap history.Snapshot, now time.Time) Dashboard {
	d := Dashboard{
		LoggedReps:       len(snap.WorkoutHistory),
		PerformanceTrend: scoreTrend(snap.PerformanceScores),
	}
	if !snap.LastActivity.IsZero() {
		lastActivity := snap.LastActivity
		d.LastActivity = &lastActivity
	}

	today := civilDay(now, now.Location())
	activeDays := make(map[int]struct{})
	for _, rep := range snap.WorkoutHistory {
		day := civilDay(rep.Timestamp, now.Location())
		if today-day <= weeklyWindow {
			d.WeeklyReps++
		}
		activeDays[day] = struct{}{}
	}

	d.ConsistencyScore = int(math.Round(math.Min(100, float64(len(activeDays))*100/consistencyWindow)))
	d.CurrentStreak = streak(activeDays, today)

	return d
}

func scoreTrend(scores []int) string {
	if len(scores) < 2 {
		return ScoreTrendStarting
	}
	last, prev := scores[len(scores)-1], scores[len(scores)-2]
	switch {
	case last > prev:
		return ScoreTrendImproving
	case last < prev:
		return ScoreTrendDeclining
	default:
		return ScoreTrendStable
	}
}

// streak counts consecutive active days ending at the latest one, which must
// be today or yesterday.
func streak(activeDays map[int]struct{}, today int) int {
	if len(activeDays) == 0 {
		return 0
	}

	days := make([]int, 0, len(activeDays))
	for day := range activeDays {
		days = append(days, day)
	}
	slices.Sort(days)
	slices.Reverse(days)

	if today-days[0] > 1 {
		return 0
	}
	count := 1
	for i := 1; i < len(days); i++ {
		if days[i-1]-days[i] != 1 {
			break
		}
		count++
	}
	return count
}

// civilDay numbers calendar days, so that consecutive dates differ by one.
func civilDay(t time.Time, loc *time.Location) int {
	y, m, d := t.In(loc).Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
