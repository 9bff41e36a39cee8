package history

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const (
	// recentWindow is the number of latest scores compared against the rest
	recentWindow = 7
	// trendMargin is the mean difference separating a clear trend from a slight one
	trendMargin = 5.0
)

type Trend string

const (
	TrendNoData            Trend = "no_data"
	TrendBaseline          Trend = "baseline"
	TrendImproving         Trend = "improving"
	TrendSlightImprovement Trend = "slight_improvement"
	TrendNeedsAttention    Trend = "needs_attention"
	TrendStable            Trend = "stable"
)

func (t Trend) String() string {
	return string(t)
}

// Label is the human readable form shown to users.
func (t Trend) Label() string {
	switch t {
	case TrendNoData:
		return "No trend data yet"
	case TrendBaseline:
		return "Establishing baseline"
	case TrendImproving:
		return "↑ Improving steadily"
	case TrendSlightImprovement:
		return "↗ Slight improvement"
	case TrendNeedsAttention:
		return "↓ Needs attention"
	case TrendStable:
		return "→ Stable performance"
	default:
		return string(t)
	}
}

// Sufficient is false for the states where there is nothing to compare yet.
func (t Trend) Sufficient() bool {
	return t != TrendNoData && t != TrendBaseline
}

// Windows splits scores into the recent window (last 7, or all of them)
// and the older window it is compared with: everything before the last 7
// once there are at least 14 scores, the first half otherwise.
func Windows(scores []int) (recent, older []int) {
	if len(scores) >= recentWindow {
		recent = scores[len(scores)-recentWindow:]
	} else {
		recent = scores
	}
	if len(scores) >= 2*recentWindow {
		older = scores[:len(scores)-recentWindow]
	} else {
		older = scores[:len(scores)/2]
	}
	return recent, older
}

type Comparison struct {
	Trend      Trend   `json:"trend"`
	RecentMean float64 `json:"recent_mean"`
	OlderMean  float64 `json:"older_mean"`
	// Improvement is the recent mean change relative to the older one, in percent.
	Improvement float64 `json:"improvement"`
}

func Compare(scores []int) Comparison {
	recent, older := Windows(scores)
	c := Comparison{
		RecentMean: mean(recent),
		OlderMean:  mean(older),
	}

	if c.OlderMean > 0 {
		c.Improvement = math.Round((c.RecentMean-c.OlderMean)/c.OlderMean*100*10) / 10
	}

	switch {
	case len(scores) < 2:
		c.Trend = TrendNoData
	case len(older) == 0:
		c.Trend = TrendBaseline
	case c.RecentMean > c.OlderMean+trendMargin:
		c.Trend = TrendImproving
	case c.RecentMean > c.OlderMean:
		c.Trend = TrendSlightImprovement
	case c.RecentMean < c.OlderMean-trendMargin:
		c.Trend = TrendNeedsAttention
	default:
		c.Trend = TrendStable
	}

	return c
}

func WeeklyTrend(scores []int) Trend {
	return Compare(scores).Trend
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	xs := make([]float64, len(values))
	for i, v := range values {
		xs[i] = float64(v)
	}
	return stat.Mean(xs, nil)
}
