package squat

import (
	"math"

	"github.com/2beens/squatcoach/internal/pose"
)

// Composite score constants. These are fixed design values, not fitted.
const (
	IdealKneeAngle = 100.0 // degrees, assumed ideal squat depth
	kneePenalty    = 0.5   // score points lost per degree away from the ideal depth
	backPenalty    = 2.0   // score points lost per degree of forward lean

	WeightKnee     = 0.30
	WeightBack     = 0.25
	WeightSymmetry = 0.25
	WeightROM      = 0.20

	GoodFormScore = 70 // scores above it are labeled good
)

type FormQuality string

const (
	FormGood             FormQuality = "good"
	FormNeedsImprovement FormQuality = "needs_improvement"
)

// BackAngle is the torso lean from vertical, measured from the hip midpoint
// to the shoulder midpoint. Without both shoulders and both hips it is 0,
// i.e. no penalty.
func BackAngle(frame *pose.Frame) float64 {
	for _, idx := range []int{pose.LeftShoulder, pose.RightShoulder, pose.LeftHip, pose.RightHip} {
		if !frame.Has(idx) {
			return 0
		}
	}

	shoulderMid := pose.Midpoint(frame.Points[pose.LeftShoulder], frame.Points[pose.RightShoulder])
	hipMid := pose.Midpoint(frame.Points[pose.LeftHip], frame.Points[pose.RightHip])

	return pose.TiltFromVertical(hipMid, shoulderMid)
}

// PerformanceScore combines knee depth, back lean, symmetry and range of
// motion into an integer in [0, 100].
func PerformanceScore(kneeAngle, backAngle, symmetry, rom float64) int {
	kneeScore := clamp(100-math.Abs(kneeAngle-IdealKneeAngle)*kneePenalty, 0, 100)
	backScore := clamp(100-backAngle*backPenalty, 0, 100)
	symmetryScore := clamp(symmetry*100, 0, 100)
	romScore := clamp(rom*100, 0, 100)

	total := kneeScore*WeightKnee +
		backScore*WeightBack +
		symmetryScore*WeightSymmetry +
		romScore*WeightROM

	return int(clamp(total, 0, 100))
}

func Quality(score int) FormQuality {
	if score > GoodFormScore {
		return FormGood
	}
	return FormNeedsImprovement
}

// clamp maps NaN to lo so that no NaN ever reaches a score.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
