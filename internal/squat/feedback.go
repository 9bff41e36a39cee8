package squat

import "strings"

// Feedback thresholds.
const (
	excellentDepthAngle = 80.0
	goodDepthAngle      = 100.0
	shallowDepthAngle   = 120.0
	maxBackLean         = 20.0
	minSymmetry         = 0.7
	minROM              = 0.6
)

// Feedback turns the frame metrics into short advice. The checks always run
// in the same order: depth, posture, symmetry, range of motion.
func Feedback(kneeAngle, backAngle, symmetry, rom float64) string {
	var parts []string

	switch {
	case kneeAngle < excellentDepthAngle:
		parts = append(parts, "Excellent depth!")
	case kneeAngle < goodDepthAngle:
		parts = append(parts, "Good depth")
	case kneeAngle < shallowDepthAngle:
		parts = append(parts, "Go deeper for full ROM")
	default:
		parts = append(parts, "Squat deeper for better results")
	}

	if backAngle > maxBackLean {
		parts = append(parts, "Keep chest up and back straight")
	}
	if symmetry < minSymmetry {
		parts = append(parts, "Focus on symmetrical movement")
	}
	if rom < minROM {
		parts = append(parts, "Increase your range of motion")
	}

	return strings.Join(parts, ". ")
}
