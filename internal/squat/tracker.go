package squat

import (
	"math"

	"github.com/2beens/squatcoach/internal/pose"
)

// Rep counting constants. The gap between the two thresholds is the
// hysteresis band: noise inside it can never complete a rep.
const (
	DownThreshold = 100.0 // degrees, knee angle below it enters the down stage
	UpThreshold   = 150.0 // degrees, knee angle above it from down completes a rep

	ROMNormalizer = 160.0 // degrees of knee travel counted as full range of motion
	MinROMScore   = 0.1
	MaxROMScore   = 1.0

	NeutralSymmetry = 0.5 // used when only one leg is visible
)

// Step is the outcome of applying one frame to a RepState.
type Step struct {
	State        RepState
	KneeAngle    float64
	Symmetry     float64
	ROM          float64
	Side         Side
	RepCompleted bool
}

// ActiveSide reports which legs can be measured in the frame.
func ActiveSide(frame *pose.Frame) (Side, error) {
	if frame.Empty() {
		return "", ErrNoPose
	}
	left := frame.LimbUsable(pose.LeftLeg)
	right := frame.LimbUsable(pose.RightLeg)
	switch {
	case left && right:
		return SideBoth, nil
	case left:
		return SideLeft, nil
	case right:
		return SideRight, nil
	default:
		return "", ErrLowVisibility
	}
}

// Advance applies a frame to prev and returns the resulting step.
// prev is never modified; on error the caller keeps prev as is.
func Advance(prev RepState, frame *pose.Frame) (Step, error) {
	side, err := ActiveSide(frame)
	if err != nil {
		return Step{}, err
	}

	step := Step{
		Side:     side,
		Symmetry: NeutralSymmetry,
	}
	switch side {
	case SideBoth:
		left := frame.KneeAngle(pose.LeftLeg)
		right := frame.KneeAngle(pose.RightLeg)
		step.KneeAngle = (left + right) / 2
		step.Symmetry = 1 - math.Abs(left-right)/180
	case SideLeft:
		step.KneeAngle = frame.KneeAngle(pose.LeftLeg)
	case SideRight:
		step.KneeAngle = frame.KneeAngle(pose.RightLeg)
	}

	state := prev
	angle := step.KneeAngle

	// extremes are tracked over the whole session, only Reset clears them
	if angle < state.MinAngle {
		state.MinAngle = angle
	}
	if angle > state.MaxAngle {
		state.MaxAngle = angle
	}
	step.ROM = ROMScore(state.MinAngle, state.MaxAngle)

	if state.Stage == StageUp && angle < DownThreshold {
		state.Stage = StageDown
	}
	if state.Stage == StageDown && angle > UpThreshold {
		state.Stage = StageUp
		state.Reps++
		step.RepCompleted = true
	}

	state.LastKneeAngle = angle
	step.State = state

	return step, nil
}

// ROMScore maps the observed knee angle span to [MinROMScore, MaxROMScore].
func ROMScore(minAngle, maxAngle float64) float64 {
	rom := (maxAngle - minAngle) / ROMNormalizer
	if math.IsNaN(rom) {
		return MinROMScore
	}
	return math.Min(MaxROMScore, math.Max(MinROMScore, rom))
}
