package squat_test

import (
	"math"

	"github.com/2beens/squatcoach/internal/pose"
)

const (
	segmentLen = 100.0
	visible    = 0.9
	occluded   = 0.1
)

// setLeg places hip, knee and ankle so that the knee angle equals angle.
// The thigh points straight up from the knee, the shin is rotated by angle.
func setLeg(f *pose.Frame, leg pose.Limb, kneeX, angle, visibility float64) {
	knee := pose.Point{X: kneeX, Y: 400}
	hip := pose.Point{X: kneeX, Y: knee.Y - segmentLen}
	rad := angle * math.Pi / 180
	ankle := pose.Point{
		X: knee.X + segmentLen*math.Sin(rad),
		Y: knee.Y - segmentLen*math.Cos(rad),
	}
	f.Set(leg.Hip, hip, visibility)
	f.Set(leg.Knee, knee, visibility)
	f.Set(leg.Ankle, ankle, visibility)
}

func bothLegsFrame(leftAngle, rightAngle float64) *pose.Frame {
	f := pose.NewFrame()
	setLeg(f, pose.LeftLeg, 300, leftAngle, visible)
	setLeg(f, pose.RightLeg, 200, rightAngle, visible)
	return f
}

func leftOnlyFrame(angle float64) *pose.Frame {
	f := pose.NewFrame()
	setLeg(f, pose.LeftLeg, 300, angle, visible)
	setLeg(f, pose.RightLeg, 200, angle, occluded)
	return f
}

// withTorso adds shoulders above the hips, leaning forward by lean degrees.
func withTorso(f *pose.Frame, lean float64) *pose.Frame {
	hipMid := pose.Midpoint(f.Points[pose.LeftHip], f.Points[pose.RightHip])
	rad := lean * math.Pi / 180
	shoulderMid := pose.Point{
		X: hipMid.X + 200*math.Sin(rad),
		Y: hipMid.Y - 200*math.Cos(rad),
	}
	f.Set(pose.LeftShoulder, pose.Point{X: shoulderMid.X + 50, Y: shoulderMid.Y}, visible)
	f.Set(pose.RightShoulder, pose.Point{X: shoulderMid.X - 50, Y: shoulderMid.Y}, visible)
	return f
}
