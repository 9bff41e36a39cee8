package pose

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// angleEpsilon keeps the cosine denominator away from zero for coincident points.
const angleEpsilon = 1e-9

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) vec() []float64 {
	return []float64{p.X, p.Y}
}

// Angle returns the angle at vertex b formed by the rays b->a and b->c,
// in degrees within [0, 180].
func Angle(a, b, c Point) float64 {
	ba := floats.SubTo(make([]float64, 2), a.vec(), b.vec())
	bc := floats.SubTo(make([]float64, 2), c.vec(), b.vec())

	cos := floats.Dot(ba, bc) / (floats.Norm(ba, 2)*floats.Norm(bc, 2) + angleEpsilon)
	if math.IsNaN(cos) || math.IsInf(cos, 0) {
		// overflow on absurd coordinates, report a straight joint
		return 180
	}
	cos = math.Max(-1, math.Min(1, cos))

	return math.Acos(cos) * 180 / math.Pi
}

func Midpoint(a, b Point) Point {
	return Point{
		X: (a.X + b.X) / 2,
		Y: (a.Y + b.Y) / 2,
	}
}

// TiltFromVertical returns how far the segment from -> to leans away from
// the upward vertical, in degrees within [0, 180]. Image coordinates are
// assumed, so "up" means decreasing Y. 0 means to is straight above from.
func TiltFromVertical(from, to Point) float64 {
	dx := math.Abs(to.X - from.X)
	rise := from.Y - to.Y
	tilt := math.Atan2(dx, rise) * 180 / math.Pi
	if math.IsNaN(tilt) {
		return 0
	}
	return tilt
}
