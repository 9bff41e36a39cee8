package pose_test

import (
	"math"
	"testing"

	"github.com/2beens/squatcoach/internal/pose"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

func TestAngle(t *testing.T) {
	testCases := []struct {
		name     string
		a, b, c  pose.Point
		expected float64
	}{
		{
			name:     "RightAngle",
			a:        pose.Point{X: 0, Y: 1},
			b:        pose.Point{X: 0, Y: 0},
			c:        pose.Point{X: 1, Y: 0},
			expected: 90,
		},
		{
			name:     "Straight",
			a:        pose.Point{X: 0, Y: -10},
			b:        pose.Point{X: 0, Y: 0},
			c:        pose.Point{X: 0, Y: 10},
			expected: 180,
		},
		{
			name:     "Folded",
			a:        pose.Point{X: 5, Y: 5},
			b:        pose.Point{X: 0, Y: 0},
			c:        pose.Point{X: 10, Y: 10},
			expected: 0,
		},
		{
			name:     "Sixty",
			a:        pose.Point{X: 1, Y: 0},
			b:        pose.Point{X: 0, Y: 0},
			c:        pose.Point{X: 0.5, Y: math.Sqrt(3) / 2},
			expected: 60,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, pose.Angle(tc.a, tc.b, tc.c), 1e-3)
		})
	}
}

func TestAngle_DegenerateInputStaysInRange(t *testing.T) {
	p := pose.Point{X: 3, Y: 4}
	// all coincident points: zero-length vectors
	got := pose.Angle(p, p, p)
	assert.False(t, math.IsNaN(got))
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 180.0)

	// one coincident point
	got = pose.Angle(p, p, pose.Point{X: 10, Y: 10})
	assert.False(t, math.IsNaN(got))
	assert.InDelta(t, 90, got, 1e-6)

	// huge coordinates overflow the dot product
	huge := pose.Point{X: math.MaxFloat64, Y: math.MaxFloat64}
	got = pose.Angle(huge, pose.Point{}, huge)
	assert.False(t, math.IsNaN(got))
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 180.0)
}

func TestAngle_RandomPointsInRange(t *testing.T) {
	faker := gofakeit.New(42)
	for i := 0; i < 500; i++ {
		a := pose.Point{X: faker.Float64Range(-1e4, 1e4), Y: faker.Float64Range(-1e4, 1e4)}
		b := pose.Point{X: faker.Float64Range(-1e4, 1e4), Y: faker.Float64Range(-1e4, 1e4)}
		c := pose.Point{X: faker.Float64Range(-1e4, 1e4), Y: faker.Float64Range(-1e4, 1e4)}
		got := pose.Angle(a, b, c)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 180.0)
	}
}

func TestMidpoint(t *testing.T) {
	assert.Equal(t, pose.Point{X: 2, Y: 3}, pose.Midpoint(pose.Point{X: 0, Y: 0}, pose.Point{X: 4, Y: 6}))
}

func TestTiltFromVertical(t *testing.T) {
	hip := pose.Point{X: 100, Y: 300}

	// shoulder straight above the hip in image coordinates
	assert.InDelta(t, 0, pose.TiltFromVertical(hip, pose.Point{X: 100, Y: 100}), 1e-9)
	// leaning forward 45 degrees, either side
	assert.InDelta(t, 45, pose.TiltFromVertical(hip, pose.Point{X: 200, Y: 200}), 1e-9)
	assert.InDelta(t, 45, pose.TiltFromVertical(hip, pose.Point{X: 0, Y: 200}), 1e-9)
	// horizontal torso
	assert.InDelta(t, 90, pose.TiltFromVertical(hip, pose.Point{X: 300, Y: 300}), 1e-9)
	// coincident points
	assert.InDelta(t, 0, pose.TiltFromVertical(hip, hip), 1e-9)
}
