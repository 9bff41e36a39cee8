// Package pose holds the 2-D body landmark model consumed by the squat engine
// and the small amount of geometry done on top of it.
package pose

// Joint indices of the 33-point body landmark model.
const (
	LeftShoulder  = 11
	RightShoulder = 12
	LeftHip       = 23
	RightHip      = 24
	LeftKnee      = 25
	RightKnee     = 26
	LeftAnkle     = 27
	RightAnkle    = 28
)

// VisibilityThreshold is the minimum (exclusive) visibility a joint needs
// to be trusted.
const VisibilityThreshold = 0.3

// Limb is a hip, knee, ankle triple; the knee is the vertex.
type Limb struct {
	Name  string
	Hip   int
	Knee  int
	Ankle int
}

var (
	LeftLeg  = Limb{Name: "left", Hip: LeftHip, Knee: LeftKnee, Ankle: LeftAnkle}
	RightLeg = Limb{Name: "right", Hip: RightHip, Knee: RightKnee, Ankle: RightAnkle}
)

// Frame is the landmark set of a single video frame. Points and Visibility
// are parallel maps keyed by joint index.
type Frame struct {
	Points     map[int]Point
	Visibility map[int]float64
}

func NewFrame() *Frame {
	return &Frame{
		Points:     make(map[int]Point),
		Visibility: make(map[int]float64),
	}
}

func (f *Frame) Set(idx int, p Point, visibility float64) {
	f.Points[idx] = p
	f.Visibility[idx] = visibility
}

func (f *Frame) Empty() bool {
	return f == nil || len(f.Points) == 0
}

func (f *Frame) Has(idx int) bool {
	if f == nil {
		return false
	}
	_, ok := f.Points[idx]
	return ok
}

// Usable reports whether the joint is present and visible enough.
func (f *Frame) Usable(idx int) bool {
	if !f.Has(idx) {
		return false
	}
	return f.Visibility[idx] > VisibilityThreshold
}

func (f *Frame) LimbUsable(l Limb) bool {
	return f.Usable(l.Hip) && f.Usable(l.Knee) && f.Usable(l.Ankle)
}

// KneeAngle returns the hip-knee-ankle angle of the limb. The caller checks
// LimbUsable first.
func (f *Frame) KneeAngle(l Limb) float64 {
	return Angle(f.Points[l.Hip], f.Points[l.Knee], f.Points[l.Ankle])
}

// Scaled returns a copy with normalized [0,1] coordinates converted to pixels.
func (f *Frame) Scaled(width, height float64) *Frame {
	if f == nil {
		return nil
	}
	scaled := NewFrame()
	for idx, p := range f.Points {
		scaled.Set(idx, Point{X: p.X * width, Y: p.Y * height}, f.Visibility[idx])
	}
	return scaled
}
