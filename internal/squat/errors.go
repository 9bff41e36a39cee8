package squat

import "fmt"

type Reason string

const (
	ReasonNoPose        Reason = "no_pose"
	ReasonLowVisibility Reason = "low_visibility"
)

// FrameError is a recoverable per-frame failure. It never changes client state.
type FrameError struct {
	Reason  Reason
	Message string
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

var (
	ErrNoPose = &FrameError{
		Reason:  ReasonNoPose,
		Message: "No person detected",
	}
	ErrLowVisibility = &FrameError{
		Reason:  ReasonLowVisibility,
		Message: "Can't see legs clearly",
	}
)
