// Package squat counts squat repetitions and scores their form from a stream
// of body landmark frames, one client at a time.
package squat

import (
	"github.com/2beens/squatcoach/internal/history"
)

type Stage string

const (
	StageUp   Stage = "up"
	StageDown Stage = "down"
)

// Side tells which legs the tracked knee angle was measured on.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
	SideBoth  Side = "both"
)

// RepState is the running rep counting state of one client.
// MinAngle <= MaxAngle holds once a frame has been processed.
type RepState struct {
	Stage         Stage   `json:"stage"`
	Reps          int     `json:"reps"`
	MinAngle      float64 `json:"min_angle"`
	MaxAngle      float64 `json:"max_angle"`
	LastKneeAngle float64 `json:"last_knee_angle"`
}

// NewRepState returns the initial state. The extremes start inverted so the
// first frame always widens the range.
func NewRepState() RepState {
	return RepState{
		Stage:    StageUp,
		Reps:     0,
		MinAngle: 180,
		MaxAngle: 0,
	}
}

// Client is everything the engine keeps for one client id.
type Client struct {
	State   RepState
	History *history.Record
}

func NewClient() Client {
	return Client{
		State:   NewRepState(),
		History: history.NewRecord(),
	}
}
