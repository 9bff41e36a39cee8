// Package history keeps the bounded per-client logs of completed reps and
// performance scores, and derives trends from them.
package history

import (
	"time"

	"github.com/2beens/squatcoach/pkg/ringbuf"
)

const (
	MaxWorkoutHistory    = 100
	MaxPerformanceScores = 50
)

// RepEvent is logged once per completed repetition.
type RepEvent struct {
	Timestamp time.Time `json:"timestamp"`
	KneeAngle float64   `json:"knee_angle"`
	Symmetry  float64   `json:"symmetry"`
	ROM       float64   `json:"rom"`
}

// Record is owned by a single client and is not safe for concurrent use;
// the engine accesses it under the client's lock.
type Record struct {
	workouts *ringbuf.Ring[RepEvent]
	scores   *ringbuf.Ring[int]
	// version increases on every append; it identifies a state of the record
	version      uint64
	lastActivity time.Time
}

func NewRecord() *Record {
	return &Record{
		workouts: ringbuf.New[RepEvent](MaxWorkoutHistory),
		scores:   ringbuf.New[int](MaxPerformanceScores),
	}
}

func (r *Record) AddRep(e RepEvent) {
	r.workouts.Push(e)
	r.touch(e.Timestamp)
}

func (r *Record) AddScore(score int, at time.Time) {
	r.scores.Push(score)
	r.touch(at)
}

func (r *Record) touch(at time.Time) {
	r.version++
	if at.After(r.lastActivity) {
		r.lastActivity = at
	}
}

func (r *Record) Scores() []int {
	return r.scores.Slice()
}

// Snapshot is a detached copy of a Record, safe to hand to readers.
type Snapshot struct {
	WorkoutHistory    []RepEvent `json:"workout_history"`
	PerformanceScores []int      `json:"performance_scores"`
	LastActivity      time.Time  `json:"last_activity"`
	Version           uint64     `json:"version"`
}

func (r *Record) Snapshot() Snapshot {
	return Snapshot{
		WorkoutHistory:    r.workouts.Slice(),
		PerformanceScores: r.scores.Slice(),
		LastActivity:      r.lastActivity,
		Version:           r.version,
	}
}
