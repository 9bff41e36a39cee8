package squat

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/2beens/squatcoach/internal/clientstore"
	"github.com/2beens/squatcoach/internal/history"
	"github.com/2beens/squatcoach/internal/pose"
	"github.com/2beens/squatcoach/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// FrameResult is what a client gets back for every successfully processed frame.
type FrameResult struct {
	OK               bool        `json:"ok"`
	Reps             int         `json:"reps"`
	KneeAngle        float64     `json:"knee_angle"`
	Feedback         string      `json:"feedback"`
	FormQuality      FormQuality `json:"form_quality"`
	FormScore        int         `json:"form_score"`
	PerformanceScore int         `json:"performance_score"`
	Stage            Stage       `json:"stage"`
	WhichLeg         Side        `json:"which_leg"`
	SymmetryScore    int         `json:"symmetry_score"`
	ROMScore         int         `json:"rom_score"`
	BackAngle        float64     `json:"back_angle"`
	WeeklyTrend      string      `json:"weekly_trend"`
	RepCompleted     bool        `json:"rep_completed"`

	// unrounded values, for callers inside the service
	Symmetry float64       `json:"-"`
	ROM      float64       `json:"-"`
	Trend    history.Trend `json:"-"`
}

func NewClientStore() *clientstore.Store[Client] {
	return clientstore.New(NewClient)
}

type Engine struct {
	clients *clientstore.Store[Client]
	now     func() time.Time
}

type EngineOption func(*Engine)

// WithClock replaces time.Now as the source of history timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(clients *clientstore.Store[Client], opts ...EngineOption) *Engine {
	e := &Engine{
		clients: clients,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProcessFrame runs one frame through rep counting, form scoring, feedback
// and history for the client. A *FrameError is returned for frames without
// a pose or without a usable leg; the client state is then left untouched.
func (e *Engine) ProcessFrame(ctx context.Context, clientID string, frame *pose.Frame) (_ *FrameResult, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "engine.squat.process-frame")
	defer func() {
		var frameErr *FrameError
		if errors.As(err, &frameErr) {
			span.SetAttributes(attribute.String("frame.reason", string(frameErr.Reason)))
			span.SetStatus(codes.Ok, "frame-rejected")
			span.End()
			return
		}
		tracing.EndSpanWithErrCheck(span, err)
	}()

	// reject unusable frames before the client is looked up, so they never
	// create or touch state
	if _, err := ActiveSide(frame); err != nil {
		return nil, err
	}

	var result *FrameResult
	err = e.clients.Update(clientID, func(c *Client) error {
		step, err := Advance(c.State, frame)
		if err != nil {
			return err
		}

		now := e.now()
		if step.RepCompleted {
			c.History.AddRep(history.RepEvent{
				Timestamp: now,
				KneeAngle: round1(step.KneeAngle),
				Symmetry:  step.Symmetry,
				ROM:       step.ROM,
			})
		}

		backAngle := BackAngle(frame)
		score := PerformanceScore(step.KneeAngle, backAngle, step.Symmetry, step.ROM)

		c.State = step.State
		c.History.AddScore(score, now)
		trend := history.WeeklyTrend(c.History.Scores())

		result = &FrameResult{
			OK:               true,
			Reps:             step.State.Reps,
			KneeAngle:        round1(step.KneeAngle),
			Feedback:         Feedback(step.KneeAngle, backAngle, step.Symmetry, step.ROM),
			FormQuality:      Quality(score),
			FormScore:        score,
			PerformanceScore: score,
			Stage:            step.State.Stage,
			WhichLeg:         step.Side,
			SymmetryScore:    int(math.Round(step.Symmetry * 100)),
			ROMScore:         int(math.Round(step.ROM * 100)),
			BackAngle:        round1(backAngle),
			WeeklyTrend:      trend.Label(),
			RepCompleted:     step.RepCompleted,
			Symmetry:         step.Symmetry,
			ROM:              step.ROM,
			Trend:            trend,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("reps", result.Reps),
		attribute.String("stage", string(result.Stage)),
		attribute.Bool("rep_completed", result.RepCompleted),
	)

	return result, nil
}

// Reset puts the client's rep counting back to its initial state, starting a
// new session. Logged history is kept.
func (e *Engine) Reset(ctx context.Context, clientID string) error {
	_, span := tracing.GlobalTracer.Start(ctx, "engine.squat.reset")
	defer span.End()

	return e.clients.Update(clientID, func(c *Client) error {
		c.State = NewRepState()
		return nil
	})
}

// State returns a copy of the client's rep state, false if the client is unknown.
func (e *Engine) State(clientID string) (RepState, bool) {
	var state RepState
	found := e.clients.View(clientID, func(c *Client) {
		state = c.State
	})
	return state, found
}

// History returns a read-only copy of the client's logs, false if the client is unknown.
func (e *Engine) History(ctx context.Context, clientID string) (history.Snapshot, bool) {
	_, span := tracing.GlobalTracer.Start(ctx, "engine.squat.history")
	defer span.End()

	var snap history.Snapshot
	found := e.clients.View(clientID, func(c *Client) {
		snap = c.History.Snapshot()
	})
	return snap, found
}

func (e *Engine) ClientsCount() int {
	return e.clients.Len()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
