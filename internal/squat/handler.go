package squat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/squatcoach/internal/middleware"
	"github.com/2beens/squatcoach/internal/pose"
	"github.com/2beens/squatcoach/internal/telemetry/metrics"
	"github.com/2beens/squatcoach/internal/telemetry/tracing"
	"github.com/2beens/squatcoach/pkg"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultClientID = "default"
	MaxClientIDLen  = 128

	ReasonBadPayload   Reason = "bad_payload"
	ReasonBodyTooLarge Reason = "body_too_large"

	maxLandmarkIndex = 32
)

var ErrClientIDTooLong = fmt.Errorf("client id longer than %d bytes", MaxClientIDLen)

// ResolveClientID applies the boundary rules for caller supplied client ids.
func ResolveClientID(clientID string) (string, error) {
	if clientID == "" {
		return DefaultClientID, nil
	}
	if len(clientID) > MaxClientIDLen {
		return "", ErrClientIDTooLong
	}
	return clientID, nil
}

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=squat_test

type frameEngine interface {
	ProcessFrame(ctx context.Context, clientID string, frame *pose.Frame) (*FrameResult, error)
	Reset(ctx context.Context, clientID string) error
}

type activityRecorder interface {
	Touch(ctx context.Context, clientID string, at time.Time) error
	AddReps(ctx context.Context, clientID string, reps int) (int64, error)
}

type Landmark struct {
	Index      int     `json:"index"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Visibility float64 `json:"visibility"`
}

type PredictRequest struct {
	ClientID  string `json:"client_id"`
	PoseFound *bool  `json:"pose_found,omitempty"`
	// when both are set, landmark coordinates are normalized to [0,1]
	ImageWidth  float64    `json:"image_width,omitempty"`
	ImageHeight float64    `json:"image_height,omitempty"`
	Landmarks   []Landmark `json:"landmarks"`
}

// Frame converts the request landmarks into a pose frame. A nil frame means
// the detector found no person.
func (req *PredictRequest) Frame() (*pose.Frame, error) {
	if req.PoseFound != nil && !*req.PoseFound {
		return nil, nil
	}
	if len(req.Landmarks) == 0 {
		return nil, nil
	}

	frame := pose.NewFrame()
	for _, lm := range req.Landmarks {
		if lm.Index < 0 || lm.Index > maxLandmarkIndex {
			return nil, fmt.Errorf("landmark index out of range: %d", lm.Index)
		}
		frame.Set(lm.Index, pose.Point{X: lm.X, Y: lm.Y}, lm.Visibility)
	}

	if req.ImageWidth > 0 && req.ImageHeight > 0 {
		frame = frame.Scaled(req.ImageWidth, req.ImageHeight)
	}
	return frame, nil
}

type ClientRequest struct {
	ClientID string `json:"client_id"`
}

type ErrorResponse struct {
	OK      bool   `json:"ok"`
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

type ResetResponse struct {
	OK       bool   `json:"ok"`
	ClientID string `json:"client_id"`
}

type Handler struct {
	engine         frameEngine
	activity       activityRecorder
	metricsManager *metrics.Manager
}

// NewHandler creates the frame handler. activity may be nil.
func NewHandler(engine frameEngine, activity activityRecorder, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		engine:         engine,
		activity:       activity,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.squat.predict")
	defer span.End()
	logger := log.WithField("request_id", middleware.RequestID(ctx))

	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Errorf("predict, unmarshal json params: %s", err)
		writeDecodeError(w, err)
		return
	}

	clientID, err := ResolveClientID(req.ClientID)
	if err != nil {
		writeBadPayload(w, err.Error())
		return
	}

	frame, err := req.Frame()
	if err != nil {
		writeBadPayload(w, err.Error())
		return
	}

	result, err := handler.engine.ProcessFrame(ctx, clientID, frame)
	if err != nil {
		var frameErr *FrameError
		if errors.As(err, &frameErr) {
			handler.countFrame(string(frameErr.Reason))
			// frame errors are a normal outcome for the client
			pkg.WriteJSON(w, ErrorResponse{
				OK:      false,
				Reason:  frameErr.Reason,
				Message: frameErr.Message,
			}, http.StatusOK)
			return
		}

		logger.Errorf("process frame for client [%s]: %s", clientID, err)
		handler.countFrame("error")
		http.Error(w, "failed to process frame", http.StatusInternalServerError)
		return
	}

	handler.countFrame("ok")
	if handler.metricsManager != nil {
		handler.metricsManager.HistogramFormScore.Observe(float64(result.PerformanceScore))
		if result.RepCompleted {
			handler.metricsManager.CounterReps.Inc()
		}
	}
	handler.recordActivity(ctx, logger, clientID, result)

	pkg.WriteJSON(w, result, http.StatusOK)
}

func (handler *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.squat.reset")
	defer span.End()
	logger := log.WithField("request_id", middleware.RequestID(ctx))

	var req ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Errorf("reset, unmarshal json params: %s", err)
		writeDecodeError(w, err)
		return
	}

	clientID, err := ResolveClientID(req.ClientID)
	if err != nil {
		writeBadPayload(w, err.Error())
		return
	}

	if err := handler.engine.Reset(ctx, clientID); err != nil {
		logger.Errorf("reset client [%s]: %s", clientID, err)
		http.Error(w, "failed to reset client", http.StatusInternalServerError)
		return
	}

	logger.Debugf("client [%s] rep state reset", clientID)
	pkg.WriteJSON(w, ResetResponse{OK: true, ClientID: clientID}, http.StatusOK)
}

// recordActivity is best effort; redis being down must not fail a frame.
func (handler *Handler) recordActivity(ctx context.Context, logger *log.Entry, clientID string, result *FrameResult) {
	if handler.activity == nil {
		return
	}
	if err := handler.activity.Touch(ctx, clientID, time.Now()); err != nil {
		logger.Warnf("touch client [%s] activity: %s", clientID, err)
	}
	if result.RepCompleted {
		if _, err := handler.activity.AddReps(ctx, clientID, 1); err != nil {
			logger.Warnf("add client [%s] reps: %s", clientID, err)
		}
	}
}

func (handler *Handler) countFrame(result string) {
	if handler.metricsManager == nil {
		return
	}
	handler.metricsManager.CounterFrames.With(prometheus.Labels{"result": result}).Inc()
}

// writeDecodeError answers 413 when the body was cut off by the request size
// limit and 400 for anything else that failed to decode.
func writeDecodeError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		pkg.WriteJSON(w, ErrorResponse{
			OK:      false,
			Reason:  ReasonBodyTooLarge,
			Message: fmt.Sprintf("request body larger than %d bytes", maxBytesErr.Limit),
		}, http.StatusRequestEntityTooLarge)
		return
	}
	writeBadPayload(w, "invalid json payload")
}

func writeBadPayload(w http.ResponseWriter, message string) {
	pkg.WriteJSON(w, ErrorResponse{
		OK:      false,
		Reason:  ReasonBadPayload,
		Message: message,
	}, http.StatusBadRequest)
}
