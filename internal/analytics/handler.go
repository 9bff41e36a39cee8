package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/squatcoach/internal/history"
	"github.com/2beens/squatcoach/internal/middleware"
	"github.com/2beens/squatcoach/internal/squat"
	"github.com/2beens/squatcoach/internal/telemetry/tracing"
	"github.com/2beens/squatcoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=analytics_test

type activityReader interface {
	LastSeen(ctx context.Context, clientID string) (time.Time, bool, error)
	TotalReps(ctx context.Context, clientID string) (int64, error)
}

type HistoryResponse struct {
	ClientID string `json:"client_id"`
	history.Snapshot
	// from the activity tracker, they survive restarts
	LastSeen  *time.Time `json:"last_seen,omitempty"`
	TotalReps *int64     `json:"total_reps,omitempty"`
}

type Handler struct {
	service  *Service
	history  historySource
	activity activityReader
}

// NewHandler creates the analytics handler. activity may be nil.
func NewHandler(service *Service, history historySource, activity activityReader) *Handler {
	return &Handler{
		service:  service,
		history:  history,
		activity: activity,
	}
}

func (handler *Handler) HandlePerformanceAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.performance")
	defer span.End()

	logger := log.WithField("request_id", middleware.RequestID(ctx))

	clientID, ok := decodeClientID(w, r, logger)
	if !ok {
		return
	}

	analysis, err := handler.service.Performance(ctx, clientID)
	if err != nil {
		logger.Errorf("performance analysis for client [%s]: %s", clientID, err)
		http.Error(w, "failed to get performance analysis", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, analysis, http.StatusOK)
}

func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.dashboard")
	defer span.End()

	logger := log.WithField("request_id", middleware.RequestID(ctx))

	clientID, ok := decodeClientID(w, r, logger)
	if !ok {
		return
	}

	dashboard, err := handler.service.Dashboard(ctx, clientID)
	if err != nil {
		logger.Errorf("dashboard for client [%s]: %s", clientID, err)
		http.Error(w, "failed to get dashboard data", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, dashboard, http.StatusOK)
}

func (handler *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.history")
	defer span.End()
	logger := log.WithField("request_id", middleware.RequestID(ctx))

	clientID, err := squat.ResolveClientID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap, found := handler.history.History(ctx, clientID)
	if !found {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}

	resp := HistoryResponse{
		ClientID: clientID,
		Snapshot: snap,
	}

	if handler.activity != nil {
		if lastSeen, seen, err := handler.activity.LastSeen(ctx, clientID); err != nil {
			logger.Warnf("get client [%s] last seen: %s", clientID, err)
		} else if seen {
			resp.LastSeen = &lastSeen
		}

		if totalReps, err := handler.activity.TotalReps(ctx, clientID); err != nil {
			logger.Warnf("get client [%s] total reps: %s", clientID, err)
		} else {
			resp.TotalReps = &totalReps
		}
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}

func decodeClientID(w http.ResponseWriter, r *http.Request, logger *log.Entry) (string, bool) {
	var req squat.ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Errorf("analytics, unmarshal json params: %s", err)
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return "", false
		}
		http.Error(w, "invalid json payload", http.StatusBadRequest)
		return "", false
	}

	clientID, err := squat.ResolveClientID(req.ClientID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return clientID, true
}
