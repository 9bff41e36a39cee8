package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/2beens/squatcoach/internal/history"
	"github.com/2beens/squatcoach/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const megabyte = 1024 * 1024

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=analytics_test

type historySource interface {
	History(ctx context.Context, clientID string) (history.Snapshot, bool)
}

type Service struct {
	history  historySource
	cache    *freecache.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

type NewServiceParams struct {
	History     historySource
	CacheSizeMB int
	CacheTTL    time.Duration
	// Now defaults to time.Now
	Now func() time.Time
}

func NewService(params NewServiceParams) *Service {
	cacheSize := params.CacheSizeMB * megabyte
	if cacheSize <= 0 {
		cacheSize = 10 * megabyte
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		history:  params.History,
		cache:    freecache.NewCache(cacheSize),
		cacheTTL: params.CacheTTL,
		now:      now,
	}
}

// Performance returns the performance analysis of the client. Unknown
// clients get the empty analysis.
func (s *Service) Performance(ctx context.Context, clientID string) (_ *PerformanceAnalysis, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analytics.performance")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	snap, _ := s.history.History(ctx, clientID)
	cacheKey := fmt.Sprintf("performance::%s::%d", clientID, snap.Version)

	analysis := &PerformanceAnalysis{}
	if s.fromCache(cacheKey, analysis) {
		return analysis, nil
	}

	*analysis = AnalyzePerformance(snap)
	s.toCache(cacheKey, analysis)

	return analysis, nil
}

// Dashboard returns the dashboard of the client. The weekly numbers depend on
// the current day, so the day is part of the cache key.
func (s *Service) Dashboard(ctx context.Context, clientID string) (_ *Dashboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analytics.dashboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := s.now()
	snap, _ := s.history.History(ctx, clientID)
	cacheKey := fmt.Sprintf("dashboard::%s::%d::%s", clientID, snap.Version, now.Format(time.DateOnly))

	dashboard := &Dashboard{}
	if s.fromCache(cacheKey, dashboard) {
		return dashboard, nil
	}

	*dashboard = BuildDashboard(snap, now)
	s.toCache(cacheKey, dashboard)

	return dashboard, nil
}

func (s *Service) fromCache(key string, v any) bool {
	cached, err := s.cache.Get([]byte(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(cached, v); err != nil {
		log.Errorf("unmarshal cached [%s]: %s", key, err)
		return false
	}
	log.Tracef("analytics cache hit: %s", key)
	return true
}

func (s *Service) toCache(key string, v any) {
	if s.cacheTTL <= 0 {
		return
	}
	valBytes, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal for cache [%s]: %s", key, err)
		return
	}
	if err := s.cache.Set([]byte(key), valBytes, int(math.Ceil(s.cacheTTL.Seconds()))); err != nil {
		log.Errorf("set analytics cache [%s]: %s", key, err)
	}
}

func (s *Service) CachedEntries() int64 {
	return s.cache.EntryCount()
}
