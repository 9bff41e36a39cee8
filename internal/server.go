package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/squatcoach/internal/activity"
	"github.com/2beens/squatcoach/internal/analytics"
	"github.com/2beens/squatcoach/internal/config"
	"github.com/2beens/squatcoach/internal/middleware"
	"github.com/2beens/squatcoach/internal/squat"
	"github.com/2beens/squatcoach/internal/telemetry/metrics"
	"github.com/2beens/squatcoach/internal/telemetry/tracing"
	"github.com/2beens/squatcoach/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/multierr"
)

const (
	metricsNamespace = "backend"
	metricsSubsystem = "squatcoach"

	maxRequestBodyBytes = 1 << 20
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config    *config.Config
	engine    *squat.Engine
	analytics *analytics.Service

	// nil when redis is not configured
	redisClient *redis.Client
	activity    *activity.Tracker

	// telemetry
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
	// Now is shared by the engine and the analytics views, defaults to time.Now
	Now func() time.Time
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	promRegistry := metrics.SetupPrometheus(metricsNamespace, metricsSubsystem, params.VersionInfo)
	metricsManager := metrics.NewManager(metricsNamespace, metricsSubsystem, promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "squatcoach-backend")
	if err != nil {
		return nil, fmt.Errorf("honeycomb setup: %w", err)
	}

	now := params.Now
	if now == nil {
		now = time.Now
	}

	engine := squat.NewEngine(squat.NewClientStore(), squat.WithClock(now))
	metrics.RegisterTrackedClients(metricsNamespace, metricsSubsystem, promRegistry, engine.ClientsCount)

	s := &Server{
		config:      params.Config,
		versionInfo: params.VersionInfo,
		engine:      engine,
		analytics: analytics.NewService(analytics.NewServiceParams{
			History:     engine,
			CacheSizeMB: params.Config.AnalyticsCacheSizeMB,
			CacheTTL:    params.Config.AnalyticsCacheTTL(),
			Now:         now,
		}),

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if params.Config.RedisEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})

		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}

		s.redisClient = rdb
		s.activity = activity.NewTracker(rdb)
	} else {
		log.Warnln("redis host not set, activity tracking and rate limiting disabled")
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("squatcoach-router"))

	var (
		squatHandler     *squat.Handler
		analyticsHandler *analytics.Handler
	)
	if s.activity != nil {
		squatHandler = squat.NewHandler(s.engine, s.activity, s.metricsManager)
		analyticsHandler = analytics.NewHandler(s.analytics, s.engine, s.activity)
	} else {
		squatHandler = squat.NewHandler(s.engine, nil, s.metricsManager)
		analyticsHandler = analytics.NewHandler(s.analytics, s.engine, nil)
	}

	var predictHandler http.Handler = http.HandlerFunc(squatHandler.HandlePredict)
	if s.redisClient != nil && s.config.PredictRateLimitPerMin > 0 {
		predictHandler = middleware.RateLimit(
			redis_rate.NewLimiter(s.redisClient),
			s.metricsManager,
			"predict",
			s.config.PredictRateLimitPerMin,
			s.config.TrustedProxyHops,
		)(predictHandler)
	}

	r.Handle("/api/predict", predictHandler).Methods("POST", "OPTIONS").Name("predict")
	r.HandleFunc("/api/reset", squatHandler.HandleReset).Methods("POST", "OPTIONS").Name("reset")
	r.HandleFunc("/api/performance_analysis", analyticsHandler.HandlePerformanceAnalysis).Methods("POST", "OPTIONS").Name("performance-analysis")
	r.HandleFunc("/api/dashboard_data", analyticsHandler.HandleDashboard).Methods("POST", "OPTIONS").Name("dashboard-data")
	r.HandleFunc("/api/clients/{id}/history", analyticsHandler.HandleHistory).Methods("GET", "OPTIONS").Name("client-history")
	r.HandleFunc("/health", s.handleHealth).Methods("GET").Name("health")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteResponse(w, pkg.ContentType.Text, "not found", http.StatusNotFound)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.LimitRequestBody(maxRequestBodyBytes))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

type HealthResponse struct {
	Status                string `json:"status"`
	Version               string `json:"version,omitempty"`
	TrackedClients        int    `json:"tracked_clients"`
	AnalyticsCacheEntries int64  `json:"analytics_cache_entries"`
	Redis                 string `json:"redis"`
	// lifetime count from redis, absent when redis is disabled or down
	KnownClients *int64 `json:"known_clients,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:                "ok",
		Version:               s.versionInfo,
		TrackedClients:        s.engine.ClientsCount(),
		AnalyticsCacheEntries: s.analytics.CachedEntries(),
		Redis:                 "disabled",
	}

	if s.redisClient != nil {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		if err := s.redisClient.Ping(ctx).Err(); err != nil {
			log.Warnf("health, redis ping: %s", err)
			resp.Redis = "down"
		} else {
			resp.Redis = "ok"
			if s.activity != nil {
				if known, err := s.activity.KnownClients(ctx); err != nil {
					log.Warnf("health, count known clients: %s", err)
				} else {
					resp.KnownClients = &known
				}
			}
		}
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", shutdownErr))
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if shutdownErr := s.metricsHttpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown metrics http server: %w", shutdownErr))
		}
		log.Warnln("metrics server shut down")
	}

	// redis last, in-flight requests may still use it
	if s.redisClient != nil {
		if closeErr := s.redisClient.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close redis client: %w", closeErr))
		}
	}

	return err
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
