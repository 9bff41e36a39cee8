package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/2beens/squatcoach/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a handler panic into a 500 response. The stack goes to
// the log together with the request id, so the failing frame can be traced.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				log.WithFields(log.Fields{
					"request_id": RequestID(r.Context()),
					"method":     r.Method,
					"path":       r.URL.Path,
				}).Errorf("squatcoach handler panic: %v\n%s", recovered, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
