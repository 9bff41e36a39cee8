package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/2beens/squatcoach/internal/telemetry/metrics"

	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"
)

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit limits requests per caller address on the wrapped route. The
// limiter failing open keeps frames flowing when redis is down.
// trustedProxyHops is the number of reverse proxies in front of the service
// that append to X-Forwarded-For; with 0 the header is ignored.
func RateLimit(
	rateLimiter RequestRateLimiter,
	metricsManager *metrics.Manager,
	routeName string,
	allowedPerMin int,
	trustedProxyHops int,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := fmt.Sprintf("squatcoach-rate||%s||%s", routeName, callerAddr(r, trustedProxyHops))
			res, err := rateLimiter.Allow(r.Context(), key, redis_rate.PerMinute(allowedPerMin))
			if err != nil {
				log.Errorf("rate limiter [%s]: %s", routeName, err)
				next.ServeHTTP(w, r)
				return
			}

			if res.Allowed > 0 {
				next.ServeHTTP(w, r)
				return
			}

			if metricsManager != nil {
				metricsManager.CounterRateLimitedRequests.Inc()
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())+1))
			http.Error(
				w,
				fmt.Sprintf("retry after %f seconds", res.RetryAfter.Seconds()),
				http.StatusTooManyRequests,
			)
		})
	}
}

// callerAddr picks the X-Forwarded-For entry appended by the outermost trusted
// proxy. Entries left of it are caller controlled and never used.
func callerAddr(r *http.Request, trustedProxyHops int) string {
	if trustedProxyHops > 0 {
		var hops []string
		for _, h := range r.Header.Values("X-Forwarded-For") {
			hops = append(hops, strings.Split(h, ",")...)
		}
		if len(hops) >= trustedProxyHops {
			if addr := strings.TrimSpace(hops[len(hops)-trustedProxyHops]); addr != "" {
				return addr
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
