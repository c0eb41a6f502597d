package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	healthTimeout   = 5 * time.Second
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// CheckFunc probes a dependency. db.Healthcheck, redis.Healthcheck and
// autosync.Healthcheck return one.
type CheckFunc func(ctx context.Context) error

type healthResponse struct {
	Checks map[string]healthCheck `json:"checks,omitempty"`
	Status string                 `json:"status"`
}

type healthCheck struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func livenessHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, &healthResponse{Status: statusHealthy})
}

func readinessHandler(checks map[string]CheckFunc, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := runChecks(r.Context(), checks, log)

		status := http.StatusOK
		if resp.Status == statusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}

// runChecks executes all checks in parallel under a shared timeout.
func runChecks(ctx context.Context, checks map[string]CheckFunc, log *slog.Logger) *healthResponse {
	if len(checks) == 0 {
		return &healthResponse{Status: statusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]healthCheck, len(checks))
		failed  bool
	)

	for name, check := range checks {
		wg.Go(func() {
			result := healthCheck{Status: statusHealthy}
			if err := check(ctx); err != nil {
				result = healthCheck{Status: statusUnhealthy, Error: err.Error()}
				log.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}

			mu.Lock()
			defer mu.Unlock()
			results[name] = result
			if result.Status == statusUnhealthy {
				failed = true
			}
		})
	}
	wg.Wait()

	status := statusHealthy
	if failed {
		status = statusUnhealthy
	}
	return &healthResponse{Status: status, Checks: results}
}
