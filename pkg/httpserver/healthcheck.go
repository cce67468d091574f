package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/anita-maxwynn/Django-Practice/pkg/logger"
)

// CheckFunc reports whether a dependency is usable.
type CheckFunc func(ctx context.Context) error

// LivenessHandler always answers 200 with body "ALIVE".
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ALIVE"))
	}
}

// ReadinessHandler runs every check with a shared timeout and answers 200 when
// all pass or 503 otherwise. The body maps check names to "ok" or "fail".
func ReadinessHandler(log *slog.Logger, timeout time.Duration, checks map[string]CheckFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		status := http.StatusOK
		result := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					slog.String("check", name),
					logger.Error(err))
				result[name] = "fail"
				status = http.StatusServiceUnavailable
				continue
			}
			result[name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(result)
	}
}
