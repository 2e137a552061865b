package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/roster/internal/metrics"
)

// Logging returns an interceptor that logs every action with its duration
// and records it in m. m may be nil.
func Logging(m *metrics.Metrics) Interceptor {
	return func(name string, next Action) Action {
		return func(ctx context.Context) error {
			start := time.Now()
			operator := GetOperator(ctx) // empty when the shell is not locked

			err := next(ctx)

			elapsed := time.Since(start)
			if err != nil {
				slog.Error("Action failed",
					"action", name,
					"operator", operator,
					"error", err,
					"duration_ms", elapsed.Milliseconds(),
				)
			} else {
				slog.Info("Action ok",
					"action", name,
					"operator", operator,
					"duration_ms", elapsed.Milliseconds(),
				)
			}
			if m != nil {
				m.ObserveAction(name, err, elapsed)
			}

			return err
		}
	}
}
