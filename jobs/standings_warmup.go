package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

// StandingsWarmer rebuilds the cached league tables.
type StandingsWarmer interface {
	WarmUp(ctx context.Context) error
}

// NewStandingsWarmupHandler returns the asynq handler for TaskStandingsWarmup.
func NewStandingsWarmupHandler(warmer StandingsWarmer, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload StandingsWarmupPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if err := warmer.WarmUp(ctx); err != nil {
			logger.Error("standings warmup failed", slog.Any("error", err))
			return err
		}
		logger.Info("standings warmup done", slog.String("job", TaskStandingsWarmup))
		return nil
	}
}
