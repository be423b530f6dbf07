package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/vestiaire-fc/vestiaire/internal/ledger"
)

// LedgerInspector reports records whose overdue flag no longer matches the
// amounts paid against them.
type LedgerInspector interface {
	StaleOverdueFlags(ctx context.Context, kind ledger.Kind) ([]ledger.RecordSummary, error)
}

// NewLedgerIntegrityHandler returns the asynq handler for TaskLedgerIntegrity.
// Findings are logged, not auto-corrected: the overdue flag is a manual call
// made by the treasurer.
func NewLedgerIntegrityHandler(inspector LedgerInspector, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload LedgerIntegrityPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		for _, kind := range []ledger.Kind{ledger.KindPayment, ledger.KindSalary} {
			stale, err := inspector.StaleOverdueFlags(ctx, kind)
			if err != nil {
				logger.Error("ledger integrity scan failed", slog.Any("error", err), slog.String("kind", string(kind)))
				return err
			}
			for _, rec := range stale {
				logger.Warn("settled record still flagged overdue",
					slog.String("record_id", rec.ID.String()),
					slog.Int64("owner_id", rec.OwnerID),
					slog.String("kind", string(kind)))
			}
			logger.Info("ledger integrity scan done",
				slog.String("kind", string(kind)),
				slog.Int("stale_flags", len(stale)))
		}
		return nil
	}
}
