package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/vestiaire-fc/vestiaire/internal/ledger"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubWarmer struct {
	calls int
	err   error
}

func (s *stubWarmer) WarmUp(context.Context) error {
	s.calls++
	return s.err
}

func TestStandingsWarmupHandler(t *testing.T) {
	warmer := &stubWarmer{}
	handler := NewStandingsWarmupHandler(warmer, testLogger())

	task, err := NewStandingsWarmupTask(time.Now())
	require.NoError(t, err)
	require.NoError(t, handler(context.Background(), task))
	require.Equal(t, 1, warmer.calls)
}

func TestStandingsWarmupHandlerPropagatesError(t *testing.T) {
	warmer := &stubWarmer{err: errors.New("redis down")}
	handler := NewStandingsWarmupHandler(warmer, testLogger())

	task, err := NewStandingsWarmupTask(time.Now())
	require.NoError(t, err)
	require.Error(t, handler(context.Background(), task))
}

func TestStandingsWarmupHandlerSkipsBadPayload(t *testing.T) {
	handler := NewStandingsWarmupHandler(&stubWarmer{}, testLogger())
	task := asynq.NewTask(TaskStandingsWarmup, []byte("not json"))
	require.ErrorIs(t, handler(context.Background(), task), asynq.SkipRetry)
}

type stubInspector struct {
	kinds []ledger.Kind
	stale []ledger.RecordSummary
}

func (s *stubInspector) StaleOverdueFlags(_ context.Context, kind ledger.Kind) ([]ledger.RecordSummary, error) {
	s.kinds = append(s.kinds, kind)
	return s.stale, nil
}

func TestLedgerIntegrityHandlerScansBothLedgers(t *testing.T) {
	inspector := &stubInspector{}
	handler := NewLedgerIntegrityHandler(inspector, testLogger())

	task, err := NewLedgerIntegrityTask(time.Now())
	require.NoError(t, err)
	require.NoError(t, handler(context.Background(), task))
	require.Equal(t, []ledger.Kind{ledger.KindPayment, ledger.KindSalary}, inspector.kinds)
}

func TestSendReminderHandlerSkipsEmptyRecipient(t *testing.T) {
	mailer := NewMailer("localhost", 1025, "", "", "club@vestiaire.fc", testLogger())
	handler := NewSendReminderHandler(mailer, testLogger())

	body, err := json.Marshal(SendReminderPayload{Subject: "x", Body: "y"})
	require.NoError(t, err)
	task := asynq.NewTask(TaskSendReminder, body)
	require.ErrorIs(t, handler(context.Background(), task), asynq.SkipRetry)
}
