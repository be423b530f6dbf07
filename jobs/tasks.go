package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskStandingsWarmup rebuilds cached league tables for every category.
	TaskStandingsWarmup = "standings:warmup"
	// TaskLedgerIntegrity scans the ledgers for stale overdue flags.
	TaskLedgerIntegrity = "ledger:integrity"
	// TaskSendReminder sends a payment reminder email.
	TaskSendReminder = "mail:reminder"
)

// StandingsWarmupPayload carries scheduling metadata.
type StandingsWarmupPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewStandingsWarmupTask constructs an Asynq task.
func NewStandingsWarmupTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(StandingsWarmupPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStandingsWarmup, body, asynq.Queue(QueueDefault)), nil
}

// LedgerIntegrityPayload carries scheduling metadata.
type LedgerIntegrityPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewLedgerIntegrityTask constructs an Asynq task.
func NewLedgerIntegrityTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(LedgerIntegrityPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLedgerIntegrity, body, asynq.Queue(QueueDefault)), nil
}

// SendReminderPayload describes a reminder email to deliver.
type SendReminderPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendReminderTask constructs an Asynq task.
func NewSendReminderTask(payload SendReminderPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSendReminder, body, asynq.Queue(QueueDefault)), nil
}
