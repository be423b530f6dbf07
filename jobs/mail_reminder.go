package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/hibiken/asynq"
)

// Mailer delivers reminder emails over SMTP.
type Mailer struct {
	addr   string
	from   string
	auth   smtp.Auth
	logger *slog.Logger
}

// NewMailer constructs a Mailer. user may be empty for unauthenticated
// relays such as Mailpit in development.
func NewMailer(host string, port int, user, password, from string, logger *slog.Logger) *Mailer {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, password, host)
	}
	return &Mailer{
		addr:   fmt.Sprintf("%s:%d", host, port),
		from:   from,
		auth:   auth,
		logger: logger,
	}
}

// Send delivers one email.
func (m *Mailer) Send(to, subject, body string) error {
	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" + body + "\r\n")
	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, msg)
}

// NewSendReminderHandler returns the asynq handler for TaskSendReminder.
func NewSendReminderHandler(mailer *Mailer, logger *slog.Logger) asynq.HandlerFunc {
	return func(_ context.Context, t *asynq.Task) error {
		var payload SendReminderPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if payload.To == "" {
			logger.Warn("reminder without recipient dropped")
			return asynq.SkipRetry
		}
		if err := mailer.Send(payload.To, payload.Subject, payload.Body); err != nil {
			logger.Error("send reminder failed", slog.Any("error", err), slog.String("to", payload.To))
			return err
		}
		logger.Info("reminder sent", slog.String("to", payload.To))
		return nil
	}
}
