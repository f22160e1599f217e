// Package reminder holds the schedule engine and the delivery boundary for
// daily pending-todo reminders.
package reminder

import (
	"context"
	"log/slog"
)

// Sender delivers one reminder listing the pending titles and reports whether
// delivery succeeded. Implementations own templating and transport.
type Sender interface {
	Send(ctx context.Context, email, name string, titles []string) bool
}

// LogSender writes reminders to the log instead of delivering them. Used when
// no mail transport is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender() *LogSender {
	return &LogSender{
		logger: slog.Default().With(slog.String("component", "reminder_sender")),
	}
}

func (s *LogSender) Send(ctx context.Context, email, name string, titles []string) bool {
	s.logger.Info("reminder delivery",
		slog.String("to", email),
		slog.String("name", name),
		slog.Int("pending", len(titles)),
	)
	return true
}
