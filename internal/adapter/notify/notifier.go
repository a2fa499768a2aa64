package notify

import (
	"context"
	"errors"
	"log/slog"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
)

// Log writes notifications to a structured logger. It is the notifier of
// the in-memory driver and a tap next to persistent inboxes.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Notify(ctx context.Context, n domain.Notification) error {
	l.logger.InfoContext(ctx, "notification",
		slog.String("user_id", n.UserID.String()),
		slog.String("role", string(n.Role)),
		slog.String("category", n.Category),
		slog.String("title", n.Title),
	)
	return nil
}

// Fanout delivers every notification to all notifiers and joins their
// errors.
type Fanout []port.Notifier

func (f Fanout) Notify(ctx context.Context, n domain.Notification) error {
	var errs []error
	for _, nt := range f {
		if err := nt.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
