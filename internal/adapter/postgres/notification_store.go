package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
)

// NotificationStore persists notifications for the in-app inbox.
type NotificationStore struct {
	pool *pgxpool.Pool
}

func NewNotificationStore(pool *pgxpool.Pool) *NotificationStore {
	return &NotificationStore{pool: pool}
}

var _ port.Notifier = (*NotificationStore)(nil)

func (s *NotificationStore) Notify(ctx context.Context, n domain.Notification) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO notifications (user_id, role, title, message, category) VALUES ($1, $2, $3, $4, $5)`,
		n.UserID, string(n.Role), n.Title, n.Message, n.Category)
	return err
}
