package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notifications
// and their per-user recipient rows.
type NotificationRepository interface {
	// Add persists a notification together with its recipient rows.
	Add(ctx context.Context, aggregate *notification.Notification, recipients []*notification.Recipient) error

	// GetUnreadByUser returns the user's unread recipient rows joined with
	// their notifications, newest first.
	GetUnreadByUser(ctx context.Context, organizationID kernel.UUID, userID kernel.UUID) ([]*notification.Notification, error)

	// MarkRead flags one recipient row as read.
	MarkRead(ctx context.Context, recipientID kernel.UUID, at time.Time) error

	// DeleteReadBefore removes read recipient rows older than the cutoff and
	// then notifications left without any recipients. Returns the number of
	// recipient rows removed. Used by the retention sweep job.
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
