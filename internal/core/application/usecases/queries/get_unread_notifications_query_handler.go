package queries

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnreadNotificationsQueryHandler retrieves a user's unread inbox.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetUnreadNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetUnreadNotificationsQueryHandler creates a handler for inbox queries.
// Requires a GORM database connection for query execution.
func NewGetUnreadNotificationsQueryHandler(db *gorm.DB) GetUnreadNotificationsQueryHandler {
	return GetUnreadNotificationsQueryHandler{db: db}
}

// Handle executes the query, joining recipient rows with their notifications.
func (h GetUnreadNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetUnreadNotificationsQuery,
) ([]GetUnreadNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetUnreadNotificationsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.id,
			n.event_type,
			n.subject,
			n.message,
			n.metadata,
			n.entity_id,
			n.created_at
		FROM notification_recipients r
		JOIN notifications n ON n.id = r.notification_id
		WHERE n.organization_id = ? AND r.user_id = ? AND NOT r.is_read
		ORDER BY n.created_at DESC
	`, query.OrganizationID().String(), query.UserID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetUnreadNotificationsQueryResponse
		var recipientID, entityID uuid.UUID
		var metadata []byte
		var createdAt time.Time

		err = rows.Scan(
			&recipientID,
			&entry.EventType,
			&entry.Subject,
			&entry.Message,
			&metadata,
			&entityID,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		if entry.RecipientID, err = kernel.UUIDFromBytes(recipientID[:]); err != nil {
			return nil, err
		}
		if entry.EntityID, err = kernel.UUIDFromBytes(entityID[:]); err != nil {
			return nil, err
		}
		entry.Metadata = metadata
		entry.CreatedAt = createdAt
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
