// Package notificationrepo provides data transfer objects and mapping
// functions for notification persistence: the notification row itself plus
// one recipient row per receiving user.
package notificationrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for notifications.
type NotificationDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index"`
	EventType      string
	Subject        string
	Message        string
	Metadata       []byte `gorm:"type:jsonb"`
	EntityID       uuid.UUID `gorm:"type:uuid;index"`
	CreatedBy      uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time `gorm:"index"`
}

// TableName specifies the database table name for notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// RecipientDTO represents the per-user fan-out row of a notification.
type RecipientDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	NotificationID uuid.UUID `gorm:"type:uuid;index"`
	UserID         uuid.UUID `gorm:"type:uuid;index"`
	IsRead         bool
	ReadAt         *time.Time
}

// TableName specifies the database table name for notification recipients.
func (RecipientDTO) TableName() string {
	return "notification_recipients"
}

// fromDomain converts a notification aggregate to its database representation.
func fromDomain(aggregate *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:             aggregate.ID().Bytes(),
		OrganizationID: aggregate.OrganizationID().Bytes(),
		EventType:      string(aggregate.EventType()),
		Subject:        aggregate.Subject(),
		Message:        aggregate.Message(),
		Metadata:       aggregate.Metadata(),
		EntityID:       aggregate.EntityID().Bytes(),
		CreatedBy:      aggregate.CreatedBy().Bytes(),
		CreatedAt:      aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a notification aggregate using
// RestoreNotification.
func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	organizationID, err := kernel.UUIDFromBytes(dto.OrganizationID[:])
	if err != nil {
		return nil, err
	}
	entityID, err := kernel.UUIDFromBytes(dto.EntityID[:])
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id,
		organizationID,
		notification.Type(dto.EventType),
		dto.Subject,
		dto.Message,
		dto.Metadata,
		entityID,
		createdBy,
		dto.CreatedAt,
	)
}

// recipientFromDomain converts a recipient row to its database representation.
func recipientFromDomain(recipient *notification.Recipient) RecipientDTO {
	return RecipientDTO{
		ID:             recipient.ID().Bytes(),
		NotificationID: recipient.NotificationID().Bytes(),
		UserID:         recipient.UserID().Bytes(),
		IsRead:         recipient.IsRead(),
		ReadAt:         recipient.ReadAt(),
	}
}
