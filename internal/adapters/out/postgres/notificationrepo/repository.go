package notificationrepo

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/notification"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	conn func() *gorm.DB
}

// NewGormNotificationRepository creates a repository bound to a fixed connection.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return NewGormNotificationRepositoryWithConn(func() *gorm.DB { return db })
}

// NewGormNotificationRepositoryWithConn creates a repository that resolves its
// connection on every call. The unit of work hands repositories out before a
// transaction may exist; lazy resolution keeps their writes inside the
// transaction once Begin opens it.
func NewGormNotificationRepositoryWithConn(conn func() *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{conn: conn}
}

// Add persists a notification together with its recipient rows.
func (r *GormNotificationRepository) Add(
	ctx context.Context,
	aggregate *notification.Notification,
	recipients []*notification.Recipient,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.conn().WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("notification", aggregate.ID().String(), err)
		}
		return err
	}

	if len(recipients) == 0 {
		return nil
	}

	recipientDTOs := make([]RecipientDTO, 0, len(recipients))
	for _, recipient := range recipients {
		if err := recipient.Validate(); err != nil {
			return err
		}
		recipientDTOs = append(recipientDTOs, recipientFromDomain(recipient))
	}

	return r.conn().WithContext(ctx).Create(&recipientDTOs).Error
}

// GetUnreadByUser returns the notifications behind the user's unread
// recipient rows, newest first.
func (r *GormNotificationRepository) GetUnreadByUser(
	ctx context.Context,
	organizationID kernel.UUID,
	userID kernel.UUID,
) ([]*notification.Notification, error) {
	if err := errors.Join(organizationID.Validate(), userID.Validate()); err != nil {
		return nil, err
	}

	var dtos []NotificationDTO
	err := r.conn().WithContext(ctx).
		Model(&NotificationDTO{}).
		Joins("JOIN notification_recipients r ON r.notification_id = notifications.id").
		Where("notifications.organization_id = ? AND r.user_id = ? AND NOT r.is_read",
			organizationID.Bytes(), userID.Bytes()).
		Order("notifications.created_at DESC").
		Find(&dtos).
		Error
	if err != nil {
		return nil, err
	}

	notifications := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		notifications = append(notifications, n)
	}

	return notifications, nil
}

// MarkRead flags one recipient row as read.
func (r *GormNotificationRepository) MarkRead(ctx context.Context, recipientID kernel.UUID, at time.Time) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}

	result := r.conn().WithContext(ctx).
		Model(&RecipientDTO{}).
		Where("id = ?", recipientID.Bytes()).
		Updates(map[string]any{"is_read": true, "read_at": at})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("recipient", recipientID.String())
	}

	return nil
}

// DeleteReadBefore removes read recipient rows older than the cutoff, then
// notifications left without any recipients. Returns the number of recipient
// rows removed.
func (r *GormNotificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.conn().WithContext(ctx).
		Where("is_read AND read_at < ?", cutoff).
		Delete(&RecipientDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	err := r.conn().WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM notification_recipients r WHERE r.notification_id = notifications.id)").
		Delete(&NotificationDTO{}).
		Error
	if err != nil {
		return 0, err
	}

	return result.RowsAffected, nil
}
