// Package notification contains the notification aggregate used by the
// post-commit fan-out. One Notification describes a single domain event; its
// Recipient rows fan the event out to the resolved set of users. Recipients
// are owned by their notification and carry an individual read flag.
package notification

import (
	"encoding/json"
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrNotificationIsNotConstructed is returned when a Notification was not
	// created through NewNotification or RestoreNotification.
	ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

	// ErrRecipientIsNotConstructed is returned when a Recipient was not created
	// through NewRecipient or RestoreRecipient.
	ErrRecipientIsNotConstructed = errors.New("Recipient must be created via NewRecipient constructor")
)

// Type classifies the domain event a notification describes.
type Type string

const (
	TypeOrderReceived     Type = "ORDER_RECEIVED"
	TypeOrderCanceled     Type = "ORDER_CANCELED"
	TypeOrderDeleted      Type = "ORDER_DELETED"
	TypeOrderEdited       Type = "ORDER_EDITED"
	TypeTripsCreated      Type = "TRIPS_CREATED"
	TypeTripEdited        Type = "TRIP_EDITED"
	TypeTripStatusChanged Type = "TRIP_STATUS_CHANGED"
	TypeDriverAssignment  Type = "DRIVER_ASSIGNMENT"
)

// Validate checks that the type is one of the known event kinds.
func (t Type) Validate() error {
	switch t {
	case TypeOrderReceived, TypeOrderCanceled, TypeOrderDeleted, TypeOrderEdited,
		TypeTripsCreated, TypeTripEdited, TypeTripStatusChanged, TypeDriverAssignment:
		return nil
	default:
		return errs.NewValueIsInvalidError("notification type")
	}
}

// Notification is one domain event prepared for delivery to a set of users.
type Notification struct {
	id             kernel.UUID
	organizationID kernel.UUID
	eventType      Type
	subject        string
	message        string
	metadata       json.RawMessage
	entityID       kernel.UUID
	createdBy      kernel.UUID
	createdAt      time.Time

	isConstructed bool
}

// NewNotification creates a notification for a domain event.
func NewNotification(
	organizationID kernel.UUID,
	eventType Type,
	subject string,
	message string,
	metadata json.RawMessage,
	entityID kernel.UUID,
	createdBy kernel.UUID,
	createdAt time.Time,
) (*Notification, error) {
	if err := errors.Join(
		organizationID.Validate(),
		eventType.Validate(),
		entityID.Validate(),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}
	if subject == "" {
		return nil, errs.NewValueIsRequiredError("subject")
	}

	return &Notification{
		id:             kernel.NewUUID(),
		organizationID: organizationID,
		eventType:      eventType,
		subject:        subject,
		message:        message,
		metadata:       metadata,
		entityID:       entityID,
		createdBy:      createdBy,
		createdAt:      createdAt.UTC(),
		isConstructed:  true,
	}, nil
}

// RestoreNotification reconstructs a notification from persistence.
func RestoreNotification(
	id kernel.UUID,
	organizationID kernel.UUID,
	eventType Type,
	subject string,
	message string,
	metadata json.RawMessage,
	entityID kernel.UUID,
	createdBy kernel.UUID,
	createdAt time.Time,
) (*Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	n, err := NewNotification(organizationID, eventType, subject, message, metadata, entityID, createdBy, createdAt)
	if err != nil {
		return nil, err
	}
	n.id = id
	n.createdAt = createdAt

	return n, nil
}

// Validate ensures the notification was built through a factory method.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// OrganizationID returns the owning organization.
func (n *Notification) OrganizationID() kernel.UUID {
	return n.organizationID
}

// EventType returns the kind of domain event described.
func (n *Notification) EventType() Type {
	return n.eventType
}

// Subject returns the short human-readable subject line.
func (n *Notification) Subject() string {
	return n.subject
}

// Message returns the notification body.
func (n *Notification) Message() string {
	return n.message
}

// Metadata returns the structured event payload.
func (n *Notification) Metadata() json.RawMessage {
	return n.metadata
}

// EntityID returns the order or trip the event concerns.
func (n *Notification) EntityID() kernel.UUID {
	return n.entityID
}

// CreatedBy returns the user whose action produced the event.
func (n *Notification) CreatedBy() kernel.UUID {
	return n.createdBy
}

// CreatedAt returns the creation timestamp.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// Recipient is the fan-out row tying one notification to one user.
type Recipient struct {
	id             kernel.UUID
	notificationID kernel.UUID
	userID         kernel.UUID
	isRead         bool
	readAt         *time.Time

	isConstructed bool
}

// NewRecipient creates an unread recipient row for a notification.
func NewRecipient(notificationID kernel.UUID, userID kernel.UUID) (*Recipient, error) {
	if err := errors.Join(
		notificationID.Validate(),
		userID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Recipient{
		id:             kernel.NewUUID(),
		notificationID: notificationID,
		userID:         userID,
		isConstructed:  true,
	}, nil
}

// RestoreRecipient reconstructs a recipient row from persistence.
func RestoreRecipient(
	id kernel.UUID,
	notificationID kernel.UUID,
	userID kernel.UUID,
	isRead bool,
	readAt *time.Time,
) (*Recipient, error) {
	if err := errors.Join(
		id.Validate(),
		notificationID.Validate(),
		userID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Recipient{
		id:             id,
		notificationID: notificationID,
		userID:         userID,
		isRead:         isRead,
		readAt:         readAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the recipient was built through a factory method.
func (r *Recipient) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecipientIsNotConstructed
	}
	return nil
}

// ID returns the recipient row's unique identifier.
func (r *Recipient) ID() kernel.UUID {
	return r.id
}

// NotificationID returns the owning notification.
func (r *Recipient) NotificationID() kernel.UUID {
	return r.notificationID
}

// UserID returns the receiving user.
func (r *Recipient) UserID() kernel.UUID {
	return r.userID
}

// IsRead reports whether the user has read the notification.
func (r *Recipient) IsRead() bool {
	return r.isRead
}

// ReadAt returns when the notification was read, or nil while unread.
func (r *Recipient) ReadAt() *time.Time {
	return r.readAt
}

// MarkRead flags the recipient row as read at the given time.
func (r *Recipient) MarkRead(at time.Time) {
	if r.isRead {
		return
	}
	r.isRead = true
	utc := at.UTC()
	r.readAt = &utc
}
