package queries

import (
	"encoding/json"
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrGetUnreadNotificationsQueryIsNotConstructed = errors.New(
	"GetUnreadNotificationsQuery must be created via NewGetUnreadNotificationsQuery constructor",
)

// GetUnreadNotificationsQuery retrieves a user's unread notifications within
// an organization, newest first.
type GetUnreadNotificationsQuery struct {
	organizationID kernel.UUID
	userID         kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUnreadNotificationsQuery creates a query for a user's unread inbox.
func NewGetUnreadNotificationsQuery(organizationID, userID kernel.UUID) (GetUnreadNotificationsQuery, error) {
	if err := errors.Join(
		organizationID.Validate(),
		userID.Validate(),
	); err != nil {
		return GetUnreadNotificationsQuery{}, err
	}

	return GetUnreadNotificationsQuery{
		organizationID: organizationID,
		userID:         userID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUnreadNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetUnreadNotificationsQueryIsNotConstructed)
}

// OrganizationID returns the organization scope.
func (q GetUnreadNotificationsQuery) OrganizationID() kernel.UUID {
	return q.organizationID
}

// UserID returns the receiving user.
func (q GetUnreadNotificationsQuery) UserID() kernel.UUID {
	return q.userID
}

// GetUnreadNotificationsQueryResponse is one unread inbox entry. RecipientID
// identifies the per-user fan-out row used to mark the entry as read.
type GetUnreadNotificationsQueryResponse struct {
	RecipientID kernel.UUID
	EventType   string
	Subject     string
	Message     string
	Metadata    json.RawMessage
	EntityID    kernel.UUID
	CreatedAt   time.Time
}
