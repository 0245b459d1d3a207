package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
)

// MemberRepository exposes the organization membership data the notification
// fan-out needs to resolve receiver sets. Membership itself is managed by the
// identity service; this port is read-only.
type MemberRepository interface {
	// GetMemberIDsByRoles returns the ids of organization members holding any
	// of the given roles.
	GetMemberIDsByRoles(ctx context.Context, organizationID kernel.UUID, roles []string) ([]kernel.UUID, error)

	// GetParticipantIDs returns the ids of users participating in an entity.
	// The id may name an order (creator, drivers of its trips) or a trip
	// (creator, driver, parent order's creator).
	GetParticipantIDs(ctx context.Context, entityID kernel.UUID) ([]kernel.UUID, error)
}
