package ports

import (
	"context"
	"encoding/json"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/notification"
)

// PushInput describes one notification fan-out request. Explicit receivers,
// when present, win over role and participant resolution.
type PushInput struct {
	OrganizationID kernel.UUID
	EntityID       kernel.UUID
	EventType      notification.Type
	Subject        string
	Message        string
	Metadata       json.RawMessage

	// Receivers, when non-empty, is the exact receiver set.
	Receivers []kernel.UUID

	// MemberRoles selects organization members by role when Receivers is empty.
	MemberRoles []string

	// SendToParticipants adds the entity's participants to the role-resolved
	// set. Ignored when Receivers is non-empty.
	SendToParticipants bool

	CreatedBy kernel.UUID
}

// Notifier resolves receivers, persists a notification with its recipient
// rows, and pushes it to connected users. Fan-out is best-effort:
// implementations must never let a failure propagate back to the lifecycle
// operation that fired it.
type Notifier interface {
	Push(ctx context.Context, input PushInput) error
}
