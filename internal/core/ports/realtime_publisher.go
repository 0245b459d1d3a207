package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
)

// RealtimePublisher pushes lightweight payloads to a per-organization,
// per-user channel for real-time delivery. Publishing is best effort: the
// fan-out logs failures and never rolls them back against the committed
// lifecycle transaction.
type RealtimePublisher interface {
	Publish(ctx context.Context, organizationID kernel.UUID, userID kernel.UUID, payload []byte) error
}
