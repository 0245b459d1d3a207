// Package redis provides the Redis-backed implementation of the realtime
// publisher port. Each user gets a per-organization pub/sub channel that
// connected gateways subscribe to.
package redis

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

// ChannelPrefix is the namespace for per-user notification channels.
const ChannelPrefix = "notify"

// Publisher pushes notification payloads to Redis pub/sub channels.
type Publisher struct {
	client *redis.Client
}

// NewPublisher creates a publisher on top of an existing Redis client.
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Channel returns the pub/sub channel name for one user within an
// organization.
func Channel(organizationID kernel.UUID, userID kernel.UUID) string {
	return fmt.Sprintf("%s:%s:%s", ChannelPrefix, organizationID.String(), userID.String())
}

// Publish sends the payload to the user's channel. Delivery is best effort;
// the caller decides whether failures matter.
func (p *Publisher) Publish(
	ctx context.Context,
	organizationID kernel.UUID,
	userID kernel.UUID,
	payload []byte,
) error {
	return p.client.Publish(ctx, Channel(organizationID, userID), payload).Err()
}
