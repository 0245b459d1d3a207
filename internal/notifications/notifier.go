// Package notifications implements the notification fan-out: resolving who a
// domain event concerns, persisting the notification with one recipient row
// per user, and pushing it to connected users over the realtime publisher.
package notifications

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/notification"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// Service implements ports.Notifier. Notifications are best-effort: receiver
// resolution, persistence and realtime delivery failures are all logged and
// swallowed, so a failed fan-out never rolls back the lifecycle operation
// that triggered it.
type Service struct {
	uowFactory ports.UnitOfWorkFactory
	members    ports.MemberRepository
	publisher  ports.RealtimePublisher
	resolver   services.ReceiverResolver
	logger     *slog.Logger
}

// NewService creates the notification fan-out service.
func NewService(
	uowFactory ports.UnitOfWorkFactory,
	members ports.MemberRepository,
	publisher ports.RealtimePublisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		uowFactory: uowFactory,
		members:    members,
		publisher:  publisher,
		resolver:   services.NewReceiverResolver(),
		logger:     logger.With("component", "notifier"),
	}
}

// pushPayload is the wire shape delivered over the realtime channel.
type pushPayload struct {
	RecipientID string          `json:"recipientId"`
	EventType   string          `json:"eventType"`
	Subject     string          `json:"subject"`
	Message     string          `json:"message"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	EntityID    string          `json:"entityId"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Push resolves the receiver set, persists the notification with its
// recipient rows, and publishes one realtime payload per receiver. Failures
// are logged and never propagated to the caller.
func (s *Service) Push(ctx context.Context, input ports.PushInput) error {
	if err := s.push(ctx, input); err != nil {
		s.logger.ErrorContext(ctx, "Notification fan-out failed",
			"eventType", input.EventType,
			"entityId", input.EntityID.String(),
			"error", err)
	}
	return nil
}

func (s *Service) push(ctx context.Context, input ports.PushInput) error {
	receivers, err := s.resolveReceivers(ctx, input)
	if err != nil {
		return err
	}
	if len(receivers) == 0 {
		s.logger.DebugContext(ctx, "No receivers resolved for notification",
			"eventType", input.EventType, "entityId", input.EntityID.String())
		return nil
	}

	aggregate, err := notification.NewNotification(
		input.OrganizationID,
		input.EventType,
		input.Subject,
		input.Message,
		input.Metadata,
		input.EntityID,
		input.CreatedBy,
		time.Now(),
	)
	if err != nil {
		return err
	}

	recipients := make([]*notification.Recipient, 0, len(receivers))
	for _, userID := range receivers {
		recipient, recErr := notification.NewRecipient(aggregate.ID(), userID)
		if recErr != nil {
			return recErr
		}
		recipients = append(recipients, recipient)
	}

	uow := s.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	if err = uow.NotificationRepository().Add(ctx, aggregate, recipients); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	s.publishAll(ctx, input, aggregate, recipients)
	return nil
}

func (s *Service) resolveReceivers(ctx context.Context, input ports.PushInput) ([]kernel.UUID, error) {
	if len(input.Receivers) > 0 {
		return s.resolver.Resolve(input.Receivers, nil, nil, false), nil
	}

	var roleMembers []kernel.UUID
	if len(input.MemberRoles) > 0 {
		members, err := s.members.GetMemberIDsByRoles(ctx, input.OrganizationID, input.MemberRoles)
		if err != nil {
			return nil, err
		}
		roleMembers = members
	}

	var participants []kernel.UUID
	if input.SendToParticipants {
		ids, err := s.members.GetParticipantIDs(ctx, input.EntityID)
		if err != nil {
			return nil, err
		}
		participants = ids
	}

	return s.resolver.Resolve(nil, roleMembers, participants, input.SendToParticipants), nil
}

// publishAll delivers the committed notification to each recipient's realtime
// channel. Failures are logged per recipient and never returned.
func (s *Service) publishAll(
	ctx context.Context,
	input ports.PushInput,
	aggregate *notification.Notification,
	recipients []*notification.Recipient,
) {
	for _, recipient := range recipients {
		payload, err := json.Marshal(pushPayload{
			RecipientID: recipient.ID().String(),
			EventType:   string(aggregate.EventType()),
			Subject:     aggregate.Subject(),
			Message:     aggregate.Message(),
			Metadata:    aggregate.Metadata(),
			EntityID:    aggregate.EntityID().String(),
			CreatedAt:   aggregate.CreatedAt(),
		})
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to marshal notification payload",
				"eventType", input.EventType, "error", err)
			return
		}

		err = s.publisher.Publish(ctx, input.OrganizationID, recipient.UserID(), payload)
		if err != nil {
			s.logger.WarnContext(ctx, "Failed to publish realtime notification",
				"eventType", input.EventType,
				"userId", recipient.UserID().String(),
				"error", err)
		}
	}
}
