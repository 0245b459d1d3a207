package commands

import (
	"context"
	"encoding/json"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/notification"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/trip"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// DeleteOrderCommandHandler orchestrates order soft-deletion. The order is
// unpublished and, unless already terminal, canceled with a ledger entry;
// every trip under it is unpublished the same way, and trips still in flight
// are canceled with their own ledger entry. Nothing is physically removed.
type DeleteOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewDeleteOrderCommandHandler creates a handler for order deletion.
func NewDeleteOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the delete order command.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	orderRepo := uow.OrderRepository()
	tripRepo := uow.TripRepository()

	ord, err := orderRepo.Get(ctx, cmd.OrderID(), cmd.OrganizationID())
	if err != nil {
		return err
	}

	if err = services.NewExclusivityGuard().Check(ord.UpdatedAt(), cmd.LastUpdatedAt()); err != nil {
		return err
	}

	now := time.Now()

	var orderRecord *order.StatusRecord
	if !ord.LastStatusType().IsTerminal() {
		if err = ord.Cancel(cmd.DeletedBy(), now); err != nil {
			return err
		}
		orderRecord, err = order.NewStatusRecord(ord.ID(), ord.OrganizationID(), order.Canceled, cmd.DeletedBy(), now)
		if err != nil {
			return err
		}
	}

	if err = ord.Unpublish(cmd.DeletedBy(), now); err != nil {
		return err
	}

	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if orderRecord != nil {
		if err = orderRepo.AddStatusRecord(ctx, orderRecord); err != nil {
			return err
		}
	}

	trips, err := tripRepo.GetActiveByOrderID(ctx, ord.ID())
	if err != nil {
		return err
	}

	for _, t := range trips {
		if err = h.deleteTrip(ctx, tripRepo, t, cmd.DeletedBy(), now); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metadata, _ := json.Marshal(map[string]string{"orderCode": ord.Code()})
	_ = h.notifier.Push(ctx, ports.PushInput{
		OrganizationID:     ord.OrganizationID(),
		EntityID:           ord.ID(),
		EventType:          notification.TypeOrderDeleted,
		Subject:            "Order deleted",
		Message:            "Order " + ord.Code() + " has been deleted",
		Metadata:           metadata,
		MemberRoles:        backOfficeRoles,
		SendToParticipants: true,
		CreatedBy:          cmd.DeletedBy(),
	})

	return nil
}

func (h DeleteOrderCommandHandler) deleteTrip(
	ctx context.Context,
	tripRepo ports.TripRepository,
	t *trip.Trip,
	by kernel.UUID,
	now time.Time,
) error {
	// A completed trip keeps its terminal status; it is only unpublished.
	terminal := t.LastStatusType().IsTerminal()
	if !terminal {
		if err := t.Cancel(by, now); err != nil {
			return err
		}
	}

	if err := t.Unpublish(by, now); err != nil {
		return err
	}

	if err := tripRepo.Update(ctx, t); err != nil {
		return err
	}

	if terminal {
		return nil
	}

	count, err := tripRepo.CountStatusRecords(ctx, t.ID())
	if err != nil {
		return err
	}

	record, err := trip.NewStatusRecord(
		t.ID(), t.OrganizationID(), trip.Canceled, nil, count+1, "", "", by, now,
	)
	if err != nil {
		return err
	}

	return tripRepo.AddStatusRecord(ctx, record)
}
