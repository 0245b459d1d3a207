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

// CancelOrderCommandHandler orchestrates order cancellation. The order gets a
// Canceled ledger entry, then every trip under it still in flight is walked
// and given its own Canceled entry at that trip's next sequence number, all
// inside one transaction. Completed trips are left untouched. Three in-flight
// trips produce exactly four new ledger rows.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the cancel order command.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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
	if err = ord.Cancel(cmd.CanceledBy(), now); err != nil {
		return err
	}

	orderRecord, err := order.NewStatusRecord(ord.ID(), ord.OrganizationID(), order.Canceled, cmd.CanceledBy(), now)
	if err != nil {
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

	if err = orderRepo.AddStatusRecord(ctx, orderRecord); err != nil {
		return err
	}

	trips, err := tripRepo.GetActiveByOrderID(ctx, ord.ID())
	if err != nil {
		return err
	}

	canceledTrips := 0
	for _, t := range trips {
		// Completed trips stay as they are; only trips still in flight
		// get a Canceled entry.
		if t.LastStatusType().IsTerminal() {
			continue
		}
		if err = h.cancelTrip(ctx, tripRepo, t, cmd.CanceledBy(), now); err != nil {
			return err
		}
		canceledTrips++
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metadata, _ := json.Marshal(map[string]any{
		"orderCode":     ord.Code(),
		"canceledTrips": canceledTrips,
	})
	_ = h.notifier.Push(ctx, ports.PushInput{
		OrganizationID:     ord.OrganizationID(),
		EntityID:           ord.ID(),
		EventType:          notification.TypeOrderCanceled,
		Subject:            "Order canceled",
		Message:            "Order " + ord.Code() + " has been canceled",
		Metadata:           metadata,
		MemberRoles:        backOfficeRoles,
		SendToParticipants: true,
		CreatedBy:          cmd.CanceledBy(),
	})

	return nil
}

func (h CancelOrderCommandHandler) cancelTrip(
	ctx context.Context,
	tripRepo ports.TripRepository,
	t *trip.Trip,
	by kernel.UUID,
	now time.Time,
) error {
	if err := t.Cancel(by, now); err != nil {
		return err
	}

	if err := tripRepo.Update(ctx, t); err != nil {
		return err
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
