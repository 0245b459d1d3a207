package commands

import (
	"context"
	"encoding/json"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/notification"
	"freight/internal/core/ports"
)

// ErrNoDriversAssigned is returned when none of the order's active trips has
// a driver to notify.
var ErrNoDriversAssigned = errors.New("no drivers assigned to the order's active trips")

// SendDriverNotificationsCommandHandler resolves the drivers of an order's
// active trips and pushes them a targeted notification. The operation is
// read-only against the domain tables, so no transaction is opened; the
// notification row itself is the deliverable here, so a persistence failure
// does propagate to the caller, unlike the post-commit fan-outs.
type SendDriverNotificationsCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewSendDriverNotificationsCommandHandler creates a handler for driver fan-outs.
func NewSendDriverNotificationsCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
) SendDriverNotificationsCommandHandler {
	return SendDriverNotificationsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the send driver notifications command.
func (h SendDriverNotificationsCommandHandler) Handle(ctx context.Context, cmd SendDriverNotificationsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	ord, err := uow.OrderRepository().Get(ctx, cmd.OrderID(), cmd.OrganizationID())
	if err != nil {
		return err
	}

	trips, err := uow.TripRepository().GetActiveByOrderID(ctx, ord.ID())
	if err != nil {
		return err
	}

	seen := make(map[kernel.UUID]struct{})
	drivers := make([]kernel.UUID, 0, len(trips))
	for _, t := range trips {
		if t.DriverID() == nil {
			continue
		}
		if _, ok := seen[*t.DriverID()]; ok {
			continue
		}
		seen[*t.DriverID()] = struct{}{}
		drivers = append(drivers, *t.DriverID())
	}

	if len(drivers) == 0 {
		return ErrNoDriversAssigned
	}

	metadata, _ := json.Marshal(map[string]string{"orderCode": ord.Code()})
	return h.notifier.Push(ctx, ports.PushInput{
		OrganizationID: ord.OrganizationID(),
		EntityID:       ord.ID(),
		EventType:      notification.TypeDriverAssignment,
		Subject:        cmd.Subject(),
		Message:        cmd.Message(),
		Metadata:       metadata,
		Receivers:      drivers,
		CreatedBy:      cmd.SentBy(),
	})
}
