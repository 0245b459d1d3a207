package commands

import (
	"context"
	"encoding/json"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/notification"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// EditTripCommandHandler orchestrates edits to a trip's assignment and cost
// fields. When the edit assigns a new driver, the driver additionally gets a
// targeted assignment notification with an explicit receiver list.
type EditTripCommandHandler struct {
	uowFactory TripUoWFactory
	notifier   ports.Notifier
}

// NewEditTripCommandHandler creates a handler for trip edit operations.
func NewEditTripCommandHandler(uowFactory TripUoWFactory, notifier ports.Notifier) EditTripCommandHandler {
	return EditTripCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the edit trip command.
func (h EditTripCommandHandler) Handle(ctx context.Context, cmd EditTripCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	tripRepo := uow.TripRepository()

	t, err := tripRepo.Get(ctx, cmd.TripID(), cmd.OrganizationID())
	if err != nil {
		return err
	}

	if err = services.NewExclusivityGuard().Check(t.UpdatedAt(), cmd.LastUpdatedAt()); err != nil {
		return err
	}

	driverAssigned := cmd.DriverID() != nil &&
		(t.DriverID() == nil || !t.DriverID().IsEqual(*cmd.DriverID()))

	now := time.Now()
	if err = t.Edit(
		cmd.DriverID(),
		cmd.VehicleID(),
		cmd.SubcontractorCost(),
		cmd.BridgeToll(),
		cmd.OtherCost(),
		cmd.EditedBy(),
		now,
	); err != nil {
		return err
	}

	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = tripRepo.Update(ctx, t); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metadata, _ := json.Marshal(map[string]string{"tripCode": t.Code()})
	_ = h.notifier.Push(ctx, ports.PushInput{
		OrganizationID:     t.OrganizationID(),
		EntityID:           t.ID(),
		EventType:          notification.TypeTripEdited,
		Subject:            "Trip updated",
		Message:            "Trip " + t.Code() + " has been updated",
		Metadata:           metadata,
		MemberRoles:        backOfficeRoles,
		SendToParticipants: true,
		CreatedBy:          cmd.EditedBy(),
	})

	if driverAssigned {
		_ = h.notifier.Push(ctx, ports.PushInput{
			OrganizationID: t.OrganizationID(),
			EntityID:       t.ID(),
			EventType:      notification.TypeDriverAssignment,
			Subject:        "Trip assigned",
			Message:        "You have been assigned to trip " + t.Code(),
			Metadata:       metadata,
			Receivers:      []kernel.UUID{*cmd.DriverID()},
			CreatedBy:      cmd.EditedBy(),
		})
	}

	return nil
}
