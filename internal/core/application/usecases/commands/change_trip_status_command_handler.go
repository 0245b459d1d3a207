package commands

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/notification"
	"freight/internal/core/domain/model/trip"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// ChangeTripStatusCommandHandler orchestrates trip status transitions. The
// ledger entry's sequence number is computed as count+1 inside the same
// transaction that performs the insert; the unique (trip, sequence)
// constraint serializes concurrent writers for the same trip, surfacing the
// loser as an already-exists conflict.
type ChangeTripStatusCommandHandler struct {
	uowFactory TripReportUoWFactory
	notifier   ports.Notifier
}

// NewChangeTripStatusCommandHandler creates a handler for trip status changes.
func NewChangeTripStatusCommandHandler(
	uowFactory TripReportUoWFactory,
	notifier ports.Notifier,
) ChangeTripStatusCommandHandler {
	return ChangeTripStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the change trip status command. The ledger entry is
// stamped with the organization's driver-report checklist step for the target
// status when one is configured; an organization without one still transitions.
func (h ChangeTripStatusCommandHandler) Handle(ctx context.Context, cmd ChangeTripStatusCommand) error {
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

	now := time.Now()
	if err = t.ChangeStatus(cmd.StatusType(), cmd.ChangedBy(), now); err != nil {
		return err
	}

	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var driverReportID *kernel.UUID
	report, err := uow.DriverReportRepository().GetByStatusType(ctx, t.OrganizationID(), cmd.StatusType())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if report != nil {
		id := report.ID()
		driverReportID = &id
	}

	count, err := tripRepo.CountStatusRecords(ctx, t.ID())
	if err != nil {
		return err
	}

	record, err := trip.NewStatusRecord(
		t.ID(), t.OrganizationID(), cmd.StatusType(), driverReportID,
		count+1, cmd.Notes(), cmd.BillOfLading(), cmd.ChangedBy(), now,
	)
	if err != nil {
		return err
	}

	if err = tripRepo.Update(ctx, t); err != nil {
		return err
	}

	if err = tripRepo.AddStatusRecord(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metadata, _ := json.Marshal(map[string]string{
		"tripCode": t.Code(),
		"status":   cmd.StatusType().String(),
	})
	_ = h.notifier.Push(ctx, ports.PushInput{
		OrganizationID:     t.OrganizationID(),
		EntityID:           t.ID(),
		EventType:          notification.TypeTripStatusChanged,
		Subject:            "Trip status changed",
		Message:            "Trip " + t.Code() + " is now " + cmd.StatusType().String(),
		Metadata:           metadata,
		MemberRoles:        backOfficeRoles,
		SendToParticipants: true,
		CreatedBy:          cmd.ChangedBy(),
	})

	return nil
}
