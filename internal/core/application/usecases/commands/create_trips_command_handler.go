package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/notification"
	"freight/internal/core/domain/model/trip"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// CreateTripsCommandHandler orchestrates the trip allocation loop. All trips
// of one request are created inside a single transaction whose timeout budget
// scales with the requested count; a failure mid-loop rolls back every trip
// created so far.
type CreateTripsCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewCreateTripsCommandHandler creates a handler for trip allocation.
func NewCreateTripsCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) CreateTripsCommandHandler {
	return CreateTripsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the create trips command. The order's remaining weight is
// re-read inside the transaction so concurrent allocations cannot both spend
// the same remainder. Each new trip gets an initial New ledger entry at
// sequence 1.
func (h CreateTripsCommandHandler) Handle(ctx context.Context, cmd CreateTripsCommand) error {
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

	allocator := services.NewTripAllocator()

	if err = uow.BeginWithTimeout(ctx, allocator.TimeoutBudget(cmd.RequestedTripCount())); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	allocated, err := tripRepo.SumActiveWeight(ctx, ord.ID())
	if err != nil {
		return err
	}

	remaining := ord.TotalWeight() - allocated
	if remaining < 0 {
		remaining = 0
	}

	weights, err := allocator.Allocate(cmd.RequestedTripCount(), cmd.WeightPerTrip(), remaining)
	if err != nil {
		return err
	}

	existing, err := tripRepo.GetByOrderID(ctx, ord.ID())
	if err != nil {
		return err
	}

	now := time.Now()
	for i, weight := range weights {
		code := fmt.Sprintf("%s-%d", ord.Code(), len(existing)+i+1)

		t, err := trip.NewTrip(
			kernel.NewUUID(), ord.ID(), ord.OrganizationID(), code, weight, cmd.CreatedBy(), now,
		)
		if err != nil {
			return err
		}

		if err = tripRepo.Add(ctx, t); err != nil {
			return err
		}

		record, err := trip.NewStatusRecord(
			t.ID(), t.OrganizationID(), trip.New, nil, 1, "", "", cmd.CreatedBy(), now,
		)
		if err != nil {
			return err
		}

		if err = tripRepo.AddStatusRecord(ctx, record); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metadata, _ := json.Marshal(map[string]any{
		"orderCode": ord.Code(),
		"tripCount": len(weights),
	})
	_ = h.notifier.Push(ctx, ports.PushInput{
		OrganizationID:     ord.OrganizationID(),
		EntityID:           ord.ID(),
		EventType:          notification.TypeTripsCreated,
		Subject:            "Trips created",
		Message:            fmt.Sprintf("%d trips created for order %s", len(weights), ord.Code()),
		Metadata:           metadata,
		MemberRoles:        backOfficeRoles,
		SendToParticipants: true,
		CreatedBy:          cmd.CreatedBy(),
	})

	return nil
}
