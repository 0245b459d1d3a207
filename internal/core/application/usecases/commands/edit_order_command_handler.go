package commands

import (
	"context"
	"encoding/json"
	"time"

	"freight/internal/core/domain/model/notification"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// EditOrderCommandHandler orchestrates edits to an order's non-status fields.
// No ledger entry is written: edits do not move the state machine.
type EditOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewEditOrderCommandHandler creates a handler for order edit operations.
func NewEditOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) EditOrderCommandHandler {
	return EditOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the edit order command.
func (h EditOrderCommandHandler) Handle(ctx context.Context, cmd EditOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	orderRepo := uow.OrderRepository()

	ord, err := orderRepo.Get(ctx, cmd.OrderID(), cmd.OrganizationID())
	if err != nil {
		return err
	}

	if err = services.NewExclusivityGuard().Check(ord.UpdatedAt(), cmd.LastUpdatedAt()); err != nil {
		return err
	}

	now := time.Now()
	if err = ord.Edit(
		cmd.Code(),
		cmd.CustomerID(),
		cmd.RouteID(),
		cmd.UnitID(),
		cmd.TotalWeight(),
		cmd.IsDraft(),
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

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metadata, _ := json.Marshal(map[string]string{"orderCode": ord.Code()})
	_ = h.notifier.Push(ctx, ports.PushInput{
		OrganizationID:     ord.OrganizationID(),
		EntityID:           ord.ID(),
		EventType:          notification.TypeOrderEdited,
		Subject:            "Order updated",
		Message:            "Order " + ord.Code() + " has been updated",
		Metadata:           metadata,
		MemberRoles:        backOfficeRoles,
		SendToParticipants: true,
		CreatedBy:          cmd.EditedBy(),
	})

	return nil
}
