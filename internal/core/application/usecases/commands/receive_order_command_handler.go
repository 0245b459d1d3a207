package commands

import (
	"context"
	"encoding/json"
	"time"

	"freight/internal/core/domain/model/notification"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// ReceiveOrderCommandHandler orchestrates the order receipt operation.
// Sequence: exclusivity pre-check, then one transaction that refreshes the
// order's cached status and appends the Received ledger entry, then a
// best-effort notification fan-out.
type ReceiveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewReceiveOrderCommandHandler creates a handler for order receipt operations.
func NewReceiveOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) ReceiveOrderCommandHandler {
	return ReceiveOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the receive order command. The exclusivity check runs
// before the transaction opens; on conflict no transaction is ever started
// and the caller must reload and retry.
func (h ReceiveOrderCommandHandler) Handle(ctx context.Context, cmd ReceiveOrderCommand) error {
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
	if err = ord.Receive(cmd.ReceivedBy(), now); err != nil {
		return err
	}

	record, err := order.NewStatusRecord(ord.ID(), ord.OrganizationID(), order.Received, cmd.ReceivedBy(), now)
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

	if err = orderRepo.AddStatusRecord(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metadata, _ := json.Marshal(map[string]string{"orderCode": ord.Code()})
	_ = h.notifier.Push(ctx, ports.PushInput{
		OrganizationID:     ord.OrganizationID(),
		EntityID:           ord.ID(),
		EventType:          notification.TypeOrderReceived,
		Subject:            "Order received",
		Message:            "Order " + ord.Code() + " has been received",
		Metadata:           metadata,
		MemberRoles:        backOfficeRoles,
		SendToParticipants: true,
		CreatedBy:          cmd.ReceivedBy(),
	})

	return nil
}
