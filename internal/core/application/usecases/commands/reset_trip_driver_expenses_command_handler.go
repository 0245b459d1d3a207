package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/trip"
	"freight/internal/core/domain/services"
)

// ResetTripDriverExpensesCommandHandler replaces a trip's expense line items
// and refreshes the denormalized driver cost, both inside one transaction.
type ResetTripDriverExpensesCommandHandler struct {
	uowFactory TripUoWFactory
}

// NewResetTripDriverExpensesCommandHandler creates a handler for expense resets.
func NewResetTripDriverExpensesCommandHandler(uowFactory TripUoWFactory) ResetTripDriverExpensesCommandHandler {
	return ResetTripDriverExpensesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reset trip driver expenses command.
func (h ResetTripDriverExpensesCommandHandler) Handle(ctx context.Context, cmd ResetTripDriverExpensesCommand) error {
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
	lines := make([]*trip.DriverExpense, 0, len(cmd.Items()))
	for _, item := range cmd.Items() {
		line, err := trip.NewDriverExpense(t.ID(), item.ExpenseID, item.Name, item.Amount, now)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	if err = t.SetDriverCost(trip.SumDriverExpenses(lines), cmd.ResetBy(), now); err != nil {
		return err
	}

	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = tripRepo.ReplaceDriverExpenses(ctx, t.ID(), lines); err != nil {
		return err
	}

	if err = tripRepo.Update(ctx, t); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
