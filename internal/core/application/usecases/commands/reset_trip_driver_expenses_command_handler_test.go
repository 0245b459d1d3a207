package commands_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResetTripDriverExpensesCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()

	orgID := kernel.NewUUID()
	tr := newTestTrip(t, kernel.NewUUID(), orgID, 40)
	userID := kernel.NewUUID()

	items := []commands.DriverExpenseInput{
		{ExpenseID: kernel.NewUUID(), Name: "Fuel", Amount: 120.5},
		{ExpenseID: kernel.NewUUID(), Name: "Meals", Amount: 30},
	}
	cmd, err := commands.NewResetTripDriverExpensesCommand(tr.ID(), orgID, items, tr.UpdatedAt(), userID)
	require.NoError(t, err)

	tripRepo := new(MockTripRepository)
	uow := new(MockTripUoW)

	mock.InOrder(
		uow.On("TripRepository").Return(tripRepo).Once(),
		tripRepo.On("Get", ctx, tr.ID(), orgID).Return(tr, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		tripRepo.On("ReplaceDriverExpenses", ctx, tr.ID(), mock.MatchedBy(func(lines []*trip.DriverExpense) bool {
			return len(lines) == 2
		})).Return(nil).Once(),
		tripRepo.On("Update", ctx, mock.AnythingOfType("*trip.Trip")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTripUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewResetTripDriverExpensesCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.InDelta(t, 150.5, tr.DriverCost(), 0.0001)
	tripRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestResetTripDriverExpensesCommandHandler_Handle_EmptyItemsClearsCost(t *testing.T) {
	ctx := context.Background()

	orgID := kernel.NewUUID()
	tr := newTestTrip(t, kernel.NewUUID(), orgID, 40)
	require.NoError(t, tr.SetDriverCost(200, kernel.NewUUID(), time.Now()))

	cmd, err := commands.NewResetTripDriverExpensesCommand(tr.ID(), orgID, nil, tr.UpdatedAt(), kernel.NewUUID())
	require.NoError(t, err)

	tripRepo := new(MockTripRepository)
	uow := new(MockTripUoW)

	mock.InOrder(
		uow.On("TripRepository").Return(tripRepo).Once(),
		tripRepo.On("Get", ctx, tr.ID(), orgID).Return(tr, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		tripRepo.On("ReplaceDriverExpenses", ctx, tr.ID(), mock.MatchedBy(func(lines []*trip.DriverExpense) bool {
			return len(lines) == 0
		})).Return(nil).Once(),
		tripRepo.On("Update", ctx, mock.AnythingOfType("*trip.Trip")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTripUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewResetTripDriverExpensesCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, tr.DriverCost())
}

func TestResetTripDriverExpensesCommandHandler_Handle_StaleTimestamp(t *testing.T) {
	ctx := context.Background()

	orgID := kernel.NewUUID()
	tr := newTestTrip(t, kernel.NewUUID(), orgID, 40)
	stale := tr.UpdatedAt().Add(time.Minute)
	cmd, err := commands.NewResetTripDriverExpensesCommand(tr.ID(), orgID, nil, stale, kernel.NewUUID())
	require.NoError(t, err)

	tripRepo := new(MockTripRepository)
	uow := new(MockTripUoW)

	uow.On("TripRepository").Return(tripRepo).Once()
	tripRepo.On("Get", ctx, tr.ID(), orgID).Return(tr, nil).Once()

	factory := new(MockTripUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewResetTripDriverExpensesCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	uow.AssertNotCalled(t, "Begin", ctx)
}

func TestNewResetTripDriverExpensesCommand_NegativeAmount(t *testing.T) {
	items := []commands.DriverExpenseInput{
		{ExpenseID: kernel.NewUUID(), Name: "Fuel", Amount: -1},
	}
	_, err := commands.NewResetTripDriverExpensesCommand(
		kernel.NewUUID(), kernel.NewUUID(), items, time.Now(), kernel.NewUUID(),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
