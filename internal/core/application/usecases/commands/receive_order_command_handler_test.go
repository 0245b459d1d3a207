package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReceiveOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()

	ord := newTestOrder(t)
	userID := kernel.NewUUID()
	cmd, err := commands.NewReceiveOrderCommand(ord.ID(), ord.OrganizationID(), ord.UpdatedAt(), userID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID(), ord.OrganizationID()).Return(ord, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderRepo.On("AddStatusRecord", ctx, mock.MatchedBy(func(r *order.StatusRecord) bool {
			return r.StatusType() == order.Received && r.OrderID().IsEqual(ord.ID())
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	notifier.On("Push", ctx, mock.AnythingOfType("ports.PushInput")).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReceiveOrderCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Received, ord.LastStatusType())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestReceiveOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := context.Background()
	cmd := commands.ReceiveOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	handler := commands.NewReceiveOrderCommandHandler(factory, new(MockNotifier))
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrReceiveOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestReceiveOrderCommandHandler_Handle_StaleTimestamp(t *testing.T) {
	ctx := context.Background()

	ord := newTestOrder(t)
	stale := ord.UpdatedAt().Add(-time.Minute)
	cmd, err := commands.NewReceiveOrderCommand(ord.ID(), ord.OrganizationID(), stale, kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID(), ord.OrganizationID()).Return(ord, nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReceiveOrderCommandHandler(factory, new(MockNotifier))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	// Conflict is detected before any transaction opens.
	uow.AssertNotCalled(t, "Begin", ctx)
	assert.Equal(t, order.New, ord.LastStatusType())
}

func TestReceiveOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	orgID := kernel.NewUUID()
	cmd, err := commands.NewReceiveOrderCommand(orderID, orgID, time.Now(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID, orgID).Return(nil, errs.ErrObjectNotFound).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReceiveOrderCommandHandler(factory, new(MockNotifier))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestReceiveOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := context.Background()

	ord := newTestOrder(t)
	cmd, err := commands.NewReceiveOrderCommand(ord.ID(), ord.OrganizationID(), ord.UpdatedAt(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID(), ord.OrganizationID()).Return(ord, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderRepo.On("AddStatusRecord", ctx, mock.AnythingOfType("*order.StatusRecord")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReceiveOrderCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "commit error")
	notifier.AssertNotCalled(t, "Push")
}
