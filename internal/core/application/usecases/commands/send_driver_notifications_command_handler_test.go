package commands_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/notification"
	"freight/internal/core/domain/model/trip"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestTripWithDriver(t *testing.T, orderID, orgID, driverID kernel.UUID) *trip.Trip {
	t.Helper()

	tr := newTestTrip(t, orderID, orgID, 40)
	require.NoError(t, tr.Edit(&driverID, nil, 0, 0, 0, kernel.NewUUID(), time.Now()))
	return tr
}

func TestSendDriverNotificationsCommandHandler_Handle_DedupesDrivers(t *testing.T) {
	ctx := context.Background()

	ord := newTestOrder(t)
	userID := kernel.NewUUID()
	driverA := kernel.NewUUID()
	driverB := kernel.NewUUID()

	// Driver A runs two of the three trips.
	trips := []*trip.Trip{
		newTestTripWithDriver(t, ord.ID(), ord.OrganizationID(), driverA),
		newTestTripWithDriver(t, ord.ID(), ord.OrganizationID(), driverA),
		newTestTripWithDriver(t, ord.ID(), ord.OrganizationID(), driverB),
	}

	cmd, err := commands.NewSendDriverNotificationsCommand(
		ord.ID(), ord.OrganizationID(), "Schedule change", "Departure moved to 06:00", userID,
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	tripRepo := new(MockTripRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("TripRepository").Return(tripRepo).Once()
	orderRepo.On("Get", ctx, ord.ID(), ord.OrganizationID()).Return(ord, nil).Once()
	tripRepo.On("GetActiveByOrderID", ctx, ord.ID()).Return(trips, nil).Once()
	notifier.On("Push", ctx, mock.MatchedBy(func(in ports.PushInput) bool {
		return in.EventType == notification.TypeDriverAssignment &&
			len(in.Receivers) == 2 &&
			in.Receivers[0].IsEqual(driverA) &&
			in.Receivers[1].IsEqual(driverB) &&
			in.Subject == "Schedule change"
	})).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSendDriverNotificationsCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	notifier.AssertExpectations(t)
	// Read-only operation: no transaction is opened.
	uow.AssertNotCalled(t, "Begin", ctx)
}

func TestSendDriverNotificationsCommandHandler_Handle_NoDrivers(t *testing.T) {
	ctx := context.Background()

	ord := newTestOrder(t)
	cmd, err := commands.NewSendDriverNotificationsCommand(
		ord.ID(), ord.OrganizationID(), "Schedule change", "", kernel.NewUUID(),
	)
	require.NoError(t, err)

	trips := []*trip.Trip{
		newTestTrip(t, ord.ID(), ord.OrganizationID(), 40), // no driver assigned
	}

	orderRepo := new(MockOrderRepository)
	tripRepo := new(MockTripRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("TripRepository").Return(tripRepo).Once()
	orderRepo.On("Get", ctx, ord.ID(), ord.OrganizationID()).Return(ord, nil).Once()
	tripRepo.On("GetActiveByOrderID", ctx, ord.ID()).Return(trips, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSendDriverNotificationsCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrNoDriversAssigned)
	notifier.AssertNotCalled(t, "Push")
}

func TestNewSendDriverNotificationsCommand_EmptySubject(t *testing.T) {
	_, err := commands.NewSendDriverNotificationsCommand(
		kernel.NewUUID(), kernel.NewUUID(), "", "body", kernel.NewUUID(),
	)
	require.Error(t, err)
}
