package commands_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/trip"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Shared testify mocks for the command handler tests in this package.

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id, organizationID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AddStatusRecord(ctx context.Context, record *order.StatusRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockOrderRepository) GetStatusHistory(ctx context.Context, orderID kernel.UUID) ([]*order.StatusRecord, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.StatusRecord), args.Error(1)
}

type MockTripRepository struct{ mock.Mock }

func (m *MockTripRepository) Add(ctx context.Context, t *trip.Trip) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTripRepository) Update(ctx context.Context, t *trip.Trip) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTripRepository) Get(ctx context.Context, id, organizationID kernel.UUID) (*trip.Trip, error) {
	args := m.Called(ctx, id, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trip.Trip), args.Error(1)
}

func (m *MockTripRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*trip.Trip, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trip.Trip), args.Error(1)
}

func (m *MockTripRepository) GetActiveByOrderID(ctx context.Context, orderID kernel.UUID) ([]*trip.Trip, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trip.Trip), args.Error(1)
}

func (m *MockTripRepository) SumActiveWeight(ctx context.Context, orderID kernel.UUID) (float64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockTripRepository) AddStatusRecord(ctx context.Context, record *trip.StatusRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTripRepository) CountStatusRecords(ctx context.Context, tripID kernel.UUID) (int, error) {
	args := m.Called(ctx, tripID)
	return args.Int(0), args.Error(1)
}

func (m *MockTripRepository) GetStatusHistory(ctx context.Context, tripID kernel.UUID) ([]*trip.StatusRecord, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trip.StatusRecord), args.Error(1)
}

func (m *MockTripRepository) ReplaceDriverExpenses(
	ctx context.Context,
	tripID kernel.UUID,
	items []*trip.DriverExpense,
) error {
	args := m.Called(ctx, tripID, items)
	return args.Error(0)
}

func (m *MockTripRepository) GetDriverExpenses(ctx context.Context, tripID kernel.UUID) ([]*trip.DriverExpense, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trip.DriverExpense), args.Error(1)
}

type MockDriverReportRepository struct{ mock.Mock }

func (m *MockDriverReportRepository) GetByStatusType(
	ctx context.Context,
	organizationID kernel.UUID,
	statusType trip.Status,
) (*trip.DriverReport, error) {
	args := m.Called(ctx, organizationID, statusType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trip.DriverReport), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Push(ctx context.Context, input ports.PushInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

type mockTx struct{ mock.Mock }

func (m *mockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) BeginWithTimeout(ctx context.Context, timeout time.Duration) error {
	args := m.Called(ctx, timeout)
	return args.Error(0)
}

func (m *mockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockOrderUoW struct{ mockTx }

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockTripUoW struct{ mockTx }

func (m *MockTripUoW) TripRepository() ports.TripRepository {
	args := m.Called()
	return args.Get(0).(ports.TripRepository)
}

type MockTripUoWFactory struct{ mock.Mock }

func (m *MockTripUoWFactory) Create() commands.TripUoW {
	args := m.Called()
	return args.Get(0).(commands.TripUoW)
}

type MockTripReportUoW struct{ mockTx }

func (m *MockTripReportUoW) TripRepository() ports.TripRepository {
	args := m.Called()
	return args.Get(0).(ports.TripRepository)
}

func (m *MockTripReportUoW) DriverReportRepository() ports.DriverReportRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverReportRepository)
}

type MockTripReportUoWFactory struct{ mock.Mock }

func (m *MockTripReportUoWFactory) Create() commands.TripReportUoW {
	args := m.Called()
	return args.Get(0).(commands.TripReportUoW)
}

type MockUoW struct{ mockTx }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) TripRepository() ports.TripRepository {
	args := m.Called()
	return args.Get(0).(ports.TripRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	ord, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"ORD-100",
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		100,
		false,
		kernel.NewUUID(),
		time.Now(),
	)
	require.NoError(t, err)
	return ord
}

func newTestTrip(t *testing.T, orderID, organizationID kernel.UUID, weight float64) *trip.Trip {
	t.Helper()

	tr, err := trip.NewTrip(
		kernel.NewUUID(),
		orderID,
		organizationID,
		"ORD-100-1",
		weight,
		kernel.NewUUID(),
		time.Now(),
	)
	require.NoError(t, err)
	return tr
}

func newCompletedTrip(t *testing.T, orderID, organizationID kernel.UUID, weight float64) *trip.Trip {
	t.Helper()

	tr := newTestTrip(t, orderID, organizationID, weight)
	by := kernel.NewUUID()
	for _, next := range []trip.Status{
		trip.PendingConfirmation, trip.Confirmed, trip.Delivering, trip.Delivered, trip.Completed,
	} {
		require.NoError(t, tr.ChangeStatus(next, by, time.Now()))
	}
	return tr
}
