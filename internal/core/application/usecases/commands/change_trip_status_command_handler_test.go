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

func newTestDriverReport(t *testing.T, orgID kernel.UUID, statusType trip.Status) *trip.DriverReport {
	t.Helper()

	report, err := trip.NewDriverReport(orgID, statusType, "Pickup confirmed", true, false, time.Now())
	require.NoError(t, err)
	return report
}

func TestChangeTripStatusCommandHandler_Handle_StampsDriverReport(t *testing.T) {
	ctx := context.Background()

	orgID := kernel.NewUUID()
	tr := newTestTrip(t, kernel.NewUUID(), orgID, 40)
	userID := kernel.NewUUID()
	report := newTestDriverReport(t, orgID, trip.PendingConfirmation)

	cmd, err := commands.NewChangeTripStatusCommand(
		tr.ID(), orgID, trip.PendingConfirmation, "loaded at dock 4", "BOL-42", tr.UpdatedAt(), userID,
	)
	require.NoError(t, err)

	tripRepo := new(MockTripRepository)
	reportRepo := new(MockDriverReportRepository)
	uow := new(MockTripReportUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("TripRepository").Return(tripRepo).Once(),
		tripRepo.On("Get", ctx, tr.ID(), orgID).Return(tr, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverReportRepository").Return(reportRepo).Once(),
		reportRepo.On("GetByStatusType", ctx, orgID, trip.PendingConfirmation).Return(report, nil).Once(),
		tripRepo.On("CountStatusRecords", ctx, tr.ID()).Return(3, nil).Once(),
		tripRepo.On("Update", ctx, mock.AnythingOfType("*trip.Trip")).Return(nil).Once(),
		tripRepo.On("AddStatusRecord", ctx, mock.MatchedBy(func(r *trip.StatusRecord) bool {
			return r.StatusType() == trip.PendingConfirmation &&
				r.Sequence() == 4 &&
				r.DriverReportID() != nil && r.DriverReportID().IsEqual(report.ID()) &&
				r.Notes() == "loaded at dock 4" &&
				r.BillOfLading() == "BOL-42"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	notifier.On("Push", ctx, mock.AnythingOfType("ports.PushInput")).Return(nil).Once()

	factory := new(MockTripReportUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewChangeTripStatusCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, trip.PendingConfirmation, tr.LastStatusType())
	tripRepo.AssertExpectations(t)
	reportRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestChangeTripStatusCommandHandler_Handle_NoDriverReportConfigured(t *testing.T) {
	ctx := context.Background()

	orgID := kernel.NewUUID()
	tr := newTestTrip(t, kernel.NewUUID(), orgID, 40)
	cmd, err := commands.NewChangeTripStatusCommand(
		tr.ID(), orgID, trip.PendingConfirmation, "", "", tr.UpdatedAt(), kernel.NewUUID(),
	)
	require.NoError(t, err)

	tripRepo := new(MockTripRepository)
	reportRepo := new(MockDriverReportRepository)
	uow := new(MockTripReportUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("TripRepository").Return(tripRepo).Once(),
		tripRepo.On("Get", ctx, tr.ID(), orgID).Return(tr, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverReportRepository").Return(reportRepo).Once(),
		reportRepo.On("GetByStatusType", ctx, orgID, trip.PendingConfirmation).
			Return(nil, errs.ErrObjectNotFound).
			Once(),
		tripRepo.On("CountStatusRecords", ctx, tr.ID()).Return(1, nil).Once(),
		tripRepo.On("Update", ctx, mock.AnythingOfType("*trip.Trip")).Return(nil).Once(),
		tripRepo.On("AddStatusRecord", ctx, mock.MatchedBy(func(r *trip.StatusRecord) bool {
			return r.Sequence() == 2 && r.DriverReportID() == nil
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	notifier.On("Push", ctx, mock.AnythingOfType("ports.PushInput")).Return(nil).Once()

	factory := new(MockTripReportUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewChangeTripStatusCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
}

func TestChangeTripStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := context.Background()

	orgID := kernel.NewUUID()
	tr := newTestTrip(t, kernel.NewUUID(), orgID, 40)
	// Delivering is not reachable from New.
	cmd, err := commands.NewChangeTripStatusCommand(
		tr.ID(), orgID, trip.Delivering, "", "", tr.UpdatedAt(), kernel.NewUUID(),
	)
	require.NoError(t, err)

	tripRepo := new(MockTripRepository)
	uow := new(MockTripReportUoW)

	uow.On("TripRepository").Return(tripRepo).Once()
	tripRepo.On("Get", ctx, tr.ID(), orgID).Return(tr, nil).Once()

	factory := new(MockTripReportUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewChangeTripStatusCommandHandler(factory, new(MockNotifier))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Begin", ctx)
	assert.Equal(t, trip.New, tr.LastStatusType())
}

func TestChangeTripStatusCommandHandler_Handle_StaleTimestamp(t *testing.T) {
	ctx := context.Background()

	orgID := kernel.NewUUID()
	tr := newTestTrip(t, kernel.NewUUID(), orgID, 40)
	stale := tr.UpdatedAt().Add(-time.Minute)
	cmd, err := commands.NewChangeTripStatusCommand(
		tr.ID(), orgID, trip.PendingConfirmation, "", "", stale, kernel.NewUUID(),
	)
	require.NoError(t, err)

	tripRepo := new(MockTripRepository)
	uow := new(MockTripReportUoW)

	uow.On("TripRepository").Return(tripRepo).Once()
	tripRepo.On("Get", ctx, tr.ID(), orgID).Return(tr, nil).Once()

	factory := new(MockTripReportUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewChangeTripStatusCommandHandler(factory, new(MockNotifier))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	uow.AssertNotCalled(t, "Begin", ctx)
}
