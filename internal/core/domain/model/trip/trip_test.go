package trip_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTrip(t *testing.T, weight float64) *trip.Trip {
	t.Helper()

	tr, err := trip.NewTrip(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		"TRP-001",
		weight,
		kernel.NewUUID(),
		time.Now(),
	)
	require.NoError(t, err)
	return tr
}

func TestNewTrip(t *testing.T) {
	t.Run("should create a valid trip", func(t *testing.T) {
		tr := newTestTrip(t, 40)

		require.NoError(t, tr.Validate())
		assert.Equal(t, trip.New, tr.LastStatusType())
		assert.Equal(t, 40.0, tr.Weight())
		assert.True(t, tr.IsPublished())
		assert.Nil(t, tr.DriverID())
		assert.Nil(t, tr.VehicleID())
		assert.Zero(t, tr.DriverCost())
	})

	t.Run("should allow zero weight", func(t *testing.T) {
		tr := newTestTrip(t, 0)
		assert.Zero(t, tr.Weight())
	})

	t.Run("should reject negative weight", func(t *testing.T) {
		_, err := trip.NewTrip(
			kernel.NewUUID(),
			kernel.NewUUID(),
			kernel.NewUUID(),
			"TRP-001",
			-1,
			kernel.NewUUID(),
			time.Now(),
		)
		require.Error(t, err)
	})

	t.Run("should reject empty code", func(t *testing.T) {
		_, err := trip.NewTrip(
			kernel.NewUUID(),
			kernel.NewUUID(),
			kernel.NewUUID(),
			"",
			10,
			kernel.NewUUID(),
			time.Now(),
		)
		require.Error(t, err)
	})

	t.Run("zero value trip is invalid", func(t *testing.T) {
		var tr trip.Trip
		require.ErrorIs(t, tr.Validate(), trip.ErrTripIsNotConstructed)
	})
}

func TestTrip_ChangeStatus(t *testing.T) {
	t.Run("forward path", func(t *testing.T) {
		tr := newTestTrip(t, 40)
		by := kernel.NewUUID()

		steps := []trip.Status{
			trip.PendingConfirmation,
			trip.Confirmed,
			trip.Delivering,
			trip.Delivered,
			trip.Completed,
		}
		for _, next := range steps {
			require.NoError(t, tr.ChangeStatus(next, by, time.Now()))
			assert.Equal(t, next, tr.LastStatusType())
		}
	})

	t.Run("rejects skipping states", func(t *testing.T) {
		tr := newTestTrip(t, 40)
		require.Error(t, tr.ChangeStatus(trip.Delivering, kernel.NewUUID(), time.Now()))
	})

	t.Run("cancel allowed before completed", func(t *testing.T) {
		tr := newTestTrip(t, 40)
		by := kernel.NewUUID()

		require.NoError(t, tr.ChangeStatus(trip.PendingConfirmation, by, time.Now()))
		require.NoError(t, tr.ChangeStatus(trip.Confirmed, by, time.Now()))
		require.NoError(t, tr.ChangeStatus(trip.Delivering, by, time.Now()))
		require.NoError(t, tr.ChangeStatus(trip.Delivered, by, time.Now()))

		require.NoError(t, tr.Cancel(by, time.Now()))
		assert.True(t, tr.IsCanceled())
	})

	t.Run("cancel rejected after completed", func(t *testing.T) {
		tr := newTestTrip(t, 40)
		by := kernel.NewUUID()

		for _, next := range []trip.Status{
			trip.PendingConfirmation, trip.Confirmed, trip.Delivering, trip.Delivered, trip.Completed,
		} {
			require.NoError(t, tr.ChangeStatus(next, by, time.Now()))
		}

		require.Error(t, tr.Cancel(by, time.Now()))
	})

	t.Run("updates audit fields", func(t *testing.T) {
		tr := newTestTrip(t, 40)
		by := kernel.NewUUID()
		at := time.Now().Add(time.Hour)

		require.NoError(t, tr.ChangeStatus(trip.PendingConfirmation, by, at))
		assert.Equal(t, by, tr.UpdatedBy())
		assert.Equal(t, at.UTC(), tr.UpdatedAt())
	})
}

func TestTrip_Edit(t *testing.T) {
	t.Run("assigns driver, vehicle and costs", func(t *testing.T) {
		tr := newTestTrip(t, 40)
		driverID := kernel.NewUUID()
		vehicleID := kernel.NewUUID()

		err := tr.Edit(&driverID, &vehicleID, 150, 25, 10, kernel.NewUUID(), time.Now())
		require.NoError(t, err)
		assert.Equal(t, &driverID, tr.DriverID())
		assert.Equal(t, &vehicleID, tr.VehicleID())
		assert.Equal(t, 150.0, tr.SubcontractorCost())
		assert.Equal(t, 25.0, tr.BridgeToll())
		assert.Equal(t, 10.0, tr.OtherCost())
	})

	t.Run("rejects negative costs", func(t *testing.T) {
		tr := newTestTrip(t, 40)
		err := tr.Edit(nil, nil, -1, 0, 0, kernel.NewUUID(), time.Now())
		require.Error(t, err)
	})
}

func TestTrip_SetDriverCost(t *testing.T) {
	tr := newTestTrip(t, 40)

	require.NoError(t, tr.SetDriverCost(320, kernel.NewUUID(), time.Now()))
	assert.Equal(t, 320.0, tr.DriverCost())

	require.Error(t, tr.SetDriverCost(-1, kernel.NewUUID(), time.Now()))
}

func TestTripStatusRecord(t *testing.T) {
	t.Run("should create a valid ledger entry", func(t *testing.T) {
		tripID := kernel.NewUUID()
		reportID := kernel.NewUUID()

		rec, err := trip.NewStatusRecord(
			tripID, kernel.NewUUID(), trip.Confirmed, &reportID,
			3, "confirmed by dispatcher", "BOL-42", kernel.NewUUID(), time.Now(),
		)
		require.NoError(t, err)
		require.NoError(t, rec.Validate())
		assert.Equal(t, tripID, rec.TripID())
		assert.Equal(t, trip.Confirmed, rec.StatusType())
		assert.Equal(t, 3, rec.Sequence())
		assert.Equal(t, &reportID, rec.DriverReportID())
		assert.Equal(t, "confirmed by dispatcher", rec.Notes())
		assert.Equal(t, "BOL-42", rec.BillOfLading())
	})

	t.Run("driver report reference is optional", func(t *testing.T) {
		rec, err := trip.NewStatusRecord(
			kernel.NewUUID(), kernel.NewUUID(), trip.New, nil,
			1, "", "", kernel.NewUUID(), time.Now(),
		)
		require.NoError(t, err)
		assert.Nil(t, rec.DriverReportID())
	})

	t.Run("should reject non-positive sequence", func(t *testing.T) {
		for _, seq := range []int{0, -1} {
			_, err := trip.NewStatusRecord(
				kernel.NewUUID(), kernel.NewUUID(), trip.New, nil,
				seq, "", "", kernel.NewUUID(), time.Now(),
			)
			require.Error(t, err)
		}
	})

	t.Run("zero value record is invalid", func(t *testing.T) {
		var rec trip.StatusRecord
		require.ErrorIs(t, rec.Validate(), trip.ErrStatusRecordIsNotConstructed)
	})
}

func TestDriverExpense(t *testing.T) {
	t.Run("should create a valid line item", func(t *testing.T) {
		e, err := trip.NewDriverExpense(kernel.NewUUID(), kernel.NewUUID(), "fuel", 120.5, time.Now())
		require.NoError(t, err)
		require.NoError(t, e.Validate())
		assert.Equal(t, "fuel", e.Name())
		assert.Equal(t, 120.5, e.Amount())
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		_, err := trip.NewDriverExpense(kernel.NewUUID(), kernel.NewUUID(), "fuel", -3, time.Now())
		require.Error(t, err)
	})

	t.Run("sum totals line items", func(t *testing.T) {
		tripID := kernel.NewUUID()
		items := make([]*trip.DriverExpense, 0, 3)
		for _, amount := range []float64{100, 20.5, 4.5} {
			e, err := trip.NewDriverExpense(tripID, kernel.NewUUID(), "item", amount, time.Now())
			require.NoError(t, err)
			items = append(items, e)
		}

		assert.Equal(t, 125.0, trip.SumDriverExpenses(items))
		assert.Zero(t, trip.SumDriverExpenses(nil))
	})
}

func TestDriverReport(t *testing.T) {
	t.Run("should create a valid checklist step", func(t *testing.T) {
		r, err := trip.NewDriverReport(kernel.NewUUID(), trip.Delivered, "Proof of delivery", true, true, time.Now())
		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.Equal(t, trip.Delivered, r.StatusType())
		assert.True(t, r.RequiresPhoto())
		assert.True(t, r.RequiresBillOfLading())
	})

	t.Run("should reject empty name", func(t *testing.T) {
		_, err := trip.NewDriverReport(kernel.NewUUID(), trip.Delivered, "", false, false, time.Now())
		require.Error(t, err)
	})
}
