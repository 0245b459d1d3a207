package order_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"ORD-001",
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		100,
		false,
		kernel.NewUUID(),
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create a valid order", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.New, o.LastStatusType())
		assert.Equal(t, "ORD-001", o.Code())
		assert.True(t, o.IsPublished())
		assert.False(t, o.IsDraft())
		assert.Equal(t, 100.0, o.TotalWeight())
		assert.Equal(t, o.CreatedAt(), o.UpdatedAt())
		assert.Equal(t, o.CreatedBy(), o.UpdatedBy())
	})

	t.Run("should reject invalid identifiers", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.UUID{},
			kernel.NewUUID(),
			"ORD-001",
			kernel.NewUUID(),
			kernel.NewUUID(),
			kernel.NewUUID(),
			100,
			false,
			kernel.NewUUID(),
			time.Now(),
		)
		require.Error(t, err)
	})

	t.Run("should reject empty code", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(),
			kernel.NewUUID(),
			"",
			kernel.NewUUID(),
			kernel.NewUUID(),
			kernel.NewUUID(),
			100,
			false,
			kernel.NewUUID(),
			time.Now(),
		)
		require.Error(t, err)
	})

	t.Run("should reject non-positive weight", func(t *testing.T) {
		for _, weight := range []float64{0, -1, -100.5} {
			_, err := order.NewOrder(
				kernel.NewUUID(),
				kernel.NewUUID(),
				"ORD-001",
				kernel.NewUUID(),
				kernel.NewUUID(),
				kernel.NewUUID(),
				weight,
				false,
				kernel.NewUUID(),
				time.Now(),
			)
			require.Error(t, err)
		}
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("constructed order is valid", func(t *testing.T) {
		require.NoError(t, newTestOrder(t).Validate())
	})

	t.Run("zero value order is invalid", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil order is invalid", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_StatusTransitions(t *testing.T) {
	t.Run("receive updates cache and audit fields", func(t *testing.T) {
		o := newTestOrder(t)
		by := kernel.NewUUID()
		at := time.Now().Add(time.Minute)

		require.NoError(t, o.Receive(by, at))
		assert.Equal(t, order.Received, o.LastStatusType())
		assert.Equal(t, by, o.UpdatedBy())
		assert.Equal(t, at.UTC(), o.UpdatedAt())
	})

	t.Run("cannot receive twice", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Receive(kernel.NewUUID(), time.Now()))
		require.Error(t, o.Receive(kernel.NewUUID(), time.Now()))
	})

	t.Run("cancel works from any non-terminal state", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel(kernel.NewUUID(), time.Now()))
		assert.Equal(t, order.Canceled, o.LastStatusType())

		require.Error(t, o.Cancel(kernel.NewUUID(), time.Now()))
	})

	t.Run("full forward path", func(t *testing.T) {
		o := newTestOrder(t)
		by := kernel.NewUUID()

		require.NoError(t, o.Receive(by, time.Now()))
		require.NoError(t, o.Start(by, time.Now()))
		require.NoError(t, o.Complete(by, time.Now()))
		assert.Equal(t, order.Completed, o.LastStatusType())
	})
}

func TestOrder_Unpublish(t *testing.T) {
	o := newTestOrder(t)
	by := kernel.NewUUID()

	require.NoError(t, o.Unpublish(by, time.Now()))
	assert.False(t, o.IsPublished())
	assert.Equal(t, by, o.UpdatedBy())
}

func TestOrder_Edit(t *testing.T) {
	t.Run("updates non-status fields", func(t *testing.T) {
		o := newTestOrder(t)
		statusBefore := o.LastStatusType()
		customer := kernel.NewUUID()
		by := kernel.NewUUID()

		err := o.Edit("ORD-002", customer, o.RouteID(), o.UnitID(), 250, true, by, time.Now())
		require.NoError(t, err)
		assert.Equal(t, "ORD-002", o.Code())
		assert.Equal(t, customer, o.CustomerID())
		assert.Equal(t, 250.0, o.TotalWeight())
		assert.True(t, o.IsDraft())
		assert.Equal(t, statusBefore, o.LastStatusType())
	})

	t.Run("rejects invalid weight", func(t *testing.T) {
		o := newTestOrder(t)
		err := o.Edit(o.Code(), o.CustomerID(), o.RouteID(), o.UnitID(), -5, false, kernel.NewUUID(), time.Now())
		require.Error(t, err)
	})
}

func TestStatusRecord(t *testing.T) {
	t.Run("should create a valid ledger entry", func(t *testing.T) {
		orderID := kernel.NewUUID()
		orgID := kernel.NewUUID()
		by := kernel.NewUUID()
		at := time.Now()

		rec, err := order.NewStatusRecord(orderID, orgID, order.Received, by, at)
		require.NoError(t, err)
		require.NoError(t, rec.Validate())
		assert.NoError(t, rec.ID().Validate())
		assert.Equal(t, orderID, rec.OrderID())
		assert.Equal(t, order.Received, rec.StatusType())
		assert.Equal(t, by, rec.CreatedBy())
		assert.Equal(t, at.UTC(), rec.CreatedAt())
	})

	t.Run("should reject invalid status type", func(t *testing.T) {
		_, err := order.NewStatusRecord(kernel.NewUUID(), kernel.NewUUID(), order.Unknown, kernel.NewUUID(), time.Now())
		require.Error(t, err)
	})

	t.Run("zero value record is invalid", func(t *testing.T) {
		var rec order.StatusRecord
		require.ErrorIs(t, rec.Validate(), order.ErrStatusRecordIsNotConstructed)
	})

	t.Run("restore round trip", func(t *testing.T) {
		id := kernel.NewUUID()
		rec, err := order.RestoreStatusRecord(id, kernel.NewUUID(), kernel.NewUUID(), order.Canceled, kernel.NewUUID(), time.Now())
		require.NoError(t, err)
		assert.Equal(t, id, rec.ID())
		assert.Equal(t, order.Canceled, rec.StatusType())
	})
}
