package queries_test

import (
	"testing"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	orgID := kernel.NewUUID()

	q, err := queries.NewGetOrderQuery(orderID, orgID)
	require.NoError(t, err)
	assert.Equal(t, orderID, q.OrderID())
	assert.Equal(t, orgID, q.OrganizationID())
	require.NoError(t, q.Validate())
}

func TestNewGetOrderQuery_InvalidIDs(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.UUID{}, kernel.NewUUID())
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetOrderQuery_NotConstructed(t *testing.T) {
	q := queries.GetOrderQuery{}
	require.ErrorIs(t, q.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}

func TestNewGetOrderTripsQuery_ValidInput(t *testing.T) {
	q, err := queries.NewGetOrderTripsQuery(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, q.Validate())
}

func TestGetOrderTripsQuery_NotConstructed(t *testing.T) {
	q := queries.GetOrderTripsQuery{}
	require.ErrorIs(t, q.Validate(), queries.ErrGetOrderTripsQueryIsNotConstructed)
}

func TestNewGetUnreadNotificationsQuery_ValidInput(t *testing.T) {
	orgID := kernel.NewUUID()
	userID := kernel.NewUUID()

	q, err := queries.NewGetUnreadNotificationsQuery(orgID, userID)
	require.NoError(t, err)
	assert.Equal(t, orgID, q.OrganizationID())
	assert.Equal(t, userID, q.UserID())
}

func TestNewGetUnreadNotificationsQuery_InvalidUser(t *testing.T) {
	_, err := queries.NewGetUnreadNotificationsQuery(kernel.NewUUID(), kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
