package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrGetOrderTripsQueryIsNotConstructed = errors.New(
	"GetOrderTripsQuery must be created via NewGetOrderTripsQuery constructor",
)

// GetOrderTripsQuery retrieves the trips of an order together with each
// trip's status history ordered by ledger sequence.
type GetOrderTripsQuery struct {
	orderID        kernel.UUID
	organizationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTripsQuery creates a query for an order's trips.
func NewGetOrderTripsQuery(orderID, organizationID kernel.UUID) (GetOrderTripsQuery, error) {
	if err := errors.Join(
		orderID.Validate(),
		organizationID.Validate(),
	); err != nil {
		return GetOrderTripsQuery{}, err
	}

	return GetOrderTripsQuery{
		orderID:        orderID,
		organizationID: organizationID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTripsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTripsQueryIsNotConstructed)
}

// OrderID returns the order whose trips are read.
func (q GetOrderTripsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrganizationID returns the organization scope.
func (q GetOrderTripsQuery) OrganizationID() kernel.UUID {
	return q.organizationID
}

// TripStatusHistoryItem is one trip ledger entry in the read model.
type TripStatusHistoryItem struct {
	ID             kernel.UUID
	StatusType     string
	DriverReportID *kernel.UUID
	Sequence       int
	Notes          string
	BillOfLading   string
	CreatedBy      kernel.UUID
	CreatedAt      time.Time
}

// GetOrderTripsQueryResponse is the trip read model with its status history.
type GetOrderTripsQueryResponse struct {
	ID                kernel.UUID
	Code              string
	Weight            float64
	DriverID          *kernel.UUID
	VehicleID         *kernel.UUID
	DriverCost        float64
	SubcontractorCost float64
	BridgeToll        float64
	OtherCost         float64
	StatusType        string
	UpdatedAt         time.Time
	StatusHistory     []TripStatusHistoryItem
}
