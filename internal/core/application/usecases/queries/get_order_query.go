// Package queries contains read-only operations against the store.
// Read models bypass the aggregates and query the database directly for
// optimal read performance in the CQRS pattern.
package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order together with its full status history.
// The history comes from the append-only ledger and is the authoritative
// record; the order row's status field is only a cache.
type GetOrderQuery struct {
	orderID        kernel.UUID
	organizationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order scoped to an organization.
func NewGetOrderQuery(orderID, organizationID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(
		orderID.Validate(),
		organizationID.Validate(),
	); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID:        orderID,
		organizationID: organizationID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to read.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrganizationID returns the organization scope.
func (q GetOrderQuery) OrganizationID() kernel.UUID {
	return q.organizationID
}

// StatusHistoryItem is one ledger entry in a status history read model.
type StatusHistoryItem struct {
	ID         kernel.UUID
	StatusType string
	CreatedBy  kernel.UUID
	CreatedAt  time.Time
}

// GetOrderQueryResponse is the order read model with its status history.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	Code          string
	IsDraft       bool
	StatusType    string
	CustomerID    kernel.UUID
	RouteID       kernel.UUID
	UnitID        kernel.UUID
	TotalWeight   float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	StatusHistory []StatusHistoryItem
}
