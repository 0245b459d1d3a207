package queries

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves an order read model from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order read queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns the order row joined with its full
// status history ordered by creation time; soft-deleted orders are excluded.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse
	var id, customerID, routeID, unitID uuid.UUID
	var statusType int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			is_draft,
			last_status_type,
			customer_id,
			route_id,
			unit_id,
			total_weight,
			created_at,
			updated_at
		FROM orders
		WHERE id = ? AND organization_id = ? AND is_published
	`, query.OrderID().String(), query.OrganizationID().String()).Row()

	err := row.Scan(
		&id,
		&resp.Code,
		&resp.IsDraft,
		&statusType,
		&customerID,
		&routeID,
		&unitID,
		&resp.TotalWeight,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if err != nil {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundErrorWithCause(
			"order", query.OrderID().String(), err,
		)
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.RouteID, err = kernel.UUIDFromBytes(routeID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.UnitID, err = kernel.UUIDFromBytes(unitID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.StatusType = order.Status(statusType).String()

	resp.StatusHistory, err = h.statusHistory(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) statusHistory(ctx context.Context, orderID kernel.UUID) ([]StatusHistoryItem, error) {
	items := make([]StatusHistoryItem, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status_type,
			created_by,
			created_at
		FROM order_status_records
		WHERE order_id = ?
		ORDER BY created_at
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item StatusHistoryItem
		var id, createdBy uuid.UUID
		var statusType int
		var createdAt time.Time

		if err = rows.Scan(&id, &statusType, &createdBy, &createdAt); err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.CreatedBy, err = kernel.UUIDFromBytes(createdBy[:]); err != nil {
			return nil, err
		}
		item.StatusType = order.Status(statusType).String()
		item.CreatedAt = createdAt
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
