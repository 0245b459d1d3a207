package queries

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderTripsQueryHandler retrieves the trip read models of one order.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOrderTripsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTripsQueryHandler creates a handler for order trip queries.
// Requires a GORM database connection for query execution.
func NewGetOrderTripsQueryHandler(db *gorm.DB) GetOrderTripsQueryHandler {
	return GetOrderTripsQueryHandler{db: db}
}

// Handle executes the query. Trips are ordered by code; each trip's status
// history is ordered by sequence number, not by timestamp.
func (h GetOrderTripsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTripsQuery,
) ([]GetOrderTripsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	trips := make([]GetOrderTripsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			weight,
			driver_id,
			vehicle_id,
			driver_cost,
			subcontractor_cost,
			bridge_toll,
			other_cost,
			last_status_type,
			updated_at
		FROM trips
		WHERE order_id = ? AND organization_id = ? AND is_published
		ORDER BY code
	`, query.OrderID().String(), query.OrganizationID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOrderTripsQueryResponse
		var id uuid.UUID
		var driverID, vehicleID uuid.NullUUID
		var statusType int

		err = rows.Scan(
			&id,
			&resp.Code,
			&resp.Weight,
			&driverID,
			&vehicleID,
			&resp.DriverCost,
			&resp.SubcontractorCost,
			&resp.BridgeToll,
			&resp.OtherCost,
			&statusType,
			&resp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.DriverID, err = optionalUUID(driverID); err != nil {
			return nil, err
		}
		if resp.VehicleID, err = optionalUUID(vehicleID); err != nil {
			return nil, err
		}
		resp.StatusType = trip.Status(statusType).String()
		trips = append(trips, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	for i := range trips {
		if trips[i].StatusHistory, err = h.statusHistory(ctx, trips[i].ID); err != nil {
			return nil, err
		}
	}

	return trips, nil
}

func (h GetOrderTripsQueryHandler) statusHistory(
	ctx context.Context,
	tripID kernel.UUID,
) ([]TripStatusHistoryItem, error) {
	items := make([]TripStatusHistoryItem, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status_type,
			driver_report_id,
			sequence,
			notes,
			bill_of_lading,
			created_by,
			created_at
		FROM trip_status_records
		WHERE trip_id = ?
		ORDER BY sequence
	`, tripID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item TripStatusHistoryItem
		var id, createdBy uuid.UUID
		var driverReportID uuid.NullUUID
		var statusType int
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&statusType,
			&driverReportID,
			&item.Sequence,
			&item.Notes,
			&item.BillOfLading,
			&createdBy,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.DriverReportID, err = optionalUUID(driverReportID); err != nil {
			return nil, err
		}
		if item.CreatedBy, err = kernel.UUIDFromBytes(createdBy[:]); err != nil {
			return nil, err
		}
		item.StatusType = trip.Status(statusType).String()
		item.CreatedAt = createdAt
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func optionalUUID(value uuid.NullUUID) (*kernel.UUID, error) {
	if !value.Valid {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes(value.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
