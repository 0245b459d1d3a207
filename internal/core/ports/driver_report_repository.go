package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"
)

// DriverReportRepository looks up the per-organization checklist metadata
// stamped onto trip status ledger entries.
type DriverReportRepository interface {
	// GetByStatusType returns the organization's checklist step for a trip
	// status type, or an object-not-found error when none is configured.
	GetByStatusType(ctx context.Context, organizationID kernel.UUID, statusType trip.Status) (*trip.DriverReport, error)
}
