package trip

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrDriverReportIsNotConstructed is returned when a DriverReport was not
// created through NewDriverReport or RestoreDriverReport.
var ErrDriverReportIsNotConstructed = errors.New("DriverReport must be created via NewDriverReport constructor")

// DriverReport is a per-organization configurable checklist step associated
// with a trip-status transition. The indirection lets each organization
// customize the human-readable labels and required attachments per status
// without changing the state machine itself.
type DriverReport struct {
	id                   kernel.UUID
	organizationID       kernel.UUID
	statusType           Status
	name                 string
	requiresPhoto        bool
	requiresBillOfLading bool
	createdAt            time.Time

	isConstructed bool
}

// NewDriverReport creates a checklist step definition for a status type.
func NewDriverReport(
	organizationID kernel.UUID,
	statusType Status,
	name string,
	requiresPhoto bool,
	requiresBillOfLading bool,
	createdAt time.Time,
) (*DriverReport, error) {
	if err := errors.Join(
		organizationID.Validate(),
		statusType.Validate(),
	); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	return &DriverReport{
		id:                   kernel.NewUUID(),
		organizationID:       organizationID,
		statusType:           statusType,
		name:                 name,
		requiresPhoto:        requiresPhoto,
		requiresBillOfLading: requiresBillOfLading,
		createdAt:            createdAt.UTC(),
		isConstructed:        true,
	}, nil
}

// RestoreDriverReport reconstructs a checklist step from persistence.
func RestoreDriverReport(
	id kernel.UUID,
	organizationID kernel.UUID,
	statusType Status,
	name string,
	requiresPhoto bool,
	requiresBillOfLading bool,
	createdAt time.Time,
) (*DriverReport, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r, err := NewDriverReport(organizationID, statusType, name, requiresPhoto, requiresBillOfLading, createdAt)
	if err != nil {
		return nil, err
	}
	r.id = id
	r.createdAt = createdAt

	return r, nil
}

// Validate ensures the report was built through a factory method.
func (r *DriverReport) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrDriverReportIsNotConstructed
	}
	return nil
}

// ID returns the checklist step's unique identifier.
func (r *DriverReport) ID() kernel.UUID {
	return r.id
}

// OrganizationID returns the organization this step is configured for.
func (r *DriverReport) OrganizationID() kernel.UUID {
	return r.organizationID
}

// StatusType returns the trip status this step corresponds to.
func (r *DriverReport) StatusType() Status {
	return r.statusType
}

// Name returns the human-readable label of the step.
func (r *DriverReport) Name() string {
	return r.name
}

// RequiresPhoto reports whether the step demands a photo attachment.
func (r *DriverReport) RequiresPhoto() bool {
	return r.requiresPhoto
}

// RequiresBillOfLading reports whether the step demands a bill of lading.
func (r *DriverReport) RequiresBillOfLading() bool {
	return r.requiresBillOfLading
}

// CreatedAt returns the creation timestamp.
func (r *DriverReport) CreatedAt() time.Time {
	return r.createdAt
}
