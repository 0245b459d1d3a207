// Package reportrepo provides persistence for the per-organization
// driver-report checklist configuration. The configuration is read-only from
// the lifecycle engine's point of view: rows are managed by the back office.
package reportrepo

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DriverReportDTO represents the database structure for checklist steps.
type DriverReportDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID       uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_report_org_status"`
	StatusType           int       `gorm:"uniqueIndex:idx_report_org_status"`
	Name                 string
	RequiresPhoto        bool
	RequiresBillOfLading bool
	CreatedAt            time.Time
}

// TableName specifies the database table name for checklist steps.
func (DriverReportDTO) TableName() string {
	return "driver_reports"
}

// GormDriverReportRepository implements DriverReportRepository using GORM.
type GormDriverReportRepository struct {
	conn func() *gorm.DB
}

// NewGormDriverReportRepository creates a repository bound to a fixed connection.
func NewGormDriverReportRepository(db *gorm.DB) *GormDriverReportRepository {
	return NewGormDriverReportRepositoryWithConn(func() *gorm.DB { return db })
}

// NewGormDriverReportRepositoryWithConn creates a repository that resolves its
// connection on every call. The unit of work hands repositories out before a
// transaction may exist; lazy resolution keeps their reads inside the
// transaction once Begin opens it.
func NewGormDriverReportRepositoryWithConn(conn func() *gorm.DB) *GormDriverReportRepository {
	return &GormDriverReportRepository{conn: conn}
}

// GetByStatusType returns the organization's checklist step for a trip status
// type, or an object-not-found error when none is configured.
func (r *GormDriverReportRepository) GetByStatusType(
	ctx context.Context,
	organizationID kernel.UUID,
	statusType trip.Status,
) (*trip.DriverReport, error) {
	if err := errors.Join(organizationID.Validate(), statusType.Validate()); err != nil {
		return nil, err
	}

	var dto DriverReportDTO
	err := r.conn().WithContext(ctx).
		First(&dto, "organization_id = ? AND status_type = ?", organizationID.Bytes(), int(statusType)).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driverReport", statusType.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func toDomain(dto DriverReportDTO) (*trip.DriverReport, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	organizationID, err := kernel.UUIDFromBytes(dto.OrganizationID[:])
	if err != nil {
		return nil, err
	}

	return trip.RestoreDriverReport(
		id,
		organizationID,
		trip.Status(dto.StatusType),
		dto.Name,
		dto.RequiresPhoto,
		dto.RequiresBillOfLading,
		dto.CreatedAt,
	)
}
