// Package memberrepo provides read-only access to organization membership.
// Membership rows are owned by the identity service; the lifecycle engine
// only reads them when resolving notification receiver sets.
package memberrepo

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberDTO represents one organization membership row.
type MemberDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index"`
	UserID         uuid.UUID `gorm:"type:uuid;index"`
	Role           string    `gorm:"index"`
	CreatedAt      time.Time
}

// TableName specifies the database table name for organization members.
func (MemberDTO) TableName() string {
	return "organization_members"
}

// GormMemberRepository implements MemberRepository using GORM.
type GormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository creates a new GORM member repository.
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// GetMemberIDsByRoles returns the ids of organization members holding any of
// the given roles.
func (r *GormMemberRepository) GetMemberIDsByRoles(
	ctx context.Context,
	organizationID kernel.UUID,
	roles []string,
) ([]kernel.UUID, error) {
	if err := organizationID.Validate(); err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return []kernel.UUID{}, nil
	}

	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&MemberDTO{}).
		Where("organization_id = ? AND role IN ?", organizationID.Bytes(), roles).
		Distinct().
		Pluck("user_id", &raw).
		Error
	if err != nil {
		return nil, err
	}

	return toKernelUUIDs(raw)
}

// GetParticipantIDs returns the ids of users participating in an entity. The
// id may name an order or a trip: for an order that is its creator and the
// drivers of its published trips; for a trip it is the trip's creator, its
// driver, and the creator of its parent order.
func (r *GormMemberRepository) GetParticipantIDs(
	ctx context.Context,
	entityID kernel.UUID,
) ([]kernel.UUID, error) {
	if err := entityID.Validate(); err != nil {
		return nil, err
	}

	var raw []uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		SELECT created_by FROM orders WHERE id = @id
		UNION
		SELECT driver_id FROM trips
			WHERE order_id = @id AND is_published AND driver_id IS NOT NULL
		UNION
		SELECT created_by FROM trips WHERE id = @id
		UNION
		SELECT driver_id FROM trips WHERE id = @id AND driver_id IS NOT NULL
		UNION
		SELECT o.created_by FROM orders o
			JOIN trips t ON t.order_id = o.id
			WHERE t.id = @id
	`, map[string]any{"id": entityID.Bytes()}).Scan(&raw).Error
	if err != nil {
		return nil, err
	}

	return toKernelUUIDs(raw)
}

func toKernelUUIDs(raw []uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	var errAll error
	for _, u := range raw {
		id, err := kernel.UUIDFromBytes(u[:])
		if err != nil {
			errAll = errors.Join(errAll, err)
			continue
		}
		ids = append(ids, id)
	}
	if errAll != nil {
		return nil, errAll
	}
	return ids, nil
}
