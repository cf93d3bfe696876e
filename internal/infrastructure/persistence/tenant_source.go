package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/identity"
	"gorm.io/gorm"
)

// GormTenantSource lists tenants by the distinct tenant IDs present in
// the users table. Every provisioned tenant has at least one account.
type GormTenantSource struct {
	db *gorm.DB
}

// NewGormTenantSource creates a new GormTenantSource
func NewGormTenantSource(db *gorm.DB) *GormTenantSource {
	return &GormTenantSource{db: db}
}

// ListTenantIDs returns the distinct tenant IDs of all users
func (s *GormTenantSource) ListTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := s.db.WithContext(ctx).
		Model(&identity.User{}).
		Distinct("tenant_id").
		Pluck("tenant_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
