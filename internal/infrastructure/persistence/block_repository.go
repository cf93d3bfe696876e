package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/domain/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBlockRepository implements BlockRepository using GORM
type GormBlockRepository struct {
	db *gorm.DB
}

// NewGormBlockRepository creates a new GormBlockRepository
func NewGormBlockRepository(db *gorm.DB) *GormBlockRepository {
	return &GormBlockRepository{db: db}
}

// FindByID finds a block by its ID
func (r *GormBlockRepository) FindByID(ctx context.Context, id uuid.UUID) (*storage.Block, error) {
	var block storage.Block
	if err := r.db.WithContext(ctx).First(&block, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &block, nil
}

// FindByIDForTenant finds a block by ID within a tenant
func (r *GormBlockRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*storage.Block, error) {
	var block storage.Block
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&block).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &block, nil
}

// FindByIDForUpdate finds a block by ID and takes a row lock.
// Must be called inside a transaction.
func (r *GormBlockRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*storage.Block, error) {
	var block storage.Block
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&block).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &block, nil
}

// FindByWarehouse finds all blocks of a warehouse ordered by code
func (r *GormBlockRepository) FindByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID) ([]storage.Block, error) {
	var blocks []storage.Block
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND warehouse_id = ?", tenantID, warehouseID).
		Order("code ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

// FindByWarehouseForUpdate finds all blocks of a warehouse ordered by
// code, taking row locks. Must be called inside a transaction. The
// stable ordering keeps concurrent transactions locking in the same
// sequence.
func (r *GormBlockRepository) FindByWarehouseForUpdate(ctx context.Context, tenantID, warehouseID uuid.UUID) ([]storage.Block, error) {
	var blocks []storage.Block
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND warehouse_id = ?", tenantID, warehouseID).
		Order("code ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

// FindByCode finds a block by warehouse and code
func (r *GormBlockRepository) FindByCode(ctx context.Context, tenantID, warehouseID uuid.UUID, code string) (*storage.Block, error) {
	var block storage.Block
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND warehouse_id = ? AND code = ?", tenantID, warehouseID, code).
		First(&block).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &block, nil
}

// Save creates or updates a block
func (r *GormBlockRepository) Save(ctx context.Context, block *storage.Block) error {
	return r.db.WithContext(ctx).Save(block).Error
}

// SaveAll persists multiple blocks
func (r *GormBlockRepository) SaveAll(ctx context.Context, blocks []*storage.Block) error {
	if len(blocks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(blocks).Error
}

// DeleteForTenant deletes a block within a tenant
func (r *GormBlockRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&storage.Block{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByWarehouse counts blocks in a warehouse
func (r *GormBlockRepository) CountByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&storage.Block{}).
		Where("tenant_id = ? AND warehouse_id = ?", tenantID, warehouseID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ storage.BlockRepository = (*GormBlockRepository)(nil)
