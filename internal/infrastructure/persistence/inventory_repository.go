package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryRepository implements InventoryRepository using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindByID finds an inventory row by its ID
func (r *GormInventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Inventory, error) {
	var inv inventory.Inventory
	if err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// FindByIDForTenant finds an inventory row by ID within a tenant
func (r *GormInventoryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Inventory, error) {
	var inv inventory.Inventory
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// FindByIDForUpdate finds an inventory row by ID and takes a row lock.
// Must be called inside a transaction.
func (r *GormInventoryRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Inventory, error) {
	var inv inventory.Inventory
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// FindByItemAndBlock finds the row for an item-block pair
func (r *GormInventoryRepository) FindByItemAndBlock(ctx context.Context, tenantID, itemID, blockID uuid.UUID) (*inventory.Inventory, error) {
	var inv inventory.Inventory
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND item_id = ? AND block_id = ?", tenantID, itemID, blockID).
		First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// FindByItemAndBlockForUpdate finds the row for an item-block pair and
// takes a row lock. Must be called inside a transaction.
func (r *GormInventoryRepository) FindByItemAndBlockForUpdate(ctx context.Context, tenantID, itemID, blockID uuid.UUID) (*inventory.Inventory, error) {
	var inv inventory.Inventory
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND item_id = ? AND block_id = ?", tenantID, itemID, blockID).
		First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// FindByItem finds all rows holding an item across blocks
func (r *GormInventoryRepository) FindByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]inventory.Inventory, error) {
	var rows []inventory.Inventory
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Inventory{}).
			Where("tenant_id = ? AND item_id = ?", tenantID, itemID),
		filter,
	)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByBlock finds all rows in a block
func (r *GormInventoryRepository) FindByBlock(ctx context.Context, tenantID, blockID uuid.UUID, filter shared.Filter) ([]inventory.Inventory, error) {
	var rows []inventory.Inventory
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Inventory{}).
			Where("tenant_id = ? AND block_id = ?", tenantID, blockID),
		filter,
	)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindAllForTenant finds all inventory rows for a tenant
func (r *GormInventoryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Inventory, error) {
	var rows []inventory.Inventory
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Inventory{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Save creates or updates an inventory row
func (r *GormInventoryRepository) Save(ctx context.Context, inv *inventory.Inventory) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

// SumQuantityByItem sums the on-hand quantity of an item across blocks
func (r *GormInventoryRepository) SumQuantityByItem(ctx context.Context, tenantID, itemID uuid.UUID) (int64, error) {
	var result struct {
		Total int64
	}
	if err := r.db.WithContext(ctx).
		Model(&inventory.Inventory{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("tenant_id = ? AND item_id = ?", tenantID, itemID).
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Total, nil
}

// SumQuantityByBlock sums the on-hand quantity held inside a block
func (r *GormInventoryRepository) SumQuantityByBlock(ctx context.Context, tenantID, blockID uuid.UUID) (int64, error) {
	var result struct {
		Total int64
	}
	if err := r.db.WithContext(ctx).
		Model(&inventory.Inventory{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("tenant_id = ? AND block_id = ?", tenantID, blockID).
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Total, nil
}

// SumQuantityForTenant sums the on-hand quantity across all items
func (r *GormInventoryRepository) SumQuantityForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var result struct {
		Total int64
	}
	if err := r.db.WithContext(ctx).
		Model(&inventory.Inventory{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("tenant_id = ?", tenantID).
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Total, nil
}

// CountForTenant counts inventory rows matching the filter
func (r *GormInventoryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.Inventory{}).Where("tenant_id = ?", tenantID)
	for key, value := range filter.Filters {
		switch key {
		case "item_id":
			query = query.Where("item_id = ?", value)
		case "block_id":
			query = query.Where("block_id = ?", value)
		case "has_stock":
			if value == true {
				query = query.Where("quantity > 0")
			}
		}
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ inventory.InventoryRepository = (*GormInventoryRepository)(nil)
