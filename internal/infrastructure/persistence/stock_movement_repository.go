package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockInRepository implements StockInRepository using GORM
type GormStockInRepository struct {
	db *gorm.DB
}

// NewGormStockInRepository creates a new GormStockInRepository
func NewGormStockInRepository(db *gorm.DB) *GormStockInRepository {
	return &GormStockInRepository{db: db}
}

// Create appends an inbound record
func (r *GormStockInRepository) Create(ctx context.Context, record *inventory.StockIn) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// CreateBatch appends multiple inbound records
func (r *GormStockInRepository) CreateBatch(ctx context.Context, records []*inventory.StockIn) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(records).Error
}

// FindByItem finds inbound records for an item
func (r *GormStockInRepository) FindByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]inventory.StockIn, error) {
	var records []inventory.StockIn
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockIn{}).
			Where("tenant_id = ? AND item_id = ?", tenantID, itemID),
		filter,
	)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByDateRange finds inbound records within [start, end)
func (r *GormStockInRepository) FindByDateRange(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]inventory.StockIn, error) {
	var records []inventory.StockIn
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND occurred_at >= ? AND occurred_at < ?", tenantID, start, end).
		Order("occurred_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindAllForTenant finds all inbound records for a tenant
func (r *GormStockInRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.StockIn, error) {
	var records []inventory.StockIn
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockIn{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// SumQuantityByItemAndDateRange sums inbound quantity for an item within [start, end)
func (r *GormStockInRepository) SumQuantityByItemAndDateRange(ctx context.Context, tenantID, itemID uuid.UUID, start, end time.Time) (int64, error) {
	var result struct {
		Total int64
	}
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockIn{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("tenant_id = ? AND item_id = ? AND occurred_at >= ? AND occurred_at < ?", tenantID, itemID, start, end).
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Total, nil
}

// SumQuantityByItemAndBlock sums all inbound quantity ever recorded
// for an item-block pair
func (r *GormStockInRepository) SumQuantityByItemAndBlock(ctx context.Context, tenantID, itemID, blockID uuid.UUID) (int64, error) {
	var result struct {
		Total int64
	}
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockIn{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("tenant_id = ? AND item_id = ? AND block_id = ?", tenantID, itemID, blockID).
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Total, nil
}

// CountForTenant counts inbound records matching the filter
func (r *GormStockInRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.StockIn{}).Where("tenant_id = ?", tenantID)
	if itemID, ok := filter.Filters["item_id"]; ok {
		query = query.Where("item_id = ?", itemID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ inventory.StockInRepository = (*GormStockInRepository)(nil)

// GormStockOutRepository implements StockOutRepository using GORM
type GormStockOutRepository struct {
	db *gorm.DB
}

// NewGormStockOutRepository creates a new GormStockOutRepository
func NewGormStockOutRepository(db *gorm.DB) *GormStockOutRepository {
	return &GormStockOutRepository{db: db}
}

// Create appends an outbound record
func (r *GormStockOutRepository) Create(ctx context.Context, record *inventory.StockOut) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// CreateBatch appends multiple outbound records
func (r *GormStockOutRepository) CreateBatch(ctx context.Context, records []*inventory.StockOut) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(records).Error
}

// FindByItem finds outbound records for an item
func (r *GormStockOutRepository) FindByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]inventory.StockOut, error) {
	var records []inventory.StockOut
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockOut{}).
			Where("tenant_id = ? AND item_id = ?", tenantID, itemID),
		filter,
	)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByReason finds outbound records with a specific reason
func (r *GormStockOutRepository) FindByReason(ctx context.Context, tenantID uuid.UUID, reason inventory.StockOutReason, filter shared.Filter) ([]inventory.StockOut, error) {
	var records []inventory.StockOut
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockOut{}).
			Where("tenant_id = ? AND reason = ?", tenantID, reason),
		filter,
	)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// SumQuantityByReason sums the outbound quantity recorded with a reason
func (r *GormStockOutRepository) SumQuantityByReason(ctx context.Context, tenantID uuid.UUID, reason inventory.StockOutReason) (int64, error) {
	var result struct {
		Total int64
	}
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockOut{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("tenant_id = ? AND reason = ?", tenantID, reason).
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Total, nil
}

// SumQuantityByItemAndBlock sums all outbound quantity ever recorded
// for an item-block pair
func (r *GormStockOutRepository) SumQuantityByItemAndBlock(ctx context.Context, tenantID, itemID, blockID uuid.UUID) (int64, error) {
	var result struct {
		Total int64
	}
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockOut{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("tenant_id = ? AND item_id = ? AND block_id = ?", tenantID, itemID, blockID).
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Total, nil
}

// FindByDateRange finds outbound records within [start, end)
func (r *GormStockOutRepository) FindByDateRange(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]inventory.StockOut, error) {
	var records []inventory.StockOut
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND occurred_at >= ? AND occurred_at < ?", tenantID, start, end).
		Order("occurred_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindAllForTenant finds all outbound records for a tenant
func (r *GormStockOutRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.StockOut, error) {
	var records []inventory.StockOut
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockOut{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// CountForTenant counts outbound records matching the filter
func (r *GormStockOutRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.StockOut{}).Where("tenant_id = ?", tenantID)
	for key, value := range filter.Filters {
		switch key {
		case "item_id":
			query = query.Where("item_id = ?", value)
		case "reason":
			query = query.Where("reason = ?", value)
		}
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ inventory.StockOutRepository = (*GormStockOutRepository)(nil)
