package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/shared"
)

// InventoryRepository defines the interface for inventory row persistence
type InventoryRepository interface {
	// FindByID finds an inventory row by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Inventory, error)

	// FindByIDForTenant finds an inventory row by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Inventory, error)

	// FindByIDForUpdate finds an inventory row by ID and takes a row
	// lock. Must be called inside a transaction.
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Inventory, error)

	// FindByItemAndBlock finds the row for an item-block pair
	FindByItemAndBlock(ctx context.Context, tenantID, itemID, blockID uuid.UUID) (*Inventory, error)

	// FindByItemAndBlockForUpdate finds the row for an item-block pair
	// and takes a row lock. Must be called inside a transaction.
	FindByItemAndBlockForUpdate(ctx context.Context, tenantID, itemID, blockID uuid.UUID) (*Inventory, error)

	// FindByItem finds all rows holding an item across blocks
	FindByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]Inventory, error)

	// FindByBlock finds all rows in a block
	FindByBlock(ctx context.Context, tenantID, blockID uuid.UUID, filter shared.Filter) ([]Inventory, error)

	// FindAllForTenant finds all inventory rows for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Inventory, error)

	// Save creates or updates an inventory row
	Save(ctx context.Context, inv *Inventory) error

	// SumQuantityByItem sums the on-hand quantity of an item across blocks
	SumQuantityByItem(ctx context.Context, tenantID, itemID uuid.UUID) (int64, error)

	// SumQuantityByBlock sums the on-hand quantity held inside a block
	SumQuantityByBlock(ctx context.Context, tenantID, blockID uuid.UUID) (int64, error)

	// SumQuantityForTenant sums the on-hand quantity across all items
	SumQuantityForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// CountForTenant counts inventory rows matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

// StockInRepository defines the interface for inbound movement persistence
type StockInRepository interface {
	// Create appends an inbound record. Records are never updated.
	Create(ctx context.Context, record *StockIn) error

	// CreateBatch appends multiple inbound records
	CreateBatch(ctx context.Context, records []*StockIn) error

	// FindByItem finds inbound records for an item
	FindByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]StockIn, error)

	// FindByDateRange finds inbound records within [start, end)
	FindByDateRange(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]StockIn, error)

	// FindAllForTenant finds all inbound records for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StockIn, error)

	// SumQuantityByItemAndDateRange sums inbound quantity for an item within [start, end)
	SumQuantityByItemAndDateRange(ctx context.Context, tenantID, itemID uuid.UUID, start, end time.Time) (int64, error)

	// SumQuantityByItemAndBlock sums all inbound quantity ever recorded
	// for an item-block pair
	SumQuantityByItemAndBlock(ctx context.Context, tenantID, itemID, blockID uuid.UUID) (int64, error)

	// CountForTenant counts inbound records matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

// StockOutRepository defines the interface for outbound movement persistence
type StockOutRepository interface {
	// Create appends an outbound record. Records are never updated.
	Create(ctx context.Context, record *StockOut) error

	// CreateBatch appends multiple outbound records
	CreateBatch(ctx context.Context, records []*StockOut) error

	// FindByItem finds outbound records for an item
	FindByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]StockOut, error)

	// FindByReason finds outbound records with a specific reason
	FindByReason(ctx context.Context, tenantID uuid.UUID, reason StockOutReason, filter shared.Filter) ([]StockOut, error)

	// SumQuantityByReason sums the outbound quantity recorded with a reason
	SumQuantityByReason(ctx context.Context, tenantID uuid.UUID, reason StockOutReason) (int64, error)

	// SumQuantityByItemAndBlock sums all outbound quantity ever recorded
	// for an item-block pair
	SumQuantityByItemAndBlock(ctx context.Context, tenantID, itemID, blockID uuid.UUID) (int64, error)

	// FindByDateRange finds outbound records within [start, end)
	FindByDateRange(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]StockOut, error)

	// FindAllForTenant finds all outbound records for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StockOut, error)

	// CountForTenant counts outbound records matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
