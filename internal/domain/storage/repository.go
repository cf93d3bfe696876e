package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/shared"
)

// WarehouseRepository defines the interface for warehouse persistence
type WarehouseRepository interface {
	// FindByID finds a warehouse by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)

	// FindByIDForTenant finds a warehouse by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Warehouse, error)

	// FindAllForTenant finds all warehouses for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Warehouse, error)

	// FindActiveForTenant finds active warehouses for a tenant
	FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]Warehouse, error)

	// Save creates or updates a warehouse
	Save(ctx context.Context, warehouse *Warehouse) error

	// DeleteForTenant deletes a warehouse within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts warehouses matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

// BlockRepository defines the interface for block persistence
type BlockRepository interface {
	// FindByID finds a block by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Block, error)

	// FindByIDForTenant finds a block by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Block, error)

	// FindByIDForUpdate finds a block by ID and takes a row lock.
	// Must be called inside a transaction.
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Block, error)

	// FindByWarehouse finds all blocks of a warehouse ordered by code
	FindByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID) ([]Block, error)

	// FindByWarehouseForUpdate finds all blocks of a warehouse ordered
	// by code, taking row locks. Must be called inside a transaction.
	FindByWarehouseForUpdate(ctx context.Context, tenantID, warehouseID uuid.UUID) ([]Block, error)

	// FindByCode finds a block by warehouse and code
	FindByCode(ctx context.Context, tenantID, warehouseID uuid.UUID, code string) (*Block, error)

	// Save creates or updates a block
	Save(ctx context.Context, block *Block) error

	// SaveAll persists multiple blocks
	SaveAll(ctx context.Context, blocks []*Block) error

	// DeleteForTenant deletes a block within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountByWarehouse counts blocks in a warehouse
	CountByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID) (int64, error)
}
