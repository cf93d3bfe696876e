package storage

import (
	"time"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/shared"
)

// Block is a storage subdivision of a warehouse with a fixed unit
// capacity. Available tracks how many units can still be placed and
// must stay within [0, Capacity] at all times.
type Block struct {
	shared.TenantAggregateRoot
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_block_warehouse_code,priority:1"`
	Code        string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_block_warehouse_code,priority:2"`
	Capacity    int64     `gorm:"not null;default:0"`
	Available   int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Block) TableName() string {
	return "blocks"
}

// NewBlock creates a new block with all capacity available
func NewBlock(tenantID, warehouseID uuid.UUID, code string, capacity int64) (*Block, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Block code cannot be empty")
	}
	if capacity < 0 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Block capacity cannot be negative")
	}

	return &Block{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		WarehouseID:         warehouseID,
		Code:                code,
		Capacity:            capacity,
		Available:           capacity,
	}, nil
}

// Used returns the number of occupied units
func (b *Block) Used() int64 {
	return b.Capacity - b.Available
}

// CanHold returns true if the block can accept the given quantity
func (b *Block) CanHold(quantity int64) bool {
	return quantity > 0 && b.Available >= quantity
}

// Reserve consumes capacity for incoming stock. The block state is
// unchanged when an error is returned.
func (b *Block) Reserve(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Reserve quantity must be positive")
	}
	if b.Available < quantity {
		return shared.ErrInsufficientSpace
	}

	b.Available -= quantity
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// Release returns capacity when stock leaves the block. Releasing more
// than is occupied is rejected so Available never exceeds Capacity.
func (b *Block) Release(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Release quantity must be positive")
	}
	if b.Available+quantity > b.Capacity {
		return shared.NewDomainError("INVALID_QUANTITY", "Release exceeds occupied capacity")
	}

	b.Available += quantity
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// Resize changes the block capacity. Shrinking below the currently
// occupied units is rejected.
func (b *Block) Resize(capacity int64) error {
	if capacity < 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "Block capacity cannot be negative")
	}
	if capacity < b.Used() {
		return shared.NewDomainError("INVALID_CAPACITY", "New capacity is below occupied units")
	}

	b.Available = capacity - b.Used()
	b.Capacity = capacity
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}
