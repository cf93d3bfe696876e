package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/shared"
)

// Inventory tracks the on-hand quantity of one item in one block.
// The composite identifier is ItemID + BlockID; repeated inbound for
// the same pair accumulates on the existing row.
type Inventory struct {
	shared.TenantAggregateRoot
	ItemID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_item_block,priority:2"`
	BlockID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_item_block,priority:3"`
	Quantity int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Inventory) TableName() string {
	return "inventories"
}

// NewInventory creates an empty inventory row for an item-block pair
func NewInventory(tenantID, itemID, blockID uuid.UUID) (*Inventory, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if blockID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BLOCK", "Block ID cannot be empty")
	}

	return &Inventory{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ItemID:              itemID,
		BlockID:             blockID,
		Quantity:            0,
	}, nil
}

// Deposit adds quantity to the row
func (i *Inventory) Deposit(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Deposit quantity must be positive")
	}

	i.Quantity += quantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// Withdraw removes quantity from the row. The row is unchanged when
// an error is returned.
func (i *Inventory) Withdraw(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Withdraw quantity must be positive")
	}
	if i.Quantity < quantity {
		return shared.ErrInsufficientStock
	}

	i.Quantity -= quantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// CanFulfill returns true if the row holds at least the requested quantity
func (i *Inventory) CanFulfill(quantity int64) bool {
	return i.Quantity >= quantity
}

// IsEmpty returns true if the row holds no stock
func (i *Inventory) IsEmpty() bool {
	return i.Quantity == 0
}
