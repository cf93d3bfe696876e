package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/shared"
)

// StockOutReason classifies why goods left a block
type StockOutReason string

const (
	ReasonSale     StockOutReason = "sale"
	ReasonTransfer StockOutReason = "transfer"
	ReasonDamage   StockOutReason = "damage"
)

// IsValid returns true for a known reason
func (r StockOutReason) IsValid() bool {
	switch r {
	case ReasonSale, ReasonTransfer, ReasonDamage:
		return true
	}
	return false
}

// StockOut is an append-only record of goods leaving a block.
// Records are never updated or deleted once written. UnitPrice is the
// selling price the goods left at; sales from an order freeze the
// negotiated line price, direct outbound freezes the item's price.
type StockOut struct {
	shared.TenantAggregateRoot
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	BlockID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   int64           `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Reason     StockOutReason  `gorm:"type:varchar(20);not null"`
	OccurredAt time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (StockOut) TableName() string {
	return "stock_outs"
}

// NewStockOut creates an outbound movement record stamped with the
// acting user and the unit price the goods left at
func NewStockOut(tenantID, actorID, itemID, blockID uuid.UUID, quantity int64, unitPrice decimal.Decimal, reason StockOutReason) (*StockOut, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if blockID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BLOCK", "Block ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", "Unknown stock out reason")
	}

	root := shared.NewTenantAggregateRoot(tenantID)
	if actorID != uuid.Nil {
		root.SetCreatedBy(actorID)
	}

	return &StockOut{
		TenantAggregateRoot: root,
		ItemID:              itemID,
		BlockID:             blockID,
		Quantity:            quantity,
		UnitPrice:           unitPrice,
		Reason:              reason,
		OccurredAt:          time.Now(),
	}, nil
}
