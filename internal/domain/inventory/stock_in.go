package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/shared"
)

// StockIn is an append-only record of goods entering a block.
// Records are never updated or deleted once written. CostPrice is the
// item's cost price at the time of entry; later price changes do not
// touch it, so historical valuations stay stable.
type StockIn struct {
	shared.TenantAggregateRoot
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	BlockID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   int64           `gorm:"not null"`
	CostPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	OccurredAt time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (StockIn) TableName() string {
	return "stock_ins"
}

// NewStockIn creates an inbound movement record stamped with the
// acting user and the cost price in effect when the goods arrived
func NewStockIn(tenantID, actorID, itemID, blockID uuid.UUID, quantity int64, costPrice decimal.Decimal) (*StockIn, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if blockID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BLOCK", "Block ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if costPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}

	root := shared.NewTenantAggregateRoot(tenantID)
	if actorID != uuid.Nil {
		root.SetCreatedBy(actorID)
	}

	return &StockIn{
		TenantAggregateRoot: root,
		ItemID:              itemID,
		BlockID:             blockID,
		Quantity:            quantity,
		CostPrice:           costPrice,
		OccurredAt:          time.Now(),
	}, nil
}
