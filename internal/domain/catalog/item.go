package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/shared"
)

// Item is a sellable product tracked in the warehouse.
// Cost and selling prices are per unit and used by the profit report.
type Item struct {
	shared.TenantAggregateRoot
	CategoryID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(200);not null;uniqueIndex:idx_item_tenant_name,priority:2"`
	SKU          string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_item_tenant_sku,priority:2"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	Category *Category `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new catalog item
func NewItem(tenantID, categoryID uuid.UUID, name, sku string, costPrice, sellingPrice decimal.Decimal) (*Item, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Item SKU cannot be empty")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	if costPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}
	if sellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}

	return &Item{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CategoryID:          categoryID,
		Name:                name,
		SKU:                 sku,
		CostPrice:           costPrice,
		SellingPrice:        sellingPrice,
	}, nil
}

// UpdatePrices changes the per-unit cost and selling prices
func (i *Item) UpdatePrices(costPrice, sellingPrice decimal.Decimal) error {
	if costPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}
	if sellingPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}

	i.CostPrice = costPrice
	i.SellingPrice = sellingPrice
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// Rename changes the item name
func (i *Item) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}

	i.Name = name
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// UnitMargin returns the per-unit profit (selling price minus cost price)
func (i *Item) UnitMargin() decimal.Decimal {
	return i.SellingPrice.Sub(i.CostPrice)
}
