package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/shared"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a customer sale fulfilled from block inventory. An order is
// only ever persisted fully fulfilled; if any line cannot be covered
// the whole order is rejected and no stock moves.
type Order struct {
	shared.TenantAggregateRoot
	Number     string      `gorm:"type:varchar(20);not null;uniqueIndex:idx_order_tenant_number,priority:2"`
	CustomerID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	Total      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PlacedAt   time.Time   `gorm:"not null;index"`

	Items []OrderItem `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending order with no lines
func NewOrder(tenantID, customerID uuid.UUID, number string) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Order number cannot be empty")
	}

	return &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		CustomerID:          customerID,
		Status:              OrderStatusPending,
		Total:               decimal.Zero,
		PlacedAt:            time.Now(),
		Items:               make([]OrderItem, 0),
	}, nil
}

// AddItem appends a line and recalculates the order total
func (o *Order) AddItem(itemID, inventoryID uuid.UUID, quantity int64, unitPrice decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Lines can only be added to pending orders")
	}

	line, err := NewOrderItem(o.ID, itemID, inventoryID, quantity, unitPrice)
	if err != nil {
		return err
	}

	o.Items = append(o.Items, *line)
	o.Total = o.Total.Add(line.LineTotal())
	o.UpdatedAt = time.Now()

	return nil
}

// Confirm marks the order as confirmed after stock has been deducted
func (o *Order) Confirm() error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be confirmed")
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Order must have at least one line")
	}

	o.Status = OrderStatusConfirmed
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Ship marks a confirmed order as shipped
func (o *Order) Ship() error {
	if o.Status != OrderStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", "Only confirmed orders can be shipped")
	}

	o.Status = OrderStatusShipped
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Cancel cancels an order that has not shipped yet
func (o *Order) Cancel() error {
	if o.Status == OrderStatusShipped {
		return shared.NewDomainError("INVALID_STATE", "Shipped orders cannot be cancelled")
	}
	if o.Status == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Order is already cancelled")
	}

	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// TotalQuantity sums the quantities of all lines
func (o *Order) TotalQuantity() int64 {
	var total int64
	for _, li := range o.Items {
		total += li.Quantity
	}
	return total
}

// OrderRejectedError reports the first line that could not be covered
// by available stock. LineIndex is the position of the failing line in
// the request as the caller sent it. The order it belongs to is never
// persisted.
type OrderRejectedError struct {
	LineIndex int
	ItemID    uuid.UUID
	Requested int64
	Available int64
}

// Error implements the error interface
func (e *OrderRejectedError) Error() string {
	return "order rejected: insufficient stock for requested line"
}

// NewOrderRejectedError creates an order rejection error for a line
func NewOrderRejectedError(lineIndex int, itemID uuid.UUID, requested, available int64) *OrderRejectedError {
	return &OrderRejectedError{
		LineIndex: lineIndex,
		ItemID:    itemID,
		Requested: requested,
		Available: available,
	}
}
