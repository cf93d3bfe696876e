package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/trade"
)

// PlaceOrderRequest creates an order for a customer identified by phone.
// Each line names the inventory row the stock should be drawn from.
type PlaceOrderRequest struct {
	CustomerName    string             `json:"customer_name" binding:"required"`
	CustomerPhone   string             `json:"customer_phone" binding:"required"`
	CustomerAddress string             `json:"customer_address"`
	Lines           []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// OrderLineRequest is one requested line of an order. SellingPrice is
// the negotiated unit price for the line; it is frozen on the order
// line and on the sale movement, so later item price changes do not
// affect the order.
type OrderLineRequest struct {
	InventoryID  uuid.UUID       `json:"inventory_id" binding:"required"`
	Quantity     int64           `json:"quantity" binding:"required,gt=0"`
	SellingPrice decimal.Decimal `json:"selling_price" binding:"required"`
}

// OrderResponse is the API view of an order
type OrderResponse struct {
	ID         uuid.UUID           `json:"id"`
	Number     string              `json:"number"`
	CustomerID uuid.UUID           `json:"customer_id"`
	Status     string              `json:"status"`
	Total      decimal.Decimal     `json:"total"`
	PlacedAt   time.Time           `json:"placed_at"`
	Lines      []OrderLineResponse `json:"lines"`
}

// OrderLineResponse is one line of an order response
type OrderLineResponse struct {
	ItemID      uuid.UUID       `json:"item_id"`
	InventoryID uuid.UUID       `json:"inventory_id"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// ToOrderResponse converts an order aggregate to its API view
func ToOrderResponse(order *trade.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(order.Items))
	for i := range order.Items {
		li := &order.Items[i]
		lines = append(lines, OrderLineResponse{
			ItemID:      li.ItemID,
			InventoryID: li.InventoryID,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			LineTotal:   li.LineTotal(),
		})
	}
	return OrderResponse{
		ID:         order.ID,
		Number:     order.Number,
		CustomerID: order.CustomerID,
		Status:     string(order.Status),
		Total:      order.Total,
		PlacedAt:   order.PlacedAt,
		Lines:      lines,
	}
}
