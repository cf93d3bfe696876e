package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/inventory"
)

// InboundRequest asks for a quantity of an item to be received into one block
type InboundRequest struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	BlockID  uuid.UUID `json:"block_id" binding:"required"`
	Quantity int64     `json:"quantity" binding:"required,gt=0"`
}

// PlanRequest asks for placement suggestions for a quantity of an item
// within a warehouse
type PlanRequest struct {
	ItemID      uuid.UUID `json:"item_id" binding:"required"`
	WarehouseID uuid.UUID `json:"warehouse_id" binding:"required"`
	Quantity    int64     `json:"quantity" binding:"required,gt=0"`
}

// PlanResponse reports where the requested quantity would fit
type PlanResponse struct {
	ItemID     uuid.UUID           `json:"item_id"`
	Quantity   int64               `json:"quantity"`
	Placements []PlacementResponse `json:"placements"`
}

// PlacementResponse is one block assignment of an allocation plan
type PlacementResponse struct {
	BlockID  uuid.UUID `json:"block_id"`
	Quantity int64     `json:"quantity"`
}

// OutboundRequest asks for a quantity to leave an inventory row
type OutboundRequest struct {
	InventoryID uuid.UUID `json:"inventory_id" binding:"required"`
	Quantity    int64     `json:"quantity" binding:"required,gt=0"`
	Reason      string    `json:"reason" binding:"required,stockreason"`
}

// StockLevelResponse is the on-hand quantity of one item in one block
type StockLevelResponse struct {
	InventoryID uuid.UUID `json:"inventory_id"`
	ItemID      uuid.UUID `json:"item_id"`
	BlockID     uuid.UUID `json:"block_id"`
	Quantity    int64     `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StockSummaryResponse is the tenant-wide stock position
type StockSummaryResponse struct {
	OnHand      int64 `json:"on_hand"`
	Sold        int64 `json:"sold"`
	Transferred int64 `json:"transferred"`
	Damaged     int64 `json:"damaged"`
}

// MovementResponse is one inbound or outbound record. UnitPrice is
// the price frozen on the record: cost price for inbound, selling
// price for outbound.
type MovementResponse struct {
	ID         uuid.UUID       `json:"id"`
	ItemID     uuid.UUID       `json:"item_id"`
	BlockID    uuid.UUID       `json:"block_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Direction  string          `json:"direction"`
	Reason     string          `json:"reason,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// ToStockLevelResponse converts an inventory row to its response
func ToStockLevelResponse(inv *inventory.Inventory) StockLevelResponse {
	return StockLevelResponse{
		InventoryID: inv.ID,
		ItemID:      inv.ItemID,
		BlockID:     inv.BlockID,
		Quantity:    inv.Quantity,
		UpdatedAt:   inv.UpdatedAt,
	}
}

// ToInboundMovementResponse converts an inbound record to its response
func ToInboundMovementResponse(rec *inventory.StockIn) MovementResponse {
	return MovementResponse{
		ID:         rec.ID,
		ItemID:     rec.ItemID,
		BlockID:    rec.BlockID,
		Quantity:   rec.Quantity,
		UnitPrice:  rec.CostPrice,
		Direction:  "in",
		OccurredAt: rec.OccurredAt,
	}
}

// ToOutboundMovementResponse converts an outbound record to its response
func ToOutboundMovementResponse(rec *inventory.StockOut) MovementResponse {
	return MovementResponse{
		ID:         rec.ID,
		ItemID:     rec.ItemID,
		BlockID:    rec.BlockID,
		Quantity:   rec.Quantity,
		UnitPrice:  rec.UnitPrice,
		Direction:  "out",
		Reason:     string(rec.Reason),
		OccurredAt: rec.OccurredAt,
	}
}
