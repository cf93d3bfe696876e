package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/shared"
)

// StockQueryService serves read-only stock views outside any transaction
type StockQueryService struct {
	inventoryRepo inventory.InventoryRepository
	stockInRepo   inventory.StockInRepository
	stockOutRepo  inventory.StockOutRepository
}

// NewStockQueryService creates a new StockQueryService
func NewStockQueryService(
	inventoryRepo inventory.InventoryRepository,
	stockInRepo inventory.StockInRepository,
	stockOutRepo inventory.StockOutRepository,
) *StockQueryService {
	return &StockQueryService{
		inventoryRepo: inventoryRepo,
		stockInRepo:   stockInRepo,
		stockOutRepo:  stockOutRepo,
	}
}

// ListByItem returns the stock levels of an item across blocks
func (s *StockQueryService) ListByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]StockLevelResponse, error) {
	rows, err := s.inventoryRepo.FindByItem(ctx, tenantID, itemID, filter)
	if err != nil {
		return nil, err
	}
	return toStockLevelResponses(rows), nil
}

// ListByBlock returns the stock levels inside a block
func (s *StockQueryService) ListByBlock(ctx context.Context, tenantID, blockID uuid.UUID, filter shared.Filter) ([]StockLevelResponse, error) {
	rows, err := s.inventoryRepo.FindByBlock(ctx, tenantID, blockID, filter)
	if err != nil {
		return nil, err
	}
	return toStockLevelResponses(rows), nil
}

// List returns stock levels across the tenant with pagination
func (s *StockQueryService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[StockLevelResponse], error) {
	rows, err := s.inventoryRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[StockLevelResponse]{}, err
	}
	total, err := s.inventoryRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[StockLevelResponse]{}, err
	}
	return shared.NewPaginated(toStockLevelResponses(rows), total, filter.Page, filter.PageSize), nil
}

// TotalOnHand sums the on-hand quantity of an item across all blocks
func (s *StockQueryService) TotalOnHand(ctx context.Context, tenantID, itemID uuid.UUID) (int64, error) {
	return s.inventoryRepo.SumQuantityByItem(ctx, tenantID, itemID)
}

// Summary reports the tenant-wide stock position: what is still on
// hand and what has left the warehouse, broken down by reason.
func (s *StockQueryService) Summary(ctx context.Context, tenantID uuid.UUID) (*StockSummaryResponse, error) {
	onHand, err := s.inventoryRepo.SumQuantityForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	sold, err := s.stockOutRepo.SumQuantityByReason(ctx, tenantID, inventory.ReasonSale)
	if err != nil {
		return nil, err
	}
	transferred, err := s.stockOutRepo.SumQuantityByReason(ctx, tenantID, inventory.ReasonTransfer)
	if err != nil {
		return nil, err
	}
	damaged, err := s.stockOutRepo.SumQuantityByReason(ctx, tenantID, inventory.ReasonDamage)
	if err != nil {
		return nil, err
	}
	return &StockSummaryResponse{
		OnHand:      onHand,
		Sold:        sold,
		Transferred: transferred,
		Damaged:     damaged,
	}, nil
}

// ListMovements returns inbound and outbound records for an item,
// newest first within each direction.
func (s *StockQueryService) ListMovements(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]MovementResponse, error) {
	ins, err := s.stockInRepo.FindByItem(ctx, tenantID, itemID, filter)
	if err != nil {
		return nil, err
	}
	outs, err := s.stockOutRepo.FindByItem(ctx, tenantID, itemID, filter)
	if err != nil {
		return nil, err
	}

	movements := make([]MovementResponse, 0, len(ins)+len(outs))
	for i := range ins {
		movements = append(movements, ToInboundMovementResponse(&ins[i]))
	}
	for i := range outs {
		movements = append(movements, ToOutboundMovementResponse(&outs[i]))
	}
	return movements, nil
}

func toStockLevelResponses(rows []inventory.Inventory) []StockLevelResponse {
	responses := make([]StockLevelResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, ToStockLevelResponse(&rows[i]))
	}
	return responses
}
