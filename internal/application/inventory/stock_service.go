package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/catalog"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/domain/storage"
)

// StockService records stock movements. Every movement runs in one
// transaction: the block capacity change, the inventory row change and
// the movement record all land together or not at all. Movements are
// stamped with the acting user and the item prices in effect at the
// time, so the movement log is a self-contained audit trail.
type StockService struct {
	txScope   TransactionScope
	itemRepo  catalog.ItemRepository
	blockRepo storage.BlockRepository
}

// NewStockService creates a new StockService
func NewStockService(txScope TransactionScope, itemRepo catalog.ItemRepository, blockRepo storage.BlockRepository) *StockService {
	return &StockService{
		txScope:   txScope,
		itemRepo:  itemRepo,
		blockRepo: blockRepo,
	}
}

// Plan suggests how to spread a quantity over the blocks of a
// warehouse, first fit in block code order. Planning is read only:
// no capacity is reserved and the suggestions are not binding, the
// caller records each placement through RecordInbound.
func (s *StockService) Plan(ctx context.Context, tenantID uuid.UUID, req PlanRequest) (*PlanResponse, error) {
	if _, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, req.ItemID); err != nil {
		return nil, err
	}

	blocks, err := s.blockRepo.FindByWarehouse(ctx, tenantID, req.WarehouseID)
	if err != nil {
		return nil, err
	}

	placements, err := inventory.PlanAllocation(blocks, req.Quantity)
	if err != nil {
		return nil, err
	}

	resp := &PlanResponse{
		ItemID:     req.ItemID,
		Quantity:   req.Quantity,
		Placements: make([]PlacementResponse, 0, len(placements)),
	}
	for _, p := range placements {
		resp.Placements = append(resp.Placements, PlacementResponse{BlockID: p.BlockID, Quantity: p.Quantity})
	}
	return resp, nil
}

// RecordInbound receives a quantity of an item into one block. The
// block must cover the whole quantity; callers spreading stock over
// several blocks ask Plan first and record one inbound per placement.
// Each inbound consumes block capacity, tops up the inventory row for
// the item and block, and appends an inbound record frozen at the
// item's current cost price. Repeated inbound for the same item and
// block accumulates on the existing row.
func (s *StockService) RecordInbound(ctx context.Context, tenantID, actorID uuid.UUID, req InboundRequest) (*MovementResponse, error) {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, req.ItemID)
	if err != nil {
		return nil, err
	}

	var record *inventory.StockIn
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		block, err := repos.BlockRepo().FindByIDForUpdate(ctx, tenantID, req.BlockID)
		if err != nil {
			return err
		}
		if err := block.Reserve(req.Quantity); err != nil {
			return err
		}
		if err := repos.BlockRepo().Save(ctx, block); err != nil {
			return err
		}

		inv, err := repos.InventoryRepo().FindByItemAndBlockForUpdate(ctx, tenantID, req.ItemID, req.BlockID)
		if errors.Is(err, shared.ErrNotFound) {
			inv, err = inventory.NewInventory(tenantID, req.ItemID, req.BlockID)
		}
		if err != nil {
			return err
		}
		if err := inv.Deposit(req.Quantity); err != nil {
			return err
		}
		if err := repos.InventoryRepo().Save(ctx, inv); err != nil {
			return err
		}

		record, err = inventory.NewStockIn(tenantID, actorID, req.ItemID, req.BlockID, req.Quantity, item.CostPrice)
		if err != nil {
			return err
		}
		return repos.StockInRepo().Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	resp := ToInboundMovementResponse(record)
	return &resp, nil
}

// RecordOutbound removes a quantity from an inventory row. The row is
// locked for the duration of the transaction; the freed capacity
// returns to the block and an outbound record with the given reason is
// appended, frozen at the item's current selling price. Nothing is
// persisted when the row holds less than the requested quantity.
func (s *StockService) RecordOutbound(ctx context.Context, tenantID, actorID uuid.UUID, req OutboundRequest) (*MovementResponse, error) {
	reason := inventory.StockOutReason(req.Reason)
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", "Unknown stock out reason")
	}

	var record *inventory.StockOut
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		inv, err := repos.InventoryRepo().FindByIDForUpdate(ctx, tenantID, req.InventoryID)
		if err != nil {
			return err
		}
		if err := inv.Withdraw(req.Quantity); err != nil {
			return err
		}
		if err := repos.InventoryRepo().Save(ctx, inv); err != nil {
			return err
		}

		block, err := repos.BlockRepo().FindByIDForUpdate(ctx, tenantID, inv.BlockID)
		if err != nil {
			return err
		}
		if err := block.Release(req.Quantity); err != nil {
			return err
		}
		if err := repos.BlockRepo().Save(ctx, block); err != nil {
			return err
		}

		item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, inv.ItemID)
		if err != nil {
			return err
		}

		record, err = inventory.NewStockOut(tenantID, actorID, inv.ItemID, inv.BlockID, req.Quantity, item.SellingPrice, reason)
		if err != nil {
			return err
		}
		return repos.StockOutRepo().Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	resp := ToOutboundMovementResponse(record)
	return &resp, nil
}

// Reconcile recomputes the cached counters of a block from the
// movement log and repairs any drift. Each inventory row in the block
// is set to the sum of its inbound records minus the sum of its
// outbound records, and the block's available capacity is set to the
// capacity minus the recomputed total. Returns true when any stored
// value was corrected.
func (s *StockService) Reconcile(ctx context.Context, tenantID, blockID uuid.UUID) (bool, error) {
	corrected := false
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		block, err := repos.BlockRepo().FindByIDForUpdate(ctx, tenantID, blockID)
		if err != nil {
			return err
		}

		rows, err := repos.InventoryRepo().FindByBlock(ctx, tenantID, blockID, shared.Filter{})
		if err != nil {
			return err
		}

		var occupied int64
		for i := range rows {
			row := &rows[i]
			in, err := repos.StockInRepo().SumQuantityByItemAndBlock(ctx, tenantID, row.ItemID, blockID)
			if err != nil {
				return err
			}
			out, err := repos.StockOutRepo().SumQuantityByItemAndBlock(ctx, tenantID, row.ItemID, blockID)
			if err != nil {
				return err
			}

			want := in - out
			if want < 0 {
				return shared.NewDomainError("INVALID_STATE", "Movement log sums to a negative quantity")
			}
			occupied += want

			if row.Quantity != want {
				row.Quantity = want
				row.IncrementVersion()
				if err := repos.InventoryRepo().Save(ctx, row); err != nil {
					return err
				}
				corrected = true
			}
		}

		want := block.Capacity - occupied
		if want < 0 {
			return shared.NewDomainError("INVALID_STATE", "Block holds more stock than its capacity")
		}
		if block.Available != want {
			block.Available = want
			corrected = true
			return repos.BlockRepo().Save(ctx, block)
		}
		return nil
	})
	return corrected, err
}
