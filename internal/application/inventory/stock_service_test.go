package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wims/backend/internal/domain/catalog"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/domain/storage"
)

type stockFixture struct {
	tenantID    uuid.UUID
	actorID     uuid.UUID
	warehouseID uuid.UUID
	item        *catalog.Item
	store       *fakeStore
	itemRepo    *fakeItemRepo
	service     *StockService
}

func newStockFixture(t *testing.T, capacities ...int64) *stockFixture {
	t.Helper()

	f := &stockFixture{
		tenantID:    uuid.New(),
		actorID:     uuid.New(),
		warehouseID: uuid.New(),
		store:       newFakeStore(),
		itemRepo:    newFakeItemRepo(),
	}

	item, err := catalog.NewItem(f.tenantID, uuid.New(), "Crate", "CRT-1", decimal.NewFromInt(3), decimal.NewFromInt(5))
	require.NoError(t, err)
	f.item = item
	require.NoError(t, f.itemRepo.Save(context.Background(), item))

	for i, capacity := range capacities {
		block, err := storage.NewBlock(f.tenantID, f.warehouseID, string(rune('A'+i))+"-01", capacity)
		require.NoError(t, err)
		f.store.blocks[block.ID] = *block
	}

	f.service = NewStockService(&fakeTxScope{store: f.store}, f.itemRepo, &fakeBlockRepo{f.store})
	return f
}

func (f *stockFixture) blockByCode(t *testing.T, code string) storage.Block {
	t.Helper()
	for _, b := range f.store.blocks {
		if b.Code == code {
			return b
		}
	}
	t.Fatalf("block %s not found", code)
	return storage.Block{}
}

func (f *stockFixture) inventoryIn(code string, itemID uuid.UUID) (inventory.Inventory, bool) {
	for _, b := range f.store.blocks {
		if b.Code != code {
			continue
		}
		for _, inv := range f.store.inventories {
			if inv.BlockID == b.ID && inv.ItemID == itemID {
				return inv, true
			}
		}
	}
	return inventory.Inventory{}, false
}

func (f *stockFixture) quantityIn(code string, itemID uuid.UUID) int64 {
	if inv, ok := f.inventoryIn(code, itemID); ok {
		return inv.Quantity
	}
	return 0
}

// inbound receives qty into the block with the given code
func (f *stockFixture) inbound(t *testing.T, code string, qty int64) {
	t.Helper()
	_, err := f.service.RecordInbound(context.Background(), f.tenantID, f.actorID, InboundRequest{
		ItemID:   f.item.ID,
		BlockID:  f.blockByCode(t, code).ID,
		Quantity: qty,
	})
	require.NoError(t, err)
}

func TestStockServicePlan(t *testing.T) {
	ctx := context.Background()

	t.Run("should suggest placements first fit without reserving", func(t *testing.T) {
		f := newStockFixture(t, 5, 0, 3)

		resp, err := f.service.Plan(ctx, f.tenantID, PlanRequest{
			ItemID:      f.item.ID,
			WarehouseID: f.warehouseID,
			Quantity:    6,
		})

		require.NoError(t, err)
		require.Len(t, resp.Placements, 2)
		assert.Equal(t, int64(5), resp.Placements[0].Quantity)
		assert.Equal(t, int64(1), resp.Placements[1].Quantity)

		assert.Equal(t, int64(5), f.blockByCode(t, "A-01").Available)
		assert.Equal(t, int64(3), f.blockByCode(t, "C-01").Available)
		assert.Empty(t, f.store.inventories)
		assert.Empty(t, f.store.stockIns)
	})

	t.Run("should fail when total free capacity is insufficient", func(t *testing.T) {
		f := newStockFixture(t, 5, 0, 3)

		_, err := f.service.Plan(ctx, f.tenantID, PlanRequest{
			ItemID:      f.item.ID,
			WarehouseID: f.warehouseID,
			Quantity:    10,
		})

		assert.Equal(t, shared.ErrInsufficientSpace, err)
		assert.Equal(t, int64(5), f.blockByCode(t, "A-01").Available)
		assert.Equal(t, int64(3), f.blockByCode(t, "C-01").Available)
	})

	t.Run("should reject unknown item", func(t *testing.T) {
		f := newStockFixture(t, 5)

		_, err := f.service.Plan(ctx, f.tenantID, PlanRequest{
			ItemID:      uuid.New(),
			WarehouseID: f.warehouseID,
			Quantity:    1,
		})

		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestStockServiceRecordInbound(t *testing.T) {
	ctx := context.Background()

	t.Run("should place stock and record the movement", func(t *testing.T) {
		f := newStockFixture(t, 10)

		resp, err := f.service.RecordInbound(ctx, f.tenantID, f.actorID, InboundRequest{
			ItemID:   f.item.ID,
			BlockID:  f.blockByCode(t, "A-01").ID,
			Quantity: 4,
		})

		require.NoError(t, err)
		assert.Equal(t, "in", resp.Direction)
		assert.Equal(t, int64(6), f.blockByCode(t, "A-01").Available)
		assert.Equal(t, int64(4), f.quantityIn("A-01", f.item.ID))
		require.Len(t, f.store.stockIns, 1)
	})

	t.Run("should freeze cost price and actor on the record", func(t *testing.T) {
		f := newStockFixture(t, 10)

		f.inbound(t, "A-01", 4)

		rec := f.store.stockIns[0]
		assert.True(t, rec.CostPrice.Equal(decimal.NewFromInt(3)))
		require.NotNil(t, rec.CreatedBy)
		assert.Equal(t, f.actorID, *rec.CreatedBy)
	})

	t.Run("should accumulate on existing inventory row", func(t *testing.T) {
		f := newStockFixture(t, 10)

		f.inbound(t, "A-01", 3)
		f.inbound(t, "A-01", 3)

		assert.Equal(t, int64(6), f.quantityIn("A-01", f.item.ID))
		assert.Len(t, f.store.inventories, 1)
		assert.Len(t, f.store.stockIns, 2)
	})

	t.Run("should reject when the block cannot hold the quantity", func(t *testing.T) {
		f := newStockFixture(t, 5)

		_, err := f.service.RecordInbound(ctx, f.tenantID, f.actorID, InboundRequest{
			ItemID:   f.item.ID,
			BlockID:  f.blockByCode(t, "A-01").ID,
			Quantity: 6,
		})

		assert.Equal(t, shared.ErrInsufficientSpace, err)
		assert.Equal(t, int64(5), f.blockByCode(t, "A-01").Available)
		assert.Empty(t, f.store.inventories)
		assert.Empty(t, f.store.stockIns)
	})

	t.Run("should reject unknown item", func(t *testing.T) {
		f := newStockFixture(t, 5)

		_, err := f.service.RecordInbound(ctx, f.tenantID, f.actorID, InboundRequest{
			ItemID:   uuid.New(),
			BlockID:  f.blockByCode(t, "A-01").ID,
			Quantity: 1,
		})

		assert.Equal(t, shared.ErrNotFound, err)
		assert.Empty(t, f.store.stockIns)
	})
}

func TestStockServiceRecordOutbound(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, f *stockFixture, qty int64) uuid.UUID {
		t.Helper()
		f.inbound(t, "A-01", qty)
		inv, ok := f.inventoryIn("A-01", f.item.ID)
		require.True(t, ok)
		return inv.ID
	}

	t.Run("should withdraw stock and free capacity", func(t *testing.T) {
		f := newStockFixture(t, 10)
		invID := seed(t, f, 8)

		resp, err := f.service.RecordOutbound(ctx, f.tenantID, f.actorID, OutboundRequest{
			InventoryID: invID,
			Quantity:    3,
			Reason:      "sale",
		})

		require.NoError(t, err)
		assert.Equal(t, "out", resp.Direction)
		assert.Equal(t, "sale", resp.Reason)
		assert.Equal(t, int64(5), f.quantityIn("A-01", f.item.ID))
		assert.Equal(t, int64(5), f.blockByCode(t, "A-01").Available)
		require.Len(t, f.store.stockOuts, 1)
		assert.Equal(t, inventory.ReasonSale, f.store.stockOuts[0].Reason)
	})

	t.Run("should freeze selling price and actor on the record", func(t *testing.T) {
		f := newStockFixture(t, 10)
		invID := seed(t, f, 8)

		_, err := f.service.RecordOutbound(ctx, f.tenantID, f.actorID, OutboundRequest{
			InventoryID: invID,
			Quantity:    2,
			Reason:      "sale",
		})

		require.NoError(t, err)
		rec := f.store.stockOuts[0]
		assert.True(t, rec.UnitPrice.Equal(decimal.NewFromInt(5)))
		require.NotNil(t, rec.CreatedBy)
		assert.Equal(t, f.actorID, *rec.CreatedBy)
	})

	t.Run("should reject insufficient stock and change nothing", func(t *testing.T) {
		f := newStockFixture(t, 10)
		invID := seed(t, f, 2)

		_, err := f.service.RecordOutbound(ctx, f.tenantID, f.actorID, OutboundRequest{
			InventoryID: invID,
			Quantity:    3,
			Reason:      "damage",
		})

		assert.Equal(t, shared.ErrInsufficientStock, err)
		assert.Equal(t, int64(2), f.quantityIn("A-01", f.item.ID))
		assert.Equal(t, int64(8), f.blockByCode(t, "A-01").Available)
		assert.Empty(t, f.store.stockOuts)
	})

	t.Run("should reject unknown reason", func(t *testing.T) {
		f := newStockFixture(t, 10)
		invID := seed(t, f, 2)

		_, err := f.service.RecordOutbound(ctx, f.tenantID, f.actorID, OutboundRequest{
			InventoryID: invID,
			Quantity:    1,
			Reason:      "theft",
		})

		assert.Error(t, err)
		assert.Empty(t, f.store.stockOuts)
	})

	t.Run("should reject when no inventory row exists", func(t *testing.T) {
		f := newStockFixture(t, 10)

		_, err := f.service.RecordOutbound(ctx, f.tenantID, f.actorID, OutboundRequest{
			InventoryID: uuid.New(),
			Quantity:    1,
			Reason:      "transfer",
		})

		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestStockServiceReconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("should repair drifted available capacity", func(t *testing.T) {
		f := newStockFixture(t, 10)
		f.inbound(t, "A-01", 4)

		block := f.blockByCode(t, "A-01")
		block.Available = 9 // simulate drift
		f.store.blocks[block.ID] = block

		corrected, err := f.service.Reconcile(ctx, f.tenantID, block.ID)

		require.NoError(t, err)
		assert.True(t, corrected)
		assert.Equal(t, int64(6), f.blockByCode(t, "A-01").Available)
	})

	t.Run("should recompute inventory quantity from the movement log", func(t *testing.T) {
		f := newStockFixture(t, 10)
		f.inbound(t, "A-01", 6)
		inv, ok := f.inventoryIn("A-01", f.item.ID)
		require.True(t, ok)
		_, err := f.service.RecordOutbound(ctx, f.tenantID, f.actorID, OutboundRequest{
			InventoryID: inv.ID,
			Quantity:    2,
			Reason:      "sale",
		})
		require.NoError(t, err)

		inv, _ = f.inventoryIn("A-01", f.item.ID)
		inv.Quantity = 9 // simulate drift against the log
		f.store.inventories[inv.ID] = inv

		corrected, err := f.service.Reconcile(ctx, f.tenantID, f.blockByCode(t, "A-01").ID)

		require.NoError(t, err)
		assert.True(t, corrected)
		assert.Equal(t, int64(4), f.quantityIn("A-01", f.item.ID))
		assert.Equal(t, int64(6), f.blockByCode(t, "A-01").Available)
	})

	t.Run("should leave consistent blocks alone", func(t *testing.T) {
		f := newStockFixture(t, 10)
		f.inbound(t, "A-01", 4)

		corrected, err := f.service.Reconcile(ctx, f.tenantID, f.blockByCode(t, "A-01").ID)

		require.NoError(t, err)
		assert.False(t, corrected)
	})
}
