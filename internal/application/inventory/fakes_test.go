package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/catalog"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/domain/storage"
)

// fakeStore is an in-memory stand-in for the repositories a stock
// movement touches. snapshot and restore let the fake transaction
// scope roll back exactly like a database transaction would.
type fakeStore struct {
	blocks      map[uuid.UUID]storage.Block
	inventories map[uuid.UUID]inventory.Inventory
	stockIns    []inventory.StockIn
	stockOuts   []inventory.StockOut
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		blocks:      make(map[uuid.UUID]storage.Block),
		inventories: make(map[uuid.UUID]inventory.Inventory),
	}
}

func (f *fakeStore) snapshot() *fakeStore {
	snap := newFakeStore()
	for id, b := range f.blocks {
		snap.blocks[id] = b
	}
	for id, inv := range f.inventories {
		snap.inventories[id] = inv
	}
	snap.stockIns = append(snap.stockIns, f.stockIns...)
	snap.stockOuts = append(snap.stockOuts, f.stockOuts...)
	return snap
}

func (f *fakeStore) restore(snap *fakeStore) {
	f.blocks = snap.blocks
	f.inventories = snap.inventories
	f.stockIns = snap.stockIns
	f.stockOuts = snap.stockOuts
}

// fakeTxScope mimics transactional semantics over the fake store
type fakeTxScope struct {
	store *fakeStore
}

func (s *fakeTxScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	snap := s.store.snapshot()
	if err := fn(s); err != nil {
		s.store.restore(snap)
		return err
	}
	return nil
}

func (s *fakeTxScope) BlockRepo() storage.BlockRepository        { return &fakeBlockRepo{s.store} }
func (s *fakeTxScope) InventoryRepo() inventory.InventoryRepository {
	return &fakeInventoryRepo{s.store}
}
func (s *fakeTxScope) StockInRepo() inventory.StockInRepository   { return &fakeStockInRepo{s.store} }
func (s *fakeTxScope) StockOutRepo() inventory.StockOutRepository { return &fakeStockOutRepo{s.store} }

type fakeBlockRepo struct{ store *fakeStore }

func (r *fakeBlockRepo) FindByID(_ context.Context, id uuid.UUID) (*storage.Block, error) {
	if b, ok := r.store.blocks[id]; ok {
		return &b, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeBlockRepo) FindByIDForTenant(ctx context.Context, _, id uuid.UUID) (*storage.Block, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBlockRepo) FindByIDForUpdate(ctx context.Context, _, id uuid.UUID) (*storage.Block, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBlockRepo) FindByWarehouse(_ context.Context, _, warehouseID uuid.UUID) ([]storage.Block, error) {
	blocks := make([]storage.Block, 0)
	for _, b := range r.store.blocks {
		if b.WarehouseID == warehouseID {
			blocks = append(blocks, b)
		}
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Code < blocks[j].Code })
	return blocks, nil
}

func (r *fakeBlockRepo) FindByWarehouseForUpdate(ctx context.Context, tenantID, warehouseID uuid.UUID) ([]storage.Block, error) {
	return r.FindByWarehouse(ctx, tenantID, warehouseID)
}

func (r *fakeBlockRepo) FindByCode(_ context.Context, _, warehouseID uuid.UUID, code string) (*storage.Block, error) {
	for _, b := range r.store.blocks {
		if b.WarehouseID == warehouseID && b.Code == code {
			return &b, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeBlockRepo) Save(_ context.Context, block *storage.Block) error {
	r.store.blocks[block.ID] = *block
	return nil
}

func (r *fakeBlockRepo) SaveAll(ctx context.Context, blocks []*storage.Block) error {
	for _, b := range blocks {
		if err := r.Save(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeBlockRepo) DeleteForTenant(_ context.Context, _, id uuid.UUID) error {
	delete(r.store.blocks, id)
	return nil
}

func (r *fakeBlockRepo) CountByWarehouse(_ context.Context, _, warehouseID uuid.UUID) (int64, error) {
	var n int64
	for _, b := range r.store.blocks {
		if b.WarehouseID == warehouseID {
			n++
		}
	}
	return n, nil
}

type fakeInventoryRepo struct{ store *fakeStore }

func (r *fakeInventoryRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Inventory, error) {
	if inv, ok := r.store.inventories[id]; ok {
		return &inv, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeInventoryRepo) FindByIDForTenant(ctx context.Context, _, id uuid.UUID) (*inventory.Inventory, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeInventoryRepo) FindByIDForUpdate(ctx context.Context, _, id uuid.UUID) (*inventory.Inventory, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeInventoryRepo) FindByItemAndBlock(_ context.Context, _, itemID, blockID uuid.UUID) (*inventory.Inventory, error) {
	for _, inv := range r.store.inventories {
		if inv.ItemID == itemID && inv.BlockID == blockID {
			return &inv, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeInventoryRepo) FindByItemAndBlockForUpdate(ctx context.Context, tenantID, itemID, blockID uuid.UUID) (*inventory.Inventory, error) {
	return r.FindByItemAndBlock(ctx, tenantID, itemID, blockID)
}

func (r *fakeInventoryRepo) FindByItem(_ context.Context, _, itemID uuid.UUID, _ shared.Filter) ([]inventory.Inventory, error) {
	rows := make([]inventory.Inventory, 0)
	for _, inv := range r.store.inventories {
		if inv.ItemID == itemID {
			rows = append(rows, inv)
		}
	}
	return rows, nil
}

func (r *fakeInventoryRepo) FindByBlock(_ context.Context, _, blockID uuid.UUID, _ shared.Filter) ([]inventory.Inventory, error) {
	rows := make([]inventory.Inventory, 0)
	for _, inv := range r.store.inventories {
		if inv.BlockID == blockID {
			rows = append(rows, inv)
		}
	}
	return rows, nil
}

func (r *fakeInventoryRepo) FindAllForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]inventory.Inventory, error) {
	rows := make([]inventory.Inventory, 0, len(r.store.inventories))
	for _, inv := range r.store.inventories {
		rows = append(rows, inv)
	}
	return rows, nil
}

func (r *fakeInventoryRepo) Save(_ context.Context, inv *inventory.Inventory) error {
	r.store.inventories[inv.ID] = *inv
	return nil
}

func (r *fakeInventoryRepo) SumQuantityByItem(_ context.Context, _, itemID uuid.UUID) (int64, error) {
	var total int64
	for _, inv := range r.store.inventories {
		if inv.ItemID == itemID {
			total += inv.Quantity
		}
	}
	return total, nil
}

func (r *fakeInventoryRepo) SumQuantityByBlock(_ context.Context, _, blockID uuid.UUID) (int64, error) {
	var total int64
	for _, inv := range r.store.inventories {
		if inv.BlockID == blockID {
			total += inv.Quantity
		}
	}
	return total, nil
}

func (r *fakeInventoryRepo) SumQuantityForTenant(_ context.Context, _ uuid.UUID) (int64, error) {
	var total int64
	for _, inv := range r.store.inventories {
		total += inv.Quantity
	}
	return total, nil
}

func (r *fakeInventoryRepo) CountForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) (int64, error) {
	return int64(len(r.store.inventories)), nil
}

type fakeStockInRepo struct{ store *fakeStore }

func (r *fakeStockInRepo) Create(_ context.Context, record *inventory.StockIn) error {
	r.store.stockIns = append(r.store.stockIns, *record)
	return nil
}

func (r *fakeStockInRepo) CreateBatch(ctx context.Context, records []*inventory.StockIn) error {
	for _, rec := range records {
		if err := r.Create(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeStockInRepo) FindByItem(_ context.Context, _, itemID uuid.UUID, _ shared.Filter) ([]inventory.StockIn, error) {
	rows := make([]inventory.StockIn, 0)
	for _, rec := range r.store.stockIns {
		if rec.ItemID == itemID {
			rows = append(rows, rec)
		}
	}
	return rows, nil
}

func (r *fakeStockInRepo) FindByDateRange(_ context.Context, _ uuid.UUID, start, end time.Time) ([]inventory.StockIn, error) {
	rows := make([]inventory.StockIn, 0)
	for _, rec := range r.store.stockIns {
		if !rec.OccurredAt.Before(start) && rec.OccurredAt.Before(end) {
			rows = append(rows, rec)
		}
	}
	return rows, nil
}

func (r *fakeStockInRepo) FindAllForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]inventory.StockIn, error) {
	return append([]inventory.StockIn(nil), r.store.stockIns...), nil
}

func (r *fakeStockInRepo) SumQuantityByItemAndDateRange(_ context.Context, _, itemID uuid.UUID, start, end time.Time) (int64, error) {
	var total int64
	for _, rec := range r.store.stockIns {
		if rec.ItemID == itemID && !rec.OccurredAt.Before(start) && rec.OccurredAt.Before(end) {
			total += rec.Quantity
		}
	}
	return total, nil
}

func (r *fakeStockInRepo) SumQuantityByItemAndBlock(_ context.Context, _, itemID, blockID uuid.UUID) (int64, error) {
	var total int64
	for _, rec := range r.store.stockIns {
		if rec.ItemID == itemID && rec.BlockID == blockID {
			total += rec.Quantity
		}
	}
	return total, nil
}

func (r *fakeStockInRepo) CountForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) (int64, error) {
	return int64(len(r.store.stockIns)), nil
}

type fakeStockOutRepo struct{ store *fakeStore }

func (r *fakeStockOutRepo) Create(_ context.Context, record *inventory.StockOut) error {
	r.store.stockOuts = append(r.store.stockOuts, *record)
	return nil
}

func (r *fakeStockOutRepo) CreateBatch(ctx context.Context, records []*inventory.StockOut) error {
	for _, rec := range records {
		if err := r.Create(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeStockOutRepo) FindByItem(_ context.Context, _, itemID uuid.UUID, _ shared.Filter) ([]inventory.StockOut, error) {
	rows := make([]inventory.StockOut, 0)
	for _, rec := range r.store.stockOuts {
		if rec.ItemID == itemID {
			rows = append(rows, rec)
		}
	}
	return rows, nil
}

func (r *fakeStockOutRepo) FindByReason(_ context.Context, _ uuid.UUID, reason inventory.StockOutReason, _ shared.Filter) ([]inventory.StockOut, error) {
	rows := make([]inventory.StockOut, 0)
	for _, rec := range r.store.stockOuts {
		if rec.Reason == reason {
			rows = append(rows, rec)
		}
	}
	return rows, nil
}

func (r *fakeStockOutRepo) SumQuantityByReason(_ context.Context, _ uuid.UUID, reason inventory.StockOutReason) (int64, error) {
	var total int64
	for _, rec := range r.store.stockOuts {
		if rec.Reason == reason {
			total += rec.Quantity
		}
	}
	return total, nil
}

func (r *fakeStockOutRepo) FindByDateRange(_ context.Context, _ uuid.UUID, start, end time.Time) ([]inventory.StockOut, error) {
	rows := make([]inventory.StockOut, 0)
	for _, rec := range r.store.stockOuts {
		if !rec.OccurredAt.Before(start) && rec.OccurredAt.Before(end) {
			rows = append(rows, rec)
		}
	}
	return rows, nil
}

func (r *fakeStockOutRepo) FindAllForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]inventory.StockOut, error) {
	return append([]inventory.StockOut(nil), r.store.stockOuts...), nil
}

func (r *fakeStockOutRepo) SumQuantityByItemAndBlock(_ context.Context, _, itemID, blockID uuid.UUID) (int64, error) {
	var total int64
	for _, rec := range r.store.stockOuts {
		if rec.ItemID == itemID && rec.BlockID == blockID {
			total += rec.Quantity
		}
	}
	return total, nil
}

func (r *fakeStockOutRepo) CountForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) (int64, error) {
	return int64(len(r.store.stockOuts)), nil
}

type fakeItemRepo struct {
	items map[uuid.UUID]catalog.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]catalog.Item)}
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Item, error) {
	if item, ok := r.items[id]; ok {
		return &item, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeItemRepo) FindByIDForTenant(ctx context.Context, _, id uuid.UUID) (*catalog.Item, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeItemRepo) FindBySKU(_ context.Context, _ uuid.UUID, sku string) (*catalog.Item, error) {
	for _, item := range r.items {
		if item.SKU == sku {
			return &item, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeItemRepo) FindByIDs(_ context.Context, _ uuid.UUID, ids []uuid.UUID) ([]catalog.Item, error) {
	items := make([]catalog.Item, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *fakeItemRepo) FindByCategory(_ context.Context, _, categoryID uuid.UUID, _ shared.Filter) ([]catalog.Item, error) {
	items := make([]catalog.Item, 0)
	for _, item := range r.items {
		if item.CategoryID == categoryID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *fakeItemRepo) FindAllForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]catalog.Item, error) {
	items := make([]catalog.Item, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	return items, nil
}

func (r *fakeItemRepo) Save(_ context.Context, item *catalog.Item) error {
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) DeleteForTenant(_ context.Context, _, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) CountForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakeItemRepo) ExistsBySKU(_ context.Context, _ uuid.UUID, sku string) (bool, error) {
	for _, item := range r.items {
		if item.SKU == sku {
			return true, nil
		}
	}
	return false, nil
}
