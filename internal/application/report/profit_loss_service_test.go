package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wims/backend/internal/domain/catalog"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/report"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/domain/trade"
	"go.uber.org/zap"
)

type fakeReportRepo struct {
	rows map[uuid.UUID]report.ProfitLossReport
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{rows: make(map[uuid.UUID]report.ProfitLossReport)}
}

func (r *fakeReportRepo) FindByID(_ context.Context, id uuid.UUID) (*report.ProfitLossReport, error) {
	if row, ok := r.rows[id]; ok {
		return &row, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeReportRepo) FindByItemAndDate(_ context.Context, _, itemID uuid.UUID, date time.Time) (*report.ProfitLossReport, error) {
	for _, row := range r.rows {
		if row.ItemID == itemID && row.ReportDate.Equal(time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())) {
			return &row, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeReportRepo) FindByDate(_ context.Context, _ uuid.UUID, date time.Time, _ shared.Filter) ([]report.ProfitLossReport, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	rows := make([]report.ProfitLossReport, 0)
	for _, row := range r.rows {
		if row.ReportDate.Equal(day) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (r *fakeReportRepo) FindByDateRange(_ context.Context, _ uuid.UUID, start, end time.Time, _ shared.Filter) ([]report.ProfitLossReport, error) {
	rows := make([]report.ProfitLossReport, 0)
	for _, row := range r.rows {
		if !row.ReportDate.Before(start) && row.ReportDate.Before(end) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (r *fakeReportRepo) FindByItem(_ context.Context, _, itemID uuid.UUID, _ shared.Filter) ([]report.ProfitLossReport, error) {
	rows := make([]report.ProfitLossReport, 0)
	for _, row := range r.rows {
		if row.ItemID == itemID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (r *fakeReportRepo) Save(_ context.Context, row *report.ProfitLossReport) error {
	r.rows[row.ID] = *row
	return nil
}

func (r *fakeReportRepo) CountForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) (int64, error) {
	return int64(len(r.rows)), nil
}

type movementRepo struct {
	ins []inventory.StockIn
}

func (m *movementRepo) Create(_ context.Context, rec *inventory.StockIn) error {
	m.ins = append(m.ins, *rec)
	return nil
}

func (m *movementRepo) CreateBatch(_ context.Context, _ []*inventory.StockIn) error { return nil }

func (m *movementRepo) FindByItem(_ context.Context, _, _ uuid.UUID, _ shared.Filter) ([]inventory.StockIn, error) {
	return nil, nil
}

func (m *movementRepo) FindByDateRange(_ context.Context, _ uuid.UUID, start, end time.Time) ([]inventory.StockIn, error) {
	rows := make([]inventory.StockIn, 0)
	for _, rec := range m.ins {
		if !rec.OccurredAt.Before(start) && rec.OccurredAt.Before(end) {
			rows = append(rows, rec)
		}
	}
	return rows, nil
}

func (m *movementRepo) FindAllForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]inventory.StockIn, error) {
	return nil, nil
}

func (m *movementRepo) SumQuantityByItemAndDateRange(_ context.Context, _, _ uuid.UUID, _, _ time.Time) (int64, error) {
	return 0, nil
}

func (m *movementRepo) SumQuantityByItemAndBlock(_ context.Context, _, _, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (m *movementRepo) CountForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) (int64, error) {
	return 0, nil
}

type outMovementRepo struct {
	outs []inventory.StockOut
}

func (m *outMovementRepo) Create(_ context.Context, rec *inventory.StockOut) error {
	m.outs = append(m.outs, *rec)
	return nil
}

func (m *outMovementRepo) CreateBatch(_ context.Context, _ []*inventory.StockOut) error { return nil }

func (m *outMovementRepo) FindByItem(_ context.Context, _, _ uuid.UUID, _ shared.Filter) ([]inventory.StockOut, error) {
	return nil, nil
}

func (m *outMovementRepo) FindByReason(_ context.Context, _ uuid.UUID, _ inventory.StockOutReason, _ shared.Filter) ([]inventory.StockOut, error) {
	return nil, nil
}

func (m *outMovementRepo) SumQuantityByReason(_ context.Context, _ uuid.UUID, reason inventory.StockOutReason) (int64, error) {
	var total int64
	for _, rec := range m.outs {
		if rec.Reason == reason {
			total += rec.Quantity
		}
	}
	return total, nil
}

func (m *outMovementRepo) SumQuantityByItemAndBlock(_ context.Context, _, _, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (m *outMovementRepo) FindByDateRange(_ context.Context, _ uuid.UUID, start, end time.Time) ([]inventory.StockOut, error) {
	rows := make([]inventory.StockOut, 0)
	for _, rec := range m.outs {
		if !rec.OccurredAt.Before(start) && rec.OccurredAt.Before(end) {
			rows = append(rows, rec)
		}
	}
	return rows, nil
}

func (m *outMovementRepo) FindAllForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]inventory.StockOut, error) {
	return nil, nil
}

func (m *outMovementRepo) CountForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) (int64, error) {
	return 0, nil
}

type itemRepoStub struct {
	items map[uuid.UUID]catalog.Item
}

func (r *itemRepoStub) FindByID(_ context.Context, id uuid.UUID) (*catalog.Item, error) {
	if item, ok := r.items[id]; ok {
		return &item, nil
	}
	return nil, shared.ErrNotFound
}

func (r *itemRepoStub) FindByIDForTenant(ctx context.Context, _, id uuid.UUID) (*catalog.Item, error) {
	return r.FindByID(ctx, id)
}

func (r *itemRepoStub) FindBySKU(_ context.Context, _ uuid.UUID, _ string) (*catalog.Item, error) {
	return nil, shared.ErrNotFound
}

func (r *itemRepoStub) FindByIDs(_ context.Context, _ uuid.UUID, _ []uuid.UUID) ([]catalog.Item, error) {
	return nil, nil
}

func (r *itemRepoStub) FindByCategory(_ context.Context, _, _ uuid.UUID, _ shared.Filter) ([]catalog.Item, error) {
	return nil, nil
}

func (r *itemRepoStub) FindAllForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]catalog.Item, error) {
	return nil, nil
}

func (r *itemRepoStub) Save(_ context.Context, item *catalog.Item) error {
	r.items[item.ID] = *item
	return nil
}

func (r *itemRepoStub) DeleteForTenant(_ context.Context, _, _ uuid.UUID) error { return nil }

func (r *itemRepoStub) CountForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) (int64, error) {
	return 0, nil
}

func (r *itemRepoStub) ExistsBySKU(_ context.Context, _ uuid.UUID, _ string) (bool, error) {
	return false, nil
}

type orderRepoStub struct {
	orders []trade.Order
}

func (r *orderRepoStub) FindByID(_ context.Context, _ uuid.UUID) (*trade.Order, error) {
	return nil, shared.ErrNotFound
}

func (r *orderRepoStub) FindByIDForTenant(_ context.Context, _, _ uuid.UUID) (*trade.Order, error) {
	return nil, shared.ErrNotFound
}

func (r *orderRepoStub) FindByNumber(_ context.Context, _ uuid.UUID, _ string) (*trade.Order, error) {
	return nil, shared.ErrNotFound
}

func (r *orderRepoStub) FindByCustomer(_ context.Context, _, _ uuid.UUID, _ shared.Filter) ([]trade.Order, error) {
	return nil, nil
}

func (r *orderRepoStub) FindByDateRange(_ context.Context, _ uuid.UUID, start, end time.Time) ([]trade.Order, error) {
	orders := make([]trade.Order, 0)
	for _, o := range r.orders {
		if !o.PlacedAt.Before(start) && o.PlacedAt.Before(end) {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (r *orderRepoStub) FindAllForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]trade.Order, error) {
	return nil, nil
}

func (r *orderRepoStub) Save(_ context.Context, order *trade.Order) error {
	r.orders = append(r.orders, *order)
	return nil
}

func (r *orderRepoStub) ExistsByNumber(_ context.Context, _ uuid.UUID, _ string) (bool, error) {
	return false, nil
}

func (r *orderRepoStub) CountForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) (int64, error) {
	return 0, nil
}

func (r *orderRepoStub) SumTotalByDateRange(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	orders, _ := r.FindByDateRange(ctx, tenantID, start, end)
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
	}
	return total, nil
}

type reportFixture struct {
	tenantID   uuid.UUID
	reportRepo *fakeReportRepo
	ins        *movementRepo
	outs       *outMovementRepo
	items      *itemRepoStub
	orders     *orderRepoStub
	service    *ProfitLossService
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	f := &reportFixture{
		tenantID:   uuid.New(),
		reportRepo: newFakeReportRepo(),
		ins:        &movementRepo{},
		outs:       &outMovementRepo{},
		items:      &itemRepoStub{items: make(map[uuid.UUID]catalog.Item)},
		orders:     &orderRepoStub{},
	}
	f.service = NewProfitLossService(f.reportRepo, f.ins, f.outs, f.items, f.orders, zap.NewNop())
	return f
}

func (f *reportFixture) seedItem(t *testing.T, cost, selling int64) uuid.UUID {
	t.Helper()
	item, err := catalog.NewItem(f.tenantID, uuid.New(), "Crate", "CRT-"+uuid.NewString()[:4], decimal.NewFromInt(cost), decimal.NewFromInt(selling))
	require.NoError(t, err)
	require.NoError(t, f.items.Save(context.Background(), item))
	return item.ID
}

func (f *reportFixture) seedIn(t *testing.T, itemID uuid.UUID, qty, cost int64, at time.Time) {
	t.Helper()
	rec, err := inventory.NewStockIn(f.tenantID, uuid.New(), itemID, uuid.New(), qty, decimal.NewFromInt(cost))
	require.NoError(t, err)
	rec.OccurredAt = at
	f.ins.ins = append(f.ins.ins, *rec)
}

func (f *reportFixture) seedOut(t *testing.T, itemID, blockID uuid.UUID, qty, price int64, reason inventory.StockOutReason, at time.Time) {
	t.Helper()
	rec, err := inventory.NewStockOut(f.tenantID, uuid.New(), itemID, blockID, qty, decimal.NewFromInt(price), reason)
	require.NoError(t, err)
	rec.OccurredAt = at
	f.outs.outs = append(f.outs.outs, *rec)
}

func TestProfitLossGenerate(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	noon := day.Add(12 * time.Hour)

	t.Run("should aggregate one row per moved item from frozen prices", func(t *testing.T) {
		f := newReportFixture(t)
		itemID := f.seedItem(t, 3, 5)
		f.seedIn(t, itemID, 10, 2, noon)
		f.seedOut(t, itemID, uuid.New(), 4, 5, inventory.ReasonSale, noon)

		resp, err := f.service.Generate(ctx, f.tenantID, day)

		require.NoError(t, err)
		assert.Equal(t, 1, resp.ItemsCovered)

		// 10 in at 2.00 and 4 sold at 5.00 both amount to 20.00
		row, err := f.reportRepo.FindByItemAndDate(ctx, f.tenantID, itemID, day)
		require.NoError(t, err)
		assert.Equal(t, int64(10), row.InboundQuantity)
		assert.Equal(t, int64(4), row.SoldQuantity)
		assert.True(t, row.PurchaseAmount.Equal(decimal.NewFromInt(20)))
		assert.True(t, row.SalesAmount.Equal(decimal.NewFromInt(20)))
		assert.True(t, row.Profit.IsZero())
	})

	t.Run("should keep past figures stable across item price changes", func(t *testing.T) {
		f := newReportFixture(t)
		itemID := f.seedItem(t, 3, 5)
		f.seedIn(t, itemID, 10, 3, noon)
		f.seedOut(t, itemID, uuid.New(), 4, 5, inventory.ReasonSale, noon)

		_, err := f.service.Generate(ctx, f.tenantID, day)
		require.NoError(t, err)

		item, err := f.items.FindByID(ctx, itemID)
		require.NoError(t, err)
		require.NoError(t, item.UpdatePrices(decimal.NewFromInt(7), decimal.NewFromInt(9)))
		require.NoError(t, f.items.Save(ctx, item))

		_, err = f.service.Generate(ctx, f.tenantID, day)
		require.NoError(t, err)

		row, err := f.reportRepo.FindByItemAndDate(ctx, f.tenantID, itemID, day)
		require.NoError(t, err)
		assert.True(t, row.SalesAmount.Equal(decimal.NewFromInt(20)))
		assert.True(t, row.PurchaseAmount.Equal(decimal.NewFromInt(30)))
		assert.True(t, row.Profit.Equal(decimal.NewFromInt(-10)))
	})

	t.Run("should not count transfers or damage as sales", func(t *testing.T) {
		f := newReportFixture(t)
		itemID := f.seedItem(t, 3, 5)
		f.seedOut(t, itemID, uuid.New(), 2, 5, inventory.ReasonSale, noon)
		f.seedOut(t, itemID, uuid.New(), 9, 5, inventory.ReasonTransfer, noon)
		f.seedOut(t, itemID, uuid.New(), 1, 5, inventory.ReasonDamage, noon)

		_, err := f.service.Generate(ctx, f.tenantID, day)
		require.NoError(t, err)

		row, err := f.reportRepo.FindByItemAndDate(ctx, f.tenantID, itemID, day)
		require.NoError(t, err)
		assert.Equal(t, int64(2), row.SoldQuantity)
	})

	t.Run("should skip items without movement that day", func(t *testing.T) {
		f := newReportFixture(t)
		moved := f.seedItem(t, 3, 5)
		f.seedItem(t, 3, 5)
		f.seedIn(t, moved, 1, 3, noon)
		f.seedIn(t, moved, 2, 3, noon.AddDate(0, 0, 1))

		resp, err := f.service.Generate(ctx, f.tenantID, day)

		require.NoError(t, err)
		assert.Equal(t, 1, resp.ItemsCovered)
		assert.Len(t, f.reportRepo.rows, 1)
	})

	t.Run("should be idempotent across reruns", func(t *testing.T) {
		f := newReportFixture(t)
		itemID := f.seedItem(t, 3, 5)
		f.seedIn(t, itemID, 10, 2, noon)
		f.seedOut(t, itemID, uuid.New(), 4, 5, inventory.ReasonSale, noon)

		_, err := f.service.Generate(ctx, f.tenantID, day)
		require.NoError(t, err)
		_, err = f.service.Generate(ctx, f.tenantID, day)
		require.NoError(t, err)

		assert.Len(t, f.reportRepo.rows, 1)
		row, err := f.reportRepo.FindByItemAndDate(ctx, f.tenantID, itemID, day)
		require.NoError(t, err)
		assert.Equal(t, int64(10), row.InboundQuantity)
		assert.True(t, row.Profit.IsZero())
	})
}

func TestProfitLossBlockProfit(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	noon := day.Add(12 * time.Hour)

	t.Run("should split profit across blocks", func(t *testing.T) {
		f := newReportFixture(t)
		itemID := f.seedItem(t, 3, 5) // sold at 5 below, margin 2 per unit
		blockA := uuid.New()
		blockB := uuid.New()
		f.seedOut(t, itemID, blockA, 3, 5, inventory.ReasonSale, noon)
		f.seedOut(t, itemID, blockB, 1, 5, inventory.ReasonSale, noon)
		f.seedOut(t, itemID, blockB, 5, 5, inventory.ReasonDamage, noon)

		profits, err := f.service.BlockProfit(ctx, f.tenantID, day, day.AddDate(0, 0, 1))

		require.NoError(t, err)
		require.Len(t, profits, 2)

		byBlock := make(map[uuid.UUID]BlockProfitResponse)
		for _, p := range profits {
			byBlock[p.BlockID] = p
		}
		assert.True(t, byBlock[blockA].Profit.Equal(decimal.NewFromInt(6)))
		assert.True(t, byBlock[blockA].Percentage.Equal(decimal.NewFromInt(75)))
		assert.True(t, byBlock[blockB].Profit.Equal(decimal.NewFromInt(2)))
		assert.True(t, byBlock[blockB].Percentage.Equal(decimal.NewFromInt(25)))
	})
}

func TestProfitLossWeeklySales(t *testing.T) {
	ctx := context.Background()

	t.Run("should bucket order totals by day", func(t *testing.T) {
		f := newReportFixture(t)
		// 2026-08-31 is a Monday
		monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

		order, err := trade.NewOrder(f.tenantID, uuid.New(), "AB12CD34")
		require.NoError(t, err)
		require.NoError(t, order.AddItem(uuid.New(), uuid.New(), 2, decimal.NewFromInt(5)))
		order.PlacedAt = monday.Add(10 * time.Hour)
		require.NoError(t, f.orders.Save(ctx, order))

		previous, err := trade.NewOrder(f.tenantID, uuid.New(), "EF56GH78")
		require.NoError(t, err)
		require.NoError(t, previous.AddItem(uuid.New(), uuid.New(), 1, decimal.NewFromInt(7)))
		previous.PlacedAt = monday.AddDate(0, 0, -7).Add(10 * time.Hour)
		require.NoError(t, f.orders.Save(ctx, previous))

		resp, err := f.service.WeeklySales(ctx, f.tenantID, monday.Add(30*time.Hour))

		require.NoError(t, err)
		require.Len(t, resp.CurrentWeek, 7)
		require.Len(t, resp.PreviousWeek, 7)
		assert.True(t, resp.CurrentWeek[0].Equal(decimal.NewFromInt(10)))
		assert.True(t, resp.PreviousWeek[0].Equal(decimal.NewFromInt(7)))
		assert.True(t, resp.CurrentWeek[1].IsZero())
	})
}
