package report

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/catalog"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/report"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// ProfitLossService builds the daily profit and loss aggregates from
// the movement records. Generation is idempotent: rerunning a day
// overwrites the rows for that day instead of duplicating them.
type ProfitLossService struct {
	reportRepo   report.ProfitLossRepository
	stockInRepo  inventory.StockInRepository
	stockOutRepo inventory.StockOutRepository
	itemRepo     catalog.ItemRepository
	orderRepo    trade.OrderRepository
	logger       *zap.Logger
}

// NewProfitLossService creates a new ProfitLossService
func NewProfitLossService(
	reportRepo report.ProfitLossRepository,
	stockInRepo inventory.StockInRepository,
	stockOutRepo inventory.StockOutRepository,
	itemRepo catalog.ItemRepository,
	orderRepo trade.OrderRepository,
	logger *zap.Logger,
) *ProfitLossService {
	return &ProfitLossService{
		reportRepo:   reportRepo,
		stockInRepo:  stockInRepo,
		stockOutRepo: stockOutRepo,
		itemRepo:     itemRepo,
		orderRepo:    orderRepo,
		logger:       logger,
	}
}

type dayMovement struct {
	inbound  int64
	sold     int64
	purchase decimal.Decimal
	sales    decimal.Decimal
}

// Generate aggregates one day for a tenant. Every item that moved on
// the day gets one row keyed by (item, day); items without movement
// are skipped. Only sales count as sold quantity, transfers and
// damage write offs do not. Amounts are summed from the prices frozen
// on the movement records, so regenerating a past day after a price
// change yields the same figures.
func (s *ProfitLossService) Generate(ctx context.Context, tenantID uuid.UUID, date time.Time) (*GenerateResponse, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1)

	ins, err := s.stockInRepo.FindByDateRange(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}
	outs, err := s.stockOutRepo.FindByDateRange(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}

	movements := make(map[uuid.UUID]*dayMovement)
	for i := range ins {
		m := movementFor(movements, ins[i].ItemID)
		m.inbound += ins[i].Quantity
		m.purchase = m.purchase.Add(ins[i].CostPrice.Mul(decimal.NewFromInt(ins[i].Quantity)))
	}
	for i := range outs {
		if outs[i].Reason != inventory.ReasonSale {
			continue
		}
		m := movementFor(movements, outs[i].ItemID)
		m.sold += outs[i].Quantity
		m.sales = m.sales.Add(outs[i].UnitPrice.Mul(decimal.NewFromInt(outs[i].Quantity)))
	}

	covered := 0
	for itemID, movement := range movements {
		if _, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID); err != nil {
			s.logger.Warn("skipping item without catalog entry",
				zap.String("item_id", itemID.String()),
				zap.Error(err))
			continue
		}
		if err := s.upsertRow(ctx, tenantID, itemID, start, movement); err != nil {
			return nil, err
		}
		covered++
	}

	s.logger.Info("profit loss aggregation completed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("date", start.Format("2006-01-02")),
		zap.Int("items_covered", covered))

	return &GenerateResponse{Date: start.Format("2006-01-02"), ItemsCovered: covered}, nil
}

func movementFor(m map[uuid.UUID]*dayMovement, itemID uuid.UUID) *dayMovement {
	if mv, ok := m[itemID]; ok {
		return mv
	}
	mv := &dayMovement{purchase: decimal.Zero, sales: decimal.Zero}
	m[itemID] = mv
	return mv
}

// upsertRow refreshes the existing row for (item, day) or creates it
func (s *ProfitLossService) upsertRow(ctx context.Context, tenantID, itemID uuid.UUID, day time.Time, movement *dayMovement) error {
	row, err := s.reportRepo.FindByItemAndDate(ctx, tenantID, itemID, day)
	if errors.Is(err, shared.ErrNotFound) {
		row, err = report.NewProfitLossReport(tenantID, itemID, day, movement.inbound, movement.sold, movement.purchase, movement.sales)
		if err != nil {
			return err
		}
		return s.reportRepo.Save(ctx, row)
	}
	if err != nil {
		return err
	}

	if err := row.Refresh(movement.inbound, movement.sold, movement.purchase, movement.sales); err != nil {
		return err
	}
	return s.reportRepo.Save(ctx, row)
}

// ListByDate returns the report rows of one day
func (s *ProfitLossService) ListByDate(ctx context.Context, tenantID uuid.UUID, date time.Time, filter shared.Filter) ([]ProfitLossResponse, error) {
	rows, err := s.reportRepo.FindByDate(ctx, tenantID, date, filter)
	if err != nil {
		return nil, err
	}
	return toResponses(rows), nil
}

// ListByRange returns the report rows within [start, end)
func (s *ProfitLossService) ListByRange(ctx context.Context, tenantID uuid.UUID, start, end time.Time, filter shared.Filter) ([]ProfitLossResponse, error) {
	rows, err := s.reportRepo.FindByDateRange(ctx, tenantID, start, end, filter)
	if err != nil {
		return nil, err
	}
	return toResponses(rows), nil
}

// BlockProfit computes the profit contribution of each block over a
// date range from the sale movements, as absolute profit and as a
// percentage of the total. Revenue comes from the selling price frozen
// on each sale record; cost is valued at the item's cost price.
func (s *ProfitLossService) BlockProfit(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]BlockProfitResponse, error) {
	outs, err := s.stockOutRepo.FindByDateRange(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}

	costs := make(map[uuid.UUID]decimal.Decimal)
	profits := make(map[uuid.UUID]decimal.Decimal)
	total := decimal.Zero
	for i := range outs {
		out := &outs[i]
		if out.Reason != inventory.ReasonSale {
			continue
		}

		cost, ok := costs[out.ItemID]
		if !ok {
			item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, out.ItemID)
			if err != nil {
				continue
			}
			cost = item.CostPrice
			costs[out.ItemID] = cost
		}

		profit := out.UnitPrice.Sub(cost).Mul(decimal.NewFromInt(out.Quantity))
		profits[out.BlockID] = profits[out.BlockID].Add(profit)
		total = total.Add(profit)
	}

	responses := make([]BlockProfitResponse, 0, len(profits))
	for blockID, profit := range profits {
		percentage := decimal.Zero
		if !total.IsZero() {
			percentage = profit.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
		}
		responses = append(responses, BlockProfitResponse{
			BlockID:    blockID,
			Profit:     profit,
			Percentage: percentage,
		})
	}
	return responses, nil
}

// WeeklySales returns daily order totals for the week containing now
// and the week before it, Monday first.
func (s *ProfitLossService) WeeklySales(ctx context.Context, tenantID uuid.UUID, now time.Time) (*WeeklySalesResponse, error) {
	monday := startOfWeek(now)

	current, err := s.dailyTotals(ctx, tenantID, monday)
	if err != nil {
		return nil, err
	}
	previous, err := s.dailyTotals(ctx, tenantID, monday.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	return &WeeklySalesResponse{CurrentWeek: current, PreviousWeek: previous}, nil
}

func (s *ProfitLossService) dailyTotals(ctx context.Context, tenantID uuid.UUID, monday time.Time) ([]decimal.Decimal, error) {
	totals := make([]decimal.Decimal, 7)
	for i := 0; i < 7; i++ {
		dayStart := monday.AddDate(0, 0, i)
		total, err := s.orderRepo.SumTotalByDateRange(ctx, tenantID, dayStart, dayStart.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
		totals[i] = total
	}
	return totals, nil
}

func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, 1-weekday)
}

func toResponses(rows []report.ProfitLossReport) []ProfitLossResponse {
	responses := make([]ProfitLossResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, ToProfitLossResponse(&rows[i]))
	}
	return responses
}
