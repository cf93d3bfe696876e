package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/shared"
)

// ProfitLossReport is the daily aggregate for one item. It is keyed
// by (tenant, item, date) and regenerating the same day overwrites
// the existing row, so the aggregation is safe to rerun.
type ProfitLossReport struct {
	shared.TenantAggregateRoot
	ItemID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_report_tenant_item_date,priority:2"`
	ReportDate      time.Time       `gorm:"type:date;not null;uniqueIndex:idx_report_tenant_item_date,priority:3"`
	InboundQuantity int64           `gorm:"not null;default:0"`
	SoldQuantity    int64           `gorm:"not null;default:0"`
	PurchaseAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SalesAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Profit          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (ProfitLossReport) TableName() string {
	return "profit_loss_reports"
}

// NewProfitLossReport builds the aggregate row for one item and day.
// The amounts are the sums of quantity times the price frozen on each
// movement record, so a later price change never rewrites a past day.
// Profit is sales amount minus purchase amount.
func NewProfitLossReport(tenantID, itemID uuid.UUID, date time.Time, inboundQty, soldQty int64, purchaseAmount, salesAmount decimal.Decimal) (*ProfitLossReport, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if inboundQty < 0 || soldQty < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantities cannot be negative")
	}

	r := &ProfitLossReport{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ItemID:              itemID,
		ReportDate:          truncateToDay(date),
	}
	r.recalculate(inboundQty, soldQty, purchaseAmount, salesAmount)
	return r, nil
}

// Refresh overwrites the aggregate with freshly computed figures
func (r *ProfitLossReport) Refresh(inboundQty, soldQty int64, purchaseAmount, salesAmount decimal.Decimal) error {
	if inboundQty < 0 || soldQty < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantities cannot be negative")
	}

	r.recalculate(inboundQty, soldQty, purchaseAmount, salesAmount)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

func (r *ProfitLossReport) recalculate(inboundQty, soldQty int64, purchaseAmount, salesAmount decimal.Decimal) {
	r.InboundQuantity = inboundQty
	r.SoldQuantity = soldQty
	r.PurchaseAmount = purchaseAmount
	r.SalesAmount = salesAmount
	r.Profit = salesAmount.Sub(purchaseAmount)
}

// HasMovement returns true if any stock moved on the report day
func (r *ProfitLossReport) HasMovement() bool {
	return r.InboundQuantity > 0 || r.SoldQuantity > 0
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
