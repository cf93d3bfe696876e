package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/report"
)

// GenerateRequest asks for the daily aggregation of one day
type GenerateRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
}

// ProfitLossResponse is the API view of one report row
type ProfitLossResponse struct {
	ID              uuid.UUID       `json:"id"`
	ItemID          uuid.UUID       `json:"item_id"`
	ReportDate      string          `json:"report_date"`
	InboundQuantity int64           `json:"inbound_quantity"`
	SoldQuantity    int64           `json:"sold_quantity"`
	PurchaseAmount  decimal.Decimal `json:"purchase_amount"`
	SalesAmount     decimal.Decimal `json:"sales_amount"`
	Profit          decimal.Decimal `json:"profit"`
}

// GenerateResponse reports how many rows a run produced
type GenerateResponse struct {
	Date         string `json:"date"`
	ItemsCovered int    `json:"items_covered"`
}

// BlockProfitResponse is the profit contribution of one block
type BlockProfitResponse struct {
	BlockID    uuid.UUID       `json:"block_id"`
	Profit     decimal.Decimal `json:"profit"`
	Percentage decimal.Decimal `json:"percentage"`
}

// WeeklySalesResponse compares daily sales of the current week with
// the previous one. Both slices hold seven values, Monday first.
type WeeklySalesResponse struct {
	CurrentWeek  []decimal.Decimal `json:"current_week"`
	PreviousWeek []decimal.Decimal `json:"previous_week"`
}

// ToProfitLossResponse converts a report row to its API view
func ToProfitLossResponse(r *report.ProfitLossReport) ProfitLossResponse {
	return ProfitLossResponse{
		ID:              r.ID,
		ItemID:          r.ItemID,
		ReportDate:      r.ReportDate.Format("2006-01-02"),
		InboundQuantity: r.InboundQuantity,
		SoldQuantity:    r.SoldQuantity,
		PurchaseAmount:  r.PurchaseAmount,
		SalesAmount:     r.SalesAmount,
		Profit:          r.Profit,
	}
}

// ParseReportDate parses the YYYY-MM-DD date used by report requests
func ParseReportDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
