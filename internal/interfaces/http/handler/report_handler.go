package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wims/backend/internal/application/report"
	"github.com/wims/backend/internal/interfaces/http/dto"
)

// ReportHandler serves profit and loss report endpoints
type ReportHandler struct {
	BaseHandler
	reports *report.ProfitLossService
}

// NewReportHandler creates a report handler
func NewReportHandler(svc *report.ProfitLossService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{BaseHandler: NewBaseHandler(log), reports: svc}
}

// Generate runs the daily aggregation for one day. Re-running a day
// overwrites its rows, so the endpoint is safe to retry.
func (h *ReportHandler) Generate(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req report.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	date, err := report.ParseReportDate(req.Date)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "invalid date")
		return
	}
	resp, err := h.reports.Generate(c.Request.Context(), tenantID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListByDate returns the report rows of one day
func (h *ReportHandler) ListByDate(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	date, ok := h.bindDate(c, "date")
	if !ok {
		return
	}
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}
	rows, err := h.reports.ListByDate(c.Request.Context(), tenantID, date, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// ListByRange returns the report rows of a date range
func (h *ReportHandler) ListByRange(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	start, end, ok := h.bindDateRange(c)
	if !ok {
		return
	}
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}
	rows, err := h.reports.ListByRange(c.Request.Context(), tenantID, start, end, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// BlockProfit returns the profit contribution per block over a range
func (h *ReportHandler) BlockProfit(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	start, end, ok := h.bindDateRange(c)
	if !ok {
		return
	}
	rows, err := h.reports.BlockProfit(c.Request.Context(), tenantID, start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// WeeklySales compares this week's daily sales with last week's
func (h *ReportHandler) WeeklySales(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	resp, err := h.reports.WeeklySales(c.Request.Context(), tenantID, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ExportCSV streams the report rows of a date range as a CSV file
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	start, end, ok := h.bindDateRange(c)
	if !ok {
		return
	}
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}
	rows, err := h.reports.ListByRange(c.Request.Context(), tenantID, start, end, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("profit_loss_%s_%s.csv",
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	header := []string{
		"report_date", "item_id", "inbound_quantity", "sold_quantity",
		"purchase_amount", "sales_amount", "profit",
	}
	if err := w.Write(header); err != nil {
		return
	}
	for _, row := range rows {
		record := []string{
			row.ReportDate,
			row.ItemID.String(),
			fmt.Sprintf("%d", row.InboundQuantity),
			fmt.Sprintf("%d", row.SoldQuantity),
			row.PurchaseAmount.String(),
			row.SalesAmount.String(),
			row.Profit.String(),
		}
		if err := w.Write(record); err != nil {
			return
		}
	}
	w.Flush()
}

// bindDate parses a YYYY-MM-DD query parameter
func (h *ReportHandler) bindDate(c *gin.Context, name string) (time.Time, bool) {
	date, err := report.ParseReportDate(c.Query(name))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "invalid "+name)
		return time.Time{}, false
	}
	return date, true
}

// bindDateRange parses start and end query parameters
func (h *ReportHandler) bindDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	start, ok := h.bindDate(c, "start")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := h.bindDate(c, "end")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "end before start")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
