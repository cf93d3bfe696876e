package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wims/backend/internal/application/inventory"
	"github.com/wims/backend/internal/interfaces/http/dto"
)

// StockHandler serves stock movement and stock level endpoints
type StockHandler struct {
	BaseHandler
	stock   *inventory.StockService
	queries *inventory.StockQueryService
}

// NewStockHandler creates a stock handler
func NewStockHandler(stock *inventory.StockService, queries *inventory.StockQueryService, log *zap.Logger) *StockHandler {
	return &StockHandler{BaseHandler: NewBaseHandler(log), stock: stock, queries: queries}
}

// Plan suggests block placements for a quantity without reserving anything
func (h *StockHandler) Plan(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req inventory.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.stock.Plan(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Inbound receives stock into one block
func (h *StockHandler) Inbound(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	actorID, ok := h.userID(c)
	if !ok {
		return
	}
	var req inventory.InboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.stock.RecordInbound(c.Request.Context(), tenantID, actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Outbound removes stock from an inventory row for a given reason
func (h *StockHandler) Outbound(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	actorID, ok := h.userID(c)
	if !ok {
		return
	}
	var req inventory.OutboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.stock.RecordOutbound(c.Request.Context(), tenantID, actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Levels lists stock levels, optionally scoped to one item or block
func (h *StockHandler) Levels(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if raw := c.Query("item_id"); raw != "" {
		itemID, err := uuid.Parse(raw)
		if err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "invalid item_id")
			return
		}
		levels, err := h.queries.ListByItem(ctx, tenantID, itemID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, levels)
		return
	}
	if raw := c.Query("block_id"); raw != "" {
		blockID, err := uuid.Parse(raw)
		if err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "invalid block_id")
			return
		}
		levels, err := h.queries.ListByBlock(ctx, tenantID, blockID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, levels)
		return
	}

	page, err := h.queries.List(ctx, tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Summary returns the tenant-wide stock position
func (h *StockHandler) Summary(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	summary, err := h.queries.Summary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// TotalOnHand returns the total on-hand quantity of one item
func (h *StockHandler) TotalOnHand(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	itemID, ok := h.bindID(c)
	if !ok {
		return
	}
	total, err := h.queries.TotalOnHand(c.Request.Context(), tenantID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"item_id": itemID, "total": total})
}

// Movements lists the movement history of one item
func (h *StockHandler) Movements(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	itemID, ok := h.bindID(c)
	if !ok {
		return
	}
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}
	movements, err := h.queries.ListMovements(c.Request.Context(), tenantID, itemID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movements)
}

// Reconcile checks one block's available space against its contents
func (h *StockHandler) Reconcile(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	blockID, ok := h.bindID(c)
	if !ok {
		return
	}
	consistent, err := h.stock.Reconcile(c.Request.Context(), tenantID, blockID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"block_id": blockID, "consistent": consistent})
}
