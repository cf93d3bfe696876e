package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wims/backend/internal/application/storage"
	"github.com/wims/backend/internal/interfaces/http/dto"
)

// StorageHandler serves warehouse and block endpoints
type StorageHandler struct {
	BaseHandler
	storage *storage.StorageService
}

// NewStorageHandler creates a storage handler
func NewStorageHandler(svc *storage.StorageService, log *zap.Logger) *StorageHandler {
	return &StorageHandler{BaseHandler: NewBaseHandler(log), storage: svc}
}

// CreateWarehouse creates a warehouse
func (h *StorageHandler) CreateWarehouse(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req storage.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.storage.CreateWarehouse(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateWarehouse updates warehouse name and address
func (h *StorageHandler) UpdateWarehouse(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req storage.UpdateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.storage.UpdateWarehouse(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetWarehouse returns one warehouse with its capacity totals
func (h *StorageHandler) GetWarehouse(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	resp, err := h.storage.GetWarehouse(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListWarehouses returns a page of warehouses
func (h *StorageHandler) ListWarehouses(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}
	page, err := h.storage.ListWarehouses(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// DeactivateWarehouse marks a warehouse inactive
func (h *StorageHandler) DeactivateWarehouse(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	if err := h.storage.DeactivateWarehouse(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateBlock adds a block to a warehouse
func (h *StorageHandler) CreateBlock(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req storage.CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.storage.CreateBlock(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ResizeBlock changes a block's capacity
func (h *StorageHandler) ResizeBlock(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req storage.ResizeBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.storage.ResizeBlock(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetBlock returns one block
func (h *StorageHandler) GetBlock(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	resp, err := h.storage.GetBlock(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListBlocks returns the blocks of one warehouse ordered by code
func (h *StorageHandler) ListBlocks(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	warehouseID, err := uuid.Parse(c.Query("warehouse_id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "invalid warehouse_id")
		return
	}
	blocks, err := h.storage.ListBlocks(c.Request.Context(), tenantID, warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, blocks)
}

// DeleteBlock removes an empty block
func (h *StorageHandler) DeleteBlock(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	if err := h.storage.DeleteBlock(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
