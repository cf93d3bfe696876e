package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/catalog"
)

// CreateCategoryRequest creates a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// UpdateCategoryRequest updates a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// CategoryResponse is the API view of a category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateItemRequest creates a catalog item
type CreateItemRequest struct {
	CategoryID   uuid.UUID       `json:"category_id" binding:"required"`
	Name         string          `json:"name" binding:"required,max=200"`
	SKU          string          `json:"sku" binding:"required,max=50"`
	CostPrice    decimal.Decimal `json:"cost_price" binding:"required"`
	SellingPrice decimal.Decimal `json:"selling_price" binding:"required"`
}

// UpdateItemRequest updates an item's name and prices
type UpdateItemRequest struct {
	Name         string          `json:"name" binding:"required,max=200"`
	CostPrice    decimal.Decimal `json:"cost_price" binding:"required"`
	SellingPrice decimal.Decimal `json:"selling_price" binding:"required"`
}

// ItemResponse is the API view of an item
type ItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	CategoryID   uuid.UUID       `json:"category_id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToCategoryResponse converts a category to its API view
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToItemResponse converts an item to its API view
func ToItemResponse(i *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:           i.ID,
		CategoryID:   i.CategoryID,
		Name:         i.Name,
		SKU:          i.SKU,
		CostPrice:    i.CostPrice,
		SellingPrice: i.SellingPrice,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}
