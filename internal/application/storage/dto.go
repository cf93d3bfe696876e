package storage

import (
	"time"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/storage"
)

// CreateWarehouseRequest creates a warehouse
type CreateWarehouseRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Address string `json:"address" binding:"max=500"`
}

// UpdateWarehouseRequest updates a warehouse
type UpdateWarehouseRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Address string `json:"address" binding:"max=500"`
}

// WarehouseResponse is the API view of a warehouse
type WarehouseResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Status         string    `json:"status"`
	TotalCapacity  int64     `json:"total_capacity"`
	TotalAvailable int64     `json:"total_available"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateBlockRequest creates a block inside a warehouse
type CreateBlockRequest struct {
	WarehouseID uuid.UUID `json:"warehouse_id" binding:"required"`
	Code        string    `json:"code" binding:"required,max=50"`
	Capacity    int64     `json:"capacity" binding:"required,gte=0"`
}

// ResizeBlockRequest changes a block's capacity
type ResizeBlockRequest struct {
	Capacity int64 `json:"capacity" binding:"gte=0"`
}

// BlockResponse is the API view of a block
type BlockResponse struct {
	ID          uuid.UUID `json:"id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Code        string    `json:"code"`
	Capacity    int64     `json:"capacity"`
	Available   int64     `json:"available"`
	Used        int64     `json:"used"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToWarehouseResponse converts a warehouse to its API view
func ToWarehouseResponse(w *storage.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:             w.ID,
		Name:           w.Name,
		Address:        w.Address,
		Status:         string(w.Status),
		TotalCapacity:  w.TotalCapacity(),
		TotalAvailable: w.TotalAvailable(),
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}

// ToBlockResponse converts a block to its API view
func ToBlockResponse(b *storage.Block) BlockResponse {
	return BlockResponse{
		ID:          b.ID,
		WarehouseID: b.WarehouseID,
		Code:        b.Code,
		Capacity:    b.Capacity,
		Available:   b.Available,
		Used:        b.Used(),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
