package storage

import (
	"time"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/shared"
)

// WarehouseStatus represents the lifecycle state of a warehouse
type WarehouseStatus string

const (
	WarehouseStatusActive   WarehouseStatus = "active"
	WarehouseStatusInactive WarehouseStatus = "inactive"
)

// Warehouse is a physical site subdivided into storage blocks
type Warehouse struct {
	shared.TenantAggregateRoot
	Name    string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_warehouse_tenant_name,priority:2"`
	Address string          `gorm:"type:varchar(500)"`
	Status  WarehouseStatus `gorm:"type:varchar(20);not null;default:'active'"`

	Blocks []Block `gorm:"foreignKey:WarehouseID;references:ID"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse
func NewWarehouse(tenantID uuid.UUID, name, address string) (*Warehouse, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}

	return &Warehouse{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Address:             address,
		Status:              WarehouseStatusActive,
		Blocks:              make([]Block, 0),
	}, nil
}

// Update changes the warehouse name and address
func (w *Warehouse) Update(name, address string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}

	w.Name = name
	w.Address = address
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// Deactivate marks the warehouse as inactive. Inactive warehouses
// are excluded from allocation planning.
func (w *Warehouse) Deactivate() error {
	if w.Status == WarehouseStatusInactive {
		return shared.NewDomainError("INVALID_STATE", "Warehouse is already inactive")
	}

	w.Status = WarehouseStatusInactive
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// Activate marks the warehouse as active
func (w *Warehouse) Activate() error {
	if w.Status == WarehouseStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Warehouse is already active")
	}

	w.Status = WarehouseStatusActive
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// IsActive returns true if the warehouse is active
func (w *Warehouse) IsActive() bool {
	return w.Status == WarehouseStatusActive
}

// TotalCapacity sums the capacity of all blocks
func (w *Warehouse) TotalCapacity() int64 {
	var total int64
	for _, b := range w.Blocks {
		total += b.Capacity
	}
	return total
}

// TotalAvailable sums the remaining capacity of all blocks
func (w *Warehouse) TotalAvailable() int64 {
	var total int64
	for _, b := range w.Blocks {
		total += b.Available
	}
	return total
}
