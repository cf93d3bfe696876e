package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/domain/storage"
)

// StorageService manages warehouses and their blocks
type StorageService struct {
	warehouseRepo storage.WarehouseRepository
	blockRepo     storage.BlockRepository
}

// NewStorageService creates a new StorageService
func NewStorageService(warehouseRepo storage.WarehouseRepository, blockRepo storage.BlockRepository) *StorageService {
	return &StorageService{
		warehouseRepo: warehouseRepo,
		blockRepo:     blockRepo,
	}
}

// CreateWarehouse creates a warehouse
func (s *StorageService) CreateWarehouse(ctx context.Context, tenantID uuid.UUID, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := storage.NewWarehouse(tenantID, req.Name, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	resp := ToWarehouseResponse(warehouse)
	return &resp, nil
}

// UpdateWarehouse updates a warehouse
func (s *StorageService) UpdateWarehouse(ctx context.Context, tenantID, id uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := warehouse.Update(req.Name, req.Address); err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	resp := ToWarehouseResponse(warehouse)
	return &resp, nil
}

// GetWarehouse returns one warehouse with its blocks loaded
func (s *StorageService) GetWarehouse(ctx context.Context, tenantID, id uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToWarehouseResponse(warehouse)
	return &resp, nil
}

// ListWarehouses returns warehouses with pagination
func (s *StorageService) ListWarehouses(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[WarehouseResponse], error) {
	warehouses, err := s.warehouseRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[WarehouseResponse]{}, err
	}
	total, err := s.warehouseRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[WarehouseResponse]{}, err
	}

	responses := make([]WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		responses = append(responses, ToWarehouseResponse(&warehouses[i]))
	}
	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}

// DeactivateWarehouse excludes a warehouse from allocation planning
func (s *StorageService) DeactivateWarehouse(ctx context.Context, tenantID, id uuid.UUID) error {
	warehouse, err := s.warehouseRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := warehouse.Deactivate(); err != nil {
		return err
	}
	return s.warehouseRepo.Save(ctx, warehouse)
}

// CreateBlock creates a block with a unique code inside its warehouse
func (s *StorageService) CreateBlock(ctx context.Context, tenantID uuid.UUID, req CreateBlockRequest) (*BlockResponse, error) {
	if _, err := s.warehouseRepo.FindByIDForTenant(ctx, tenantID, req.WarehouseID); err != nil {
		return nil, err
	}

	existing, err := s.blockRepo.FindByCode(ctx, tenantID, req.WarehouseID, req.Code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	block, err := storage.NewBlock(tenantID, req.WarehouseID, req.Code, req.Capacity)
	if err != nil {
		return nil, err
	}
	if err := s.blockRepo.Save(ctx, block); err != nil {
		return nil, err
	}

	resp := ToBlockResponse(block)
	return &resp, nil
}

// ResizeBlock changes a block's capacity without touching occupied units
func (s *StorageService) ResizeBlock(ctx context.Context, tenantID, id uuid.UUID, req ResizeBlockRequest) (*BlockResponse, error) {
	block, err := s.blockRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := block.Resize(req.Capacity); err != nil {
		return nil, err
	}
	if err := s.blockRepo.Save(ctx, block); err != nil {
		return nil, err
	}

	resp := ToBlockResponse(block)
	return &resp, nil
}

// GetBlock returns one block
func (s *StorageService) GetBlock(ctx context.Context, tenantID, id uuid.UUID) (*BlockResponse, error) {
	block, err := s.blockRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToBlockResponse(block)
	return &resp, nil
}

// ListBlocks returns the blocks of a warehouse in code order
func (s *StorageService) ListBlocks(ctx context.Context, tenantID, warehouseID uuid.UUID) ([]BlockResponse, error) {
	blocks, err := s.blockRepo.FindByWarehouse(ctx, tenantID, warehouseID)
	if err != nil {
		return nil, err
	}

	responses := make([]BlockResponse, 0, len(blocks))
	for i := range blocks {
		responses = append(responses, ToBlockResponse(&blocks[i]))
	}
	return responses, nil
}

// DeleteBlock deletes an empty block
func (s *StorageService) DeleteBlock(ctx context.Context, tenantID, id uuid.UUID) error {
	block, err := s.blockRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if block.Used() > 0 {
		return shared.NewDomainError("BLOCK_IN_USE", "Block still holds stock")
	}
	return s.blockRepo.DeleteForTenant(ctx, tenantID, id)
}
