package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/catalog"
	"github.com/wims/backend/internal/domain/shared"
)

// CatalogService manages categories and items
type CatalogService struct {
	categoryRepo catalog.CategoryRepository
	itemRepo     catalog.ItemRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(categoryRepo catalog.CategoryRepository, itemRepo catalog.ItemRepository) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
	}
}

// CreateCategory creates a category with a unique name per tenant
func (s *CatalogService) CreateCategory(ctx context.Context, tenantID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	existing, err := s.categoryRepo.FindByName(ctx, tenantID, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	category, err := catalog.NewCategory(tenantID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// UpdateCategory updates a category
func (s *CatalogService) UpdateCategory(ctx context.Context, tenantID, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// GetCategory returns one category
func (s *CatalogService) GetCategory(ctx context.Context, tenantID, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// ListCategories returns categories with pagination
func (s *CatalogService) ListCategories(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[CategoryResponse], error) {
	categories, err := s.categoryRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[CategoryResponse]{}, err
	}
	total, err := s.categoryRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[CategoryResponse]{}, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, ToCategoryResponse(&categories[i]))
	}
	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}

// DeleteCategory deletes a category that has no items left
func (s *CatalogService) DeleteCategory(ctx context.Context, tenantID, id uuid.UUID) error {
	items, err := s.itemRepo.FindByCategory(ctx, tenantID, id, shared.DefaultFilter())
	if err != nil {
		return err
	}
	if len(items) > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category still has items")
	}
	return s.categoryRepo.DeleteForTenant(ctx, tenantID, id)
}

// CreateItem creates an item with a unique SKU per tenant
func (s *CatalogService) CreateItem(ctx context.Context, tenantID uuid.UUID, req CreateItemRequest) (*ItemResponse, error) {
	if _, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, req.CategoryID); err != nil {
		return nil, err
	}

	taken, err := s.itemRepo.ExistsBySKU(ctx, tenantID, req.SKU)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.ErrAlreadyExists
	}

	item, err := catalog.NewItem(tenantID, req.CategoryID, req.Name, req.SKU, req.CostPrice, req.SellingPrice)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	resp := ToItemResponse(item)
	return &resp, nil
}

// UpdateItem updates an item's name and prices
func (s *CatalogService) UpdateItem(ctx context.Context, tenantID, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := item.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := item.UpdatePrices(req.CostPrice, req.SellingPrice); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	resp := ToItemResponse(item)
	return &resp, nil
}

// GetItem returns one item
func (s *CatalogService) GetItem(ctx context.Context, tenantID, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// ListItems returns items with pagination
func (s *CatalogService) ListItems(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[ItemResponse], error) {
	items, err := s.itemRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[ItemResponse]{}, err
	}
	total, err := s.itemRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[ItemResponse]{}, err
	}

	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToItemResponse(&items[i]))
	}
	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}

// DeleteItem deletes an item
func (s *CatalogService) DeleteItem(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.itemRepo.DeleteForTenant(ctx, tenantID, id)
}
