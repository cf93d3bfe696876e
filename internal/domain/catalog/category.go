package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/shared"
)

// Category groups items for reporting and browsing
type Category struct {
	shared.TenantAggregateRoot
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex:idx_category_tenant_name,priority:2"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(tenantID uuid.UUID, name, description string) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}

	return &Category{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Description:         description,
	}, nil
}

// Update changes the category name and description
func (c *Category) Update(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}

	c.Name = name
	c.Description = description
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}
