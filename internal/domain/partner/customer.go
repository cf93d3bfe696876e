package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/shared"
)

// Customer is a buyer identified by phone number within a tenant.
// Orders resolve their customer by phone and create one on first use.
type Customer struct {
	shared.TenantAggregateRoot
	Name    string `gorm:"type:varchar(100);not null"`
	Phone   string `gorm:"type:varchar(20);not null;uniqueIndex:idx_customer_tenant_phone,priority:2"`
	Address string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(tenantID uuid.UUID, name, phone, address string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Customer phone cannot be empty")
	}

	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Phone:               phone,
		Address:             address,
	}, nil
}

// Update changes the customer name and address. Phone is the identity
// of the customer and cannot change.
func (c *Customer) Update(name, address string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}

	c.Name = name
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}
