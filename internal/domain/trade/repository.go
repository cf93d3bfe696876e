package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForTenant finds an order with its lines by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// FindByNumber finds an order by its number within a tenant
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*Order, error)

	// FindByCustomer finds all orders of a customer
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindByDateRange finds orders placed within [start, end)
	FindByDateRange(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]Order, error)

	// FindAllForTenant finds all orders for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Order, error)

	// Save persists the order together with its lines
	Save(ctx context.Context, order *Order) error

	// ExistsByNumber checks whether an order number is already taken
	ExistsByNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error)

	// CountForTenant counts orders matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// SumTotalByDateRange sums order totals for orders placed within [start, end)
	SumTotalByDateRange(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (decimal.Decimal, error)
}
