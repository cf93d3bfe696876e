package persistence

import (
	"context"

	apptrade "github.com/wims/backend/internal/application/trade"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/partner"
	"github.com/wims/backend/internal/domain/storage"
	"github.com/wims/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormOrderTransactionScope implements the order TransactionScope using
// GORM transactions. The order, its stock deductions and the outbound
// records commit or roll back as one unit.
type GormOrderTransactionScope struct {
	db *gorm.DB
}

// NewGormOrderTransactionScope creates a new GormOrderTransactionScope
func NewGormOrderTransactionScope(db *gorm.DB) *GormOrderTransactionScope {
	return &GormOrderTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormOrderTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormOrderRepositories{tx: tx})
	})
}

// gormOrderRepositories provides repositories scoped to one transaction
type gormOrderRepositories struct {
	tx *gorm.DB
}

func (r *gormOrderRepositories) OrderRepo() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormOrderRepositories) CustomerRepo() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

func (r *gormOrderRepositories) InventoryRepo() inventory.InventoryRepository {
	return NewGormInventoryRepository(r.tx)
}

func (r *gormOrderRepositories) BlockRepo() storage.BlockRepository {
	return NewGormBlockRepository(r.tx)
}

func (r *gormOrderRepositories) StockInRepo() inventory.StockInRepository {
	return NewGormStockInRepository(r.tx)
}

func (r *gormOrderRepositories) StockOutRepo() inventory.StockOutRepository {
	return NewGormStockOutRepository(r.tx)
}

var _ apptrade.TransactionScope = (*GormOrderTransactionScope)(nil)
var _ apptrade.TransactionalRepositories = (*gormOrderRepositories)(nil)
