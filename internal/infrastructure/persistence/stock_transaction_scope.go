package persistence

import (
	"context"

	appinventory "github.com/wims/backend/internal/application/inventory"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/storage"
	"gorm.io/gorm"
)

// GormStockTransactionScope implements the stock movement TransactionScope
// using GORM transactions. All repository operations inside Execute share
// one database transaction.
type GormStockTransactionScope struct {
	db *gorm.DB
}

// NewGormStockTransactionScope creates a new GormStockTransactionScope
func NewGormStockTransactionScope(db *gorm.DB) *GormStockTransactionScope {
	return &GormStockTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormStockTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStockRepositories{tx: tx})
	})
}

// gormStockRepositories provides repositories scoped to one transaction
type gormStockRepositories struct {
	tx *gorm.DB
}

func (r *gormStockRepositories) BlockRepo() storage.BlockRepository {
	return NewGormBlockRepository(r.tx)
}

func (r *gormStockRepositories) InventoryRepo() inventory.InventoryRepository {
	return NewGormInventoryRepository(r.tx)
}

func (r *gormStockRepositories) StockInRepo() inventory.StockInRepository {
	return NewGormStockInRepository(r.tx)
}

func (r *gormStockRepositories) StockOutRepo() inventory.StockOutRepository {
	return NewGormStockOutRepository(r.tx)
}

var _ appinventory.TransactionScope = (*GormStockTransactionScope)(nil)
var _ appinventory.TransactionalRepositories = (*gormStockRepositories)(nil)
