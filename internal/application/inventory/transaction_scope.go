package inventory

import (
	"context"

	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/storage"
)

// TransactionScope provides transactional access to the repositories a
// stock movement touches. All repository operations inside Execute are
// part of the same database transaction and commit or roll back
// atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped
// to the current transaction. Row level locks taken through the
// ForUpdate finders are held until the transaction ends.
type TransactionalRepositories interface {
	// BlockRepo returns the block repository scoped to the transaction
	BlockRepo() storage.BlockRepository
	// InventoryRepo returns the inventory repository scoped to the transaction
	InventoryRepo() inventory.InventoryRepository
	// StockInRepo returns the inbound record repository scoped to the transaction
	StockInRepo() inventory.StockInRepository
	// StockOutRepo returns the outbound record repository scoped to the transaction
	StockOutRepo() inventory.StockOutRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests and for callers that manage atomicity themselves.
type NoOpTransactionScope struct {
	blockRepo     storage.BlockRepository
	inventoryRepo inventory.InventoryRepository
	stockInRepo   inventory.StockInRepository
	stockOutRepo  inventory.StockOutRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	blockRepo storage.BlockRepository,
	inventoryRepo inventory.InventoryRepository,
	stockInRepo inventory.StockInRepository,
	stockOutRepo inventory.StockOutRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		blockRepo:     blockRepo,
		inventoryRepo: inventoryRepo,
		stockInRepo:   stockInRepo,
		stockOutRepo:  stockOutRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BlockRepo returns the block repository.
func (s *NoOpTransactionScope) BlockRepo() storage.BlockRepository {
	return s.blockRepo
}

// InventoryRepo returns the inventory repository.
func (s *NoOpTransactionScope) InventoryRepo() inventory.InventoryRepository {
	return s.inventoryRepo
}

// StockInRepo returns the inbound record repository.
func (s *NoOpTransactionScope) StockInRepo() inventory.StockInRepository {
	return s.stockInRepo
}

// StockOutRepo returns the outbound record repository.
func (s *NoOpTransactionScope) StockOutRepo() inventory.StockOutRepository {
	return s.stockOutRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
