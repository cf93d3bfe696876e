package trade

import (
	"context"

	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/partner"
	"github.com/wims/backend/internal/domain/storage"
	"github.com/wims/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to everything order
// placement touches. The order, its stock deductions, the freed block
// capacity and the outbound records commit or roll back as one unit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped
// to the current transaction.
type TransactionalRepositories interface {
	// OrderRepo returns the order repository scoped to the transaction
	OrderRepo() trade.OrderRepository
	// CustomerRepo returns the customer repository scoped to the transaction
	CustomerRepo() partner.CustomerRepository
	// InventoryRepo returns the inventory repository scoped to the transaction
	InventoryRepo() inventory.InventoryRepository
	// BlockRepo returns the block repository scoped to the transaction
	BlockRepo() storage.BlockRepository
	// StockInRepo returns the inbound record repository scoped to the transaction
	StockInRepo() inventory.StockInRepository
	// StockOutRepo returns the outbound record repository scoped to the transaction
	StockOutRepo() inventory.StockOutRepository
}

// NoOpTransactionScope runs the function without a real transaction.
type NoOpTransactionScope struct {
	orderRepo     trade.OrderRepository
	customerRepo  partner.CustomerRepository
	inventoryRepo inventory.InventoryRepository
	blockRepo     storage.BlockRepository
	stockInRepo   inventory.StockInRepository
	stockOutRepo  inventory.StockOutRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	orderRepo trade.OrderRepository,
	customerRepo partner.CustomerRepository,
	inventoryRepo inventory.InventoryRepository,
	blockRepo storage.BlockRepository,
	stockInRepo inventory.StockInRepository,
	stockOutRepo inventory.StockOutRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:     orderRepo,
		customerRepo:  customerRepo,
		inventoryRepo: inventoryRepo,
		blockRepo:     blockRepo,
		stockInRepo:   stockInRepo,
		stockOutRepo:  stockOutRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() trade.OrderRepository { return s.orderRepo }

// CustomerRepo returns the customer repository.
func (s *NoOpTransactionScope) CustomerRepo() partner.CustomerRepository { return s.customerRepo }

// InventoryRepo returns the inventory repository.
func (s *NoOpTransactionScope) InventoryRepo() inventory.InventoryRepository {
	return s.inventoryRepo
}

// BlockRepo returns the block repository.
func (s *NoOpTransactionScope) BlockRepo() storage.BlockRepository { return s.blockRepo }

// StockInRepo returns the inbound record repository.
func (s *NoOpTransactionScope) StockInRepo() inventory.StockInRepository { return s.stockInRepo }

// StockOutRepo returns the outbound record repository.
func (s *NoOpTransactionScope) StockOutRepo() inventory.StockOutRepository { return s.stockOutRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
