package trade

import (
	"bytes"
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/catalog"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/partner"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/domain/trade"
)

// maxNumberAttempts bounds the retries when a generated order number collides
const maxNumberAttempts = 5

// OrderService places and manages customer orders
type OrderService struct {
	txScope  TransactionScope
	itemRepo catalog.ItemRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(txScope TransactionScope, itemRepo catalog.ItemRepository) *OrderService {
	return &OrderService{
		txScope:  txScope,
		itemRepo: itemRepo,
	}
}

// PlaceOrder fulfills an order in a single transaction. The customer is
// resolved by phone and created on first use. Lines are processed in
// ascending inventory row ID so concurrent orders take their row locks
// in the same order; each line remembers its position in the request,
// and a rejection reports that original position. If any line cannot
// be covered the transaction rolls back, no stock moves and the order
// is not persisted; the error is a *trade.OrderRejectedError naming
// the failing line.
func (s *OrderService) PlaceOrder(ctx context.Context, tenantID, actorID uuid.UUID, req PlaceOrderRequest) (*OrderResponse, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must have at least one line")
	}

	lines := make([]indexedLine, len(req.Lines))
	for i := range req.Lines {
		lines[i] = indexedLine{index: i, OrderLineRequest: req.Lines[i]}
	}
	sort.Slice(lines, func(i, j int) bool {
		return bytes.Compare(lines[i].InventoryID[:], lines[j].InventoryID[:]) < 0
	})

	var order *trade.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		customer, err := s.resolveCustomer(ctx, repos, tenantID, req)
		if err != nil {
			return err
		}

		number, err := s.uniqueOrderNumber(ctx, repos, tenantID)
		if err != nil {
			return err
		}

		order, err = trade.NewOrder(tenantID, customer.ID, number)
		if err != nil {
			return err
		}
		if actorID != uuid.Nil {
			order.SetCreatedBy(actorID)
		}

		for _, line := range lines {
			if err := s.fulfillLine(ctx, repos, tenantID, actorID, order, line); err != nil {
				return err
			}
		}

		if err := order.Confirm(); err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	resp := ToOrderResponse(order)
	return &resp, nil
}

// resolveCustomer finds the customer by phone or creates one
func (s *OrderService) resolveCustomer(ctx context.Context, repos TransactionalRepositories, tenantID uuid.UUID, req PlaceOrderRequest) (*partner.Customer, error) {
	customer, err := repos.CustomerRepo().FindByPhone(ctx, tenantID, req.CustomerPhone)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	customer, err = partner.NewCustomer(tenantID, req.CustomerName, req.CustomerPhone, req.CustomerAddress)
	if err != nil {
		return nil, err
	}
	if err := repos.CustomerRepo().Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// uniqueOrderNumber generates an order number that is free in the tenant
func (s *OrderService) uniqueOrderNumber(ctx context.Context, repos TransactionalRepositories, tenantID uuid.UUID) (string, error) {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number, err := trade.GenerateOrderNumber()
		if err != nil {
			return "", err
		}
		taken, err := repos.OrderRepo().ExistsByNumber(ctx, tenantID, number)
		if err != nil {
			return "", err
		}
		if !taken {
			return number, nil
		}
	}
	return "", shared.ErrDuplicateKey
}

// indexedLine pairs a requested line with its position in the request
// so rejections can name the line as the caller sent it
type indexedLine struct {
	index int
	OrderLineRequest
}

// fulfillLine locks the inventory row, withdraws the stock, frees the
// block capacity and records the outbound movement for one line.
func (s *OrderService) fulfillLine(ctx context.Context, repos TransactionalRepositories, tenantID, actorID uuid.UUID, order *trade.Order, line indexedLine) error {
	inv, err := repos.InventoryRepo().FindByIDForUpdate(ctx, tenantID, line.InventoryID)
	if err != nil {
		return err
	}

	if !inv.CanFulfill(line.Quantity) {
		return trade.NewOrderRejectedError(line.index, inv.ItemID, line.Quantity, inv.Quantity)
	}
	if err := inv.Withdraw(line.Quantity); err != nil {
		return err
	}
	if err := repos.InventoryRepo().Save(ctx, inv); err != nil {
		return err
	}

	block, err := repos.BlockRepo().FindByIDForUpdate(ctx, tenantID, inv.BlockID)
	if err != nil {
		return err
	}
	if err := block.Release(line.Quantity); err != nil {
		return err
	}
	if err := repos.BlockRepo().Save(ctx, block); err != nil {
		return err
	}

	record, err := inventory.NewStockOut(tenantID, actorID, inv.ItemID, inv.BlockID, line.Quantity, line.SellingPrice, inventory.ReasonSale)
	if err != nil {
		return err
	}
	if err := repos.StockOutRepo().Create(ctx, record); err != nil {
		return err
	}

	return order.AddItem(inv.ItemID, inv.ID, line.Quantity, line.SellingPrice)
}

// GetByID returns an order with its lines
func (s *OrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	var resp *OrderResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		r := ToOrderResponse(order)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// List returns orders for a tenant with pagination
func (s *OrderService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[OrderResponse], error) {
	var page shared.Paginated[OrderResponse]
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		orders, err := repos.OrderRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		total, err := repos.OrderRepo().CountForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}

		responses := make([]OrderResponse, 0, len(orders))
		for i := range orders {
			responses = append(responses, ToOrderResponse(&orders[i]))
		}
		page = shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
		return nil
	})
	return page, err
}

// Ship marks a confirmed order as shipped
func (s *OrderService) Ship(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, tenantID, orderID, func(o *trade.Order) error { return o.Ship() })
}

// Cancel cancels an order and returns its stock to the blocks it came
// from. Each restocked line appends an inbound record so the movement
// log keeps adding up to the stored counters.
func (s *OrderService) Cancel(ctx context.Context, tenantID, actorID, orderID uuid.UUID) (*OrderResponse, error) {
	var order *trade.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if err := order.Cancel(); err != nil {
			return err
		}

		for i := range order.Items {
			if err := s.restockLine(ctx, repos, tenantID, actorID, &order.Items[i]); err != nil {
				return err
			}
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	resp := ToOrderResponse(order)
	return &resp, nil
}

// restockLine puts a cancelled line's quantity back into its inventory row
func (s *OrderService) restockLine(ctx context.Context, repos TransactionalRepositories, tenantID, actorID uuid.UUID, line *trade.OrderItem) error {
	inv, err := repos.InventoryRepo().FindByIDForUpdate(ctx, tenantID, line.InventoryID)
	if err != nil {
		return err
	}
	if err := inv.Deposit(line.Quantity); err != nil {
		return err
	}
	if err := repos.InventoryRepo().Save(ctx, inv); err != nil {
		return err
	}

	block, err := repos.BlockRepo().FindByIDForUpdate(ctx, tenantID, inv.BlockID)
	if err != nil {
		return err
	}
	if err := block.Reserve(line.Quantity); err != nil {
		return err
	}
	if err := repos.BlockRepo().Save(ctx, block); err != nil {
		return err
	}

	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, inv.ItemID)
	if err != nil {
		return err
	}
	record, err := inventory.NewStockIn(tenantID, actorID, inv.ItemID, inv.BlockID, line.Quantity, item.CostPrice)
	if err != nil {
		return err
	}
	return repos.StockInRepo().Create(ctx, record)
}

func (s *OrderService) transition(ctx context.Context, tenantID, orderID uuid.UUID, fn func(*trade.Order) error) (*OrderResponse, error) {
	var order *trade.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if err := fn(order); err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	resp := ToOrderResponse(order)
	return &resp, nil
}
