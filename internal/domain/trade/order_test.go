package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder(uuid.New(), uuid.New(), "AB12CD34")
	require.NoError(t, err)
	return order
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending order", func(t *testing.T) {
		order := newTestOrder(t)

		assert.Equal(t, OrderStatusPending, order.Status)
		assert.Equal(t, "AB12CD34", order.Number)
		assert.True(t, order.Total.IsZero())
	})

	t.Run("should reject missing customer", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), uuid.Nil, "AB12CD34")
		assert.Error(t, err)
	})

	t.Run("should reject empty number", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), uuid.New(), "")
		assert.Error(t, err)
	})
}

func TestOrderAddItem(t *testing.T) {
	t.Run("should accumulate line totals", func(t *testing.T) {
		order := newTestOrder(t)

		require.NoError(t, order.AddItem(uuid.New(), uuid.New(), 3, decimal.NewFromInt(10)))
		require.NoError(t, order.AddItem(uuid.New(), uuid.New(), 2, decimal.NewFromFloat(2.5)))

		assert.Len(t, order.Items, 2)
		assert.True(t, order.Total.Equal(decimal.NewFromInt(35)))
		assert.Equal(t, int64(5), order.TotalQuantity())
	})

	t.Run("should reject lines on confirmed order", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.AddItem(uuid.New(), uuid.New(), 1, decimal.NewFromInt(10)))
		require.NoError(t, order.Confirm())

		err := order.AddItem(uuid.New(), uuid.New(), 1, decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("should reject invalid line", func(t *testing.T) {
		order := newTestOrder(t)

		assert.Error(t, order.AddItem(uuid.Nil, uuid.New(), 1, decimal.NewFromInt(1)))
		assert.Error(t, order.AddItem(uuid.New(), uuid.New(), 0, decimal.NewFromInt(1)))
		assert.Error(t, order.AddItem(uuid.New(), uuid.New(), 1, decimal.NewFromInt(-1)))
	})
}

func TestOrderTransitions(t *testing.T) {
	newConfirmable := func(t *testing.T) *Order {
		order := newTestOrder(t)
		require.NoError(t, order.AddItem(uuid.New(), uuid.New(), 1, decimal.NewFromInt(10)))
		return order
	}

	t.Run("should follow pending confirmed shipped", func(t *testing.T) {
		order := newConfirmable(t)

		require.NoError(t, order.Confirm())
		assert.Equal(t, OrderStatusConfirmed, order.Status)

		require.NoError(t, order.Ship())
		assert.Equal(t, OrderStatusShipped, order.Status)
	})

	t.Run("should reject confirming an empty order", func(t *testing.T) {
		order := newTestOrder(t)
		assert.Error(t, order.Confirm())
	})

	t.Run("should reject shipping a pending order", func(t *testing.T) {
		order := newConfirmable(t)
		assert.Error(t, order.Ship())
	})

	t.Run("should cancel pending and confirmed orders", func(t *testing.T) {
		pending := newConfirmable(t)
		require.NoError(t, pending.Cancel())
		assert.Equal(t, OrderStatusCancelled, pending.Status)

		confirmed := newConfirmable(t)
		require.NoError(t, confirmed.Confirm())
		require.NoError(t, confirmed.Cancel())
		assert.Equal(t, OrderStatusCancelled, confirmed.Status)
	})

	t.Run("should reject cancelling a shipped order", func(t *testing.T) {
		order := newConfirmable(t)
		require.NoError(t, order.Confirm())
		require.NoError(t, order.Ship())

		assert.Error(t, order.Cancel())
	})
}

func TestGenerateOrderNumber(t *testing.T) {
	t.Run("should produce 8 uppercase alphanumeric characters", func(t *testing.T) {
		number, err := GenerateOrderNumber()

		require.NoError(t, err)
		require.Len(t, number, 8)
		for _, c := range number {
			valid := (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
			assert.True(t, valid, "unexpected character %q", c)
		}
	})

	t.Run("should vary between calls", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 20; i++ {
			number, err := GenerateOrderNumber()
			require.NoError(t, err)
			seen[number] = true
		}
		assert.Greater(t, len(seen), 1)
	})
}

func TestOrderRejectedError(t *testing.T) {
	itemID := uuid.New()
	err := NewOrderRejectedError(2, itemID, 5, 2)

	assert.Equal(t, 2, err.LineIndex)
	assert.Equal(t, itemID, err.ItemID)
	assert.Equal(t, int64(5), err.Requested)
	assert.Equal(t, int64(2), err.Available)
	assert.NotEmpty(t, err.Error())
}
