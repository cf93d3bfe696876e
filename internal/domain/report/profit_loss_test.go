package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfitLossReport(t *testing.T) {
	tenantID := uuid.New()
	itemID := uuid.New()
	day := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

	t.Run("should compute profit as sales minus purchases", func(t *testing.T) {
		r, err := NewProfitLossReport(tenantID, itemID, day, 10, 4, decimal.NewFromInt(30), decimal.NewFromInt(50))

		require.NoError(t, err)
		assert.True(t, r.PurchaseAmount.Equal(decimal.NewFromInt(30)))
		assert.True(t, r.SalesAmount.Equal(decimal.NewFromInt(50)))
		assert.True(t, r.Profit.Equal(decimal.NewFromInt(20)))
	})

	t.Run("should report zero profit when revenue equals cost", func(t *testing.T) {
		// 10 units in at 2.00 and 4 sold at 5.00 both amount to 20.00
		r, err := NewProfitLossReport(tenantID, itemID, day, 10, 4, decimal.NewFromInt(20), decimal.NewFromInt(20))

		require.NoError(t, err)
		assert.True(t, r.PurchaseAmount.Equal(decimal.NewFromInt(20)))
		assert.True(t, r.SalesAmount.Equal(decimal.NewFromInt(20)))
		assert.True(t, r.Profit.IsZero())
	})

	t.Run("should allow negative profit when the day sold below cost", func(t *testing.T) {
		r, err := NewProfitLossReport(tenantID, itemID, day, 10, 2, decimal.NewFromInt(30), decimal.NewFromInt(6))

		require.NoError(t, err)
		assert.True(t, r.Profit.Equal(decimal.NewFromInt(-24)))
	})

	t.Run("should truncate the report date to the day", func(t *testing.T) {
		r, err := NewProfitLossReport(tenantID, itemID, day, 1, 0, decimal.NewFromInt(1), decimal.Zero)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), r.ReportDate)
	})

	t.Run("should reject negative quantities", func(t *testing.T) {
		_, err := NewProfitLossReport(tenantID, itemID, day, -1, 0, decimal.Zero, decimal.Zero)
		assert.Error(t, err)

		_, err = NewProfitLossReport(tenantID, itemID, day, 0, -1, decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("should report movement only when stock moved", func(t *testing.T) {
		idle, err := NewProfitLossReport(tenantID, itemID, day, 0, 0, decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		assert.False(t, idle.HasMovement())

		busy, err := NewProfitLossReport(tenantID, itemID, day, 0, 2, decimal.Zero, decimal.NewFromInt(10))
		require.NoError(t, err)
		assert.True(t, busy.HasMovement())
	})
}

func TestProfitLossRefresh(t *testing.T) {
	t.Run("should overwrite previous figures", func(t *testing.T) {
		r, err := NewProfitLossReport(uuid.New(), uuid.New(), time.Now(), 10, 4, decimal.NewFromInt(30), decimal.NewFromInt(20))
		require.NoError(t, err)

		require.NoError(t, r.Refresh(12, 6, decimal.NewFromInt(36), decimal.NewFromInt(30)))

		assert.Equal(t, int64(12), r.InboundQuantity)
		assert.Equal(t, int64(6), r.SoldQuantity)
		assert.True(t, r.PurchaseAmount.Equal(decimal.NewFromInt(36)))
		assert.True(t, r.SalesAmount.Equal(decimal.NewFromInt(30)))
		assert.True(t, r.Profit.Equal(decimal.NewFromInt(-6)))
	})

	t.Run("should be stable across repeated refreshes with same inputs", func(t *testing.T) {
		r, err := NewProfitLossReport(uuid.New(), uuid.New(), time.Now(), 10, 4, decimal.NewFromInt(30), decimal.NewFromInt(50))
		require.NoError(t, err)

		require.NoError(t, r.Refresh(10, 4, decimal.NewFromInt(30), decimal.NewFromInt(50)))
		require.NoError(t, r.Refresh(10, 4, decimal.NewFromInt(30), decimal.NewFromInt(50)))

		assert.True(t, r.Profit.Equal(decimal.NewFromInt(20)))
		assert.True(t, r.PurchaseAmount.Equal(decimal.NewFromInt(30)))
	})
}
