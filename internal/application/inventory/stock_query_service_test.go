package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueryService(f *stockFixture) *StockQueryService {
	return NewStockQueryService(
		&fakeInventoryRepo{store: f.store},
		&fakeStockInRepo{store: f.store},
		&fakeStockOutRepo{store: f.store},
	)
}

func TestStockQueryServiceSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("should break the position down by reason", func(t *testing.T) {
		f := newStockFixture(t, 20)
		queries := newQueryService(f)

		f.inbound(t, "A-01", 10)

		row, ok := f.inventoryIn("A-01", f.item.ID)
		require.True(t, ok)
		for _, out := range []OutboundRequest{
			{InventoryID: row.ID, Quantity: 4, Reason: "sale"},
			{InventoryID: row.ID, Quantity: 2, Reason: "damage"},
		} {
			_, err := f.service.RecordOutbound(ctx, f.tenantID, f.actorID, out)
			require.NoError(t, err)
		}

		summary, err := queries.Summary(ctx, f.tenantID)
		require.NoError(t, err)
		assert.Equal(t, int64(4), summary.OnHand)
		assert.Equal(t, int64(4), summary.Sold)
		assert.Equal(t, int64(2), summary.Damaged)
		assert.Equal(t, int64(0), summary.Transferred)
	})

	t.Run("should report zeroes with no movements", func(t *testing.T) {
		f := newStockFixture(t, 5)
		queries := newQueryService(f)

		summary, err := queries.Summary(ctx, f.tenantID)
		require.NoError(t, err)
		assert.Zero(t, summary.OnHand)
		assert.Zero(t, summary.Sold)
	})
}

func TestStockQueryServiceTotalOnHand(t *testing.T) {
	ctx := context.Background()

	f := newStockFixture(t, 6, 6)
	queries := newQueryService(f)

	f.inbound(t, "A-01", 6)
	f.inbound(t, "B-01", 3)

	total, err := queries.TotalOnHand(ctx, f.tenantID, f.item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(9), total)
}
