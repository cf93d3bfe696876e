package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/shared"
)

// ProfitLossRepository defines the interface for report persistence
type ProfitLossRepository interface {
	// FindByID finds a report row by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProfitLossReport, error)

	// FindByItemAndDate finds the report row for an item on a day
	FindByItemAndDate(ctx context.Context, tenantID, itemID uuid.UUID, date time.Time) (*ProfitLossReport, error)

	// FindByDate finds all report rows for a day
	FindByDate(ctx context.Context, tenantID uuid.UUID, date time.Time, filter shared.Filter) ([]ProfitLossReport, error)

	// FindByDateRange finds report rows within [start, end)
	FindByDateRange(ctx context.Context, tenantID uuid.UUID, start, end time.Time, filter shared.Filter) ([]ProfitLossReport, error)

	// FindByItem finds report rows for an item across days
	FindByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]ProfitLossReport, error)

	// Save creates or overwrites a report row
	Save(ctx context.Context, r *ProfitLossReport) error

	// CountForTenant counts report rows matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
