package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/report"
	"github.com/wims/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProfitLossRepository implements ProfitLossRepository using GORM
type GormProfitLossRepository struct {
	db *gorm.DB
}

// NewGormProfitLossRepository creates a new GormProfitLossRepository
func NewGormProfitLossRepository(db *gorm.DB) *GormProfitLossRepository {
	return &GormProfitLossRepository{db: db}
}

// FindByID finds a report row by its ID
func (r *GormProfitLossRepository) FindByID(ctx context.Context, id uuid.UUID) (*report.ProfitLossReport, error) {
	var row report.ProfitLossReport
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// FindByItemAndDate finds the report row for an item on a day
func (r *GormProfitLossRepository) FindByItemAndDate(ctx context.Context, tenantID, itemID uuid.UUID, date time.Time) (*report.ProfitLossReport, error) {
	var row report.ProfitLossReport
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND item_id = ? AND report_date = ?", tenantID, itemID, dateOnly(date)).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// FindByDate finds all report rows for a day
func (r *GormProfitLossRepository) FindByDate(ctx context.Context, tenantID uuid.UUID, date time.Time, filter shared.Filter) ([]report.ProfitLossReport, error) {
	var rows []report.ProfitLossReport
	query := applyFilter(
		r.db.WithContext(ctx).Model(&report.ProfitLossReport{}).
			Where("tenant_id = ? AND report_date = ?", tenantID, dateOnly(date)),
		filter,
	)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByDateRange finds report rows within [start, end)
func (r *GormProfitLossRepository) FindByDateRange(ctx context.Context, tenantID uuid.UUID, start, end time.Time, filter shared.Filter) ([]report.ProfitLossReport, error) {
	var rows []report.ProfitLossReport
	query := applyFilter(
		r.db.WithContext(ctx).Model(&report.ProfitLossReport{}).
			Where("tenant_id = ? AND report_date >= ? AND report_date < ?", tenantID, dateOnly(start), dateOnly(end)),
		filter,
	)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByItem finds report rows for an item across days
func (r *GormProfitLossRepository) FindByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]report.ProfitLossReport, error) {
	var rows []report.ProfitLossReport
	query := applyFilter(
		r.db.WithContext(ctx).Model(&report.ProfitLossReport{}).
			Where("tenant_id = ? AND item_id = ?", tenantID, itemID),
		filter,
	)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Save creates or overwrites a report row
func (r *GormProfitLossRepository) Save(ctx context.Context, row *report.ProfitLossReport) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// CountForTenant counts report rows matching the filter
func (r *GormProfitLossRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&report.ProfitLossReport{}).Where("tenant_id = ?", tenantID)
	if itemID, ok := filter.Filters["item_id"]; ok {
		query = query.Where("item_id = ?", itemID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// dateOnly normalizes a timestamp to midnight UTC so comparisons hit
// the date column uniformly.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var _ report.ProfitLossRepository = (*GormProfitLossRepository)(nil)
