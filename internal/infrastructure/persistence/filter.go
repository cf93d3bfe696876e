package persistence

import (
	"strings"

	"github.com/wims/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// allowedOrderColumns guards ORDER BY against injection through the
// filter. Only plain column names listed here may be used for sorting.
var allowedOrderColumns = map[string]bool{
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"code":        true,
	"sku":         true,
	"phone":       true,
	"number":      true,
	"quantity":    true,
	"capacity":    true,
	"status":      true,
	"placed_at":   true,
	"occurred_at": true,
	"report_date": true,
	"total":       true,
}

// applyFilter applies pagination and ordering from the filter to the query.
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" && allowedOrderColumns[filter.OrderBy] {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}
