package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/lupon/backend/internal/domain/shared"
)

// sortableColumns limits ORDER BY to known column names. An OrderBy value
// outside the whitelist falls back to the repository's default ordering.
var sortableColumns = map[string]bool{
	"created_at":      true,
	"updated_at":      true,
	"name":            true,
	"code":            true,
	"order_number":    true,
	"sale_number":     true,
	"purchase_number": true,
	"sale_date":       true,
	"purchase_date":   true,
	"order_date":      true,
	"due_date":        true,
	"entry_date":      true,
	"total":           true,
	"pending_balance": true,
}

// applyListing applies ordering and pagination from the filter. Search and
// field filters are repository-specific and applied by the caller.
func applyListing(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	order := defaultOrder
	if filter.OrderBy != "" && sortableColumns[filter.OrderBy] {
		dir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			dir = "DESC"
		}
		order = filter.OrderBy + " " + dir
	}
	query = query.Order(order)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}
