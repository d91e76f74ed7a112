package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// SharedHelpers holds query helpers used by several repositories
type SharedHelpers struct{}

func NewSharedHelpers() *SharedHelpers {
	return &SharedHelpers{}
}

// ApplyPaginationAndSort orders by sortBy when it is in allowed and applies
// limit and offset. Unknown sort columns fall back to "id".
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int, allowed ...string) *gorm.DB {
	column := "id"
	for _, a := range allowed {
		if a == sortBy {
			column = a
			break
		}
	}

	direction := "asc"
	if strings.EqualFold(sortOrder, "desc") {
		direction = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", column, direction))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
