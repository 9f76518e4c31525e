// internal/domain/common/types.go
package common

import "time"

// TimeRange is a shared from/to filter. Nil bounds are open ends.
type TimeRange struct {
	From *time.Time
	To   *time.Time
}

// Sort names a column and direction; each domain validates its allowed columns.
type Sort struct {
	Column string
	Order  SortOrder
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Page is offset paging. Number is 1-based; PerPage <= 0 means the
// adapter default.
type Page struct {
	Number  int
	PerPage int
}

// PageResult carries one page of items plus totals.
type PageResult[T any] struct {
	Items      []T
	TotalCount int
	TotalPages int
	Page       int
	PerPage    int
}
