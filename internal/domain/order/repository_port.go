// internal/domain/order/repository_port.go
package order

import (
	"context"
	"errors"

	common "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/common"
)

// Filter aligns with entity fields.
type Filter struct {
	CustomerID string
	StoreID    string
	VendorID   string
	Statuses   []Status

	Created common.TimeRange
}

type Sort = common.Sort
type SortOrder = common.SortOrder

const (
	SortAsc  SortOrder = common.SortAsc
	SortDesc SortOrder = common.SortDesc
)

// Allowed sort columns.
const (
	SortByCreatedAt string = "createdAt"
)

type Page = common.Page
type PageResult = common.PageResult[Order]

// Repository defines the persistence port for Order.
//
// Creation does not go through this port: orders are only born inside
// the checkout finalize transaction (see usecase.FinalizeStore).
type Repository interface {
	GetByID(ctx context.Context, id string) (Order, error)
	List(ctx context.Context, filter Filter, sort Sort, page Page) (PageResult, error)

	Save(ctx context.Context, o Order) (Order, error)
}

var (
	ErrNotFound = errors.New("order: not found")
	ErrConflict = errors.New("order: conflict")
)
