// internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	orderdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/order"
)

var (
	ErrOrderUsecaseNotConfigured = errors.New("order: usecase is not configured")
	ErrOrderIDEmpty              = errors.New("order: id is empty")
)

// OrderUsecase serves order views and the completion transition.
type OrderUsecase struct {
	orders orderdom.Repository
	now    func() time.Time
}

func NewOrderUsecase(orders orderdom.Repository) *OrderUsecase {
	return &OrderUsecase{
		orders: orders,
		now:    time.Now,
	}
}

// GetByID returns one order. Callers enforce who may see it.
func (u *OrderUsecase) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	if u == nil || u.orders == nil {
		return orderdom.Order{}, ErrOrderUsecaseNotConfigured
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return orderdom.Order{}, ErrOrderIDEmpty
	}
	return u.orders.GetByID(ctx, id)
}

// ListForCustomer returns the customer's orders, newest first,
// optionally filtered by status.
func (u *OrderUsecase) ListForCustomer(ctx context.Context, customerID string, statuses []orderdom.Status, page orderdom.Page) (orderdom.PageResult, error) {
	if u == nil || u.orders == nil {
		return orderdom.PageResult{}, ErrOrderUsecaseNotConfigured
	}
	return u.orders.List(ctx,
		orderdom.Filter{CustomerID: strings.TrimSpace(customerID), Statuses: statuses},
		orderdom.Sort{Column: orderdom.SortByCreatedAt, Order: orderdom.SortDesc},
		page,
	)
}

// ListForVendor returns every order against the vendor's stores.
func (u *OrderUsecase) ListForVendor(ctx context.Context, vendorID string, statuses []orderdom.Status, page orderdom.Page) (orderdom.PageResult, error) {
	if u == nil || u.orders == nil {
		return orderdom.PageResult{}, ErrOrderUsecaseNotConfigured
	}
	return u.orders.List(ctx,
		orderdom.Filter{VendorID: strings.TrimSpace(vendorID), Statuses: statuses},
		orderdom.Sort{Column: orderdom.SortByCreatedAt, Order: orderdom.SortDesc},
		page,
	)
}

// Complete transitions the order to Completed. The domain enforces that
// actorID is a participant and that the transition is one-way.
func (u *OrderUsecase) Complete(ctx context.Context, actorID, orderID string) (orderdom.Order, error) {
	if u == nil || u.orders == nil {
		return orderdom.Order{}, ErrOrderUsecaseNotConfigured
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return orderdom.Order{}, ErrOrderIDEmpty
	}

	o, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return orderdom.Order{}, err
	}
	if err := o.Complete(actorID, u.now()); err != nil {
		return orderdom.Order{}, err
	}

	saved, err := u.orders.Save(ctx, o)
	if err != nil {
		return orderdom.Order{}, err
	}

	log.Printf("[order_uc] completed order=%s by=%s", saved.ID, maskID(actorID))
	return saved, nil
}
