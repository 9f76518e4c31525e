// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	cartdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/cart"
	listingdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/listing"
)

var (
	ErrCartUsecaseNotConfigured = errors.New("cart: usecase is not configured")
	ErrCartScopeEmpty           = errors.New("cart: customerId/storeId is empty")
	ErrCartListingWrongStore    = errors.New("cart: listing belongs to another store")
)

// CartUsecase owns cart mutations. Every mutation is persisted
// immediately; the cart doc is the single source of truth across
// devices.
type CartUsecase struct {
	carts    cartdom.Repository
	listings listingdom.Repository
	now      func() time.Time
}

func NewCartUsecase(carts cartdom.Repository, listings listingdom.Repository) *CartUsecase {
	return &CartUsecase{
		carts:    carts,
		listings: listings,
		now:      time.Now,
	}
}

// Get returns the customer's cart for the store. A missing doc is
// returned as a fresh empty cart (not persisted until first mutation).
func (u *CartUsecase) Get(ctx context.Context, customerID, storeID string) (*cartdom.Cart, error) {
	if u == nil || u.carts == nil {
		return nil, ErrCartUsecaseNotConfigured
	}
	cid, sid, err := cartScope(customerID, storeID)
	if err != nil {
		return nil, err
	}

	c, err := u.carts.Get(ctx, cid, sid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return cartdom.NewCart(cid, sid, u.now().UTC())
	}
	return c, nil
}

// AddItem puts one unit of the listing into the cart. The listing is
// read fresh so the cap and price snapshot reflect current stock.
func (u *CartUsecase) AddItem(ctx context.Context, customerID, storeID, listingID string) (*cartdom.Cart, error) {
	if u == nil || u.carts == nil || u.listings == nil {
		return nil, ErrCartUsecaseNotConfigured
	}
	cid, sid, err := cartScope(customerID, storeID)
	if err != nil {
		return nil, err
	}

	l, err := u.listings.GetByID(ctx, strings.TrimSpace(listingID))
	if err != nil {
		return nil, err
	}
	if l.StoreID != sid {
		return nil, ErrCartListingWrongStore
	}

	c, err := u.Get(ctx, cid, sid)
	if err != nil {
		return nil, err
	}

	now := u.now().UTC()
	if err := c.Add(l.ID, l.Name, l.UnitPrice, l.Quantity, now); err != nil {
		return nil, err
	}
	if err := u.carts.Upsert(ctx, c); err != nil {
		return nil, fmt.Errorf("cart: upsert failed: %w", err)
	}

	log.Printf("[cart_uc] add OK cart=%s listing=%s lines=%d", c.ID, l.ID, len(c.Items))
	return c, nil
}

// Increase adds one unit to an existing line.
func (u *CartUsecase) Increase(ctx context.Context, customerID, storeID, listingID string) (*cartdom.Cart, error) {
	return u.mutateLine(ctx, customerID, storeID, listingID, (*cartdom.Cart).Increase)
}

// Decrease removes one unit; the line disappears at zero.
func (u *CartUsecase) Decrease(ctx context.Context, customerID, storeID, listingID string) (*cartdom.Cart, error) {
	return u.mutateLine(ctx, customerID, storeID, listingID, (*cartdom.Cart).Decrease)
}

func (u *CartUsecase) mutateLine(ctx context.Context, customerID, storeID, listingID string, op func(*cartdom.Cart, string, time.Time) error) (*cartdom.Cart, error) {
	if u == nil || u.carts == nil {
		return nil, ErrCartUsecaseNotConfigured
	}
	cid, sid, err := cartScope(customerID, storeID)
	if err != nil {
		return nil, err
	}

	c, err := u.carts.Get(ctx, cid, sid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, cartdom.ErrItemNotFound
	}

	if err := op(c, strings.TrimSpace(listingID), u.now().UTC()); err != nil {
		return nil, err
	}
	if err := u.carts.Upsert(ctx, c); err != nil {
		return nil, fmt.Errorf("cart: upsert failed: %w", err)
	}
	return c, nil
}

// SetBringOwnContainer toggles the Go-Green opt-in on the cart.
func (u *CartUsecase) SetBringOwnContainer(ctx context.Context, customerID, storeID string, v bool) (*cartdom.Cart, error) {
	if u == nil || u.carts == nil {
		return nil, ErrCartUsecaseNotConfigured
	}
	cid, sid, err := cartScope(customerID, storeID)
	if err != nil {
		return nil, err
	}

	c, err := u.Get(ctx, cid, sid)
	if err != nil {
		return nil, err
	}
	if err := c.SetBringOwnContainer(v, u.now().UTC()); err != nil {
		return nil, err
	}
	if err := u.carts.Upsert(ctx, c); err != nil {
		return nil, fmt.Errorf("cart: upsert failed: %w", err)
	}
	return c, nil
}

// Clear drops the cart doc entirely.
func (u *CartUsecase) Clear(ctx context.Context, customerID, storeID string) error {
	if u == nil || u.carts == nil {
		return ErrCartUsecaseNotConfigured
	}
	cid, sid, err := cartScope(customerID, storeID)
	if err != nil {
		return err
	}
	return u.carts.Delete(ctx, cid, sid)
}

func cartScope(customerID, storeID string) (string, string, error) {
	cid := strings.TrimSpace(customerID)
	sid := strings.TrimSpace(storeID)
	if cid == "" || sid == "" {
		return "", "", ErrCartScopeEmpty
	}
	return cid, sid, nil
}
