// internal/domain/cart/repository_port.go
package cart

import (
	"context"
	"errors"
)

// Repository is the persistence port for Cart.
//
// Storage (Firestore):
// - collection: Carts
// - docId: customerId__storeId
// - Firestore TTL configured on "expiresAt"
//
// Not-found policy: Get returns (nil, nil) and callers treat nil as
// "no cart yet".
type Repository interface {
	Get(ctx context.Context, customerID, storeID string) (*Cart, error)
	Upsert(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, customerID, storeID string) error
}

var ErrConflict = errors.New("cart: conflict")
