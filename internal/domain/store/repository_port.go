// internal/domain/store/repository_port.go
package store

import (
	"context"
	"errors"
)

// Filter narrows List results. Empty fields match everything.
type Filter struct {
	VendorID string
	Category string
}

// Repository is the persistence port for Store.
//
// Storage (Firestore):
// - collection: Stores
// - docId: store id
type Repository interface {
	GetByID(ctx context.Context, id string) (Store, error)
	List(ctx context.Context, filter Filter) ([]Store, error)

	Create(ctx context.Context, s Store) (Store, error)
	Save(ctx context.Context, s Store) (Store, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrNotFound = errors.New("store: not found")
	ErrConflict = errors.New("store: conflict")
)
