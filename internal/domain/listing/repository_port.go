// internal/domain/listing/repository_port.go
package listing

import (
	"context"
	"errors"
)

// Filter narrows List results. Empty string fields match everything;
// InStock nil matches both stocked and sold-out listings.
type Filter struct {
	StoreID  string
	VendorID string
	InStock  *bool
}

// Repository is the persistence port for Listing.
//
// Storage (Firestore):
// - collection: Listing (name kept from the mobile app's schema)
// - docId: listing id
type Repository interface {
	GetByID(ctx context.Context, id string) (Listing, error)
	List(ctx context.Context, filter Filter) ([]Listing, error)

	Create(ctx context.Context, l Listing) (Listing, error)
	Save(ctx context.Context, l Listing) (Listing, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrNotFound = errors.New("listing: not found")
	ErrConflict = errors.New("listing: conflict")
)
