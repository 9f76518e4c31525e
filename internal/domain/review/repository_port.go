// internal/domain/review/repository_port.go
package review

import (
	"context"
	"errors"
)

// Repository is the persistence port for Review.
//
// Storage (Firestore):
// - collection: Review (name kept from the mobile app's schema)
// - docId: review id
type Repository interface {
	ListByStoreID(ctx context.Context, storeID string) ([]Review, error)
	Create(ctx context.Context, r Review) (Review, error)
}

var ErrNotFound = errors.New("review: not found")
