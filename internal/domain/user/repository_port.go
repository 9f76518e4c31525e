// internal/domain/user/repository_port.go
package user

import (
	"context"
	"errors"
)

// Repository is the persistence port for User.
//
// Storage (Firestore):
// - collection: Users
// - docId: Firebase uid
type Repository interface {
	GetByID(ctx context.Context, uid string) (User, error)
	Upsert(ctx context.Context, u User) (User, error)
}

var ErrNotFound = errors.New("user: not found")
