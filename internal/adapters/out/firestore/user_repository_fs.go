// internal/adapters/out/firestore/user_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	userdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/user"
)

// UserRepositoryFS implements user.Repository using Firestore.
//
// Collection design:
// - collection: Users
// - docId: Firebase uid
type UserRepositoryFS struct {
	Client *firestore.Client
}

func NewUserRepositoryFS(client *firestore.Client) *UserRepositoryFS {
	return &UserRepositoryFS{Client: client}
}

func (r *UserRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("Users")
}

func (r *UserRepositoryFS) GetByID(ctx context.Context, uid string) (userdom.User, error) {
	if r == nil || r.Client == nil {
		return userdom.User{}, errors.New("user_repository_fs: firestore client is nil")
	}

	uid = strings.TrimSpace(uid)
	if uid == "" {
		return userdom.User{}, userdom.ErrNotFound
	}

	snap, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return userdom.User{}, userdom.ErrNotFound
		}
		return userdom.User{}, err
	}
	return docToUser(snap)
}

func (r *UserRepositoryFS) Upsert(ctx context.Context, u userdom.User) (userdom.User, error) {
	if r == nil || r.Client == nil {
		return userdom.User{}, errors.New("user_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(u.ID)
	if uid == "" {
		return userdom.User{}, userdom.ErrNotFound
	}
	u.ID = uid

	if _, err := r.col().Doc(uid).Set(ctx, userToDoc(u)); err != nil {
		return userdom.User{}, err
	}
	return u, nil
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type userDoc struct {
	Email     string    `firestore:"email"`
	Name      string    `firestore:"name"`
	Phone     string    `firestore:"phone"`
	Role      string    `firestore:"role"`
	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func docToUser(snap *firestore.DocumentSnapshot) (userdom.User, error) {
	var d userDoc
	if err := snap.DataTo(&d); err != nil {
		return userdom.User{}, err
	}
	return userdom.User{
		ID:        snap.Ref.ID,
		Email:     d.Email,
		Name:      d.Name,
		Phone:     d.Phone,
		Role:      userdom.Role(d.Role),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}, nil
}

func userToDoc(u userdom.User) userDoc {
	return userDoc{
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}
