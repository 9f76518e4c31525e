// internal/application/usecase/user_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	userdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/user"
)

var ErrUserUsecaseNotConfigured = errors.New("user: usecase is not configured")

// UserUsecase manages the profile doc behind a Firebase account.
type UserUsecase struct {
	users userdom.Repository
	now   func() time.Time
}

func NewUserUsecase(users userdom.Repository) *UserUsecase {
	return &UserUsecase{
		users: users,
		now:   time.Now,
	}
}

// GetProfile returns the profile for a uid.
func (u *UserUsecase) GetProfile(ctx context.Context, uid string) (userdom.User, error) {
	if u == nil || u.users == nil {
		return userdom.User{}, ErrUserUsecaseNotConfigured
	}
	return u.users.GetByID(ctx, strings.TrimSpace(uid))
}

// RegisterProfileInput mirrors the register screens (one per role).
type RegisterProfileInput struct {
	Email string
	Name  string
	Phone string
	Role  userdom.Role
}

// Register creates the profile doc on first sign-in. Re-registering an
// existing uid keeps the original role and createdAt and only refreshes
// the editable fields.
func (u *UserUsecase) Register(ctx context.Context, uid string, in RegisterProfileInput) (userdom.User, error) {
	if u == nil || u.users == nil {
		return userdom.User{}, ErrUserUsecaseNotConfigured
	}
	uid = strings.TrimSpace(uid)

	existing, err := u.users.GetByID(ctx, uid)
	if err == nil {
		if aErr := existing.Apply(userdom.Patch{Name: &in.Name, Phone: &in.Phone}, u.now()); aErr != nil {
			return userdom.User{}, aErr
		}
		return u.users.Upsert(ctx, existing)
	}
	if !errors.Is(err, userdom.ErrNotFound) {
		return userdom.User{}, err
	}

	nu, err := userdom.New(uid, in.Email, in.Name, in.Phone, in.Role, u.now())
	if err != nil {
		return userdom.User{}, err
	}
	return u.users.Upsert(ctx, nu)
}

// UpdateProfile patches the editable fields.
func (u *UserUsecase) UpdateProfile(ctx context.Context, uid string, p userdom.Patch) (userdom.User, error) {
	if u == nil || u.users == nil {
		return userdom.User{}, ErrUserUsecaseNotConfigured
	}
	usr, err := u.users.GetByID(ctx, strings.TrimSpace(uid))
	if err != nil {
		return userdom.User{}, err
	}
	if err := usr.Apply(p, u.now()); err != nil {
		return userdom.User{}, err
	}
	return u.users.Upsert(ctx, usr)
}
