// internal/domain/user/entity.go
package user

import (
	"errors"
	"strings"
	"time"
)

// Role distinguishes the two sides of the marketplace.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
)

var (
	ErrInvalidID    = errors.New("user: invalid id")
	ErrInvalidEmail = errors.New("user: invalid email")
	ErrInvalidRole  = errors.New("user: invalid role")
)

// User is the profile document for one Firebase account.
// docId = Firebase uid.
type User struct {
	ID    string
	Email string
	Name  string
	Phone string
	Role  Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Patch represents partial updates. A nil field means "no change".
type Patch struct {
	Name  *string
	Phone *string
}

func New(uid, email, name, phone string, role Role, now time.Time) (User, error) {
	u := User{
		ID:        strings.TrimSpace(uid),
		Email:     strings.TrimSpace(strings.ToLower(email)),
		Name:      strings.TrimSpace(name),
		Phone:     strings.TrimSpace(phone),
		Role:      role,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if err := u.validate(); err != nil {
		return User{}, err
	}
	return u, nil
}

func (u *User) Apply(p Patch, now time.Time) error {
	if u == nil {
		return ErrInvalidID
	}
	if p.Name != nil {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Phone != nil {
		u.Phone = strings.TrimSpace(*p.Phone)
	}
	u.UpdatedAt = now.UTC()
	return u.validate()
}

func (u User) IsVendor() bool {
	return u.Role == RoleVendor
}

func (u User) validate() error {
	if u.ID == "" {
		return ErrInvalidID
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if u.Role != RoleCustomer && u.Role != RoleVendor {
		return ErrInvalidRole
	}
	return nil
}
