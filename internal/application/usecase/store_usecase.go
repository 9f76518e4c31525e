// internal/application/usecase/store_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	storedom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/store"
	userdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/user"
)

var (
	ErrStoreUsecaseNotConfigured = errors.New("store: usecase is not configured")
	ErrStoreNotVendor            = errors.New("store: caller is not a vendor")
	ErrStoreNotOwner             = errors.New("store: caller does not own this store")
)

// StoreUsecase owns vendor-side store management plus public reads.
type StoreUsecase struct {
	stores storedom.Repository
	users  userdom.Repository
	now    func() time.Time
	newID  func() string
}

func NewStoreUsecase(stores storedom.Repository, users userdom.Repository) *StoreUsecase {
	return &StoreUsecase{
		stores: stores,
		users:  users,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// CreateStoreInput mirrors the vendor's create-store form.
type CreateStoreInput struct {
	Name               string
	Description        string
	Category           string
	Opening            string
	Closing            string
	IsGreenParticipant bool
}

// Create opens a new shopfront for the vendor.
func (u *StoreUsecase) Create(ctx context.Context, vendorID string, in CreateStoreInput) (storedom.Store, error) {
	if u == nil || u.stores == nil || u.users == nil {
		return storedom.Store{}, ErrStoreUsecaseNotConfigured
	}

	vendor, err := u.users.GetByID(ctx, strings.TrimSpace(vendorID))
	if err != nil {
		return storedom.Store{}, err
	}
	if !vendor.IsVendor() {
		return storedom.Store{}, ErrStoreNotVendor
	}

	s, err := storedom.New(u.newID(), vendor.ID, in.Name, in.Description, in.Category, in.Opening, in.Closing, in.IsGreenParticipant, u.now())
	if err != nil {
		return storedom.Store{}, err
	}

	created, err := u.stores.Create(ctx, s)
	if err != nil {
		return storedom.Store{}, err
	}
	log.Printf("[store_uc] created store=%s vendor=%s", created.ID, maskID(vendor.ID))
	return created, nil
}

// Update applies a patch to the vendor's own store.
func (u *StoreUsecase) Update(ctx context.Context, vendorID, storeID string, p storedom.Patch) (storedom.Store, error) {
	if u == nil || u.stores == nil {
		return storedom.Store{}, ErrStoreUsecaseNotConfigured
	}

	s, err := u.stores.GetByID(ctx, strings.TrimSpace(storeID))
	if err != nil {
		return storedom.Store{}, err
	}
	if s.VendorID != strings.TrimSpace(vendorID) {
		return storedom.Store{}, ErrStoreNotOwner
	}

	if err := s.Apply(p, u.now()); err != nil {
		return storedom.Store{}, err
	}
	return u.stores.Save(ctx, s)
}

// GetByID is the public store read.
func (u *StoreUsecase) GetByID(ctx context.Context, id string) (storedom.Store, error) {
	if u == nil || u.stores == nil {
		return storedom.Store{}, ErrStoreUsecaseNotConfigured
	}
	return u.stores.GetByID(ctx, strings.TrimSpace(id))
}

// List returns stores, optionally narrowed by category or vendor.
func (u *StoreUsecase) List(ctx context.Context, filter storedom.Filter) ([]storedom.Store, error) {
	if u == nil || u.stores == nil {
		return nil, ErrStoreUsecaseNotConfigured
	}
	return u.stores.List(ctx, filter)
}
