// internal/application/usecase/listing_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	listingdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/listing"
	storedom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/store"
)

var (
	ErrListingUsecaseNotConfigured = errors.New("listing: usecase is not configured")
	ErrListingNotOwner             = errors.New("listing: caller does not own this listing")
)

// ListingUsecase owns vendor-side listing management plus public reads.
type ListingUsecase struct {
	listings listingdom.Repository
	stores   storedom.Repository
	images   ListingImageStore // optional
	now      func() time.Time
	newID    func() string
}

func NewListingUsecase(listings listingdom.Repository, stores storedom.Repository, images ListingImageStore) *ListingUsecase {
	return &ListingUsecase{
		listings: listings,
		stores:   stores,
		images:   images, // nil disables image upload
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// CreateListingInput mirrors the vendor's create-listing form.
// UnitPrice is in minor units.
type CreateListingInput struct {
	StoreID     string
	Name        string
	Description string
	UnitPrice   int64
	Quantity    int
}

// Create adds a listing under the vendor's own store.
func (u *ListingUsecase) Create(ctx context.Context, vendorID string, in CreateListingInput) (listingdom.Listing, error) {
	if u == nil || u.listings == nil || u.stores == nil {
		return listingdom.Listing{}, ErrListingUsecaseNotConfigured
	}

	st, err := u.stores.GetByID(ctx, strings.TrimSpace(in.StoreID))
	if err != nil {
		return listingdom.Listing{}, err
	}
	if st.VendorID != strings.TrimSpace(vendorID) {
		return listingdom.Listing{}, ErrListingNotOwner
	}

	l, err := listingdom.New(u.newID(), st.ID, st.VendorID, in.Name, in.Description, in.UnitPrice, in.Quantity, u.now())
	if err != nil {
		return listingdom.Listing{}, err
	}

	created, err := u.listings.Create(ctx, l)
	if err != nil {
		return listingdom.Listing{}, err
	}
	log.Printf("[listing_uc] created listing=%s store=%s qty=%d", created.ID, created.StoreID, created.Quantity)
	return created, nil
}

// Update applies a patch to the vendor's own listing.
func (u *ListingUsecase) Update(ctx context.Context, vendorID, listingID string, p listingdom.Patch) (listingdom.Listing, error) {
	if u == nil || u.listings == nil {
		return listingdom.Listing{}, ErrListingUsecaseNotConfigured
	}

	l, err := u.ownedListing(ctx, vendorID, listingID)
	if err != nil {
		return listingdom.Listing{}, err
	}
	if err := l.Apply(p, u.now()); err != nil {
		return listingdom.Listing{}, err
	}
	return u.listings.Save(ctx, l)
}

// Delete removes the vendor's own listing.
func (u *ListingUsecase) Delete(ctx context.Context, vendorID, listingID string) error {
	if u == nil || u.listings == nil {
		return ErrListingUsecaseNotConfigured
	}
	l, err := u.ownedListing(ctx, vendorID, listingID)
	if err != nil {
		return err
	}
	return u.listings.Delete(ctx, l.ID)
}

// AttachImage uploads an image and records its URL on the listing.
func (u *ListingUsecase) AttachImage(ctx context.Context, vendorID, listingID, contentType string, data []byte) (listingdom.Listing, error) {
	if u == nil || u.listings == nil {
		return listingdom.Listing{}, ErrListingUsecaseNotConfigured
	}
	if u.images == nil {
		return listingdom.Listing{}, errors.New("listing: image store is not configured")
	}

	l, err := u.ownedListing(ctx, vendorID, listingID)
	if err != nil {
		return listingdom.Listing{}, err
	}

	url, err := u.images.UploadListingImage(ctx, l.ID, contentType, data)
	if err != nil {
		return listingdom.Listing{}, fmt.Errorf("listing: image upload failed: %w", err)
	}

	if err := l.Apply(listingdom.Patch{ImageURL: &url}, u.now()); err != nil {
		return listingdom.Listing{}, err
	}
	return u.listings.Save(ctx, l)
}

// GetByID is the public listing read.
func (u *ListingUsecase) GetByID(ctx context.Context, id string) (listingdom.Listing, error) {
	if u == nil || u.listings == nil {
		return listingdom.Listing{}, ErrListingUsecaseNotConfigured
	}
	return u.listings.GetByID(ctx, strings.TrimSpace(id))
}

// ListForStore returns a store's listings for the storefront.
func (u *ListingUsecase) ListForStore(ctx context.Context, storeID string) ([]listingdom.Listing, error) {
	if u == nil || u.listings == nil {
		return nil, ErrListingUsecaseNotConfigured
	}
	return u.listings.List(ctx, listingdom.Filter{StoreID: strings.TrimSpace(storeID)})
}

// ListForVendor returns the vendor's listings, optionally split by
// stock (the manage-listing tabs).
func (u *ListingUsecase) ListForVendor(ctx context.Context, vendorID string, inStock *bool) ([]listingdom.Listing, error) {
	if u == nil || u.listings == nil {
		return nil, ErrListingUsecaseNotConfigured
	}
	return u.listings.List(ctx, listingdom.Filter{VendorID: strings.TrimSpace(vendorID), InStock: inStock})
}

func (u *ListingUsecase) ownedListing(ctx context.Context, vendorID, listingID string) (listingdom.Listing, error) {
	l, err := u.listings.GetByID(ctx, strings.TrimSpace(listingID))
	if err != nil {
		return listingdom.Listing{}, err
	}
	if l.VendorID != strings.TrimSpace(vendorID) {
		return listingdom.Listing{}, ErrListingNotOwner
	}
	return l, nil
}
