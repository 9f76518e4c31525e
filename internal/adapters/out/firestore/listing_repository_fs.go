// internal/adapters/out/firestore/listing_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	listingdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/listing"
)

// ListingRepositoryFS implements listing.Repository using Firestore.
//
// Collection design:
// - collection: Listing (name kept from the mobile app's schema)
// - docId: listing id
// - fields: storeId, vendorId, name, description, unitPrice, quantity,
//   imageUrl, createdAt, updatedAt
type ListingRepositoryFS struct {
	Client *firestore.Client
}

func NewListingRepositoryFS(client *firestore.Client) *ListingRepositoryFS {
	return &ListingRepositoryFS{Client: client}
}

func (r *ListingRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("Listing")
}

func (r *ListingRepositoryFS) GetByID(ctx context.Context, id string) (listingdom.Listing, error) {
	if r == nil || r.Client == nil {
		return listingdom.Listing{}, errors.New("listing_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return listingdom.Listing{}, listingdom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return listingdom.Listing{}, listingdom.ErrNotFound
		}
		return listingdom.Listing{}, err
	}
	return docToListing(snap)
}

// List filters by storeId/vendorId server-side. The InStock filter is
// applied client-side: "quantity > 0" plus any equality filter would
// require a composite index per store, and listing counts per store are
// small.
func (r *ListingRepositoryFS) List(ctx context.Context, filter listingdom.Filter) ([]listingdom.Listing, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("listing_repository_fs: firestore client is nil")
	}

	q := r.col().Query
	if v := strings.TrimSpace(filter.StoreID); v != "" {
		q = q.Where("storeId", "==", v)
	}
	if v := strings.TrimSpace(filter.VendorID); v != "" {
		q = q.Where("vendorId", "==", v)
	}

	it := q.Documents(ctx)
	defer it.Stop()

	items := []listingdom.Listing{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		l, err := docToListing(doc)
		if err != nil {
			return nil, err
		}
		if filter.InStock != nil && l.InStock() != *filter.InStock {
			continue
		}
		items = append(items, l)
	}
	return items, nil
}

func (r *ListingRepositoryFS) Create(ctx context.Context, l listingdom.Listing) (listingdom.Listing, error) {
	if r == nil || r.Client == nil {
		return listingdom.Listing{}, errors.New("listing_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(l.ID)
	var docRef *firestore.DocumentRef
	if id == "" {
		docRef = r.col().NewDoc()
		l.ID = docRef.ID
	} else {
		docRef = r.col().Doc(id)
		l.ID = id
	}

	_, err := docRef.Create(ctx, listingToDoc(l))
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return listingdom.Listing{}, listingdom.ErrConflict
		}
		return listingdom.Listing{}, err
	}
	return l, nil
}

func (r *ListingRepositoryFS) Save(ctx context.Context, l listingdom.Listing) (listingdom.Listing, error) {
	if r == nil || r.Client == nil {
		return listingdom.Listing{}, errors.New("listing_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(l.ID)
	if id == "" {
		return r.Create(ctx, l)
	}
	l.ID = id

	if _, err := r.col().Doc(id).Set(ctx, listingToDoc(l)); err != nil {
		return listingdom.Listing{}, err
	}
	return l, nil
}

func (r *ListingRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("listing_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return listingdom.ErrNotFound
	}
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type listingDoc struct {
	StoreID     string    `firestore:"storeId"`
	VendorID    string    `firestore:"vendorId"`
	Name        string    `firestore:"name"`
	Description string    `firestore:"description"`
	UnitPrice   int64     `firestore:"unitPrice"`
	Quantity    int       `firestore:"quantity"`
	ImageURL    string    `firestore:"imageUrl"`
	CreatedAt   time.Time `firestore:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
}

func docToListing(snap *firestore.DocumentSnapshot) (listingdom.Listing, error) {
	var d listingDoc
	if err := snap.DataTo(&d); err != nil {
		return listingdom.Listing{}, err
	}
	return listingdom.Listing{
		ID:          snap.Ref.ID,
		StoreID:     d.StoreID,
		VendorID:    d.VendorID,
		Name:        d.Name,
		Description: d.Description,
		UnitPrice:   d.UnitPrice,
		Quantity:    d.Quantity,
		ImageURL:    d.ImageURL,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}, nil
}

func listingToDoc(l listingdom.Listing) listingDoc {
	return listingDoc{
		StoreID:     l.StoreID,
		VendorID:    l.VendorID,
		Name:        l.Name,
		Description: l.Description,
		UnitPrice:   l.UnitPrice,
		Quantity:    l.Quantity,
		ImageURL:    l.ImageURL,
		CreatedAt:   l.CreatedAt.UTC(),
		UpdatedAt:   l.UpdatedAt.UTC(),
	}
}
