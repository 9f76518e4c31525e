// internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/cart"
)

// CartRepositoryFS implements cart.Repository using Firestore.
//
// Collection design:
// - collection: Carts
// - docId: customerId__storeId (docId is the source of truth)
// - fields: customerId, storeId, items, bringOwnContainer,
//   createdAt, updatedAt, expiresAt
//
// TTL:
// - Configure Firestore TTL on "expiresAt".
type CartRepositoryFS struct {
	Client *firestore.Client
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

func (r *CartRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("Carts")
}

// Get returns (nil, nil) if no cart exists for the pair (nil policy).
func (r *CartRepositoryFS) Get(ctx context.Context, customerID, storeID string) (*cartdom.Cart, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}

	cid := strings.TrimSpace(customerID)
	sid := strings.TrimSpace(storeID)
	if cid == "" || sid == "" {
		return nil, errors.New("cart_repository_fs: customerID and storeID are required")
	}

	docID := cartdom.DocID(cid, sid)
	snap, err := r.col().Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var d cartDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}

	c := d.toDomain()
	// docId wins even when the doc carries stale ids
	c.ID = docID
	c.CustomerID = cid
	c.StoreID = sid
	return c, nil
}

// Upsert overwrites the full doc keyed by cart.ID.
func (r *CartRepositoryFS) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	if c == nil {
		return errors.New("cart_repository_fs: cart is nil")
	}

	id := strings.TrimSpace(c.ID)
	if id == "" {
		return errors.New("cart_repository_fs: Upsert requires cart.ID as docId")
	}

	_, err := r.col().Doc(id).Set(ctx, cartDocFromDomain(c))
	return err
}

// Delete removes the cart doc. Deleting a missing doc succeeds.
func (r *CartRepositoryFS) Delete(ctx context.Context, customerID, storeID string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}

	cid := strings.TrimSpace(customerID)
	sid := strings.TrimSpace(storeID)
	if cid == "" || sid == "" {
		return errors.New("cart_repository_fs: customerID and storeID are required")
	}

	_, err := r.col().Doc(cartdom.DocID(cid, sid)).Delete(ctx)
	return err
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type cartDoc struct {
	CustomerID        string        `firestore:"customerId"`
	StoreID           string        `firestore:"storeId"`
	Items             []cartItemDoc `firestore:"items"`
	BringOwnContainer bool          `firestore:"bringOwnContainer"`
	CreatedAt         time.Time     `firestore:"createdAt"`
	UpdatedAt         time.Time     `firestore:"updatedAt"`
	ExpiresAt         time.Time     `firestore:"expiresAt"`
}

type cartItemDoc struct {
	ListingID string `firestore:"listingId"`
	Name      string `firestore:"name"`
	UnitPrice int64  `firestore:"unitPrice"`
	Available int    `firestore:"available"`
	Qty       int    `firestore:"qty"`
}

func (d cartDoc) toDomain() *cartdom.Cart {
	items := make([]cartdom.Item, 0, len(d.Items))
	for _, it := range d.Items {
		lid := strings.TrimSpace(it.ListingID)
		if lid == "" || it.Qty <= 0 {
			continue
		}
		items = append(items, cartdom.Item{
			ListingID: lid,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Available: it.Available,
			Qty:       it.Qty,
		})
	}
	return &cartdom.Cart{
		CustomerID:        d.CustomerID,
		StoreID:           d.StoreID,
		Items:             items,
		BringOwnContainer: d.BringOwnContainer,
		CreatedAt:         d.CreatedAt.UTC(),
		UpdatedAt:         d.UpdatedAt.UTC(),
		ExpiresAt:         d.ExpiresAt.UTC(),
	}
}

func cartDocFromDomain(c *cartdom.Cart) cartDoc {
	items := make([]cartItemDoc, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, cartItemDoc{
			ListingID: it.ListingID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Available: it.Available,
			Qty:       it.Qty,
		})
	}
	return cartDoc{
		CustomerID:        c.CustomerID,
		StoreID:           c.StoreID,
		Items:             items,
		BringOwnContainer: c.BringOwnContainer,
		CreatedAt:         c.CreatedAt.UTC(),
		UpdatedAt:         c.UpdatedAt.UTC(),
		ExpiresAt:         c.ExpiresAt.UTC(),
	}
}
