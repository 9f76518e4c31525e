// internal/adapters/out/firestore/checkout_tx_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/application/usecase"
	orderdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/order"
)

// CheckoutTxFS implements usecase.FinalizeStore with one Firestore
// transaction:
//
//  1. read the order doc (docId = PaymentIntent id); if it exists the
//     call is a webhook replay and nothing is written
//  2. read every purchased listing and check remaining stock
//  3. decrement stock, create the order doc, delete the cart doc
//
// All reads happen before any write, which Firestore transactions
// require. Concurrent finalizes over the same listing serialize on the
// listing doc, so the last unit can only be sold once.
type CheckoutTxFS struct {
	Client *firestore.Client
}

func NewCheckoutTxFS(client *firestore.Client) *CheckoutTxFS {
	return &CheckoutTxFS{Client: client}
}

func (s *CheckoutTxFS) Finalize(ctx context.Context, o orderdom.Order, cartID string) (orderdom.Order, bool, error) {
	if s == nil || s.Client == nil {
		return orderdom.Order{}, false, errors.New("checkout_tx_fs: firestore client is nil")
	}
	if strings.TrimSpace(o.ID) == "" {
		return orderdom.Order{}, false, orderdom.ErrInvalidID
	}

	orderRef := s.Client.Collection("Order").Doc(o.ID)
	cartRef := s.Client.Collection("Carts").Doc(strings.TrimSpace(cartID))
	listingCol := s.Client.Collection("Listing")

	var (
		stored  orderdom.Order
		created bool
	)

	err := s.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		stored = orderdom.Order{}
		created = false

		snap, err := tx.Get(orderRef)
		if err == nil {
			existing, convErr := docToOrder(snap)
			if convErr != nil {
				return convErr
			}
			stored = existing
			return nil
		}
		if status.Code(err) != codes.NotFound {
			return err
		}

		// reads first: load every listing before touching anything
		type decrement struct {
			ref *firestore.DocumentRef
			qty int
		}
		decs := make([]decrement, 0, len(o.Items))
		for _, it := range o.Items {
			ref := listingCol.Doc(it.ListingID)
			lsnap, err := tx.Get(ref)
			if err != nil {
				if status.Code(err) == codes.NotFound {
					return fmt.Errorf("%w: listing %s", usecase.ErrInsufficientStock, it.ListingID)
				}
				return err
			}
			l, err := docToListing(lsnap)
			if err != nil {
				return err
			}
			if l.Quantity < it.Qty {
				return fmt.Errorf("%w: listing %s has %d, need %d",
					usecase.ErrInsufficientStock, it.ListingID, l.Quantity, it.Qty)
			}
			decs = append(decs, decrement{ref: ref, qty: l.Quantity - it.Qty})
		}

		for _, d := range decs {
			if err := tx.Update(d.ref, []firestore.Update{
				{Path: "quantity", Value: d.qty},
				{Path: "updatedAt", Value: o.CreatedAt.UTC()},
			}); err != nil {
				return err
			}
		}

		if err := tx.Create(orderRef, orderToDoc(o)); err != nil {
			return err
		}
		if err := tx.Delete(cartRef); err != nil {
			return err
		}

		stored = o
		created = true
		return nil
	})
	if err != nil {
		return orderdom.Order{}, false, err
	}
	return stored, created, nil
}
