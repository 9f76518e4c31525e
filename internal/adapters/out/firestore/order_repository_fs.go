// internal/adapters/out/firestore/order_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	orderdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/order"
)

// OrderRepositoryFS implements order.Repository using Firestore.
//
// Collection design:
// - collection: Order (name kept from the mobile app's schema)
// - docId: PaymentIntent id
//
// Creation is not exposed here: order docs are only written inside the
// checkout finalize transaction (CheckoutTxFS).
type OrderRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

func (r *OrderRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("Order")
}

func (r *OrderRepositoryFS) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return orderdom.Order{}, errors.New("order_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return orderdom.Order{}, orderdom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return orderdom.Order{}, orderdom.ErrNotFound
		}
		return orderdom.Order{}, err
	}
	return docToOrder(snap)
}

// List pushes the single-party equality filter to Firestore and applies
// status and createdAt bounds client-side, then sorts and pages in
// memory. An order book per customer or vendor stays small enough that
// composite indexes are not worth maintaining here.
func (r *OrderRepositoryFS) List(ctx context.Context, filter orderdom.Filter, s orderdom.Sort, page orderdom.Page) (orderdom.PageResult, error) {
	if r == nil || r.Client == nil {
		return orderdom.PageResult{}, errors.New("order_repository_fs: firestore client is nil")
	}

	q := r.col().Query
	if v := strings.TrimSpace(filter.CustomerID); v != "" {
		q = q.Where("customerId", "==", v)
	}
	if v := strings.TrimSpace(filter.StoreID); v != "" {
		q = q.Where("storeId", "==", v)
	}
	if v := strings.TrimSpace(filter.VendorID); v != "" {
		q = q.Where("vendorId", "==", v)
	}

	it := q.Documents(ctx)
	defer it.Stop()

	var items []orderdom.Order
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return orderdom.PageResult{}, err
		}
		o, err := docToOrder(doc)
		if err != nil {
			return orderdom.PageResult{}, err
		}
		if !matchOrderFilter(o, filter) {
			continue
		}
		items = append(items, o)
	}

	sortOrders(items, s)

	total := len(items)
	perPage := page.PerPage
	if perPage <= 0 {
		perPage = 50
	}
	number := page.Number
	if number <= 0 {
		number = 1
	}
	start := (number - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}

	return orderdom.PageResult{
		Items:      items[start:end],
		TotalCount: total,
		TotalPages: totalPages,
		Page:       number,
		PerPage:    perPage,
	}, nil
}

// Save overwrites an existing order doc (status transitions). Saving a
// never-created order is a programming error and maps to ErrNotFound.
func (r *OrderRepositoryFS) Save(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return orderdom.Order{}, errors.New("order_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(o.ID)
	if id == "" {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	o.ID = id

	docRef := r.col().Doc(id)
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return orderdom.Order{}, orderdom.ErrNotFound
		}
		return orderdom.Order{}, err
	}

	if _, err := docRef.Set(ctx, orderToDoc(o)); err != nil {
		return orderdom.Order{}, err
	}
	return o, nil
}

func matchOrderFilter(o orderdom.Order, filter orderdom.Filter) bool {
	if len(filter.Statuses) > 0 {
		ok := false
		for _, st := range filter.Statuses {
			if o.Status == st {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if filter.Created.From != nil && o.CreatedAt.Before(*filter.Created.From) {
		return false
	}
	if filter.Created.To != nil && !o.CreatedAt.Before(*filter.Created.To) {
		return false
	}
	return true
}

func sortOrders(items []orderdom.Order, s orderdom.Sort) {
	desc := s.Order == orderdom.SortDesc
	switch s.Column {
	case orderdom.SortByCreatedAt, "":
		sort.SliceStable(items, func(i, j int) bool {
			if desc {
				return items[i].CreatedAt.After(items[j].CreatedAt)
			}
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		})
	}
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type orderDoc struct {
	CustomerID string         `firestore:"customerId"`
	StoreID    string         `firestore:"storeId"`
	VendorID   string         `firestore:"vendorId"`
	Items      []orderItemDoc `firestore:"items"`
	Subtotal   int64          `firestore:"subtotal"`
	Discount   int64          `firestore:"discount"`
	TotalPaid  int64          `firestore:"totalPaid"`
	Status     string         `firestore:"status"`
	CreatedAt  time.Time      `firestore:"createdAt"`

	CompletedAt *time.Time `firestore:"completedAt,omitempty"`
}

type orderItemDoc struct {
	ListingID string `firestore:"listingId"`
	Name      string `firestore:"name"`
	UnitPrice int64  `firestore:"unitPrice"`
	Qty       int    `firestore:"qty"`
}

func docToOrder(snap *firestore.DocumentSnapshot) (orderdom.Order, error) {
	var d orderDoc
	if err := snap.DataTo(&d); err != nil {
		return orderdom.Order{}, err
	}

	items := make([]orderdom.ItemSnapshot, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, orderdom.ItemSnapshot{
			ListingID: it.ListingID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Qty:       it.Qty,
		})
	}

	o := orderdom.Order{
		ID:         snap.Ref.ID,
		CustomerID: d.CustomerID,
		StoreID:    d.StoreID,
		VendorID:   d.VendorID,
		Items:      items,
		Subtotal:   d.Subtotal,
		Discount:   d.Discount,
		TotalPaid:  d.TotalPaid,
		Status:     orderdom.Status(d.Status),
		CreatedAt:  d.CreatedAt.UTC(),
	}
	if d.CompletedAt != nil && !d.CompletedAt.IsZero() {
		t := d.CompletedAt.UTC()
		o.CompletedAt = &t
	}
	return o, nil
}

func orderToDoc(o orderdom.Order) orderDoc {
	items := make([]orderItemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDoc{
			ListingID: it.ListingID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Qty:       it.Qty,
		})
	}

	d := orderDoc{
		CustomerID: o.CustomerID,
		StoreID:    o.StoreID,
		VendorID:   o.VendorID,
		Items:      items,
		Subtotal:   o.Subtotal,
		Discount:   o.Discount,
		TotalPaid:  o.TotalPaid,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt.UTC(),
	}
	if o.CompletedAt != nil && !o.CompletedAt.IsZero() {
		t := o.CompletedAt.UTC()
		d.CompletedAt = &t
	}
	return d
}
