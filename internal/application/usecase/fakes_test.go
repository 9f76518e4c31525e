// internal/application/usecase/fakes_test.go
package usecase

import (
	"context"
	"fmt"
	"sync"

	cartdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/cart"
	listingdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/listing"
	orderdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/order"
	storedom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/store"
	userdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/user"
)

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]*cartdom.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*cartdom.Cart{}}
}

func (r *fakeCartRepo) Get(_ context.Context, customerID, storeID string) (*cartdom.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[cartdom.DocID(customerID, storeID)]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Items = append([]cartdom.Item(nil), c.Items...)
	return &cp, nil
}

func (r *fakeCartRepo) Upsert(_ context.Context, c *cartdom.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	cp.Items = append([]cartdom.Item(nil), c.Items...)
	r.carts[c.ID] = &cp
	return nil
}

func (r *fakeCartRepo) Delete(_ context.Context, customerID, storeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, cartdom.DocID(customerID, storeID))
	return nil
}

type fakeListingRepo struct {
	mu       sync.Mutex
	listings map[string]listingdom.Listing
}

func newFakeListingRepo(ls ...listingdom.Listing) *fakeListingRepo {
	r := &fakeListingRepo{listings: map[string]listingdom.Listing{}}
	for _, l := range ls {
		r.listings[l.ID] = l
	}
	return r
}

func (r *fakeListingRepo) GetByID(_ context.Context, id string) (listingdom.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return listingdom.Listing{}, listingdom.ErrNotFound
	}
	return l, nil
}

func (r *fakeListingRepo) List(_ context.Context, f listingdom.Filter) ([]listingdom.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []listingdom.Listing
	for _, l := range r.listings {
		if f.StoreID != "" && l.StoreID != f.StoreID {
			continue
		}
		if f.VendorID != "" && l.VendorID != f.VendorID {
			continue
		}
		if f.InStock != nil && l.InStock() != *f.InStock {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeListingRepo) Create(_ context.Context, l listingdom.Listing) (listingdom.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings[l.ID] = l
	return l, nil
}

func (r *fakeListingRepo) Save(_ context.Context, l listingdom.Listing) (listingdom.Listing, error) {
	return r.Create(context.Background(), l)
}

func (r *fakeListingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.listings, id)
	return nil
}

type fakeStoreRepo struct {
	stores map[string]storedom.Store
}

func newFakeStoreRepo(ss ...storedom.Store) *fakeStoreRepo {
	r := &fakeStoreRepo{stores: map[string]storedom.Store{}}
	for _, s := range ss {
		r.stores[s.ID] = s
	}
	return r
}

func (r *fakeStoreRepo) GetByID(_ context.Context, id string) (storedom.Store, error) {
	s, ok := r.stores[id]
	if !ok {
		return storedom.Store{}, storedom.ErrNotFound
	}
	return s, nil
}

func (r *fakeStoreRepo) List(_ context.Context, f storedom.Filter) ([]storedom.Store, error) {
	var out []storedom.Store
	for _, s := range r.stores {
		if f.VendorID != "" && s.VendorID != f.VendorID {
			continue
		}
		if f.Category != "" && s.Category != f.Category {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeStoreRepo) Create(_ context.Context, s storedom.Store) (storedom.Store, error) {
	r.stores[s.ID] = s
	return s, nil
}

func (r *fakeStoreRepo) Save(_ context.Context, s storedom.Store) (storedom.Store, error) {
	r.stores[s.ID] = s
	return s, nil
}

func (r *fakeStoreRepo) Delete(_ context.Context, id string) error {
	delete(r.stores, id)
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]orderdom.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]orderdom.Order{}}
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) List(_ context.Context, f orderdom.Filter, _ orderdom.Sort, page orderdom.Page) (orderdom.PageResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []orderdom.Order
	for _, o := range r.orders {
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			continue
		}
		if f.VendorID != "" && o.VendorID != f.VendorID {
			continue
		}
		if len(f.Statuses) > 0 {
			hit := false
			for _, s := range f.Statuses {
				if o.Status == s {
					hit = true
				}
			}
			if !hit {
				continue
			}
		}
		out = append(out, o)
	}
	return orderdom.PageResult{Items: out, TotalCount: len(out), Page: 1, PerPage: page.PerPage}, nil
}

func (r *fakeOrderRepo) Save(_ context.Context, o orderdom.Order) (orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
	return o, nil
}

type fakeUserRepo struct {
	users map[string]userdom.User
}

func newFakeUserRepo(us ...userdom.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]userdom.User{}}
	for _, u := range us {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, uid string) (userdom.User, error) {
	u, ok := r.users[uid]
	if !ok {
		return userdom.User{}, userdom.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Upsert(_ context.Context, u userdom.User) (userdom.User, error) {
	r.users[u.ID] = u
	return u, nil
}

// fakePayments records created intents.
type fakePayments struct {
	mu      sync.Mutex
	intents []CreateIntentInput
	nextID  int
	err     error
}

func (p *fakePayments) CreateIntent(_ context.Context, in CreateIntentInput) (PaymentIntent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return PaymentIntent{}, p.err
	}
	p.nextID++
	id := fmt.Sprintf("pi_test_%d", p.nextID)
	p.intents = append(p.intents, in)
	return PaymentIntent{ID: id, ClientSecret: id + "_secret"}, nil
}

// fakeFinalizeStore mimics the Firestore transaction: checks stock,
// decrements, creates the order and consumes the cart atomically under
// one lock.
type fakeFinalizeStore struct {
	mu       sync.Mutex
	orders   *fakeOrderRepo
	listings *fakeListingRepo
	carts    *fakeCartRepo
}

func (f *fakeFinalizeStore) Finalize(ctx context.Context, o orderdom.Order, cartID string) (orderdom.Order, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if existing, err := f.orders.GetByID(ctx, o.ID); err == nil {
		return existing, false, nil
	}

	f.listings.mu.Lock()
	for _, it := range o.Items {
		l := f.listings.listings[it.ListingID]
		if l.Quantity < it.Qty {
			f.listings.mu.Unlock()
			return orderdom.Order{}, false, fmt.Errorf("%w: listing %s", ErrInsufficientStock, it.ListingID)
		}
	}
	for _, it := range o.Items {
		l := f.listings.listings[it.ListingID]
		l.Quantity -= it.Qty
		f.listings.listings[it.ListingID] = l
	}
	f.listings.mu.Unlock()

	if _, err := f.orders.Save(ctx, o); err != nil {
		return orderdom.Order{}, false, err
	}

	f.carts.mu.Lock()
	delete(f.carts.carts, cartID)
	f.carts.mu.Unlock()

	return o, true, nil
}

// fakeMailer records sends.
type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendOrderConfirmation(_ context.Context, toEmail string, _ orderdom.Order) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, toEmail)
	return nil
}
