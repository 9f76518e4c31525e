// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidCart    = errors.New("cart: invalid")
	ErrItemNotFound   = errors.New("cart: item not found")
	ErrQuantityCapped = errors.New("cart: quantity exceeds available stock")
)

// DefaultCartTTL is the inactivity window after which the cart becomes
// eligible for auto deletion (Firestore TTL configured on expiresAt).
const DefaultCartTTL = 7 * 24 * time.Hour

// DocID builds the cart document id. Carts are scoped per customer per
// store so a customer can hold one in-progress selection per shop.
func DocID(customerID, storeID string) string {
	return strings.TrimSpace(customerID) + "__" + strings.TrimSpace(storeID)
}

// Item is one line in a cart. UnitPrice and Available are snapshots of
// the listing at add time; both are re-read from the listing at checkout
// and finalize, so the snapshot is display data, not a price authority.
type Item struct {
	ListingID string `json:"listingId" firestore:"listingId"`
	Name      string `json:"name" firestore:"name"`
	UnitPrice int64  `json:"unitPrice" firestore:"unitPrice"`
	Available int    `json:"available" firestore:"available"`
	Qty       int    `json:"qty" firestore:"qty"`
}

// Cart is the customer's unsubmitted selection for one store.
//   - docId = customerId__storeId
//   - ExpiresAt is refreshed on every mutation (Firestore TTL field)
type Cart struct {
	ID         string `json:"id" firestore:"id"`
	CustomerID string `json:"customerId" firestore:"customerId"`
	StoreID    string `json:"storeId" firestore:"storeId"`

	Items []Item `json:"items" firestore:"items"`

	// BringOwnContainer opts into the Go-Green discount at checkout.
	BringOwnContainer bool `json:"bringOwnContainer" firestore:"bringOwnContainer"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
	ExpiresAt time.Time `json:"expiresAt" firestore:"expiresAt"`
}

// NewCart creates an empty cart for (customerID, storeID).
func NewCart(customerID, storeID string, now time.Time) (*Cart, error) {
	cid := strings.TrimSpace(customerID)
	sid := strings.TrimSpace(storeID)
	if cid == "" || sid == "" {
		return nil, ErrInvalidCart
	}
	c := &Cart{
		ID:         DocID(cid, sid),
		CustomerID: cid,
		StoreID:    sid,
		Items:      []Item{},
		CreatedAt:  now,
		UpdatedAt:  now,
		ExpiresAt:  now.Add(DefaultCartTTL),
	}
	return c, c.validate()
}

// Add puts one unit of the listing into the cart. If the listing is
// already present its quantity grows by 1, capped at the available
// stock; adding past the cap returns ErrQuantityCapped and leaves the
// cart unchanged.
func (c *Cart) Add(listingID, name string, unitPrice int64, available int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	lid := strings.TrimSpace(listingID)
	if lid == "" || unitPrice < 0 || available < 0 {
		return ErrInvalidCart
	}
	if available == 0 {
		return ErrQuantityCapped
	}

	idx := c.indexOf(lid)
	if idx >= 0 {
		if c.Items[idx].Qty+1 > available {
			return ErrQuantityCapped
		}
		c.Items[idx].Qty++
		c.Items[idx].Name = strings.TrimSpace(name)
		c.Items[idx].UnitPrice = unitPrice
		c.Items[idx].Available = available
	} else {
		c.Items = append(c.Items, Item{
			ListingID: lid,
			Name:      strings.TrimSpace(name),
			UnitPrice: unitPrice,
			Available: available,
			Qty:       1,
		})
	}

	c.touch(now)
	return c.validate()
}

// Increase adds one unit to an existing line, capped at Available.
func (c *Cart) Increase(listingID string, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	idx := c.indexOf(strings.TrimSpace(listingID))
	if idx < 0 {
		return ErrItemNotFound
	}
	if c.Items[idx].Qty+1 > c.Items[idx].Available {
		return ErrQuantityCapped
	}
	c.Items[idx].Qty++
	c.touch(now)
	return c.validate()
}

// Decrease removes one unit from an existing line; reaching zero removes
// the line entirely.
func (c *Cart) Decrease(listingID string, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	idx := c.indexOf(strings.TrimSpace(listingID))
	if idx < 0 {
		return ErrItemNotFound
	}
	c.Items[idx].Qty--
	if c.Items[idx].Qty <= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	}
	c.touch(now)
	return c.validate()
}

// SetBringOwnContainer toggles the Go-Green opt-in.
func (c *Cart) SetBringOwnContainer(v bool, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	c.BringOwnContainer = v
	c.touch(now)
	return c.validate()
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// ConsumeAll clears the lines for order creation and returns a snapshot.
// Callers persist the cleared cart in the same transaction that writes
// the order.
func (c *Cart) ConsumeAll(now time.Time) ([]Item, error) {
	if c == nil {
		return nil, ErrInvalidCart
	}
	snap := make([]Item, len(c.Items))
	copy(snap, c.Items)
	c.Items = []Item{}
	c.touch(now)
	if err := c.validate(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (c *Cart) indexOf(listingID string) int {
	for i := range c.Items {
		if c.Items[i].ListingID == listingID {
			return i
		}
	}
	return -1
}

func (c *Cart) touch(now time.Time) {
	c.UpdatedAt = now
	c.ExpiresAt = now.Add(DefaultCartTTL)
}

func (c *Cart) validate() error {
	if c == nil {
		return ErrInvalidCart
	}
	if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.CustomerID) == "" || strings.TrimSpace(c.StoreID) == "" {
		return ErrInvalidCart
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() || c.ExpiresAt.IsZero() {
		return ErrInvalidCart
	}
	if c.UpdatedAt.Before(c.CreatedAt) || c.ExpiresAt.Before(c.UpdatedAt) {
		return ErrInvalidCart
	}
	for _, it := range c.Items {
		if strings.TrimSpace(it.ListingID) == "" || it.Qty <= 0 || it.UnitPrice < 0 {
			return ErrInvalidCart
		}
		if it.Available > 0 && it.Qty > it.Available {
			return ErrInvalidCart
		}
	}
	return nil
}
