// internal/domain/order/entity.go
package order

import (
	"errors"
	"strings"
	"time"
)

// Status values are stored verbatim; they match what the mobile app's
// order tabs filter on.
type Status string

const (
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

var (
	ErrInvalidID         = errors.New("order: invalid id")
	ErrInvalidCustomerID = errors.New("order: invalid customerId")
	ErrInvalidStoreID    = errors.New("order: invalid storeId")
	ErrInvalidItems      = errors.New("order: invalid items")
	ErrInvalidAmounts    = errors.New("order: invalid amounts")
	ErrInvalidStatus     = errors.New("order: invalid status")
	ErrInvalidCreatedAt  = errors.New("order: invalid createdAt")

	ErrAlreadyCompleted = errors.New("order: already completed")
	ErrNotParticipant   = errors.New("order: caller is not a participant")
)

// ItemSnapshot is one purchased line frozen at finalize time.
type ItemSnapshot struct {
	ListingID string `json:"listingId" firestore:"listingId"`
	Name      string `json:"name" firestore:"name"`
	UnitPrice int64  `json:"unitPrice" firestore:"unitPrice"`
	Qty       int    `json:"qty" firestore:"qty"`
}

// Order is a finalized, paid set of listings awaiting fulfilment.
//   - docId = Stripe PaymentIntent id, which makes finalize idempotent
//     under webhook redelivery.
type Order struct {
	// ID is the PaymentIntent id.
	ID         string
	CustomerID string
	StoreID    string
	VendorID   string

	Items []ItemSnapshot

	Subtotal  int64
	Discount  int64
	TotalPaid int64

	Status Status

	CreatedAt   time.Time
	CompletedAt *time.Time
}

func New(id, customerID, storeID, vendorID string, items []ItemSnapshot, subtotal, discount, totalPaid int64, createdAt time.Time) (Order, error) {
	o := Order{
		ID:         strings.TrimSpace(id),
		CustomerID: strings.TrimSpace(customerID),
		StoreID:    strings.TrimSpace(storeID),
		VendorID:   strings.TrimSpace(vendorID),
		Items:      normalizeItems(items),
		Subtotal:   subtotal,
		Discount:   discount,
		TotalPaid:  totalPaid,
		Status:     StatusInProgress,
		CreatedAt:  createdAt.UTC(),
	}
	if err := o.validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// Complete transitions In Progress -> Completed. actorID must be the
// order's customer or the store's vendor; there is no reverse
// transition and no other status.
func (o *Order) Complete(actorID string, now time.Time) error {
	if o == nil {
		return ErrInvalidID
	}
	aid := strings.TrimSpace(actorID)
	if aid == "" || (aid != o.CustomerID && aid != o.VendorID) {
		return ErrNotParticipant
	}
	if o.Status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	if o.Status != StatusInProgress {
		return ErrInvalidStatus
	}
	ts := now.UTC()
	o.Status = StatusCompleted
	o.CompletedAt = &ts
	return nil
}

func (o Order) validate() error {
	if o.ID == "" {
		return ErrInvalidID
	}
	if o.CustomerID == "" {
		return ErrInvalidCustomerID
	}
	if o.StoreID == "" || o.VendorID == "" {
		return ErrInvalidStoreID
	}
	if len(o.Items) == 0 {
		return ErrInvalidItems
	}
	for _, it := range o.Items {
		if strings.TrimSpace(it.ListingID) == "" || it.Qty <= 0 || it.UnitPrice < 0 {
			return ErrInvalidItems
		}
	}
	if o.Subtotal < 0 || o.Discount < 0 || o.TotalPaid < 0 || o.TotalPaid > o.Subtotal {
		return ErrInvalidAmounts
	}
	if o.Status != StatusInProgress && o.Status != StatusCompleted {
		return ErrInvalidStatus
	}
	if o.CreatedAt.IsZero() {
		return ErrInvalidCreatedAt
	}
	return nil
}

func normalizeItems(items []ItemSnapshot) []ItemSnapshot {
	out := make([]ItemSnapshot, 0, len(items))
	for _, it := range items {
		it.ListingID = strings.TrimSpace(it.ListingID)
		it.Name = strings.TrimSpace(it.Name)
		if it.ListingID == "" || it.Qty <= 0 {
			continue
		}
		out = append(out, it)
	}
	return out
}
