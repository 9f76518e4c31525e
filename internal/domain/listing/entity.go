// internal/domain/listing/entity.go
package listing

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidID        = errors.New("listing: invalid id")
	ErrInvalidStoreID   = errors.New("listing: invalid storeId")
	ErrInvalidVendorID  = errors.New("listing: invalid vendorId")
	ErrInvalidName      = errors.New("listing: invalid name")
	ErrInvalidUnitPrice = errors.New("listing: invalid unit price")
	ErrInvalidQuantity  = errors.New("listing: invalid quantity")
)

// Listing is one sellable item offered by a store.
// UnitPrice is in minor units (cents). Quantity is the remaining stock;
// zero means out of stock, never negative.
type Listing struct {
	ID          string
	StoreID     string
	VendorID    string
	Name        string
	Description string
	UnitPrice   int64
	Quantity    int
	ImageURL    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Patch represents partial updates. A nil field means "no change".
type Patch struct {
	Name        *string
	Description *string
	UnitPrice   *int64
	Quantity    *int
	ImageURL    *string
}

func New(id, storeID, vendorID, name, description string, unitPrice int64, quantity int, now time.Time) (Listing, error) {
	l := Listing{
		ID:          strings.TrimSpace(id),
		StoreID:     strings.TrimSpace(storeID),
		VendorID:    strings.TrimSpace(vendorID),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	if err := l.validate(); err != nil {
		return Listing{}, err
	}
	return l, nil
}

func (l *Listing) Apply(p Patch, now time.Time) error {
	if l == nil {
		return ErrInvalidID
	}
	if p.Name != nil {
		l.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		l.Description = strings.TrimSpace(*p.Description)
	}
	if p.UnitPrice != nil {
		l.UnitPrice = *p.UnitPrice
	}
	if p.Quantity != nil {
		l.Quantity = *p.Quantity
	}
	if p.ImageURL != nil {
		l.ImageURL = strings.TrimSpace(*p.ImageURL)
	}
	l.UpdatedAt = now.UTC()
	return l.validate()
}

// InStock reports whether any stock remains.
func (l Listing) InStock() bool {
	return l.Quantity > 0
}

func (l Listing) validate() error {
	if l.ID == "" {
		return ErrInvalidID
	}
	if l.StoreID == "" {
		return ErrInvalidStoreID
	}
	if l.VendorID == "" {
		return ErrInvalidVendorID
	}
	if l.Name == "" {
		return ErrInvalidName
	}
	if l.UnitPrice < 0 {
		return ErrInvalidUnitPrice
	}
	if l.Quantity < 0 {
		return ErrInvalidQuantity
	}
	return nil
}
