// internal/domain/store/entity.go
package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidID       = errors.New("store: invalid id")
	ErrInvalidVendorID = errors.New("store: invalid vendorId")
	ErrInvalidName     = errors.New("store: invalid name")
	ErrInvalidHours    = errors.New("store: invalid opening/closing hours")
	ErrInvalidCategory = errors.New("store: invalid category")
)

// Categories the storefront filters on. Kept open-ended: an empty
// category is rejected, unknown categories are allowed.
const (
	CategoryHawker     = "Hawker"
	CategoryRestaurant = "Restaurant"
	CategoryCafe       = "Cafe"
	CategoryBakery     = "Bakery"
)

// Store is a vendor's shopfront.
// Opening/Closing are local wall-clock times in "HH:MM" (24h). A closing
// time earlier than the opening time means the window crosses midnight.
type Store struct {
	ID          string
	VendorID    string
	Name        string
	Description string
	Category    string

	Opening string
	Closing string

	// IsGreenParticipant marks stores honouring the Go-Green discount
	// when the customer brings their own container.
	IsGreenParticipant bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Patch represents partial updates. A nil field means "no change".
type Patch struct {
	Name               *string
	Description        *string
	Category           *string
	Opening            *string
	Closing            *string
	IsGreenParticipant *bool
}

func New(id, vendorID, name, description, category, opening, closing string, isGreenParticipant bool, now time.Time) (Store, error) {
	s := Store{
		ID:                 strings.TrimSpace(id),
		VendorID:           strings.TrimSpace(vendorID),
		Name:               strings.TrimSpace(name),
		Description:        strings.TrimSpace(description),
		Category:           strings.TrimSpace(category),
		Opening:            strings.TrimSpace(opening),
		Closing:            strings.TrimSpace(closing),
		IsGreenParticipant: isGreenParticipant,
		CreatedAt:          now.UTC(),
		UpdatedAt:          now.UTC(),
	}
	if err := s.validate(); err != nil {
		return Store{}, err
	}
	return s, nil
}

// Apply merges a patch and revalidates.
func (s *Store) Apply(p Patch, now time.Time) error {
	if s == nil {
		return ErrInvalidID
	}
	if p.Name != nil {
		s.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		s.Description = strings.TrimSpace(*p.Description)
	}
	if p.Category != nil {
		s.Category = strings.TrimSpace(*p.Category)
	}
	if p.Opening != nil {
		s.Opening = strings.TrimSpace(*p.Opening)
	}
	if p.Closing != nil {
		s.Closing = strings.TrimSpace(*p.Closing)
	}
	if p.IsGreenParticipant != nil {
		s.IsGreenParticipant = *p.IsGreenParticipant
	}
	s.UpdatedAt = now.UTC()
	return s.validate()
}

// IsOpenAt reports whether t (evaluated as local wall-clock) falls inside
// the store's opening window. Windows with Closing < Opening span
// midnight. Opening == Closing means the store never opens.
func (s Store) IsOpenAt(t time.Time) (bool, error) {
	openMin, err := parseClock(s.Opening)
	if err != nil {
		return false, err
	}
	closeMin, err := parseClock(s.Closing)
	if err != nil {
		return false, err
	}
	if openMin == closeMin {
		return false, nil
	}

	nowMin := t.Hour()*60 + t.Minute()

	if openMin < closeMin {
		return nowMin >= openMin && nowMin < closeMin, nil
	}
	// overnight window, e.g. 18:00-02:00
	return nowMin >= openMin || nowMin < closeMin, nil
}

func (s Store) validate() error {
	if s.ID == "" {
		return ErrInvalidID
	}
	if s.VendorID == "" {
		return ErrInvalidVendorID
	}
	if s.Name == "" {
		return ErrInvalidName
	}
	if s.Category == "" {
		return ErrInvalidCategory
	}
	if _, err := parseClock(s.Opening); err != nil {
		return err
	}
	if _, err := parseClock(s.Closing); err != nil {
		return err
	}
	return nil
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(v string) (int, error) {
	v = strings.TrimSpace(v)
	parts := strings.Split(v, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHours, v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHours, v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHours, v)
	}
	return h*60 + m, nil
}
