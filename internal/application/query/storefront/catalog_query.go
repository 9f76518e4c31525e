// internal/application/query/storefront/catalog_query.go
package storefront

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/application/query/storefront/dto"
	listingdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/listing"
	reviewdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/review"
	storedom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/store"
)

var ErrCatalogQueryNotConfigured = errors.New("storefront: catalog query is not configured")

// CatalogQuery builds the customer-facing storefront read model:
// store cards with open-now and rating, and the store detail with its
// listings. It reads through the domain ports; nothing here mutates.
type CatalogQuery struct {
	stores   storedom.Repository
	listings listingdom.Repository
	reviews  reviewdom.Repository
	now      func() time.Time
}

func NewCatalogQuery(stores storedom.Repository, listings listingdom.Repository, reviews reviewdom.Repository) *CatalogQuery {
	return &CatalogQuery{
		stores:   stores,
		listings: listings,
		reviews:  reviews,
		now:      time.Now,
	}
}

// ListStores returns store cards, optionally narrowed to a category or
// to stores open right now.
func (q *CatalogQuery) ListStores(ctx context.Context, category string, openNow bool) ([]dto.StoreCardDTO, error) {
	if q == nil || q.stores == nil {
		return nil, ErrCatalogQueryNotConfigured
	}

	stores, err := q.stores.List(ctx, storedom.Filter{Category: strings.TrimSpace(category)})
	if err != nil {
		return nil, err
	}

	now := q.now()
	out := make([]dto.StoreCardDTO, 0, len(stores))
	for _, s := range stores {
		card := q.storeCard(ctx, s, now)
		if openNow && !card.OpenNow {
			continue
		}
		out = append(out, card)
	}
	return out, nil
}

// StoreDetail returns one store with its listings.
func (q *CatalogQuery) StoreDetail(ctx context.Context, storeID string) (dto.StoreDetailDTO, error) {
	if q == nil || q.stores == nil || q.listings == nil {
		return dto.StoreDetailDTO{}, ErrCatalogQueryNotConfigured
	}

	s, err := q.stores.GetByID(ctx, strings.TrimSpace(storeID))
	if err != nil {
		return dto.StoreDetailDTO{}, err
	}

	ls, err := q.listings.List(ctx, listingdom.Filter{StoreID: s.ID})
	if err != nil {
		return dto.StoreDetailDTO{}, err
	}

	detail := dto.StoreDetailDTO{
		StoreCardDTO: q.storeCard(ctx, s, q.now()),
		Listings:     make([]dto.ListingDTO, 0, len(ls)),
	}
	for _, l := range ls {
		detail.Listings = append(detail.Listings, dto.ListingDTO{
			ID:          l.ID,
			Name:        l.Name,
			Description: l.Description,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			InStock:     l.InStock(),
			ImageURL:    l.ImageURL,
		})
	}
	return detail, nil
}

func (q *CatalogQuery) storeCard(ctx context.Context, s storedom.Store, now time.Time) dto.StoreCardDTO {
	card := dto.StoreCardDTO{
		ID:                 s.ID,
		Name:               s.Name,
		Description:        s.Description,
		Category:           s.Category,
		Opening:            s.Opening,
		Closing:            s.Closing,
		IsGreenParticipant: s.IsGreenParticipant,
	}

	open, err := s.IsOpenAt(now)
	if err != nil {
		// stored hours predate validation; treat as closed rather than 500
		log.Printf("[storefront_query] WARN bad hours store=%s err=%v", s.ID, err)
	}
	card.OpenNow = open

	if q.reviews != nil {
		rs, rErr := q.reviews.ListByStoreID(ctx, s.ID)
		if rErr != nil {
			log.Printf("[storefront_query] WARN reviews lookup failed store=%s err=%v", s.ID, rErr)
		} else {
			card.AverageRating = reviewdom.AverageRating(rs)
			card.ReviewCount = len(rs)
		}
	}
	return card
}
