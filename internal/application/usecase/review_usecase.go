// internal/application/usecase/review_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	reviewdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/review"
	storedom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/store"
	userdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/user"
)

var ErrReviewUsecaseNotConfigured = errors.New("review: usecase is not configured")

// ReviewUsecase creates and lists store reviews.
type ReviewUsecase struct {
	reviews reviewdom.Repository
	stores  storedom.Repository
	users   userdom.Repository
	now     func() time.Time
	newID   func() string
}

func NewReviewUsecase(reviews reviewdom.Repository, stores storedom.Repository, users userdom.Repository) *ReviewUsecase {
	return &ReviewUsecase{
		reviews: reviews,
		stores:  stores,
		users:   users,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Create records a review; the display name is resolved server-side so
// clients cannot review under someone else's name.
func (u *ReviewUsecase) Create(ctx context.Context, userID, storeID string, rating int, comment string) (reviewdom.Review, error) {
	if u == nil || u.reviews == nil || u.stores == nil || u.users == nil {
		return reviewdom.Review{}, ErrReviewUsecaseNotConfigured
	}

	st, err := u.stores.GetByID(ctx, strings.TrimSpace(storeID))
	if err != nil {
		return reviewdom.Review{}, err
	}
	usr, err := u.users.GetByID(ctx, strings.TrimSpace(userID))
	if err != nil {
		return reviewdom.Review{}, err
	}

	r, err := reviewdom.New(u.newID(), st.ID, usr.ID, usr.Name, rating, comment, u.now())
	if err != nil {
		return reviewdom.Review{}, err
	}
	return u.reviews.Create(ctx, r)
}

// ListForStore returns the store's reviews plus the average rating.
func (u *ReviewUsecase) ListForStore(ctx context.Context, storeID string) ([]reviewdom.Review, float64, error) {
	if u == nil || u.reviews == nil {
		return nil, 0, ErrReviewUsecaseNotConfigured
	}
	rs, err := u.reviews.ListByStoreID(ctx, strings.TrimSpace(storeID))
	if err != nil {
		return nil, 0, err
	}
	return rs, reviewdom.AverageRating(rs), nil
}
