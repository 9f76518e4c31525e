// internal/domain/review/entity.go
package review

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidID      = errors.New("review: invalid id")
	ErrInvalidStoreID = errors.New("review: invalid storeId")
	ErrInvalidUserID  = errors.New("review: invalid userId")
	ErrInvalidRating  = errors.New("review: rating must be between 1 and 5")
)

// Review is a customer's rating of a store.
type Review struct {
	ID       string
	StoreID  string
	UserID   string
	UserName string
	Rating   int
	Comment  string

	CreatedAt time.Time
}

func New(id, storeID, userID, userName string, rating int, comment string, now time.Time) (Review, error) {
	r := Review{
		ID:        strings.TrimSpace(id),
		StoreID:   strings.TrimSpace(storeID),
		UserID:    strings.TrimSpace(userID),
		UserName:  strings.TrimSpace(userName),
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: now.UTC(),
	}
	if err := r.validate(); err != nil {
		return Review{}, err
	}
	return r, nil
}

func (r Review) validate() error {
	if r.ID == "" {
		return ErrInvalidID
	}
	if r.StoreID == "" {
		return ErrInvalidStoreID
	}
	if r.UserID == "" {
		return ErrInvalidUserID
	}
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

// AverageRating returns the mean rating, 0 for an empty slice.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return float64(total) / float64(len(reviews))
}
