// internal/adapters/out/firestore/review_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	reviewdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/review"
)

// ReviewRepositoryFS implements review.Repository using Firestore.
//
// Collection design:
// - collection: Review (name kept from the mobile app's schema)
// - docId: review id
type ReviewRepositoryFS struct {
	Client *firestore.Client
}

func NewReviewRepositoryFS(client *firestore.Client) *ReviewRepositoryFS {
	return &ReviewRepositoryFS{Client: client}
}

func (r *ReviewRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("Review")
}

// ListByStoreID returns reviews newest first.
func (r *ReviewRepositoryFS) ListByStoreID(ctx context.Context, storeID string) ([]reviewdom.Review, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("review_repository_fs: firestore client is nil")
	}

	sid := strings.TrimSpace(storeID)
	if sid == "" {
		return []reviewdom.Review{}, nil
	}

	it := r.col().Where("storeId", "==", sid).Documents(ctx)
	defer it.Stop()

	items := []reviewdom.Review{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		rv, err := docToReview(doc)
		if err != nil {
			return nil, err
		}
		items = append(items, rv)
	}

	// newest first without a composite index
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j].CreatedAt.After(items[j-1].CreatedAt); j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
	return items, nil
}

func (r *ReviewRepositoryFS) Create(ctx context.Context, rv reviewdom.Review) (reviewdom.Review, error) {
	if r == nil || r.Client == nil {
		return reviewdom.Review{}, errors.New("review_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(rv.ID)
	var docRef *firestore.DocumentRef
	if id == "" {
		docRef = r.col().NewDoc()
		rv.ID = docRef.ID
	} else {
		docRef = r.col().Doc(id)
		rv.ID = id
	}

	if _, err := docRef.Create(ctx, reviewToDoc(rv)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return reviewdom.Review{}, errors.New("review_repository_fs: duplicate review id")
		}
		return reviewdom.Review{}, err
	}
	return rv, nil
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type reviewDoc struct {
	StoreID   string    `firestore:"storeId"`
	UserID    string    `firestore:"userId"`
	UserName  string    `firestore:"userName"`
	Rating    int       `firestore:"rating"`
	Comment   string    `firestore:"comment"`
	CreatedAt time.Time `firestore:"createdAt"`
}

func docToReview(snap *firestore.DocumentSnapshot) (reviewdom.Review, error) {
	var d reviewDoc
	if err := snap.DataTo(&d); err != nil {
		return reviewdom.Review{}, err
	}
	return reviewdom.Review{
		ID:        snap.Ref.ID,
		StoreID:   d.StoreID,
		UserID:    d.UserID,
		UserName:  d.UserName,
		Rating:    d.Rating,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt.UTC(),
	}, nil
}

func reviewToDoc(rv reviewdom.Review) reviewDoc {
	return reviewDoc{
		StoreID:   rv.StoreID,
		UserID:    rv.UserID,
		UserName:  rv.UserName,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt.UTC(),
	}
}
