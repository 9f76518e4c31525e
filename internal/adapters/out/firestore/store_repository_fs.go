// internal/adapters/out/firestore/store_repository_fs.go
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

	storedom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/store"
)

// StoreRepositoryFS implements store.Repository using Firestore.
//
// Collection design:
// - collection: Stores
// - docId: store id
type StoreRepositoryFS struct {
	Client *firestore.Client
}

func NewStoreRepositoryFS(client *firestore.Client) *StoreRepositoryFS {
	return &StoreRepositoryFS{Client: client}
}

func (r *StoreRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("Stores")
}

func (r *StoreRepositoryFS) GetByID(ctx context.Context, id string) (storedom.Store, error) {
	if r == nil || r.Client == nil {
		return storedom.Store{}, errors.New("store_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return storedom.Store{}, storedom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return storedom.Store{}, storedom.ErrNotFound
		}
		return storedom.Store{}, err
	}
	return docToStore(snap)
}

// List applies equality filters server-side; both empty means full scan.
func (r *StoreRepositoryFS) List(ctx context.Context, filter storedom.Filter) ([]storedom.Store, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("store_repository_fs: firestore client is nil")
	}

	q := r.col().Query
	if v := strings.TrimSpace(filter.VendorID); v != "" {
		q = q.Where("vendorId", "==", v)
	}
	if c := strings.TrimSpace(filter.Category); c != "" {
		q = q.Where("category", "==", c)
	}

	it := q.Documents(ctx)
	defer it.Stop()

	items := []storedom.Store{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		s, err := docToStore(doc)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, nil
}

func (r *StoreRepositoryFS) Create(ctx context.Context, s storedom.Store) (storedom.Store, error) {
	if r == nil || r.Client == nil {
		return storedom.Store{}, errors.New("store_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(s.ID)
	if id == "" {
		return storedom.Store{}, storedom.ErrNotFound
	}
	s.ID = id

	_, err := r.col().Doc(id).Create(ctx, storeToDoc(s))
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return storedom.Store{}, storedom.ErrConflict
		}
		return storedom.Store{}, err
	}
	return s, nil
}

// Save is a full overwrite keyed by s.ID.
func (r *StoreRepositoryFS) Save(ctx context.Context, s storedom.Store) (storedom.Store, error) {
	if r == nil || r.Client == nil {
		return storedom.Store{}, errors.New("store_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(s.ID)
	if id == "" {
		return storedom.Store{}, storedom.ErrNotFound
	}
	s.ID = id

	if _, err := r.col().Doc(id).Set(ctx, storeToDoc(s)); err != nil {
		return storedom.Store{}, err
	}
	return s, nil
}

func (r *StoreRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("store_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return storedom.ErrNotFound
	}
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type storeDoc struct {
	VendorID           string    `firestore:"vendorId"`
	Name               string    `firestore:"name"`
	Description        string    `firestore:"description"`
	Category           string    `firestore:"category"`
	Opening            string    `firestore:"opening"`
	Closing            string    `firestore:"closing"`
	IsGreenParticipant bool      `firestore:"isGreenParticipant"`
	CreatedAt          time.Time `firestore:"createdAt"`
	UpdatedAt          time.Time `firestore:"updatedAt"`
}

func docToStore(snap *firestore.DocumentSnapshot) (storedom.Store, error) {
	var d storeDoc
	if err := snap.DataTo(&d); err != nil {
		return storedom.Store{}, err
	}
	return storedom.Store{
		ID:                 snap.Ref.ID,
		VendorID:           d.VendorID,
		Name:               d.Name,
		Description:        d.Description,
		Category:           d.Category,
		Opening:            d.Opening,
		Closing:            d.Closing,
		IsGreenParticipant: d.IsGreenParticipant,
		CreatedAt:          d.CreatedAt.UTC(),
		UpdatedAt:          d.UpdatedAt.UTC(),
	}, nil
}

func storeToDoc(s storedom.Store) storeDoc {
	return storeDoc{
		VendorID:           s.VendorID,
		Name:               s.Name,
		Description:        s.Description,
		Category:           s.Category,
		Opening:            s.Opening,
		Closing:            s.Closing,
		IsGreenParticipant: s.IsGreenParticipant,
		CreatedAt:          s.CreatedAt.UTC(),
		UpdatedAt:          s.UpdatedAt.UTC(),
	}
}
