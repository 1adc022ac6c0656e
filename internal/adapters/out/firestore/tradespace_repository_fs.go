// internal/adapters/out/firestore/tradespace_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	tsdom "tradespace/internal/domain/tradespace"
)

// TradespaceRepositoryFS implements tradespace.Repository.
// Uses the "tradespaces" collection. memberCount is written exclusively by
// the membership transaction, never through this repo.
type TradespaceRepositoryFS struct {
	Client *firestore.Client
}

func NewTradespaceRepositoryFS(client *firestore.Client) *TradespaceRepositoryFS {
	return &TradespaceRepositoryFS{Client: client}
}

// Compile-time check
var _ tsdom.Repository = (*TradespaceRepositoryFS)(nil)

func (r *TradespaceRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("tradespaces")
}

func (r *TradespaceRepositoryFS) GetByID(ctx context.Context, id string) (*tsdom.Tradespace, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, tsdom.ErrNotFound
	}

	doc, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, tsdom.ErrNotFound
		}
		return nil, err
	}

	var ts tsdom.Tradespace
	if err := doc.DataTo(&ts); err != nil {
		return nil, err
	}
	ts.ID = doc.Ref.ID
	return &ts, nil
}

func (r *TradespaceRepositoryFS) List(ctx context.Context) ([]tsdom.Tradespace, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := r.col().Documents(ctx)
	defer it.Stop()

	out := []tsdom.Tradespace{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var ts tsdom.Tradespace
		if err := doc.DataTo(&ts); err != nil {
			return nil, err
		}
		ts.ID = doc.Ref.ID
		out = append(out, ts)
	}
	return out, nil
}

func (r *TradespaceRepositoryFS) ListByIDs(ctx context.Context, ids []string) ([]tsdom.Tradespace, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	out := []tsdom.Tradespace{}
	for _, id := range ids {
		ts, err := r.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, tsdom.ErrNotFound) {
				// missing ids are skipped, not an error
				continue
			}
			return nil, err
		}
		out = append(out, *ts)
	}
	return out, nil
}

func (r *TradespaceRepositoryFS) Create(ctx context.Context, ts *tsdom.Tradespace) (string, error) {
	if r.Client == nil {
		return "", errors.New("firestore client is nil")
	}
	if ts == nil {
		return "", tsdom.ErrInvalid
	}
	if err := ts.Validate(); err != nil {
		return "", err
	}

	ref, _, err := r.col().Add(ctx, ts)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}
