// internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "tradespace/internal/domain/cart"
)

// CartRepositoryFS implements cart.Repository.
//
// Path (persisted format, must stay stable):
// - users/{userId}/cartItems/{tradespaceId}_{listingId}
//
// The derived docId enforces "at most one line per listing per user"; Add
// runs as one RunTransaction on that doc so a double-clicked add increments
// quantity instead of duplicating or losing a unit.
type CartRepositoryFS struct {
	Client *firestore.Client
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

// Compile-time check
var _ cartdom.Repository = (*CartRepositoryFS)(nil)

func (r *CartRepositoryFS) col(userID string) *firestore.CollectionRef {
	return r.Client.Collection("users").Doc(userID).Collection("cartItems")
}

// ========================
// Commands
// ========================

func (r *CartRepositoryFS) Add(ctx context.Context, userID, tradespaceID, listingID string, snap cartdom.Snapshot, now time.Time) (*cartdom.Item, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	tid := strings.TrimSpace(tradespaceID)
	lid := strings.TrimSpace(listingID)
	if uid == "" || tid == "" || lid == "" {
		return nil, cartdom.ErrInvalidItem
	}

	ref := r.col(uid).Doc(cartdom.ItemID(tid, lid))

	var out *cartdom.Item
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(ref)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		if err == nil && docSnap.Exists() {
			var it cartdom.Item
			if derr := docSnap.DataTo(&it); derr != nil {
				return derr
			}
			it.ID = docSnap.Ref.ID
			if aerr := it.AddOne(now); aerr != nil {
				return aerr
			}
			out = &it
			return tx.Update(ref, []firestore.Update{
				{Path: "quantity", Value: it.Quantity},
				{Path: "updatedAt", Value: it.UpdatedAt},
			})
		}

		it, nerr := cartdom.NewItem(tid, lid, snap, now)
		if nerr != nil {
			return nerr
		}
		out = it
		return tx.Set(ref, it)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CartRepositoryFS) SetQuantity(ctx context.Context, userID, itemID string, quantity int, now time.Time) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	iid := strings.TrimSpace(itemID)
	if uid == "" || iid == "" {
		return cartdom.ErrInvalidItem
	}

	_, err := r.col(uid).Doc(iid).Update(ctx, []firestore.Update{
		{Path: "quantity", Value: quantity},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return cartdom.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *CartRepositoryFS) Delete(ctx context.Context, userID, itemID string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	iid := strings.TrimSpace(itemID)
	if uid == "" || iid == "" {
		return cartdom.ErrInvalidItem
	}

	// Firestore deletes are no-ops on missing docs, which matches the
	// "unconditional delete" contract.
	_, err := r.col(uid).Doc(iid).Delete(ctx)
	return err
}

// ========================
// Queries
// ========================

func (r *CartRepositoryFS) ListByUserID(ctx context.Context, userID string) ([]cartdom.Item, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return []cartdom.Item{}, nil
	}

	it := r.col(uid).Documents(ctx)
	defer it.Stop()

	out := []cartdom.Item{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var item cartdom.Item
		if err := doc.DataTo(&item); err != nil {
			return nil, err
		}
		item.ID = doc.Ref.ID
		out = append(out, item)
	}
	return out, nil
}

func (r *CartRepositoryFS) WatchCount(ctx context.Context, userID string) (<-chan int, func(), error) {
	if r.Client == nil {
		return nil, nil, errors.New("firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, nil, cartdom.ErrInvalidItem
	}

	wctx, cancel := context.WithCancel(ctx)
	snaps := r.col(uid).Snapshots(wctx)
	ch := make(chan int, 1)

	go func() {
		defer close(ch)
		defer snaps.Stop()
		for {
			qs, err := snaps.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					log.Printf("[cart_repo_fs] WARN: watch stopped userId=%s: %v", uid, err)
				}
				return
			}
			docs, err := qs.Documents.GetAll()
			if err != nil {
				log.Printf("[cart_repo_fs] WARN: watch read failed userId=%s: %v", uid, err)
				return
			}
			select {
			case ch <- len(docs):
			case <-wctx.Done():
				return
			}
		}
	}()

	return ch, cancel, nil
}
