// internal/application/usecase/cart_usecase_test.go
package usecase

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "tradespace/internal/domain/cart"
)

// fakeCartRepo mirrors the store adapter's upsert semantics in memory:
// one map per user keyed by the derived docId.
type fakeCartRepo struct {
	carts map[string]map[string]*cartdom.Item // uid -> docId -> line

	failDelete map[string]bool // docId -> fail once semantics not needed; fail always
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		carts:      map[string]map[string]*cartdom.Item{},
		failDelete: map[string]bool{},
	}
}

func (r *fakeCartRepo) lines(uid string) map[string]*cartdom.Item {
	if r.carts[uid] == nil {
		r.carts[uid] = map[string]*cartdom.Item{}
	}
	return r.carts[uid]
}

func (r *fakeCartRepo) Add(_ context.Context, uid, tid, lid string, snap cartdom.Snapshot, now time.Time) (*cartdom.Item, error) {
	lines := r.lines(uid)
	id := cartdom.ItemID(tid, lid)
	if it, ok := lines[id]; ok {
		if err := it.AddOne(now); err != nil {
			return nil, err
		}
		cp := *it
		return &cp, nil
	}
	it, err := cartdom.NewItem(tid, lid, snap, now)
	if err != nil {
		return nil, err
	}
	lines[id] = it
	cp := *it
	return &cp, nil
}

func (r *fakeCartRepo) SetQuantity(_ context.Context, uid, itemID string, quantity int, now time.Time) error {
	it, ok := r.lines(uid)[itemID]
	if !ok {
		return cartdom.ErrNotFound
	}
	it.Quantity = quantity
	it.UpdatedAt = now
	return nil
}

func (r *fakeCartRepo) Delete(_ context.Context, uid, itemID string) error {
	if r.failDelete[itemID] {
		return assert.AnError
	}
	delete(r.lines(uid), itemID)
	return nil
}

func (r *fakeCartRepo) ListByUserID(_ context.Context, uid string) ([]cartdom.Item, error) {
	var out []cartdom.Item
	for _, it := range r.lines(uid) {
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCartRepo) WatchCount(ctx context.Context, _ string) (<-chan int, func(), error) {
	ch := make(chan int)
	close(ch)
	return ch, func() {}, nil
}

var _ cartdom.Repository = (*fakeCartRepo)(nil)

func TestAddToCartAccumulates(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCartRepo()
	uc := NewCartUsecase(repo)

	snap := cartdom.Snapshot{Title: "Lamp", Price: 10, SellerID: "s1"}

	it, err := uc.AddToCart(ctx, "u1", "ts1", "li1", snap)
	require.NoError(t, err)
	assert.Equal(t, "ts1_li1", it.ID)
	assert.Equal(t, 1, it.Quantity)

	it, err = uc.AddToCart(ctx, "u1", "ts1", "li1", snap)
	require.NoError(t, err)
	assert.Equal(t, 2, it.Quantity)

	items, err := uc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestAddToCartValidates(t *testing.T) {
	uc := NewCartUsecase(newFakeCartRepo())
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, "", "ts1", "li1", cartdom.Snapshot{Title: "x"})
	assert.ErrorIs(t, err, ErrCartInvalidArgument)

	_, err = uc.AddToCart(ctx, "u1", "ts1", "li1", cartdom.Snapshot{Title: "  "})
	assert.ErrorIs(t, err, ErrCartInvalidArgument)

	_, err = uc.AddToCart(ctx, "u1", "ts1", "li1", cartdom.Snapshot{Title: "x", Price: -5})
	assert.ErrorIs(t, err, ErrCartInvalidArgument)
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCartRepo()
	uc := NewCartUsecase(repo)

	_, err := uc.AddToCart(ctx, "u1", "ts1", "li1", cartdom.Snapshot{Title: "Lamp", Price: 10})
	require.NoError(t, err)

	require.NoError(t, uc.UpdateQuantity(ctx, "u1", "ts1_li1", 5))
	items, err := uc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)

	assert.ErrorIs(t, uc.UpdateQuantity(ctx, "u1", "ts1_missing", 2), cartdom.ErrNotFound)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCartRepo()
	uc := NewCartUsecase(repo)

	_, err := uc.AddToCart(ctx, "u1", "ts1", "li1", cartdom.Snapshot{Title: "Lamp", Price: 10})
	require.NoError(t, err)

	require.NoError(t, uc.UpdateQuantity(ctx, "u1", "ts1_li1", 0))
	items, err := uc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	uc := NewCartUsecase(newFakeCartRepo())
	assert.NoError(t, uc.RemoveItem(context.Background(), "u1", "ts1_li1"))
}
