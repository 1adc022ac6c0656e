// internal/adapters/in/http/handler/cart_handler_test.go
package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradespace/internal/adapters/in/http/middleware"
	query "tradespace/internal/application/query"
	usecase "tradespace/internal/application/usecase"
	cartdom "tradespace/internal/domain/cart"
)

type memCartRepo struct {
	lines map[string]*cartdom.Item
}

func newMemCartRepo() *memCartRepo { return &memCartRepo{lines: map[string]*cartdom.Item{}} }

func (r *memCartRepo) Add(_ context.Context, _, tid, lid string, snap cartdom.Snapshot, now time.Time) (*cartdom.Item, error) {
	id := cartdom.ItemID(tid, lid)
	if it, ok := r.lines[id]; ok {
		if err := it.AddOne(now); err != nil {
			return nil, err
		}
		return it, nil
	}
	it, err := cartdom.NewItem(tid, lid, snap, now)
	if err != nil {
		return nil, err
	}
	r.lines[id] = it
	return it, nil
}

func (r *memCartRepo) SetQuantity(_ context.Context, _, itemID string, quantity int, now time.Time) error {
	it, ok := r.lines[itemID]
	if !ok {
		return cartdom.ErrNotFound
	}
	it.Quantity = quantity
	it.UpdatedAt = now
	return nil
}

func (r *memCartRepo) Delete(_ context.Context, _, itemID string) error {
	delete(r.lines, itemID)
	return nil
}

func (r *memCartRepo) ListByUserID(context.Context, string) ([]cartdom.Item, error) {
	out := []cartdom.Item{}
	for _, it := range r.lines {
		out = append(out, *it)
	}
	return out, nil
}

func (r *memCartRepo) WatchCount(context.Context, string) (<-chan int, func(), error) {
	ch := make(chan int)
	close(ch)
	return ch, func() {}, nil
}

var _ cartdom.Repository = (*memCartRepo)(nil)

func newCartTestHandler() (http.Handler, *memCartRepo) {
	repo := newMemCartRepo()
	uc := usecase.NewCartUsecase(repo)
	q := query.NewCartQueryService(repo)
	return NewCartHandler(uc, q), repo
}

func asUser(r *http.Request, uid string) *http.Request {
	return r.WithContext(middleware.WithUser(r.Context(), middleware.AuthUser{UID: uid}))
}

func TestCartAddAndView(t *testing.T) {
	h, _ := newCartTestHandler()

	body := `{"tradespaceId":"ts1","listingId":"li1","title":"Lamp","price":12.5,"sellerId":"s1","sellerName":"Ann"}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body)), "u1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"ts1_li1"`)

	req = asUser(httptest.NewRequest(http.MethodGet, "/cart", nil), "u1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)
}

func TestCartAddRejectsOwnListing(t *testing.T) {
	h, repo := newCartTestHandler()

	body := `{"tradespaceId":"ts1","listingId":"li1","title":"Lamp","price":12.5,"sellerId":"u1"}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body)), "u1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, repo.lines)
}

func TestCartRequiresAuth(t *testing.T) {
	h, _ := newCartTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartSetQuantityZeroDeletes(t *testing.T) {
	h, repo := newCartTestHandler()

	add := `{"tradespaceId":"ts1","listingId":"li1","title":"Lamp","price":12.5,"sellerId":"s1"}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(add)), "u1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Len(t, repo.lines, 1)

	req = asUser(httptest.NewRequest(http.MethodPut, "/cart/items/ts1_li1", strings.NewReader(`{"quantity":0}`)), "u1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, repo.lines)
}

func TestCartUnknownRoute(t *testing.T) {
	h, _ := newCartTestHandler()

	req := asUser(httptest.NewRequest(http.MethodGet, "/cart/items/extra/deep", nil), "u1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
