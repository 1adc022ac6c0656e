// internal/application/query/tradespace_query_test.go
package query

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memdom "tradespace/internal/domain/membership"
	tsdom "tradespace/internal/domain/tradespace"
)

type fakeTradespaceRepo struct {
	byID map[string]*tsdom.Tradespace
}

func (r *fakeTradespaceRepo) GetByID(_ context.Context, id string) (*tsdom.Tradespace, error) {
	ts, ok := r.byID[id]
	if !ok {
		return nil, tsdom.ErrNotFound
	}
	cp := *ts
	return &cp, nil
}

func (r *fakeTradespaceRepo) List(_ context.Context) ([]tsdom.Tradespace, error) {
	out := []tsdom.Tradespace{}
	for _, ts := range r.byID {
		out = append(out, *ts)
	}
	return out, nil
}

func (r *fakeTradespaceRepo) ListByIDs(ctx context.Context, ids []string) ([]tsdom.Tradespace, error) {
	out := []tsdom.Tradespace{}
	for _, id := range ids {
		ts, err := r.GetByID(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, *ts)
	}
	return out, nil
}

func (r *fakeTradespaceRepo) Create(_ context.Context, ts *tsdom.Tradespace) (string, error) {
	id := "ts" + strconv.Itoa(len(r.byID)+1)
	cp := *ts
	cp.ID = id
	r.byID[id] = &cp
	return id, nil
}

var _ tsdom.Repository = (*fakeTradespaceRepo)(nil)

type fakeLinkRepo struct {
	links map[string][]memdom.UserTradespaceLink
}

func (r *fakeLinkRepo) Join(context.Context, string, string, time.Time) (err error) { return nil }
func (r *fakeLinkRepo) Leave(context.Context, string, string) error                 { return nil }
func (r *fakeLinkRepo) IsMember(context.Context, string, string) (bool, error)      { return false, nil }

func (r *fakeLinkRepo) ListLinksByUserID(_ context.Context, uid string) ([]memdom.UserTradespaceLink, error) {
	return r.links[uid], nil
}

var _ memdom.Repository = (*fakeLinkRepo)(nil)

func TestMyTradespacesSkipsDanglingLinks(t *testing.T) {
	tsRepo := &fakeTradespaceRepo{byID: map[string]*tsdom.Tradespace{
		"ts1": {ID: "ts1", Name: "Woodworking"},
	}}
	linkRepo := &fakeLinkRepo{links: map[string][]memdom.UserTradespaceLink{
		"u1": {
			{UserID: "u1", TradespaceID: "ts1"},
			{UserID: "u1", TradespaceID: "gone"},
		},
	}}
	s := NewTradespaceQueryService(tsRepo, linkRepo)

	out, err := s.MyTradespaces(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "ts1", out[0].ID)
}

func TestMyTradespacesValidatesUser(t *testing.T) {
	s := NewTradespaceQueryService(&fakeTradespaceRepo{byID: map[string]*tsdom.Tradespace{}}, &fakeLinkRepo{})
	_, err := s.MyTradespaces(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTradespaceQueryInvalidArgument)
}

func TestByIDsSkipsMissing(t *testing.T) {
	tsRepo := &fakeTradespaceRepo{byID: map[string]*tsdom.Tradespace{
		"ts1": {ID: "ts1"},
		"ts2": {ID: "ts2"},
	}}
	s := NewTradespaceQueryService(tsRepo, &fakeLinkRepo{})

	out, err := s.ByIDs(context.Background(), []string{"ts1", "nope", "ts2"})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
