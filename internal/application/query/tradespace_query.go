// internal/application/query/tradespace_query.go
package query

import (
	"context"
	"errors"
	"log"
	"strings"

	memdom "tradespace/internal/domain/membership"
	tsdom "tradespace/internal/domain/tradespace"
)

var (
	ErrTradespaceQueryInvalidArgument = errors.New("tradespace_query: invalid argument")
)

// TradespaceQueryService serves the explore feed and "my tradespaces".
type TradespaceQueryService struct {
	tradespaces tsdom.Repository
	memberships memdom.Repository
}

func NewTradespaceQueryService(tradespaces tsdom.Repository, memberships memdom.Repository) *TradespaceQueryService {
	return &TradespaceQueryService{tradespaces: tradespaces, memberships: memberships}
}

// Explore returns all tradespaces for the explore page.
func (s *TradespaceQueryService) Explore(ctx context.Context) ([]tsdom.Tradespace, error) {
	return s.tradespaces.List(ctx)
}

// GetByID returns one tradespace (tradespace.ErrNotFound when missing).
func (s *TradespaceQueryService) GetByID(ctx context.Context, id string) (*tsdom.Tradespace, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrTradespaceQueryInvalidArgument
	}
	return s.tradespaces.GetByID(ctx, id)
}

// ByIDs batch-resolves tradespaces; missing ids are skipped.
func (s *TradespaceQueryService) ByIDs(ctx context.Context, ids []string) ([]tsdom.Tradespace, error) {
	return s.tradespaces.ListByIDs(ctx, ids)
}

// MyTradespaces reads the user's links and hydrates each from the
// tradespaces collection. A dangling link (tradespace deleted out-of-band)
// is skipped, not an error.
func (s *TradespaceQueryService) MyTradespaces(ctx context.Context, userID string) ([]tsdom.Tradespace, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrTradespaceQueryInvalidArgument
	}

	links, err := s.memberships.ListLinksByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}

	out := make([]tsdom.Tradespace, 0, len(links))
	for _, link := range links {
		ts, err := s.tradespaces.GetByID(ctx, link.TradespaceID)
		if err != nil {
			if errors.Is(err, tsdom.ErrNotFound) {
				log.Printf("[tradespace_query] WARN: dangling link userId=%s tradespaceId=%s", uid, link.TradespaceID)
				continue
			}
			return nil, err
		}
		out = append(out, *ts)
	}
	return out, nil
}
