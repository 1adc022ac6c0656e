// internal/application/usecase/forum_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	forumdom "tradespace/internal/domain/forum"
)

var (
	ErrForumInvalidArgument = errors.New("forum_usecase: invalid argument")
)

// CreatePostInput is the app-level input for forum post creation.
type CreatePostInput struct {
	TradespaceID   string
	Title          string
	Content        string
	Author         string
	AuthorInitials string
	Category       string
	Tags           []string
}

// ForumUsecase coordinates forum post creation.
type ForumUsecase struct {
	repo  forumdom.Repository
	clock Clock
}

func NewForumUsecase(repo forumdom.Repository) *ForumUsecase {
	return &ForumUsecase{repo: repo, clock: systemClock{}}
}

// NewForumUsecaseWithClock is useful for tests.
func NewForumUsecaseWithClock(repo forumdom.Repository, clock Clock) *ForumUsecase {
	uc := NewForumUsecase(repo)
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// CreatePost persists a new post with zeroed counters.
func (uc *ForumUsecase) CreatePost(ctx context.Context, in CreatePostInput) (*forumdom.Post, error) {
	if strings.TrimSpace(in.TradespaceID) == "" {
		return nil, ErrForumInvalidArgument
	}

	p, err := forumdom.NewPost(in.TradespaceID, in.Title, in.Content, in.Author, in.AuthorInitials, in.Category, in.Tags, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	id, err := uc.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}
