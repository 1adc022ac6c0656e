// internal/domain/forum/repository_port.go
package forum

import "context"

// Repository is the persistence port for forum posts.
//
// Storage (Firestore):
// - collection: forumPosts
// - docId: auto id
type Repository interface {
	// Create persists a new post and returns the generated docId.
	Create(ctx context.Context, p *Post) (string, error)

	// List runs the feed query (filter + sort + limit).
	List(ctx context.Context, q Query) ([]Post, error)

	// Watch streams full feed snapshots on every change until ctx is done.
	Watch(ctx context.Context, q Query) (<-chan []Post, func(), error)
}
