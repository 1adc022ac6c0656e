// internal/adapters/in/http/handler/forum_handler.go
package handler

import (
	"errors"
	"net/http"
	"strings"

	query "tradespace/internal/application/query"
	usecase "tradespace/internal/application/usecase"
	forumdom "tradespace/internal/domain/forum"
)

// ForumHandler serves the /forums subtree:
//
//   GET  /forums?tradespaceId=..&category=..&sort=..   filtered feed
//   POST /forums                                       create post (auth)
type ForumHandler struct {
	forumUC    *usecase.ForumUsecase
	forumQuery *query.ForumQueryService
}

func NewForumHandler(forumUC *usecase.ForumUsecase, forumQuery *query.ForumQueryService) http.Handler {
	return &ForumHandler{forumUC: forumUC, forumQuery: forumQuery}
}

func (h *ForumHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.Trim(strings.TrimPrefix(r.URL.Path, "/forums"), "/") != "" {
		notFound(w)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.feed(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *ForumHandler) feed(w http.ResponseWriter, r *http.Request) {
	q := forumdom.Query{
		TradespaceID: r.URL.Query().Get("tradespaceId"),
		Category:     r.URL.Query().Get("category"),
		Sort:         forumdom.Sort(r.URL.Query().Get("sort")),
	}

	out, err := h.forumQuery.Feed(r.Context(), q)
	if err != nil {
		if errors.Is(err, forumdom.ErrInvalid) {
			badRequest(w, "tradespaceId is required")
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type createPostRequest struct {
	TradespaceID string   `json:"tradespaceId"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
}

func (h *ForumHandler) create(w http.ResponseWriter, r *http.Request) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	author := u.DisplayName
	if author == "" {
		author = u.Email
	}

	p, err := h.forumUC.CreatePost(r.Context(), usecase.CreatePostInput{
		TradespaceID:   req.TradespaceID,
		Title:          req.Title,
		Content:        req.Content,
		Author:         author,
		AuthorInitials: authorInitials(author),
		Category:       req.Category,
		Tags:           req.Tags,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrForumInvalidArgument) || errors.Is(err, forumdom.ErrInvalid) {
			badRequest(w, "tradespaceId, title and content are required")
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// authorInitials derives up to two uppercase initials from a display name.
func authorInitials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		out = append(out, []rune(strings.ToUpper(part))[0])
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}
