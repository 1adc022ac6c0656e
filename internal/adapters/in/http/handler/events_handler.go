// internal/adapters/in/http/handler/events_handler.go
package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	query "tradespace/internal/application/query"
	forumdom "tradespace/internal/domain/forum"
)

// EventsHandler exposes the store's live projections as server-sent events:
//
//   GET /events/cart-count                         cart badge count (auth)
//   GET /events/listings?tradespaceId=..           listing feed snapshots
//   GET /events/forums?tradespaceId=..&category=..&sort=..
//
// Each snapshot from the underlying watch is pushed as one `data:` frame.
// The stream ends when the client disconnects or the watch fails.
type EventsHandler struct {
	cartQuery    *query.CartQueryService
	listingQuery *query.ListingQueryService
	forumQuery   *query.ForumQueryService
}

func NewEventsHandler(cartQuery *query.CartQueryService, listingQuery *query.ListingQueryService, forumQuery *query.ForumQueryService) http.Handler {
	return &EventsHandler{cartQuery: cartQuery, listingQuery: listingQuery, forumQuery: forumQuery}
}

func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	switch strings.Trim(strings.TrimPrefix(r.URL.Path, "/events"), "/") {
	case "cart-count":
		h.cartCount(w, r)
	case "listings":
		h.listings(w, r)
	case "forums":
		h.forums(w, r)
	default:
		notFound(w)
	}
}

func (h *EventsHandler) cartCount(w http.ResponseWriter, r *http.Request) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}

	ch, stop, err := h.cartQuery.WatchCount(r.Context(), u.UID)
	if err != nil {
		internalError(w, err)
		return
	}
	defer stop()

	streamSSE(w, r, func() (any, bool) {
		v, ok := <-ch
		return map[string]int{"count": v}, ok
	})
}

func (h *EventsHandler) listings(w http.ResponseWriter, r *http.Request) {
	tid := strings.TrimSpace(r.URL.Query().Get("tradespaceId"))
	if tid == "" {
		badRequest(w, "tradespaceId is required")
		return
	}

	ch, stop, err := h.listingQuery.WatchFeed(r.Context(), tid)
	if err != nil {
		internalError(w, err)
		return
	}
	defer stop()

	streamSSE(w, r, func() (any, bool) {
		v, ok := <-ch
		return v, ok
	})
}

func (h *EventsHandler) forums(w http.ResponseWriter, r *http.Request) {
	q := forumdom.Query{
		TradespaceID: r.URL.Query().Get("tradespaceId"),
		Category:     r.URL.Query().Get("category"),
		Sort:         forumdom.Sort(r.URL.Query().Get("sort")),
	}

	ch, stop, err := h.forumQuery.WatchFeed(r.Context(), q)
	if err != nil {
		badRequest(w, "tradespaceId is required")
		return
	}
	defer stop()

	streamSSE(w, r, func() (any, bool) {
		v, ok := <-ch
		return v, ok
	})
}

// streamSSE drains next() into the response until the source closes or the
// client goes away. next blocks on the watch channel.
func streamSSE(w http.ResponseWriter, r *http.Request, next func() (any, bool)) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		internalError(w, fmt.Errorf("streaming unsupported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		v, ok := next()
		if !ok {
			return
		}

		b, err := json.Marshal(v)
		if err != nil {
			log.Printf("[events_handler] marshal failed: %v", err)
			return
		}

		select {
		case <-r.Context().Done():
			return
		default:
		}

		if _, err := fmt.Fprintf(w, "data: %s\n\n", b); err != nil {
			return
		}
		flusher.Flush()
	}
}
