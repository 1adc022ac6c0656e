// internal/adapters/in/http/handler/cart_handler.go
package handler

import (
	"errors"
	"net/http"
	"strings"

	query "tradespace/internal/application/query"
	usecase "tradespace/internal/application/usecase"
	cartdom "tradespace/internal/domain/cart"
)

// CartHandler serves the /cart subtree (all routes require auth):
//
//   GET    /cart               cart view (items + recomputed totals)
//   POST   /cart/items         add one unit of a listing (idempotent line id)
//   PUT    /cart/items/{id}    set absolute quantity (0 removes)
//   DELETE /cart/items/{id}    remove the line
type CartHandler struct {
	cartUC    *usecase.CartUsecase
	cartQuery *query.CartQueryService
}

func NewCartHandler(cartUC *usecase.CartUsecase, cartQuery *query.CartQueryService) http.Handler {
	return &CartHandler{cartUC: cartUC, cartQuery: cartQuery}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/cart"), "/")

	var segs []string
	if path != "" {
		segs = strings.Split(path, "/")
	}

	switch {
	case len(segs) == 0:
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.view(w, r)
	case len(segs) == 1 && segs[0] == "items":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h.add(w, r)
	case len(segs) == 2 && segs[0] == "items":
		switch r.Method {
		case http.MethodPut:
			h.setQuantity(w, r, segs[1])
		case http.MethodDelete:
			h.remove(w, r, segs[1])
		default:
			methodNotAllowed(w)
		}
	default:
		notFound(w)
	}
}

func (h *CartHandler) view(w http.ResponseWriter, r *http.Request) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}

	out, err := h.cartQuery.Get(r.Context(), u.UID)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type addCartItemRequest struct {
	TradespaceID string  `json:"tradespaceId"`
	ListingID    string  `json:"listingId"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	SellerID     string  `json:"sellerId"`
	SellerName   string  `json:"sellerName"`
	ImageURL     string  `json:"imageUrl"`
	Condition    string  `json:"condition"`
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req addCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	// Sellers cannot buy their own listing.
	if strings.TrimSpace(req.SellerID) == u.UID {
		badRequest(w, "cannot add your own listing to the cart")
		return
	}

	item, err := h.cartUC.AddToCart(r.Context(), u.UID, req.TradespaceID, req.ListingID, cartdom.Snapshot{
		Title:      req.Title,
		Price:      req.Price,
		SellerID:   req.SellerID,
		SellerName: req.SellerName,
		ImageURL:   req.ImageURL,
		Condition:  req.Condition,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrCartInvalidArgument) {
			badRequest(w, "tradespaceId, listingId and a listing snapshot are required")
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) setQuantity(w http.ResponseWriter, r *http.Request, itemID string) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req setQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := h.cartUC.UpdateQuantity(r.Context(), u.UID, itemID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, usecase.ErrCartInvalidArgument):
			badRequest(w, "invalid item id")
		case errors.Is(err, cartdom.ErrNotFound):
			notFound(w)
		default:
			internalError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request, itemID string) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.cartUC.RemoveItem(r.Context(), u.UID, itemID); err != nil {
		if errors.Is(err, usecase.ErrCartInvalidArgument) {
			badRequest(w, "invalid item id")
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
