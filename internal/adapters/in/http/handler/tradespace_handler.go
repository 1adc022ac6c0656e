// internal/adapters/in/http/handler/tradespace_handler.go
package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	query "tradespace/internal/application/query"
	usecase "tradespace/internal/application/usecase"
	tsdom "tradespace/internal/domain/tradespace"
)

// TradespaceHandler serves the /tradespaces subtree:
//
//   GET  /tradespaces                 explore feed
//   POST /tradespaces                 create (multipart: name, description, thumbnail)
//   GET  /tradespaces/mine            my tradespaces (hydrated links)
//   GET  /tradespaces/byIds?ids=a,b   batch resolve (missing ids skipped)
//   GET  /tradespaces/{id}            detail
//   POST /tradespaces/{id}/join       membership engine
//   POST /tradespaces/{id}/leave      membership engine
//   GET  /tradespaces/{id}/listings   listing feed
//   POST /tradespaces/{id}/listings   create listing (multipart, optional image)
type TradespaceHandler struct {
	tradespaceUC *usecase.TradespaceUsecase
	membershipUC *usecase.MembershipUsecase
	listingUC    *usecase.ListingUsecase

	tradespaceQuery *query.TradespaceQueryService
	listingQuery    *query.ListingQueryService
}

func NewTradespaceHandler(
	tradespaceUC *usecase.TradespaceUsecase,
	membershipUC *usecase.MembershipUsecase,
	listingUC *usecase.ListingUsecase,
	tradespaceQuery *query.TradespaceQueryService,
	listingQuery *query.ListingQueryService,
) http.Handler {
	return &TradespaceHandler{
		tradespaceUC:    tradespaceUC,
		membershipUC:    membershipUC,
		listingUC:       listingUC,
		tradespaceQuery: tradespaceQuery,
		listingQuery:    listingQuery,
	}
}

func (h *TradespaceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/tradespaces"), "/")

	var segs []string
	if path != "" {
		segs = strings.Split(path, "/")
	}

	switch len(segs) {
	case 0:
		switch r.Method {
		case http.MethodGet:
			h.explore(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			methodNotAllowed(w)
		}
	case 1:
		switch segs[0] {
		case "mine":
			if r.Method != http.MethodGet {
				methodNotAllowed(w)
				return
			}
			h.mine(w, r)
		case "byIds":
			if r.Method != http.MethodGet {
				methodNotAllowed(w)
				return
			}
			h.byIDs(w, r)
		default:
			if r.Method != http.MethodGet {
				methodNotAllowed(w)
				return
			}
			h.get(w, r, segs[0])
		}
	case 2:
		id := segs[0]
		switch segs[1] {
		case "join", "leave":
			if r.Method != http.MethodPost {
				methodNotAllowed(w)
				return
			}
			h.membership(w, r, id, segs[1])
		case "listings":
			switch r.Method {
			case http.MethodGet:
				h.listings(w, r, id)
			case http.MethodPost:
				h.createListing(w, r, id)
			default:
				methodNotAllowed(w)
			}
		default:
			notFound(w)
		}
	default:
		notFound(w)
	}
}

func (h *TradespaceHandler) explore(w http.ResponseWriter, r *http.Request) {
	out, err := h.tradespaceQuery.Explore(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *TradespaceHandler) create(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	if err := r.ParseMultipartForm(16 << 20); err != nil {
		badRequest(w, "invalid multipart form")
		return
	}

	thumb, err := readUpload(r, "thumbnail", 8<<20)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	ts, err := h.tradespaceUC.Create(r.Context(), r.FormValue("name"), r.FormValue("description"), thumb)
	if err != nil {
		if errors.Is(err, usecase.ErrTradespaceInvalidArgument) || errors.Is(err, tsdom.ErrInvalid) {
			badRequest(w, "name and thumbnail are required")
			return
		}
		internalError(w, err)
		return
	}

	log.Printf("[tradespace_handler] created id=%s name=%q", ts.ID, ts.Name)
	writeJSON(w, http.StatusCreated, ts)
}

func (h *TradespaceHandler) mine(w http.ResponseWriter, r *http.Request) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}

	out, err := h.tradespaceQuery.MyTradespaces(r.Context(), u.UID)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *TradespaceHandler) byIDs(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("ids"))
	if raw == "" {
		writeJSON(w, http.StatusOK, []tsdom.Tradespace{})
		return
	}

	ids := []string{}
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	out, err := h.tradespaceQuery.ByIDs(r.Context(), ids)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *TradespaceHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	ts, err := h.tradespaceQuery.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, tsdom.ErrNotFound) {
			notFound(w)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (h *TradespaceHandler) membership(w http.ResponseWriter, r *http.Request, id, op string) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}

	var err error
	if op == "join" {
		err = h.membershipUC.Join(r.Context(), id, u.UID)
	} else {
		err = h.membershipUC.Leave(r.Context(), id, u.UID)
	}
	if err != nil {
		if errors.Is(err, tsdom.ErrNotFound) {
			notFound(w)
			return
		}
		if errors.Is(err, usecase.ErrMembershipInvalidArgument) {
			badRequest(w, "invalid tradespace id")
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *TradespaceHandler) listings(w http.ResponseWriter, r *http.Request, id string) {
	out, err := h.listingQuery.Feed(r.Context(), id)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *TradespaceHandler) createListing(w http.ResponseWriter, r *http.Request, id string) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(16 << 20); err != nil {
		badRequest(w, "invalid multipart form")
		return
	}

	price, perr := parsePrice(r.FormValue("price"))
	if perr != nil {
		badRequest(w, "invalid price")
		return
	}

	image, err := readUpload(r, "image", 8<<20)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	sellerName := u.DisplayName
	if sellerName == "" {
		sellerName = u.Email
	}

	l, err := h.listingUC.Create(r.Context(), usecase.CreateListingInput{
		TradespaceID: id,
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		Price:        price,
		Condition:    r.FormValue("condition"),
		SellerID:     u.UID,
		SellerName:   sellerName,
		Image:        image,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrListingInvalidArgument) {
			badRequest(w, "title is required and price must be >= 0")
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, l)
}
