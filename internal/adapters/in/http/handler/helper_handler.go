// internal/adapters/in/http/handler/helper_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	usecase "tradespace/internal/application/usecase"
	"tradespace/internal/adapters/in/http/middleware"
)

// ============================================================
// HTTP helpers
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeErr(w, http.StatusBadRequest, msg)
}

func notFound(w http.ResponseWriter) {
	writeErr(w, http.StatusNotFound, "not_found")
}

func methodNotAllowed(w http.ResponseWriter) {
	writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed")
}

func unauthorized(w http.ResponseWriter) {
	writeErr(w, http.StatusUnauthorized, "unauthorized")
}

func internalError(w http.ResponseWriter, err error) {
	writeErr(w, http.StatusInternalServerError, err.Error())
}

func decodeJSON(r *http.Request, v any) error {
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	return nil
}

// requireUser resolves the authenticated caller or writes 401.
func requireUser(w http.ResponseWriter, r *http.Request) (middleware.AuthUser, bool) {
	u, ok := middleware.CurrentUser(r.Context())
	if !ok {
		unauthorized(w)
	}
	return u, ok
}

// parsePrice parses a non-negative decimal form value.
func parsePrice(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, errors.New("invalid price")
	}
	if v < 0 {
		return 0, errors.New("invalid price")
	}
	return v, nil
}

// readUpload pulls an optional multipart file field into memory.
// Returns (nil, nil) when the field is absent.
func readUpload(r *http.Request, field string, maxBytes int64) (*usecase.ImageUpload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	if maxBytes <= 0 {
		maxBytes = 8 << 20
	}
	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, errors.New("upload too large")
	}

	return &usecase.ImageUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
