package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"shelf/internal/catalog"
	"shelf/internal/logger"
	"shelf/internal/wishlist"
)

const maxAPISize = 100

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

type WishlistResponse struct {
	Owner string   `json:"owner"`
	IDs   []string `json:"ids"`
}

type ToggleResponse struct {
	ID         string `json:"id"`
	InWishlist bool   `json:"in_wishlist"`
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// GET /api/search?q=...&from=0&size=24
func (s *Server) APISearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := strings.TrimSpace(q.Get("q"))
	if query == "" {
		WriteError(w, http.StatusBadRequest, "bad_request", "q parameter is required", nil)
		return
	}
	from := max(atoiDefault(q.Get("from"), 0), 0)
	size := atoiDefault(q.Get("size"), s.Catalog.PerPage())
	if size <= 0 || size > maxAPISize {
		WriteError(w, http.StatusBadRequest, "bad_request", "size must be between 1 and 100", size)
		return
	}
	if from > catalog.MaxHits-size {
		WriteError(w, http.StatusBadRequest, "bad_request", fmt.Sprintf("from+size must not exceed %d", catalog.MaxHits), from)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()
	page, err := s.Catalog.Window(ctx, query, from, size)
	if err != nil {
		logger.For(ctx).WithError(err).Error("catalog.search.failed")
		WriteError(w, http.StatusBadGateway, "upstream_error", "search backend failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GET /api/wishlist
func (s *Server) APIWishlist(w http.ResponseWriter, r *http.Request) {
	who := apiOwner(r)
	m, err := s.Wishlist.Membership(r.Context(), who)
	if err != nil {
		logger.For(r.Context()).WithError(err).Error("wishlist.membership")
		WriteError(w, http.StatusInternalServerError, "internal", "could not read wishlist", nil)
		return
	}
	writeJSON(w, http.StatusOK, WishlistResponse{Owner: who, IDs: m.IDs()})
}

// POST /api/wishlist/{id}?adding=1
func (s *Server) APIToggle(w http.ResponseWriter, r *http.Request) {
	who := apiOwner(r)
	if who == "" {
		WriteError(w, http.StatusBadRequest, "bad_request", OwnerHeader+" header is required", nil)
		return
	}
	id := r.PathValue("id")
	adding := r.FormValue("adding") == "1" || r.FormValue("adding") == "true"

	err := s.Wishlist.Toggle(r.Context(), who, id, adding)
	switch {
	case errors.Is(err, wishlist.ErrRateLimited):
		w.Header().Set("Retry-After", "1")
		WriteError(w, http.StatusTooManyRequests, "rate_limited", err.Error(), nil)
	case err != nil:
		logger.For(r.Context()).WithError(err).WithField("book_id", id).Error("wishlist.toggle.failed")
		WriteError(w, http.StatusInternalServerError, "internal", "could not update wishlist", nil)
	default:
		writeJSON(w, http.StatusOK, ToggleResponse{ID: id, InWishlist: adding})
	}
}

// WriteError answers with the JSON error envelope.
func WriteError(w http.ResponseWriter, status int, code, message string, details any) {
	writeJSON(w, status, ErrorEnvelope{Error: ErrorBody{Code: code, Message: message, Details: details}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
