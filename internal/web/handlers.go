package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"shelf/internal/catalog"
	"shelf/internal/logger"
	"shelf/internal/panel"
	"shelf/internal/wishlist"
)

const backendTimeout = 10 * time.Second

type shellData struct {
	Query    string
	Fragment string
	Panel    template.HTML
}

type previewData struct {
	Book        catalog.Book
	Description template.HTML
}

func (s *Server) searchParams(r *http.Request) (string, int) {
	q := r.URL.Query()
	return strings.TrimSpace(q.Get("q")), s.Catalog.ClampPage(atoiDefault(q.Get("page"), 1))
}

// Home renders the page shell. With a query the panel starts in its loading
// state and the browser fetches the real grid from /results.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	query, page := s.searchParams(r)
	l := links{query: query, page: page}
	props := panel.Props{SearchQuery: query, OnSuggestion: l}

	if query != "" {
		props.IsLoading = true
		if page > 1 {
			ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
			defer cancel()
			if res, err := s.Catalog.Results(ctx, query, page-1); err != nil {
				logger.For(ctx).WithError(err).Warn("shell.previous_pages")
			} else {
				props.Books = res.Books
				props.TotalItems = res.Total
				props.Wishlist = s.membership(ctx, owner(w, r, false))
				props.OnWishlistToggle = links{query: query, page: page - 1}
			}
		}
	}

	var buf bytes.Buffer
	if err := s.Panel.Render(&buf, props); err != nil {
		s.fail(w, r, err)
		return
	}
	data := shellData{Query: query, Panel: template.HTML(buf.String())}
	if query != "" {
		data.Fragment = fragmentURL(query, page)
	}
	s.render(w, r, "shell", data)
}

// Results renders the panel fragment holding every hit up to page.
func (s *Server) Results(w http.ResponseWriter, r *http.Request) {
	query, page := s.searchParams(r)
	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()

	res, err := s.Catalog.Results(ctx, query, page)
	if err != nil {
		logger.For(ctx).WithError(err).Error("catalog.search.failed")
		http.Error(w, "search is unavailable, try again shortly", http.StatusBadGateway)
		return
	}

	l := links{query: query, page: page}
	props := panel.Props{
		Books:            res.Books,
		Wishlist:         s.membership(ctx, owner(w, r, false)),
		OnWishlistToggle: l,
		SearchQuery:      query,
		TotalItems:       res.Total,
		OnLoadMore:       l,
		HasMoreItems:     res.HasMore() && page < s.Catalog.MaxPage(),
		OnSuggestion:     l,
	}
	if s.preview {
		props.OnBookPreview = l
	}

	var buf bytes.Buffer
	if err := s.Panel.Render(&buf, props); err != nil {
		s.fail(w, r, err)
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(buf.Bytes()))
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "private, no-cache")
	w.Header().Set("Vary", "Cookie")
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// ToggleWishlist applies a card's wishlist form and sends the browser back to the grid.
func (s *Server) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	adding := r.FormValue("adding") == "1"
	ret := safeReturn(r.FormValue("return"))

	extra := clientBuckets(r)
	err := s.Wishlist.ToggleKeyed(r.Context(), owner(w, r, true), id, adding, extra...)
	switch {
	case errors.Is(err, wishlist.ErrRateLimited):
		w.Header().Set("Retry-After", "1")
		http.Error(w, "too many wishlist changes, slow down", http.StatusTooManyRequests)
	case err != nil:
		logger.For(r.Context()).WithError(err).WithField("book_id", id).Error("wishlist.toggle.failed")
		http.Error(w, "could not update wishlist", http.StatusInternalServerError)
	default:
		http.Redirect(w, r, ret, http.StatusSeeOther)
	}
}

// Preview shows one book in full. ?partial=1 returns only the body for the preview pane.
func (s *Server) Preview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()

	b, err := s.Catalog.Lookup(ctx, r.PathValue("id"))
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, errors.ErrUnsupported):
		http.Error(w, "preview is not available for this catalog", http.StatusNotImplemented)
		return
	case err != nil:
		s.fail(w, r, err)
		return
	}

	name := "preview-page"
	if r.URL.Query().Get("partial") == "1" {
		name = "preview-body"
	}
	s.render(w, r, name, previewData{Book: *b, Description: template.HTML(s.ugc.Sanitize(b.Description))})
}

func (s *Server) membership(ctx context.Context, who string) panel.Wishlist {
	m, err := s.Wishlist.Membership(ctx, who)
	if err != nil {
		logger.For(ctx).WithError(err).Warn("wishlist.membership")
		return wishlist.NewMembership()
	}
	return m
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	logger.For(r.Context()).WithError(err).Error("render.failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// etagMatches applies the weak comparison of If-None-Match: any listed tag,
// with or without W/, equal to etag, or a bare "*".
func etagMatches(header, etag string) bool {
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" || strings.TrimPrefix(tag, "W/") == etag {
			return true
		}
	}
	return false
}

func atoiDefault(s string, d int) int {
	if s == "" {
		return d
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}
