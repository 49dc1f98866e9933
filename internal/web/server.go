// Package web serves the results page: the HTML shell, the panel fragment,
// wishlist toggles and previews, plus a small JSON API for the terminal client.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shelf/internal/catalog"
	"shelf/internal/config"
	"shelf/internal/panel"
	"shelf/internal/wishlist"
)

//go:embed static
var assets embed.FS

type Server struct {
	Catalog  *catalog.Service
	Wishlist *wishlist.Service
	Panel    *panel.Panel

	preview bool
	pages   *template.Template
	ugc     *bluemonday.Policy
}

func New(cat *catalog.Service, wl *wishlist.Service, pn *panel.Panel, ui config.UIConfig) (*Server, error) {
	pages, err := template.New("pages").Funcs(template.FuncMap{
		"authors": func(b catalog.Book) string { return b.FullAuthors() },
	}).Parse(pageTemplates)
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	return &Server{
		Catalog:  cat,
		Wishlist: wl,
		Panel:    pn,
		preview:  ui.Preview,
		pages:    pages,
		ugc:      bluemonday.UGCPolicy(),
	}, nil
}

// Routes registers every endpoint on a fresh mux.
func (s *Server) Routes() http.Handler {
	static, _ := fs.Sub(assets, "static")

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.Home)
	mux.HandleFunc("GET /results", s.Results)
	mux.HandleFunc("POST /wishlist/{id}", s.ToggleWishlist)
	if s.preview {
		mux.HandleFunc("GET /preview/{id}", s.Preview)
	}

	mux.HandleFunc("GET /api/search", s.APISearch)
	mux.HandleFunc("GET /api/wishlist", s.APIWishlist)
	mux.HandleFunc("POST /api/wishlist/{id}", s.APIToggle)

	mux.HandleFunc("GET /health", s.Health)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	return mux
}
