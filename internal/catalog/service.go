package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shelf/internal/logger"
	"shelf/internal/metrics"
)

// MaxHits caps how deep a search may page, matching the default
// index.max_result_window of OpenSearch.
const MaxHits = 10000

// Service pages over a Searcher the way the results page needs it:
// page N always carries everything from the first hit, so loading more
// never drops what is already on screen.
type Service struct {
	backend string
	search  Searcher
	perPage int
}

func NewService(backend string, s Searcher, perPage int) *Service {
	if perPage <= 0 {
		perPage = 24
	}
	return &Service{backend: backend, search: s, perPage: perPage}
}

func (s *Service) PerPage() int { return s.perPage }

// MaxPage is the deepest page Results will serve.
func (s *Service) MaxPage() int {
	return max(MaxHits/s.perPage, 1)
}

// ClampPage limits page to [1, MaxPage].
func (s *Service) ClampPage(page int) int {
	return min(max(page, 1), s.MaxPage())
}

// Results returns hits [0, page*perPage) for query. An empty query never reaches the backend.
// Pages past MaxPage are served as MaxPage.
func (s *Service) Results(ctx context.Context, query string, page int) (*Page, error) {
	page = s.ClampPage(page)
	if strings.TrimSpace(query) == "" {
		return &Page{Books: []Book{}, Size: page * s.perPage}, nil
	}
	return s.Window(ctx, query, 0, page*s.perPage)
}

// Window runs one backend search and records its duration.
func (s *Service) Window(ctx context.Context, query string, from, size int) (*Page, error) {
	defer logger.Track(ctx, "Catalog: "+s.backend+" search")()

	start := time.Now()
	res, err := s.search.Search(ctx, query, from, size)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.CatalogSearchDuration.WithLabelValues(s.backend, outcome).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%s search %q: %w", s.backend, query, err)
	}
	if res.Books == nil {
		res.Books = []Book{}
	}
	return res, nil
}

// Lookup resolves one book when the backend supports it.
func (s *Service) Lookup(ctx context.Context, id string) (*Book, error) {
	g, ok := s.search.(Getter)
	if !ok {
		return nil, fmt.Errorf("%s backend: lookup unsupported: %w", s.backend, errors.ErrUnsupported)
	}
	return g.Get(ctx, id)
}
