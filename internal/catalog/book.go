package catalog

import (
	"context"
	"errors"
	"strings"
)

var ErrNotFound = errors.New("catalog: book not found")

// Book is a search hit as the results page sees it.
// ID is the only field the panel itself relies on; the card uses the rest.
type Book struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors,omitempty"`
	Year        int      `json:"year,omitempty"`
	Description string   `json:"description,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty"`
	Container   string   `json:"container,omitempty"`
	Filename    string   `json:"filename,omitempty"`
}

// FullAuthors joins the author list for simple rendering.
func (b Book) FullAuthors() string {
	s := strings.Join(b.Authors, ", ")
	if s == "" {
		return "Unknown"
	}
	return s
}

// Download is container/filename when both are known.
func (b Book) Download() string {
	if b.Container == "" || b.Filename == "" {
		return ""
	}
	return b.Container + "/" + b.Filename
}

// Page is one window of a search result.
type Page struct {
	Books []Book `json:"books"`
	Total int    `json:"total"`
	From  int    `json:"from"`
	Size  int    `json:"size"`
}

// HasMore reports whether the backend holds hits past this window.
func (p *Page) HasMore() bool {
	return p.From+len(p.Books) < p.Total
}

// NextFrom is the offset of the first hit after this window.
func (p *Page) NextFrom() int {
	return p.From + len(p.Books)
}

// Searcher is a search backend. The query is passed through verbatim.
type Searcher interface {
	Search(ctx context.Context, query string, from, size int) (*Page, error)
}

// Getter resolves a single book by id; backends implement it when they can.
type Getter interface {
	Get(ctx context.Context, id string) (*Book, error)
}
