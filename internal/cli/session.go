// Package cli is the terminal front end: it keeps the current search,
// pages through it on "more" and prints the results panel as text.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"shelf/internal/catalog"
	"shelf/internal/panel"
)

var ErrNoResults = errors.New("no results on screen; search first")

type Session struct {
	client  *Client
	out     io.Writer
	perPage int

	query string
	books []catalog.Book
	total int
}

func NewSession(c *Client, out io.Writer, perPage int) *Session {
	if perPage <= 0 {
		perPage = 24
	}
	return &Session{client: c, out: out, perPage: perPage}
}

const help = `Commands:
  <query>      search the catalog
  more         load the next page
  wish <n>     add result n to the wishlist
  unwish <n>   remove result n from the wishlist
  exit         leave
`

// Exec runs one input line. quit is true when the user asked to leave.
func (s *Session) Exec(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	switch strings.ToLower(fields[0]) {
	case "exit", "quit":
		return true, nil
	case "help", "?":
		_, err = io.WriteString(s.out, help)
		return false, err
	case "more":
		return false, s.more(ctx)
	case "wish", "unwish":
		if len(fields) == 2 {
			return false, s.toggle(ctx, fields[1], fields[0] == "wish")
		}
	}
	return false, s.search(ctx, strings.TrimSpace(line))
}

func (s *Session) search(ctx context.Context, query string) error {
	page, err := s.client.Search(ctx, query, 0, s.perPage)
	if err != nil {
		return err
	}
	s.query, s.books, s.total = query, page.Books, page.Total
	return s.render(ctx)
}

func (s *Session) more(ctx context.Context) error {
	if s.query == "" {
		return ErrNoResults
	}
	if len(s.books) >= s.total {
		return s.render(ctx)
	}
	page, err := s.client.Search(ctx, s.query, len(s.books), s.perPage)
	if err != nil {
		return err
	}
	s.books = append(s.books, page.Books...)
	s.total = page.Total
	return s.render(ctx)
}

func (s *Session) toggle(ctx context.Context, pos string, adding bool) error {
	n, err := strconv.Atoi(pos)
	if err != nil || n < 1 || n > len(s.books) {
		if len(s.books) == 0 {
			return ErrNoResults
		}
		return fmt.Errorf("pick a result between 1 and %d", len(s.books))
	}
	if err := s.client.Toggle(ctx, s.books[n-1].ID, adding); err != nil {
		return err
	}
	return s.render(ctx)
}

func (s *Session) render(ctx context.Context) error {
	wl, err := s.client.Wishlist(ctx)
	if err != nil {
		return err
	}
	props := panel.Props{
		Books:        s.books,
		Wishlist:     wl,
		SearchQuery:  s.query,
		TotalItems:   s.total,
		HasMoreItems: len(s.books) < s.total,
		OnLoadMore:   panel.LoadMoreFunc(func() panel.Action { return panel.Action{Method: "GET", Href: "more"} }),
	}
	return panel.WriteText(s.out, panel.Compose(props))
}
