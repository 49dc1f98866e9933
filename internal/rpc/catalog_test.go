package rpc

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"shelf/internal/catalog"
	"shelf/internal/logger"
)

type memBackend struct {
	books   []catalog.Book
	lastReq string
	err     error
}

func (m *memBackend) Search(ctx context.Context, query string, from, size int) (*catalog.Page, error) {
	m.lastReq = logger.IDFrom(ctx)
	if m.err != nil {
		return nil, m.err
	}
	end := from + size
	if end > len(m.books) {
		end = len(m.books)
	}
	return &catalog.Page{Books: m.books[from:end], Total: len(m.books), From: from, Size: size}, nil
}

func (m *memBackend) Get(ctx context.Context, id string) (*catalog.Book, error) {
	for _, b := range m.books {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func startServer(t *testing.T, backend catalog.Searcher) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(grpc.UnaryInterceptor(ServerInterceptor))
	Register(s, backend)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	c, err := Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSearchRoundTrip(t *testing.T) {
	backend := &memBackend{books: []catalog.Book{
		{ID: "1", Title: "A", Authors: []string{"X"}},
		{ID: "2", Title: "B"},
		{ID: "3", Title: "C"},
	}}
	c := startServer(t, backend)

	ctx := logger.ContextWithID(context.Background(), "req-42")
	page, err := c.Search(ctx, "any", 1, 1)
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)
	require.Len(t, page.Books, 1)
	require.Equal(t, "2", page.Books[0].ID)
	require.True(t, page.HasMore())
	require.Equal(t, "req-42", backend.lastReq)
}

func TestGetRoundTrip(t *testing.T) {
	c := startServer(t, &memBackend{books: []catalog.Book{{ID: "7", Title: "Dune", Authors: []string{"Frank Herbert"}}}})

	b, err := c.Get(context.Background(), "7")
	require.NoError(t, err)
	require.Equal(t, "Dune", b.Title)
	require.Equal(t, []string{"Frank Herbert"}, b.Authors)

	_, err = c.Get(context.Background(), "8")
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestSearchErrorsMapToStatus(t *testing.T) {
	c := startServer(t, &memBackend{err: errors.New("opensearch down")})

	_, err := c.Search(context.Background(), "x", 0, 10)
	require.Equal(t, codes.Unavailable, status.Code(err))

	_, err = c.Search(context.Background(), "x", 0, 0)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}
