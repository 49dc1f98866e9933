package catalog

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	calls []int
	total int
	err   error
}

func (f *fakeSearcher) Search(ctx context.Context, query string, from, size int) (*Page, error) {
	f.calls = append(f.calls, size)
	if f.err != nil {
		return nil, f.err
	}
	n := size
	if from+n > f.total {
		n = f.total - from
	}
	books := make([]Book, 0, n)
	for i := 0; i < n; i++ {
		books = append(books, Book{ID: string(rune('a' + from + i))})
	}
	return &Page{Books: books, Total: f.total, From: from, Size: size}, nil
}

func TestResultsIsCumulative(t *testing.T) {
	fs := &fakeSearcher{total: 25}
	svc := NewService("fake", fs, 10)

	p, err := svc.Results(context.Background(), "go", 2)
	require.NoError(t, err)
	require.Len(t, p.Books, 20)
	require.True(t, p.HasMore())
	require.Equal(t, 20, p.NextFrom())

	p, err = svc.Results(context.Background(), "go", 3)
	require.NoError(t, err)
	require.Len(t, p.Books, 25)
	require.False(t, p.HasMore())
	require.Equal(t, []int{20, 30}, fs.calls)
}

func TestResultsEmptyQuerySkipsBackend(t *testing.T) {
	fs := &fakeSearcher{total: 5}
	svc := NewService("fake", fs, 10)

	p, err := svc.Results(context.Background(), "   ", 0)
	require.NoError(t, err)
	require.Empty(t, p.Books)
	require.NotNil(t, p.Books)
	require.Empty(t, fs.calls)
}

func TestResultsClampsDeepPages(t *testing.T) {
	fs := &fakeSearcher{total: 0}
	svc := NewService("fake", fs, 24)
	require.Equal(t, MaxHits/24, svc.MaxPage())

	for _, page := range []int{1000000, math.MaxInt / 10, math.MaxInt} {
		_, err := svc.Results(context.Background(), "go", page)
		require.NoError(t, err)
	}
	for _, size := range fs.calls {
		require.Positive(t, size)
		require.LessOrEqual(t, size, MaxHits)
	}
	require.Equal(t, 1, svc.ClampPage(-5))
	require.Equal(t, 1, NewService("fake", fs, MaxHits*2).MaxPage())
}

func TestResultsWrapsBackendError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService("fake", &fakeSearcher{err: boom}, 10)

	_, err := svc.Results(context.Background(), "go", 1)
	require.ErrorIs(t, err, boom)
}

func TestLookupUnsupported(t *testing.T) {
	svc := NewService("fake", &fakeSearcher{}, 10)
	_, err := svc.Lookup(context.Background(), "a")
	require.ErrorIs(t, err, errors.ErrUnsupported)
}

func TestBookHelpers(t *testing.T) {
	require.Equal(t, "Unknown", Book{}.FullAuthors())
	require.Equal(t, "A, B", Book{Authors: []string{"A", "B"}}.FullAuthors())
	require.Equal(t, "c/a.fb2", Book{Container: "c", Filename: "a.fb2"}.Download())
	require.Empty(t, Book{Filename: "a.fb2"}.Download())
}
