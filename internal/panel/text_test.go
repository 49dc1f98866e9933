package panel

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"shelf/internal/catalog"
	"shelf/internal/wishlist"
)

func writeText(t *testing.T, p Props) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Compose(p)))
	return buf.String()
}

func TestWriteTextStates(t *testing.T) {
	out := writeText(t, Props{IsLoading: true})
	require.Equal(t, 12, strings.Count(out, skeletonLine))

	out = writeText(t, Props{SearchQuery: "xyz"})
	require.Contains(t, out, `matching "xyz"`)
	require.Equal(t, 4, strings.Count(out, "  • "))

	out = writeText(t, Props{})
	require.Contains(t, out, "Try: [JavaScript] [React] [Python] [Design] [History] [Fiction]")
}

func TestWriteTextResults(t *testing.T) {
	in := []catalog.Book{
		{ID: "1", Title: "Programming Rust", Authors: []string{"Jim Blandy"}, Year: 2017},
		{ID: "2", Title: "Rust in Action"},
	}
	out := writeText(t, Props{
		Books:        in,
		SearchQuery:  "rust",
		TotalItems:   150,
		Wishlist:     wishlist.NewMembership("2"),
		HasMoreItems: true,
		OnLoadMore:   loadMore,
	})
	require.Contains(t, out, "Found 150 books\n")
	require.Contains(t, out, "Showing first 2 results\n")
	require.Contains(t, out, "  1.   Programming Rust — Jim Blandy (2017) [1]\n")
	require.Contains(t, out, "  2. ♥ Rust in Action — Unknown [2]\n")
	require.Contains(t, out, "[more] Load More Books")
	require.Less(t, strings.Index(out, "Programming Rust"), strings.Index(out, "Rust in Action"))

	out = writeText(t, Props{Books: books(3), IsLoading: true, HasMoreItems: true, OnLoadMore: loadMore})
	require.Equal(t, 6, strings.Count(out, skeletonLine))
	require.NotContains(t, out, "Load More")

	out = writeText(t, Props{Books: books(40)})
	require.Contains(t, out, "You've seen all the results!")
}

func TestWriteTextGroupsFoundCount(t *testing.T) {
	out := writeText(t, Props{Books: books(3), SearchQuery: "rust", TotalItems: 1500})
	require.Contains(t, out, "Found 1,500 books\n")
}
