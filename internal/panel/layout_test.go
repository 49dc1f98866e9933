package panel

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"shelf/internal/catalog"
	"shelf/internal/wishlist"
)

func books(n int) []catalog.Book {
	out := make([]catalog.Book, n)
	for i := range out {
		out[i] = catalog.Book{ID: fmt.Sprintf("b%02d", i), Title: fmt.Sprintf("Book %d", i)}
	}
	return out
}

var loadMore = LoadMoreFunc(func() Action { return Action{Method: "GET", Href: "/?q=go&page=2"} })

func TestSelectViewOrder(t *testing.T) {
	cases := []struct {
		name  string
		props Props
		want  View
	}{
		{"loading wins over query", Props{IsLoading: true, SearchQuery: "go"}, ViewLoadingInitial},
		{"no results for query", Props{SearchQuery: "go"}, ViewNoResultsForQuery},
		{"nothing searched", Props{}, ViewEmptyNoQuery},
		{"results", Props{Books: books(1)}, ViewResults},
		{"results while loading more", Props{Books: books(1), IsLoading: true}, ViewResults},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, SelectView(tc.props))
		})
	}
}

func TestComposeLoadingInitial(t *testing.T) {
	l := Compose(Props{IsLoading: true, SearchQuery: "go", HasMoreItems: true, OnLoadMore: loadMore})
	require.Equal(t, 12, l.Skeletons)
	require.Nil(t, l.Header)
	require.Nil(t, l.NoResults)
	require.Nil(t, l.Empty)
	require.Empty(t, l.Cards)
	require.Nil(t, l.LoadMore)
	require.False(t, l.EndOfResults)
	require.Equal(t, "loading", l.Mode())
}

func TestComposeHeader(t *testing.T) {
	l := Compose(Props{Books: books(3), SearchQuery: "rust", TotalItems: 150})
	require.Equal(t, &Header{Found: 150, Query: "rust", ShowingFirst: 3}, l.Header)

	l = Compose(Props{Books: books(3), SearchQuery: "rust"})
	require.Equal(t, &Header{Found: 3, Query: "rust"}, l.Header)

	l = Compose(Props{Books: books(3), SearchQuery: "rust", TotalItems: 3})
	require.Zero(t, l.Header.ShowingFirst)

	l = Compose(Props{Books: books(3), TotalItems: 150})
	require.Nil(t, l.Header)
}

func TestComposeCardsKeepOrderAndWishlist(t *testing.T) {
	in := books(3)
	var asked []bool
	toggle := WishlistToggleFunc(func(b catalog.Book, adding bool) Action {
		asked = append(asked, adding)
		return Action{Method: "POST", Href: "/wishlist/" + b.ID}
	})

	l := Compose(Props{Books: in, Wishlist: wishlist.NewMembership("b01"), OnWishlistToggle: toggle})
	require.Len(t, l.Cards, 3)
	for i, c := range l.Cards {
		require.Equal(t, in[i].ID, c.Book.ID)
		require.Nil(t, c.Preview)
		require.Equal(t, "/wishlist/"+in[i].ID, c.Toggle.Href)
	}
	require.True(t, l.Cards[1].InWishlist)
	require.Equal(t, []bool{true, false, true}, asked)
}

func TestComposePreviewForwarded(t *testing.T) {
	preview := PreviewFunc(func(b catalog.Book) Action { return Action{Method: "GET", Href: "/preview/" + b.ID} })
	l := Compose(Props{Books: books(2), OnBookPreview: preview})
	require.Equal(t, "/preview/b01", l.Cards[1].Preview.Href)
	require.Nil(t, l.Cards[1].Toggle)
}

func TestComposeTrailingControls(t *testing.T) {
	t.Run("loading more suppresses load-more and end notice", func(t *testing.T) {
		l := Compose(Props{Books: books(45), IsLoading: true, HasMoreItems: true, OnLoadMore: loadMore})
		require.Len(t, l.Cards, 45)
		require.Equal(t, 6, l.TrailingSkeletons)
		require.Nil(t, l.LoadMore)
		require.False(t, l.EndOfResults)
		require.Equal(t, "results-loading", l.Mode())
	})
	t.Run("load more needs a handler", func(t *testing.T) {
		l := Compose(Props{Books: books(5), HasMoreItems: true})
		require.Nil(t, l.LoadMore)
		require.False(t, l.EndOfResults)

		l = Compose(Props{Books: books(5), HasMoreItems: true, OnLoadMore: loadMore})
		require.Equal(t, "/?q=go&page=2", l.LoadMore.Href)
	})
	t.Run("end of results at forty", func(t *testing.T) {
		require.True(t, Compose(Props{Books: books(40)}).EndOfResults)
		require.False(t, Compose(Props{Books: books(39)}).EndOfResults)
		require.False(t, Compose(Props{Books: books(40), HasMoreItems: true}).EndOfResults)
	})
	t.Run("more items without handler still hides end notice", func(t *testing.T) {
		require.False(t, Compose(Props{Books: books(41), HasMoreItems: true}).EndOfResults)
	})
}

func TestComposeEmptyStateSuggestions(t *testing.T) {
	l := Compose(Props{})
	require.NotNil(t, l.Empty)
	labels := make([]string, 0, 6)
	for _, s := range l.Empty.Suggestions {
		labels = append(labels, s.Label)
		require.Nil(t, s.Action)
	}
	require.Equal(t, []string{"JavaScript", "React", "Python", "Design", "History", "Fiction"}, labels)

	trigger := SearchFunc(func(term string) Action { return Action{Method: "GET", Href: "/?q=" + term} })
	l = Compose(Props{OnSuggestion: trigger})
	require.Equal(t, "/?q=Python", l.Empty.Suggestions[2].Action.Href)
}

func TestComposeNoResults(t *testing.T) {
	l := Compose(Props{SearchQuery: "xyz", TotalItems: 10})
	require.Equal(t, "xyz", l.NoResults.Query)
	require.Len(t, l.NoResults.Tips, 4)
	require.Nil(t, l.Header)
	require.Empty(t, l.Cards)
}

func TestComposeIsPure(t *testing.T) {
	p := Props{Books: books(7), SearchQuery: "go", TotalItems: 70, HasMoreItems: true, OnLoadMore: loadMore, Wishlist: wishlist.NewMembership("b03")}
	require.Equal(t, Compose(p), Compose(p))
}
