package panel

import "shelf/internal/catalog"

const (
	InitialSkeletons  = 12
	LoadingSkeletons  = 6
	EndOfResultsAfter = 40
)

// View is what the panel shows, derived from books, loading flag and query.
type View int

const (
	ViewLoadingInitial View = iota
	ViewNoResultsForQuery
	ViewEmptyNoQuery
	ViewResults
)

func (v View) String() string {
	switch v {
	case ViewLoadingInitial:
		return "loading"
	case ViewNoResultsForQuery:
		return "no-results"
	case ViewEmptyNoQuery:
		return "empty"
	case ViewResults:
		return "results"
	}
	return "unknown"
}

// SelectView applies the selection rules in order; the first match wins.
func SelectView(p Props) View {
	switch {
	case p.IsLoading && len(p.Books) == 0:
		return ViewLoadingInitial
	case len(p.Books) == 0 && p.SearchQuery != "":
		return ViewNoResultsForQuery
	case len(p.Books) == 0:
		return ViewEmptyNoQuery
	}
	return ViewResults
}

var SearchTips = []string{
	`Try broader keywords like "programming" instead of specific terms`,
	`Search by author name like "Stephen King" or "J.K. Rowling"`,
	`Use category terms like "science fiction", "history", or "cooking"`,
	`Check your spelling and try alternative spellings`,
}

var Suggestions = []string{"JavaScript", "React", "Python", "Design", "History", "Fiction"}

// CardProps is everything the card renderer gets for one book.
type CardProps struct {
	Book       catalog.Book
	InWishlist bool
	Toggle     *Action
	Preview    *Action
}

type Header struct {
	Found int
	Query string
	// ShowingFirst is len(books) when fewer than Found are shown, else 0.
	ShowingFirst int
}

type NoResults struct {
	Query string
	Tips  []string
}

type Suggestion struct {
	Label  string
	Action *Action
}

type EmptyState struct {
	Suggestions []Suggestion
}

// Layout is one render pass, independent of the output format.
type Layout struct {
	View      View
	Skeletons int

	NoResults *NoResults
	Empty     *EmptyState

	Header            *Header
	Cards             []CardProps
	TrailingSkeletons int
	LoadMore          *Action
	EndOfResults      bool
}

// Mode names the five render modes; results while loading more is its own mode.
func (l Layout) Mode() string {
	if l.View == ViewResults && l.TrailingSkeletons > 0 {
		return "results-loading"
	}
	return l.View.String()
}

// Compose builds the layout for p. It is a pure function of p.
func Compose(p Props) Layout {
	l := Layout{View: SelectView(p)}

	switch l.View {
	case ViewLoadingInitial:
		l.Skeletons = InitialSkeletons
		return l
	case ViewNoResultsForQuery:
		l.NoResults = &NoResults{Query: p.SearchQuery, Tips: SearchTips}
		return l
	case ViewEmptyNoQuery:
		l.Empty = &EmptyState{Suggestions: make([]Suggestion, 0, len(Suggestions))}
		for _, term := range Suggestions {
			s := Suggestion{Label: term}
			if p.OnSuggestion != nil {
				a := p.OnSuggestion.SearchAction(term)
				s.Action = &a
			}
			l.Empty.Suggestions = append(l.Empty.Suggestions, s)
		}
		return l
	}

	if p.SearchQuery != "" {
		h := &Header{Found: len(p.Books), Query: p.SearchQuery}
		if p.TotalItems > 0 {
			h.Found = p.TotalItems
		}
		if p.TotalItems > len(p.Books) {
			h.ShowingFirst = len(p.Books)
		}
		l.Header = h
	}

	l.Cards = make([]CardProps, 0, len(p.Books))
	for _, b := range p.Books {
		c := CardProps{Book: b, InWishlist: p.inWishlist(b.ID)}
		if p.OnWishlistToggle != nil {
			a := p.OnWishlistToggle.WishlistAction(b, !c.InWishlist)
			c.Toggle = &a
		}
		if p.OnBookPreview != nil {
			a := p.OnBookPreview.PreviewAction(b)
			c.Preview = &a
		}
		l.Cards = append(l.Cards, c)
	}

	switch {
	case p.IsLoading:
		l.TrailingSkeletons = LoadingSkeletons
	case p.HasMoreItems && p.OnLoadMore != nil:
		a := p.OnLoadMore.LoadMoreAction()
		l.LoadMore = &a
	case len(p.Books) >= EndOfResultsAfter && !p.HasMoreItems:
		l.EndOfResults = true
	}
	return l
}
