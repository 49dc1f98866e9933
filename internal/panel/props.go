package panel

import "shelf/internal/catalog"

// Action is a hypermedia control: activating it issues Method on Href.
// Fragment, when set, is the URL a script may fetch to swap the panel in place.
type Action struct {
	Method   string `json:"method"`
	Href     string `json:"href"`
	Fragment string `json:"fragment,omitempty"`
}

// IsPost reports whether the control must be rendered as a form.
func (a Action) IsPost() bool { return a.Method == "POST" }

// WishlistToggler yields the control that adds (adding=true) or removes a book.
// Whatever happens behind that control, including failures, is the caller's business.
type WishlistToggler interface {
	WishlistAction(book catalog.Book, adding bool) Action
}

// Previewer yields the preview control of a book.
type Previewer interface {
	PreviewAction(book catalog.Book) Action
}

// LoadMorer yields the control that requests the next page.
type LoadMorer interface {
	LoadMoreAction() Action
}

// SearchTrigger yields the control that runs a search for term.
type SearchTrigger interface {
	SearchAction(term string) Action
}

type WishlistToggleFunc func(book catalog.Book, adding bool) Action

func (f WishlistToggleFunc) WishlistAction(book catalog.Book, adding bool) Action {
	return f(book, adding)
}

type PreviewFunc func(book catalog.Book) Action

func (f PreviewFunc) PreviewAction(book catalog.Book) Action { return f(book) }

type LoadMoreFunc func() Action

func (f LoadMoreFunc) LoadMoreAction() Action { return f() }

type SearchFunc func(term string) Action

func (f SearchFunc) SearchAction(term string) Action { return f(term) }

// Wishlist answers membership only; the panel never changes it.
type Wishlist interface {
	Contains(id string) bool
}

// Props are the inputs of one render. Zero values are the defaults.
type Props struct {
	Books            []catalog.Book
	Wishlist         Wishlist
	OnWishlistToggle WishlistToggler
	OnBookPreview    Previewer
	IsLoading        bool
	SearchQuery      string
	TotalItems       int
	OnLoadMore       LoadMorer
	HasMoreItems     bool
	OnSuggestion     SearchTrigger
}

func (p Props) inWishlist(id string) bool {
	return p.Wishlist != nil && p.Wishlist.Contains(id)
}
