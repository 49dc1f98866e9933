package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"shelf/internal/catalog"
	"shelf/internal/panel"
)

// links turns panel callbacks into URLs on this server for one query and page.
type links struct {
	query string
	page  int
}

func pageURL(query string, page int) string {
	v := url.Values{}
	if query != "" {
		v.Set("q", query)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

func fragmentURL(query string, page int) string {
	v := url.Values{"q": {query}}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	return "/results?" + v.Encode()
}

func (l links) WishlistAction(b catalog.Book, adding bool) panel.Action {
	v := url.Values{"return": {pageURL(l.query, l.page)}}
	if adding {
		v.Set("adding", "1")
	} else {
		v.Set("adding", "0")
	}
	return panel.Action{Method: http.MethodPost, Href: "/wishlist/" + url.PathEscape(b.ID) + "?" + v.Encode()}
}

func (l links) PreviewAction(b catalog.Book) panel.Action {
	href := "/preview/" + url.PathEscape(b.ID)
	return panel.Action{Method: http.MethodGet, Href: href, Fragment: href + "?partial=1"}
}

// LoadMoreAction navigates to the next page so the shell can show the
// loaded cards with trailing skeletons while the grid refreshes.
func (l links) LoadMoreAction() panel.Action {
	return panel.Action{Method: http.MethodGet, Href: pageURL(l.query, l.page+1)}
}

func (l links) SearchAction(term string) panel.Action {
	return panel.Action{Method: http.MethodGet, Href: pageURL(term, 1)}
}

// safeReturn keeps wishlist redirects on this site.
func safeReturn(ret string) string {
	if !strings.HasPrefix(ret, "/") || strings.HasPrefix(ret, "//") || strings.HasPrefix(ret, `/\`) {
		return "/"
	}
	return ret
}
