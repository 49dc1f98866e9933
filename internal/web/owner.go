package web

import (
	"net"
	"net/http"

	"github.com/google/uuid"
)

const (
	OwnerCookie = "shelf_owner"
	OwnerHeader = "X-Shelf-Owner"

	ownerMaxAge = 365 * 24 * 60 * 60
)

// owner identifies whose wishlist a browser request reads or changes.
// With create set, a first-time visitor gets a fresh id cookie.
func owner(w http.ResponseWriter, r *http.Request, create bool) string {
	if c, err := r.Cookie(OwnerCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if !create {
		return ""
	}
	id := uuid.NewString()
	setCookie(w, r, OwnerCookie, id, ownerMaxAge)
	return id
}

// clientBuckets names the extra rate-limit buckets for a browser toggle.
// Visitors without an owner cookie share one bucket per client address,
// so dropping the cookie does not buy a fresh allowance.
func clientBuckets(r *http.Request) []string {
	if c, err := r.Cookie(OwnerCookie); err == nil && c.Value != "" {
		return nil
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return []string{"addr:" + host}
}

// apiOwner prefers the header so terminal clients need no cookie jar.
func apiOwner(r *http.Request) string {
	if h := r.Header.Get(OwnerHeader); h != "" {
		return h
	}
	return owner(nil, r, false)
}

func setCookie(w http.ResponseWriter, r *http.Request, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
	})
}
