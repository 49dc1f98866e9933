package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"shelf/internal/catalog"
	"shelf/internal/web"
	"shelf/internal/wishlist"
)

// APIError is a non-2xx answer from the web adapter.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway: HTTP %d", e.Status)
	}
	return fmt.Sprintf("gateway: %s (%s)", e.Message, e.Code)
}

// Client talks to the web adapter's JSON API as one wishlist owner.
type Client struct {
	base  string
	owner string
	http  *http.Client
}

func NewClient(base, owner string, timeout time.Duration) *Client {
	return &Client{base: base, owner: owner, http: &http.Client{Timeout: timeout}}
}

func (c *Client) Search(ctx context.Context, query string, from, size int) (*catalog.Page, error) {
	v := url.Values{"q": {query}, "from": {strconv.Itoa(from)}, "size": {strconv.Itoa(size)}}
	var page catalog.Page
	if err := c.do(ctx, http.MethodGet, "/api/search?"+v.Encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) Wishlist(ctx context.Context) (wishlist.Membership, error) {
	var res web.WishlistResponse
	if err := c.do(ctx, http.MethodGet, "/api/wishlist", &res); err != nil {
		return wishlist.Membership{}, err
	}
	return wishlist.NewMembership(res.IDs...), nil
}

func (c *Client) Toggle(ctx context.Context, id string, adding bool) error {
	flag := "0"
	if adding {
		flag = "1"
	}
	return c.do(ctx, http.MethodPost, "/api/wishlist/"+url.PathEscape(id)+"?adding="+flag, nil)
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set(web.OwnerHeader, c.owner)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var env web.ErrorEnvelope
		if json.Unmarshal(body, &env) == nil {
			apiErr.Code, apiErr.Message = env.Error.Code, env.Error.Message
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
