package opensearch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"shelf/internal/config"
)

func newProxy(t *testing.T, h http.HandlerFunc) *Proxy {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	host, port, err := net.SplitHostPort(srv.Listener.Addr().String())
	require.NoError(t, err)
	p, err := strconv.Atoi(port)
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(config.OpenSearchConfig{
		Scheme:   "http",
		Host:     host,
		Port:     p,
		Index:    "flibusta",
		Template: "fl_mixed_search",
		User:     "u",
		Password: "p",
		Timeout:  2 * time.Second,
	}, log)
}

func TestProxySearch(t *testing.T) {
	var (
		body       struct {
			ID     string         `json:"id"`
			Params map[string]any `json:"params"`
		}
		path       string
		user, pass string
	)
	proxy := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		user, pass, _ = r.BasicAuth()
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"hits":{"total":{"value":31},"hits":[{"_id":"7","_source":{"title":"Dune"}}]}}`)
	})

	page, err := proxy.Search(context.Background(), "dune", 10, 5)
	require.NoError(t, err)
	require.Equal(t, "/flibusta/_search/template", path)
	require.Equal(t, "u", user)
	require.Equal(t, "p", pass)
	require.Equal(t, "fl_mixed_search", body.ID)
	require.Equal(t, "dune", body.Params["q"])
	require.EqualValues(t, 10, body.Params["from"])
	require.EqualValues(t, 5, body.Params["size"])
	require.Equal(t, 31, page.Total)
	require.Equal(t, "Dune", page.Books[0].Title)
	require.True(t, page.HasMore())
}

func TestProxyUpstreamError(t *testing.T) {
	proxy := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":"down"}`)
	})

	_, err := proxy.Search(context.Background(), "dune", 0, 5)
	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	require.Equal(t, http.StatusServiceUnavailable, ue.Status)
	require.JSONEq(t, `{"error":"down"}`, string(ue.Body))
}
