package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"shelf/internal/catalog"
	"shelf/internal/config"
)

// Proxy runs stored search templates against one OpenSearch index.
type Proxy struct {
	cfg     config.OpenSearchConfig
	client  *http.Client
	logger  *logrus.Logger
	baseURL string
	once    sync.Once
}

func New(cfg config.OpenSearchConfig, logger *logrus.Logger) *Proxy {
	return &Proxy{
		cfg:    cfg,
		logger: logger,
		client: newHTTPClient(cfg),
	}
}

func newHTTPClient(cfg config.OpenSearchConfig) *http.Client {
	t := &http.Transport{
		MaxIdleConns:       100,
		IdleConnTimeout:    90 * time.Second,
		DisableCompression: false,
		ForceAttemptHTTP2:  true,
	}
	return &http.Client{Transport: t, Timeout: cfg.Timeout}
}

func (p *Proxy) BaseURL() string {
	p.once.Do(func() {
		p.baseURL = fmt.Sprintf("%s/%s/_search/template", p.cfg.BaseURL(), p.cfg.Index)
	})
	return p.baseURL
}

// UpstreamError is a non-2xx answer from OpenSearch.
type UpstreamError struct {
	Status int
	Body   []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("opensearch returned %d", e.Status)
}

// Search implements catalog.Searcher with the configured template.
func (p *Proxy) Search(ctx context.Context, query string, from, size int) (*catalog.Page, error) {
	data, code, err := p.DoTemplate(ctx, p.cfg.Template, map[string]any{"q": query, "from": from, "size": size})
	if err != nil {
		return nil, err
	}
	if code >= 300 {
		return nil, &UpstreamError{Status: code, Body: data}
	}
	return ShapeSearch(data, from, size)
}

// DoTemplate executes a stored template by id with params.
func (p *Proxy) DoTemplate(ctx context.Context, id string, params map[string]any) ([]byte, int, error) {
	body := map[string]any{
		"id":     id,
		"params": params,
	}

	if p.logger.IsLevelEnabled(logrus.DebugLevel) {
		p.logger.WithFields(logrus.Fields{
			"template": id,
			"params":   params,
		}).Debug("os.request")
	}

	buf, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL(), bytes.NewReader(buf))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.cfg.User != "" || p.cfg.Password != "" {
		req.SetBasicAuth(p.cfg.User, p.cfg.Password)
	}

	res, err := p.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("upstream do: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, res.StatusCode, fmt.Errorf("read upstream body: %w", err)
	}

	if p.logger.IsLevelEnabled(logrus.DebugLevel) {
		p.logger.WithFields(logrus.Fields{
			"template":      id,
			"status":        res.StatusCode,
			"response_body": string(data),
		}).Debug("os.response")
	}

	return data, res.StatusCode, nil
}
