// Package backend builds the catalog.Searcher named by catalog.backend.
package backend

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"shelf/internal/catalog"
	"shelf/internal/catalog/opensearch"
	"shelf/internal/catalog/sqlstore"
	"shelf/internal/config"
	"shelf/internal/rpc"
)

const (
	SQLite       = "sqlite"
	OpenSearch   = "opensearch"
	Orchestrator = "orchestrator"
)

// Open returns the searcher and a close func. db is only used by the sqlite backend.
func Open(cfg *config.Config, db *sql.DB, log *logrus.Logger) (catalog.Searcher, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Catalog.Backend {
	case SQLite:
		if db == nil {
			return nil, nil, fmt.Errorf("sqlite backend needs an open database")
		}
		return sqlstore.New(db), noop, nil
	case OpenSearch:
		return opensearch.New(cfg.OpenSearch, log), noop, nil
	case Orchestrator:
		c, err := rpc.Dial(cfg.Orchestrator.Address())
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog backend %q", cfg.Catalog.Backend)
	}
}
