package backend

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"shelf/internal/catalog/opensearch"
	"shelf/internal/catalog/sqlstore"
	"shelf/internal/config"
	"shelf/internal/rpc"
	"shelf/internal/storage"
)

func TestOpenPicksBackend(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "shelf.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Default()
	s, closeFn, err := Open(cfg, db, logrus.New())
	require.NoError(t, err)
	require.IsType(t, &sqlstore.Catalog{}, s)
	require.NoError(t, closeFn())

	cfg.Catalog.Backend = OpenSearch
	s, _, err = Open(cfg, nil, logrus.New())
	require.NoError(t, err)
	require.IsType(t, &opensearch.Proxy{}, s)

	cfg.Catalog.Backend = Orchestrator
	s, closeFn, err = Open(cfg, nil, logrus.New())
	require.NoError(t, err)
	require.IsType(t, &rpc.Client{}, s)
	require.NoError(t, closeFn())
}

func TestOpenRejects(t *testing.T) {
	cfg := config.Default()
	_, _, err := Open(cfg, nil, logrus.New())
	require.Error(t, err)

	cfg.Catalog.Backend = "redis"
	_, _, err = Open(cfg, nil, logrus.New())
	require.ErrorContains(t, err, "unknown catalog backend")
}
