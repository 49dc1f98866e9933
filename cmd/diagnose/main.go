package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"shelf/internal/catalog/sqlstore"
	"shelf/internal/config"
	"shelf/internal/rpc"
	"shelf/internal/storage"
)

func main() {
	query := flag.String("query", "Кинг", "search query used by the probes")
	timeout := flag.Duration("timeout", 5*time.Second, "per-probe timeout")
	flag.Parse()

	cfg, err := config.Get()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	fmt.Println("🔍 === STARTING COMPONENT DIAGNOSTICS ===")
	failed := 0
	probe := func(n int, name string, check func(ctx context.Context) (string, error)) {
		fmt.Printf("\n[%d] %s...\n", n, name)
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()
		msg, err := check(ctx)
		if err != nil {
			failed++
			fmt.Printf("❌ FAIL. %v\n", err)
			return
		}
		fmt.Printf("✅ PASS. %s\n", msg)
	}

	probe(1, "SQLite catalog ("+cfg.Storage.Path+")", func(ctx context.Context) (string, error) {
		db, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			return "", err
		}
		defer db.Close()
		page, err := sqlstore.New(db).Search(ctx, *query, 0, 1)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d books match %q", page.Total, *query), nil
	})

	probe(2, "Orchestrator ("+cfg.Orchestrator.Address()+")", func(ctx context.Context) (string, error) {
		c, err := rpc.Dial(cfg.Orchestrator.Address())
		if err != nil {
			return "", err
		}
		defer c.Close()
		page, err := c.Search(ctx, *query, 0, 1)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Books Found: %d", page.Total), nil
	})

	web := "http://" + cfg.WebAdapter.Address()
	if cfg.WebAdapter.Host == "0.0.0.0" {
		web = fmt.Sprintf("http://localhost:%d", cfg.WebAdapter.Port)
	}
	probe(3, "Web Adapter ("+web+")", func(ctx context.Context) (string, error) {
		for _, path := range []string{"/health", "/results?q=" + url.QueryEscape(*query)} {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, web+path, nil)
			if err != nil {
				return "", err
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return "", err
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return "", fmt.Errorf("%s: HTTP %d", path, resp.StatusCode)
			}
		}
		return "health and results fragment answer 200", nil
	})

	fmt.Println("\n🏁 === DIAGNOSTICS COMPLETE ===")
	if failed > 0 {
		os.Exit(1)
	}
}
