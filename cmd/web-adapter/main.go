package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"shelf/internal/card"
	"shelf/internal/catalog"
	"shelf/internal/catalog/backend"
	"shelf/internal/config"
	"shelf/internal/logger"
	"shelf/internal/middleware"
	"shelf/internal/panel"
	"shelf/internal/storage"
	"shelf/internal/web"
	"shelf/internal/wishlist"
)

func main() {
	cfg, err := config.Get()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	if err := logger.Setup(cfg.Log); err != nil {
		logrus.Fatalf("logger: %v", err)
	}
	log := logrus.StandardLogger()

	db, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer db.Close()

	searcher, closeSearcher, err := backend.Open(cfg, db, log)
	if err != nil {
		log.Fatalf("catalog backend: %v", err)
	}
	defer closeSearcher()

	cards, err := card.New()
	if err != nil {
		log.Fatal(err)
	}
	pn, err := panel.New(cards, cfg.UI.Language)
	if err != nil {
		log.Fatal(err)
	}
	srv, err := web.New(
		catalog.NewService(cfg.Catalog.Backend, searcher, cfg.Catalog.PerPage),
		wishlist.NewService(wishlist.NewSQLStore(db), cfg.Wishlist.RatePerSecond, cfg.Wishlist.Burst),
		pn, cfg.UI,
	)
	if err != nil {
		log.Fatal(err)
	}

	handler := middleware.Chain(srv.Routes(),
		middleware.RequestID,
		middleware.RequestLogger(log),
		middleware.CORS,
	)
	httpSrv := &http.Server{
		Addr:              cfg.WebAdapter.Address(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithFields(logrus.Fields{
			"addr":    httpSrv.Addr,
			"backend": cfg.Catalog.Backend,
		}).Info("🌐 Web Adapter started")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start web server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}
