package main

import (
	"database/sql"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"shelf/internal/catalog/backend"
	"shelf/internal/config"
	"shelf/internal/logger"
	"shelf/internal/rpc"
	"shelf/internal/storage"
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

	if cfg.Catalog.Backend == backend.Orchestrator {
		log.Fatal("orchestrator cannot use itself as catalog backend; set catalog.backend to sqlite or opensearch")
	}

	var db *sql.DB
	if cfg.Catalog.Backend == backend.SQLite {
		if db, err = storage.Open(cfg.Storage.Path); err != nil {
			log.Fatalf("storage: %v", err)
		}
		defer db.Close()
	}

	searcher, closeSearcher, err := backend.Open(cfg, db, log)
	if err != nil {
		log.Fatalf("catalog backend: %v", err)
	}
	defer closeSearcher()

	lis, err := net.Listen("tcp", cfg.Orchestrator.Address())
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	s := grpc.NewServer(grpc.UnaryInterceptor(rpc.ServerInterceptor))
	rpc.Register(s, searcher)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Info("shutting down")
		s.GracefulStop()
	}()

	log.WithFields(logrus.Fields{
		"addr":    cfg.Orchestrator.Address(),
		"backend": cfg.Catalog.Backend,
	}).Info("🚀 Orchestrator started")
	if err := s.Serve(lis); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
