package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"shelf/internal/catalog/sqlstore"
	"shelf/internal/config"
	"shelf/internal/ingest"
	"shelf/internal/logger"
	"shelf/internal/storage"
)

func main() {
	configPath := flag.String("config", "shelf.yaml", "Path to config file")
	inPath := flag.String("in", "", "Path to bulker JSONL output")
	encoding := flag.String("encoding", "", "Input charset, e.g. windows-1251 (default UTF-8)")
	batch := flag.Int("batch", 500, "Books per transaction")
	quiet := flag.Bool("quiet", false, "Hide the progress bar")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	if err := logger.Setup(cfg.Log); err != nil {
		logrus.Fatalf("logger: %v", err)
	}
	log := logrus.WithField("in", *inPath)
	if *inPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*inPath)
	if err != nil {
		log.Fatalf("open input: %v", err)
	}
	defer f.Close()

	var in io.Reader = f
	if !*quiet {
		size := int64(-1)
		if st, err := f.Stat(); err == nil {
			size = st.Size()
		}
		bar := progressbar.DefaultBytes(size, "📚 "+filepath.Base(*inPath))
		defer bar.Finish()
		in = io.TeeReader(f, bar)
	}

	db, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer db.Close()

	r, err := ingest.NewReader(in, *encoding)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	st, err := ingest.Import(ctx, r, sqlstore.New(db), *batch)
	fields := logrus.Fields{
		"imported": st.Imported,
		"rejected": st.Rejected,
		"db":       cfg.Storage.Path,
		"took":     time.Since(start).Round(time.Millisecond),
	}
	if err != nil {
		log.WithFields(fields).WithError(err).Error("import stopped")
		os.Exit(1)
	}
	log.WithFields(fields).Info("import finished")
}
