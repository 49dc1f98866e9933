package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"

	"shelf/internal/catalog"
	"shelf/internal/logger"
	"shelf/internal/metrics"
)

// Sink stores a batch of books.
type Sink interface {
	Upsert(ctx context.Context, books ...catalog.Book) error
}

type Stats struct {
	Imported int
	Rejected int
}

// Import drains r into sink in batches of batchSize. Rejected lines are
// logged and counted; a sink or read error stops the import.
func Import(ctx context.Context, r *Reader, sink Sink, batchSize int) (Stats, error) {
	if batchSize <= 0 {
		batchSize = 500
	}
	var st Stats
	batch := make([]catalog.Book, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := sink.Upsert(ctx, batch...); err != nil {
			metrics.ImportedBooksTotal.WithLabelValues("error").Add(float64(len(batch)))
			return fmt.Errorf("store batch of %d: %w", len(batch), err)
		}
		metrics.ImportedBooksTotal.WithLabelValues("imported").Add(float64(len(batch)))
		st.Imported += len(batch)
		batch = batch[:0]
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		b, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if IsReject(err) {
			st.Rejected++
			metrics.ImportedBooksTotal.WithLabelValues("rejected").Inc()
			logger.For(ctx).WithError(err).Warn("ingest.reject")
			continue
		}
		if err != nil {
			return st, err
		}
		batch = append(batch, b)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return st, err
			}
		}
	}
	return st, flush()
}
