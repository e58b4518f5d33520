package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/iziplay/isbn-api/pkg/anna"
	"github.com/iziplay/isbn-api/pkg/database"
	"github.com/iziplay/isbn-api/pkg/isbn"
	"golang.org/x/sync/singleflight"
)

// ErrIngestRunning is returned when an ingestion of another source is in progress.
var ErrIngestRunning = errors.New("an ingestion is already running")

// Store is the part of the database the ingester writes to.
type Store interface {
	UpsertRecord(ctx context.Context, record database.Record, isbns []isbn.ISBN) error
	RecordIngestion(ctx context.Context, ingestion database.Ingestion) error
	LastIngestion(ctx context.Context) (*database.Ingestion, error)
	ComputeAndCacheStats(ctx context.Context, force bool) (*database.CachedStats, error)
	InvalidateStatsCache()
}

// Result summarizes a finished ingestion.
type Result struct {
	Source         string `json:"source"`
	RecordsRead    int    `json:"recordsRead"`
	RecordsIndexed int    `json:"recordsIndexed"`
	ISBNs          int    `json:"isbns"`
}

// Ingester reads metadata dumps and indexes the ISBNs found in their records.
type Ingester struct {
	store Store
	stats IngestStats
	group singleflight.Group
}

func NewIngester(store Store) *Ingester {
	return &Ingester{store: store}
}

// Stats returns the progress of the current or last ingestion.
func (in *Ingester) Stats() IngestProgress {
	return in.stats.Snapshot()
}

// Ingest indexes every record of source that carries at least one ISBN.
// Concurrent calls for the same source share a single run.
func (in *Ingester) Ingest(ctx context.Context, source string) (Result, error) {
	v, err, shared := in.group.Do(source, func() (interface{}, error) {
		return in.ingest(ctx, source)
	})
	if shared {
		slog.Debug("Joined running ingestion", "source", source)
	}
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

func (in *Ingester) ingest(ctx context.Context, source string) (Result, error) {
	if !in.stats.Start(source) {
		return Result{}, ErrIngestRunning
	}
	defer in.stats.End()

	slog.Info("Starting ingestion", "source", source)

	rc, err := anna.Open(ctx, source)
	if err != nil {
		return Result{}, err
	}
	defer rc.Close()

	// Stats are stale until the run completes.
	in.store.InvalidateStatsCache()

	_, readErr := anna.ReadRecords(ctx, rc, func(ctx context.Context, record *anna.Record) error {
		in.stats.RecordRead()

		isbns := anna.ExtractISBNs(record)
		if len(isbns) == 0 {
			return nil
		}
		if err := in.store.UpsertRecord(ctx, toDatabaseRecord(record), isbns); err != nil {
			return err
		}
		in.stats.RecordIndexed(len(isbns))
		return nil
	})

	progress := in.stats.Snapshot()
	result := Result{
		Source:         source,
		RecordsRead:    progress.RecordsRead,
		RecordsIndexed: progress.RecordsIndexed,
		ISBNs:          progress.ISBNs,
	}

	ingestion := database.Ingestion{
		Date:     time.Now(),
		Source:   source,
		Records:  result.RecordsIndexed,
		ISBNs:    result.ISBNs,
		Complete: readErr == nil,
	}
	if err := in.store.RecordIngestion(context.WithoutCancel(ctx), ingestion); err != nil {
		slog.Error("Failed to record ingestion", "source", source, "error", err)
	}

	if readErr != nil {
		return result, fmt.Errorf("ingestion of %s failed: %w", source, readErr)
	}

	if _, err := in.store.ComputeAndCacheStats(ctx, true); err != nil {
		slog.Warn("Failed to refresh stats", "error", err)
	}

	slog.Info("Ingestion completed", "source", source, "records", result.RecordsIndexed, "isbns", result.ISBNs)
	return result, nil
}

func toDatabaseRecord(record *anna.Record) database.Record {
	data := record.Source.FileUnifiedData

	id := record.ID
	if id == "" {
		id = record.Source.ID
	}
	year, _ := strconv.Atoi(strings.TrimSpace(data.YearBest))

	return database.Record{
		ID:        id,
		Title:     data.TitleBest,
		Publisher: data.PublisherBest,
		Author:    data.AuthorBest,
		Year:      year,
		Languages: append([]string(nil), data.LanguageCodes...),
	}
}
