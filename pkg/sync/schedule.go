package sync

import (
	"context"
	"log/slog"
	"time"

	"github.com/iziplay/isbn-api/pkg/database"
)

// RetryDelay is the longest Schedule waits before retrying after a failure.
const RetryDelay = time.Hour

// Schedule ingests source every interval, counting from the last recorded
// ingestion, until ctx is done. Failed lookups and failed runs are retried
// after RetryDelay, or after every when it is shorter.
func (in *Ingester) Schedule(ctx context.Context, source string, every time.Duration) error {
	retry := min(every, RetryDelay)

	for {
		last, err := in.store.LastIngestion(ctx)
		if err != nil {
			slog.Error("Failed to get last ingestion", "source", source, "error", err, "retryIn", retry)
			if err := sleep(ctx, retry); err != nil {
				return err
			}
			continue
		}

		sleepDuration := nextRun(last, source, time.Now(), every)
		slog.Info("Next ingestion scheduled", "source", source, "in", sleepDuration)
		if err := sleep(ctx, sleepDuration); err != nil {
			return err
		}

		if _, err := in.Ingest(ctx, source); err != nil {
			slog.Error("Ingestion failed", "source", source, "error", err, "retryIn", retry)
			if err := sleep(ctx, retry); err != nil {
				return err
			}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// nextRun returns how long to wait before ingesting source again. A source that
// was never ingested, or whose last run failed, is ingested immediately.
func nextRun(last *database.Ingestion, source string, now time.Time, every time.Duration) time.Duration {
	if last == nil || last.Source != source || !last.Complete {
		return 0
	}
	wait := last.Date.Add(every).Sub(now)
	if wait < 0 {
		return 0
	}
	return wait
}
