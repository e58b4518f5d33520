package sync

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iziplay/isbn-api/pkg/anna"
	"github.com/iziplay/isbn-api/pkg/database"
	"github.com/iziplay/isbn-api/pkg/isbn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	records      []database.Record
	isbns        [][]isbn.ISBN
	ingestions   []database.Ingestion
	statsRefresh int
	invalidated  int
	upsertErr    error
	last         *database.Ingestion
	lastErr      error
	lookups      int
}

func (f *fakeStore) UpsertRecord(ctx context.Context, record database.Record, isbns []isbn.ISBN) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.records = append(f.records, record)
	f.isbns = append(f.isbns, isbns)
	return nil
}

func (f *fakeStore) RecordIngestion(ctx context.Context, ingestion database.Ingestion) error {
	f.ingestions = append(f.ingestions, ingestion)
	return nil
}

func (f *fakeStore) InvalidateStatsCache() {
	f.invalidated++
}

func (f *fakeStore) LastIngestion(ctx context.Context) (*database.Ingestion, error) {
	f.lookups++
	return f.last, f.lastErr
}

func (f *fakeStore) ComputeAndCacheStats(ctx context.Context, force bool) (*database.CachedStats, error) {
	f.statsRefresh++
	return &database.CachedStats{}, nil
}

const dump = `{"_id":"md5:1","_source":{"file_unified_data":{"title_best":"Regular Expressions Cookbook","author_best":"Jan Goyvaerts","year_best":"2009","language_codes":["en"],"identifiers_unified":{"isbn13":["9780596520687"]}}}}
{"_id":"md5:2","_source":{"file_unified_data":{"title_best":"No identifiers here"}}}
{"_id":"md5:3","_source":{"file_unified_data":{"title_best":"Described","stripped_description_best":"Reprint of ISBN 0-201-61622-X"}}}
`

func writeDump(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aarecords.json")
	require.NoError(t, os.WriteFile(path, []byte(dump), 0o644))
	return path
}

func TestIngest(t *testing.T) {
	store := &fakeStore{}
	ingester := NewIngester(store)
	source := writeDump(t)

	result, err := ingester.Ingest(context.Background(), source)
	require.NoError(t, err)
	assert.Equal(t, Result{Source: source, RecordsRead: 3, RecordsIndexed: 2, ISBNs: 2}, result)

	require.Len(t, store.records, 2)
	assert.Equal(t, database.Record{
		ID:        "md5:1",
		Title:     "Regular Expressions Cookbook",
		Author:    "Jan Goyvaerts",
		Year:      2009,
		Languages: pq.StringArray{"en"},
	}, store.records[0])
	assert.Equal(t, []isbn.ISBN{isbn.New("9780596520687", isbn.ISBN13)}, store.isbns[0])
	assert.Equal(t, "md5:3", store.records[1].ID)
	assert.Equal(t, []isbn.ISBN{isbn.New("020161622X", isbn.ISBN10)}, store.isbns[1])

	require.Len(t, store.ingestions, 1)
	assert.True(t, store.ingestions[0].Complete)
	assert.Equal(t, 2, store.ingestions[0].Records)
	assert.Equal(t, 1, store.invalidated)
	assert.Equal(t, 1, store.statsRefresh)

	progress := ingester.Stats()
	assert.False(t, progress.IsRunning)
	assert.Equal(t, 3, progress.RecordsRead)
}

func TestIngestStoreFailure(t *testing.T) {
	boom := errors.New("boom")
	store := &fakeStore{upsertErr: boom}
	ingester := NewIngester(store)

	_, err := ingester.Ingest(context.Background(), writeDump(t))
	assert.ErrorIs(t, err, boom)

	require.Len(t, store.ingestions, 1)
	assert.False(t, store.ingestions[0].Complete)
	assert.Zero(t, store.statsRefresh)
	assert.False(t, ingester.Stats().IsRunning)
}

func TestIngestMissingSource(t *testing.T) {
	ingester := NewIngester(&fakeStore{})
	_, err := ingester.Ingest(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	assert.False(t, ingester.Stats().IsRunning)
}

func TestIngestRejectsConcurrentRun(t *testing.T) {
	ingester := NewIngester(&fakeStore{})
	require.True(t, ingester.stats.Start("other.json"))

	_, err := ingester.Ingest(context.Background(), writeDump(t))
	assert.ErrorIs(t, err, ErrIngestRunning)
	assert.Equal(t, "other.json", ingester.Stats().Source)
}

func TestToDatabaseRecordFallsBackToSourceID(t *testing.T) {
	record := toDatabaseRecord(&anna.Record{
		Source: anna.RecordSource{
			ID: "md5:9",
			FileUnifiedData: anna.FileUnifiedData{
				YearBest: "unknown",
			},
		},
	})
	assert.Equal(t, "md5:9", record.ID)
	assert.Zero(t, record.Year)
	assert.Empty(t, record.Languages)
}
