package database

import (
	"context"
	"sync"
	"time"
)

// TypeCount represents a count by type
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// CachedStats holds the cached database statistics
type CachedStats struct {
	LastIngestion string      `json:"lastIngestion"`
	Source        string      `json:"source"`
	Count         int         `json:"count"`
	Identifiers   []TypeCount `json:"identifiers"`
}

type statsCache struct {
	mu    sync.RWMutex
	stats *CachedStats
}

// GetCachedStats returns the cached stats if available, nil otherwise
func (s *Store) GetCachedStats() *CachedStats {
	if !s.stats.mu.TryRLock() {
		return nil
	}
	defer s.stats.mu.RUnlock()

	return s.stats.stats
}

// ComputeAndCacheStats computes the stats from the database and stores them in cache.
// Unless force is set, it returns nil when another computation is in progress.
func (s *Store) ComputeAndCacheStats(ctx context.Context, force bool) (*CachedStats, error) {
	if force {
		s.stats.mu.Lock()
	} else if !s.stats.mu.TryLock() {
		return nil, nil
	}
	defer s.stats.mu.Unlock()

	stats := &CachedStats{}

	last, err := s.lastCompleteIngestion(ctx)
	if err != nil {
		return nil, err
	}
	if last == nil {
		// never ingested, cannot compute stats
		return nil, nil
	}
	stats.LastIngestion = last.Date.Format(time.RFC3339)
	stats.Source = last.Source

	db := s.DB.WithContext(ctx)

	var recordCount int64
	if err := db.Model(&Record{}).Count(&recordCount).Error; err != nil {
		return nil, err
	}
	stats.Count = int(recordCount)

	if err := db.Model(&RecordIdentifier{}).
		Select("type, COUNT(*) as count").
		Group("type").
		Order("type").
		Scan(&stats.Identifiers).Error; err != nil {
		return nil, err
	}

	s.stats.stats = stats
	return stats, nil
}

// InvalidateStatsCache drops the cached stats so they are recomputed on next access
func (s *Store) InvalidateStatsCache() {
	s.stats.mu.Lock()
	defer s.stats.mu.Unlock()
	s.stats.stats = nil
}

func (s *Store) lastCompleteIngestion(ctx context.Context) (*Ingestion, error) {
	var ingestions []Ingestion
	if err := s.DB.WithContext(ctx).
		Where("complete = ?", true).
		Order("date DESC").
		Limit(1).
		Find(&ingestions).Error; err != nil {
		return nil, err
	}
	if len(ingestions) == 0 {
		return nil, nil
	}
	return &ingestions[0], nil
}
