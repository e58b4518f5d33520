package sync

import "sync"

// IngestProgress is a point-in-time view of an ingestion run.
type IngestProgress struct {
	IsRunning      bool   `json:"isRunning"`
	Source         string `json:"source"`
	RecordsRead    int    `json:"recordsRead"`
	RecordsIndexed int    `json:"recordsIndexed"`
	ISBNs          int    `json:"isbns"`
}

// IngestStats holds the progress of the current ingestion
type IngestStats struct {
	mu       sync.RWMutex
	progress IngestProgress
}

// Snapshot returns a copy of the current progress
func (s *IngestStats) Snapshot() IngestProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.progress
}

// Start resets the counters for a new run on source. It returns false when a run is already in progress.
func (s *IngestStats) Start(source string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.progress.IsRunning {
		return false
	}
	s.progress = IngestProgress{
		IsRunning: true,
		Source:    source,
	}
	return true
}

// RecordRead counts a decoded record
func (s *IngestStats) RecordRead() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress.RecordsRead++
}

// RecordIndexed counts a stored record and its ISBNs
func (s *IngestStats) RecordIndexed(isbns int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress.RecordsIndexed++
	s.progress.ISBNs += isbns
}

// End marks the run as finished, keeping its counters visible
func (s *IngestStats) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress.IsRunning = false
}
