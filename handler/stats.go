package handler

import (
	"sync/atomic"

	"github.com/Philipp01105/consoleline/core"
)

const numLevels = int(core.EmergencyLevel) + 1

// Stats tracks handler statistics
type Stats struct {
	processed [numLevels]atomic.Uint64
	failed    [numLevels]atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementProcessed atomically increments the processed counter for a level.
// Invalid levels are ignored.
func (s *Stats) IncrementProcessed(level core.Level) {
	if level.Valid() {
		s.processed[level].Add(1)
	}
}

// IncrementFailed atomically increments the failed counter for a level.
// Invalid levels are ignored.
func (s *Stats) IncrementFailed(level core.Level) {
	if level.Valid() {
		s.failed[level].Add(1)
	}
}

// GetProcessed returns the processed count for a level
func (s *Stats) GetProcessed(level core.Level) uint64 {
	if !level.Valid() {
		return 0
	}
	return s.processed[level].Load()
}

// GetFailed returns the failed count for a level
func (s *Stats) GetFailed(level core.Level) uint64 {
	if !level.Valid() {
		return 0
	}
	return s.failed[level].Load()
}

// GetTotalProcessed returns the processed count across all levels
func (s *Stats) GetTotalProcessed() uint64 {
	var n uint64
	for i := range s.processed {
		n += s.processed[i].Load()
	}
	return n
}

// GetTotalFailed returns the failed count across all levels
func (s *Stats) GetTotalFailed() uint64 {
	var n uint64
	for i := range s.failed {
		n += s.failed[i].Load()
	}
	return n
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	for i := range s.processed {
		s.processed[i].Store(0)
		s.failed[i].Store(0)
	}
}

// Snapshot is a point-in-time copy of the counters
type Snapshot struct {
	Processed      map[core.Level]uint64
	Failed         map[core.Level]uint64
	ProcessedTotal uint64
	FailedTotal    uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	snap := Snapshot{
		Processed: make(map[core.Level]uint64, numLevels),
		Failed:    make(map[core.Level]uint64, numLevels),
	}
	for _, l := range core.Levels() {
		p, f := s.GetProcessed(l), s.GetFailed(l)
		snap.Processed[l] = p
		snap.Failed[l] = f
		snap.ProcessedTotal += p
		snap.FailedTotal += f
	}
	return snap
}
