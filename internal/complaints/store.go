package complaints

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// Snapshot is an immutable, complete view of the complaint collection.
type Snapshot struct {
	Records   []Record
	FetchedAt time.Time
}

// Store holds the current snapshot. Refresh replaces it wholesale so readers
// never observe a partially updated collection.
type Store struct {
	source  Source
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store with an empty snapshot.
func NewStore(source Source) *Store {
	s := &Store{source: source}
	s.current.Store(&Snapshot{})
	return s
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Replace installs records as the current snapshot.
func (s *Store) Replace(records []Record) *Snapshot {
	snap := &Snapshot{Records: records, FetchedAt: time.Now()}
	s.current.Store(snap)
	return snap
}

// Refresh fetches a full snapshot from the source. On failure the previous
// snapshot stays in place.
func (s *Store) Refresh(ctx context.Context) (*Snapshot, error) {
	if s.source == nil {
		return s.Snapshot(), ErrNoSource
	}

	records, err := s.source.Fetch(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Snapshot refresh failed")
		return s.Snapshot(), err
	}

	snap := s.Replace(records)
	log.Info().Int("count", len(records)).Msg("Complaint snapshot refreshed")
	return snap, nil
}
