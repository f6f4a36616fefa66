// pkg/mem/trip_cache.go
package mem

import (
	"context"
	"sync"
	"time"

	"tripsync/internal/models/response_models"
)

// TripCache memoizes pipeline results per canonical request key.
type TripCache interface {
	// Get returns a copy of the trips stored under key, or false when the key
	// is missing or its entry has expired.
	Get(ctx context.Context, key string) ([]response_models.TripCandidate, bool)

	Put(ctx context.Context, key string, trips []response_models.TripCandidate)
}

// Clock is injected so tests can move time.
type Clock func() time.Time

type tripEntry struct {
	trips     []response_models.TripCandidate
	createdAt time.Time
}

// MemoryTripCache keeps entries in a process-local map. Expiry is checked on
// read; nothing sweeps the map in the background.
type MemoryTripCache struct {
	mu   sync.Mutex
	data map[string]tripEntry
	ttl  time.Duration
	now  Clock
}

func NewMemoryTripCache(ttl time.Duration, now Clock) *MemoryTripCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryTripCache{
		data: make(map[string]tripEntry),
		ttl:  ttl,
		now:  now,
	}
}

func (s *MemoryTripCache) Get(_ context.Context, key string) ([]response_models.TripCandidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return nil, false
	}
	if !s.now().Before(e.createdAt.Add(s.ttl)) {
		delete(s.data, key) // cleanup expired
		return nil, false
	}
	return response_models.CloneTrips(e.trips), true
}

func (s *MemoryTripCache) Put(_ context.Context, key string, trips []response_models.TripCandidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = tripEntry{
		trips:     response_models.CloneTrips(trips),
		createdAt: s.now(),
	}
}

// Len reports how many entries are held, expired or not.
func (s *MemoryTripCache) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
