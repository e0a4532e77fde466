// Package nowplaying holds the single current-track record and coordinates
// its replacement and fan-out to live subscribers.
package nowplaying

import (
	"sync"

	"github.com/harshprakash01/music-share-backend/internal/domain"
)

// Store is the single-slot holder of the current track. It is either empty
// (no track has ever been set) or holds exactly one record; there is no
// history. Validation happens upstream in the resolver, the store is a
// trusted sink.
type Store struct {
	mu      sync.RWMutex
	current *domain.Track
}

func NewStore() *Store {
	return &Store{}
}

// Current returns the track set by the most recent Replace, or nil if no
// track has ever been set.
func (s *Store) Current() *domain.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace swaps in the new track atomically. Readers see either the old
// record or the new one, never a partial write.
func (s *Store) Replace(track *domain.Track) {
	s.mu.Lock()
	s.current = track
	s.mu.Unlock()
}
