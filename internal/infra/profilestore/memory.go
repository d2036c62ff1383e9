package profilestore

import (
	"context"
	"sync"

	"github.com/yanqian/venuecast/internal/domain/profile"
)

// MemoryStore keeps profiles in process memory. Default backend for local
// development and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]profile.Profile
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]profile.Profile)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (profile.Profile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	return p, ok, nil
}

func (s *MemoryStore) Put(ctx context.Context, p profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = p
	return nil
}
