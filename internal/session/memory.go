package session

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/MikeSquared-Agency/typecast/internal/metrics"
)

// MemoryStore keeps at most size sessions, evicting the least recently used.
type MemoryStore struct {
	cache *lru.Cache[string, *State]
}

func NewMemoryStore(size int, logger *slog.Logger) (*MemoryStore, error) {
	cache, err := lru.NewWithEvict[string, *State](size, func(id string, _ *State) {
		logger.Info("session evicted", "session_id", id)
	})
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	return &MemoryStore{cache: cache}, nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (*State, error) {
	st, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return st, nil
}

func (s *MemoryStore) Save(_ context.Context, st *State) error {
	s.cache.Add(st.ID, st)
	metrics.ActiveSessions.Set(float64(s.cache.Len()))
	return nil
}

func (s *MemoryStore) Len() int {
	return s.cache.Len()
}
