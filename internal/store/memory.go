package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/scout-profile/internal/profile"
)

// MemoryStore keeps profiles in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]Record
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[uuid.UUID]Record),
		now:     time.Now,
	}
}

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Load(ctx context.Context, clubID uuid.UUID) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[clubID]
	if !ok {
		return nil, ErrNotFound
	}
	rec.Profile = rec.Profile.Clone()
	return &rec, nil
}

func (s *MemoryStore) Save(ctx context.Context, clubID uuid.UUID, p *profile.Profile, expectedVersion int) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.records[clubID].Version != expectedVersion {
		return nil, ErrConflict
	}

	rec := Record{
		ClubID:    clubID,
		Profile:   p.Clone(),
		Version:   expectedVersion + 1,
		UpdatedAt: s.now().UTC(),
	}
	s.records[clubID] = rec

	rec.Profile = rec.Profile.Clone()
	return &rec, nil
}
