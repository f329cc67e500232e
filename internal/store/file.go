package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/scout-profile/internal/profile"
)

// FileStore keeps one JSON document per club in a directory. Version checks
// are serialized within the process only.
type FileStore struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

// NewFileStore creates dir when it does not exist.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("file store directory is not configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create profile directory: %w", err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

func (s *FileStore) Name() string { return "file" }

func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(clubID uuid.UUID) string {
	return filepath.Join(s.dir, clubID.String()+".json")
}

func (s *FileStore) Load(ctx context.Context, clubID uuid.UUID) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(clubID)
}

func (s *FileStore) load(clubID uuid.UUID) (*Record, error) {
	data, err := os.ReadFile(s.path(clubID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read profile of club %s: %w", clubID, err)
	}
	return decodeDocument(clubID, data)
}

func (s *FileStore) Save(ctx context.Context, clubID uuid.UUID, p *profile.Profile, expectedVersion int) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := 0
	rec, err := s.load(clubID)
	var corrupt *CorruptError
	switch {
	case err == nil:
		current = rec.Version
	case errors.As(err, &corrupt):
		current = corrupt.Version
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}
	if current != expectedVersion {
		return nil, ErrConflict
	}

	next := &Record{
		ClubID:    clubID,
		Profile:   p.Clone(),
		Version:   expectedVersion + 1,
		UpdatedAt: s.now().UTC(),
	}
	data, err := encodeDocument(next)
	if err != nil {
		return nil, err
	}
	if err := writeAtomic(s.path(clubID), data); err != nil {
		return nil, fmt.Errorf("write profile of club %s: %w", clubID, err)
	}
	return next, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".profile-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
