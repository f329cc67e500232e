package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/scout-profile/internal/logger"
	"github.com/spigell/scout-profile/internal/profile"
)

// DefaultMaxRetries is how often Apply retries after a version conflict.
const DefaultMaxRetries = 5

// Editor applies patches with read-merge-validate-save, retrying when another
// writer got in between the read and the save.
type Editor struct {
	store      Store
	logger     *zap.Logger
	maxRetries int
}

func NewEditor(s Store, l *zap.Logger, maxRetries int) *Editor {
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	return &Editor{store: s, logger: logger.OrNop(l), maxRetries: maxRetries}
}

// Apply merges patch into the stored profile of clubID. A merged profile that
// fails validation is not saved and the error wraps *profile.ValidationError.
func (e *Editor) Apply(ctx context.Context, clubID uuid.UUID, patch *profile.Patch) (*Record, error) {
	log := logger.WithFields(e.logger, logger.ClubFields(clubID.String(), e.store.Name())...)

	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		current, err := LoadOrDefault(ctx, e.store, clubID, log)
		if err != nil {
			return nil, err
		}

		merged := profile.Merge(current.Profile, patch)
		if err := profile.Validate(merged); err != nil {
			return nil, fmt.Errorf("apply patch to club %s: %w", clubID, err)
		}

		saved, err := e.store.Save(ctx, clubID, merged, current.Version)
		if errors.Is(err, ErrConflict) {
			log.Debug("profile changed concurrently, retrying", zap.Int("attempt", attempt+1), zap.Int("version", current.Version))
			continue
		}
		if err != nil {
			return nil, err
		}

		for _, w := range profile.Warnings(saved.Profile) {
			log.Warn("profile saved with inconsistent bounds", zap.String("warning", w))
		}
		log.Info("profile updated", zap.Int("version", saved.Version))
		return saved, nil
	}

	return nil, fmt.Errorf("apply patch to club %s after %d attempts: %w", clubID, e.maxRetries+1, ErrConflict)
}
