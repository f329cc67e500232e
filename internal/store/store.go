// Package store persists recruitment profiles, one document per club, with
// optimistic versioning so concurrent edits never silently overwrite each other.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/scout-profile/internal/logger"
	"github.com/spigell/scout-profile/internal/profile"
)

var (
	// ErrNotFound is returned by Load when no profile is stored for the club.
	ErrNotFound = errors.New("profile not found")
	// ErrConflict is returned by Save when the stored version moved on.
	ErrConflict = errors.New("profile version conflict")
	// ErrInvalidClubID is returned for club ids that are not UUIDs.
	ErrInvalidClubID = errors.New("invalid club id")
	// ErrCorrupt marks a stored document that cannot be decoded.
	ErrCorrupt = errors.New("stored profile is corrupt")
)

// CorruptError carries the version of an undecodable document so that it can
// be overwritten with a compare-and-swap.
type CorruptError struct {
	ClubID  uuid.UUID
	Version int
	Err     error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("%s: club %s version %d: %v", ErrCorrupt, e.ClubID, e.Version, e.Err)
}

func (e *CorruptError) Unwrap() []error { return []error{ErrCorrupt, e.Err} }

// Record is a stored profile with its version. Version 0 means never saved.
type Record struct {
	ClubID    uuid.UUID
	Profile   *profile.Profile
	Version   int
	UpdatedAt time.Time
}

// Store loads and saves profiles.
type Store interface {
	// Load returns ErrNotFound when nothing is stored for clubID.
	Load(ctx context.Context, clubID uuid.UUID) (*Record, error)
	// Save stores p if the current version equals expectedVersion and returns
	// the new record. Use 0 to create. A stale version yields ErrConflict.
	Save(ctx context.Context, clubID uuid.UUID, p *profile.Profile, expectedVersion int) (*Record, error)
	// Name identifies the backend in logs.
	Name() string
	Close() error
}

// ParseClubID parses a club id given on the command line.
func ParseClubID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w %q: %v", ErrInvalidClubID, s, err)
	}
	if id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: nil uuid", ErrInvalidClubID)
	}
	return id, nil
}

// LoadOrDefault never hands the engine a missing or malformed profile: a miss
// yields the default profile at version 0 and a corrupt document yields the
// default profile at the stored version.
func LoadOrDefault(ctx context.Context, s Store, clubID uuid.UUID, l *zap.Logger) (*Record, error) {
	rec, err := s.Load(ctx, clubID)
	if err == nil {
		return rec, nil
	}

	log := logger.WithFields(l, logger.ClubFields(clubID.String(), s.Name())...)

	if errors.Is(err, ErrNotFound) {
		log.Debug("no stored profile, using defaults")
		return &Record{ClubID: clubID, Profile: profile.Default()}, nil
	}

	var corrupt *CorruptError
	if errors.As(err, &corrupt) {
		log.Warn("stored profile is corrupt, using defaults", zap.Int("version", corrupt.Version), zap.Error(corrupt.Err))
		return &Record{ClubID: clubID, Profile: profile.Default(), Version: corrupt.Version}, nil
	}

	return nil, err
}

// Create stores the default profile for a new club. It fails with ErrConflict
// when the club already has one.
func Create(ctx context.Context, s Store, clubID uuid.UUID) (*Record, error) {
	return s.Save(ctx, clubID, profile.Default(), 0)
}

// document is the envelope kept by the file and Redis backends.
type document struct {
	ClubID    uuid.UUID       `json:"club_id"`
	Version   int             `json:"version"`
	UpdatedAt time.Time       `json:"updated_at"`
	Profile   json.RawMessage `json:"profile"`
}

func encodeDocument(rec *Record) ([]byte, error) {
	body, err := json.Marshal(rec.Profile)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	data, err := json.Marshal(document{
		ClubID:    rec.ClubID,
		Version:   rec.Version,
		UpdatedAt: rec.UpdatedAt,
		Profile:   body,
	})
	if err != nil {
		return nil, fmt.Errorf("encode profile document: %w", err)
	}
	return data, nil
}

// decodeDocument returns the envelope even when only the profile inside it is
// malformed, so callers can report the version in a CorruptError.
func decodeDocument(clubID uuid.UUID, data []byte) (*Record, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &CorruptError{ClubID: clubID, Err: err}
	}

	p, err := decodeProfile(doc.Profile)
	if err != nil {
		return nil, &CorruptError{ClubID: clubID, Version: doc.Version, Err: err}
	}

	return &Record{ClubID: clubID, Profile: p, Version: doc.Version, UpdatedAt: doc.UpdatedAt}, nil
}

// decodeProfile fills a default profile from data so that keys missing from
// older documents keep their defaults. Out-of-set enum values are rejected.
func decodeProfile(data []byte) (*profile.Profile, error) {
	p := profile.Default()
	if len(data) == 0 {
		return nil, errors.New("empty profile")
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, err
	}
	if err := profile.Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}
