package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/spigell/scout-profile/internal/profile"
)

const (
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS club_profiles (
	club_id    uuid PRIMARY KEY,
	document   jsonb NOT NULL,
	version    integer NOT NULL,
	updated_at timestamptz NOT NULL
)`

const (
	selectProfileSQL = `SELECT document, version, updated_at FROM club_profiles WHERE club_id = $1`
	insertProfileSQL = `INSERT INTO club_profiles (club_id, document, version, updated_at)
	VALUES ($1, $2::jsonb, 1, $3)
	ON CONFLICT (club_id) DO NOTHING`
	updateProfileSQL = `UPDATE club_profiles
	SET document = $1::jsonb, version = version + 1, updated_at = $2
	WHERE club_id = $3 AND version = $4`
)

type profileRow struct {
	Document  []byte    `db:"document"`
	Version   int       `db:"version"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SQLStore keeps profiles in the club_profiles table of a PostgreSQL database.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

// OpenSQL connects with the pgx or lib/pq driver and makes sure the table exists.
func OpenSQL(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	switch driver {
	case "":
		driver = DriverPgx
	case DriverPgx, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := NewSQLStore(db)
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create club_profiles table: %w", err)
	}
	return nil
}

func (s *SQLStore) Name() string { return "postgres" }

func (s *SQLStore) Close() error { return s.db.Close() }

func (s *SQLStore) Load(ctx context.Context, clubID uuid.UUID) (*Record, error) {
	var row profileRow
	err := s.db.GetContext(ctx, &row, selectProfileSQL, clubID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select profile of club %s: %w", clubID, err)
	}

	p, err := decodeProfile(row.Document)
	if err != nil {
		return nil, &CorruptError{ClubID: clubID, Version: row.Version, Err: err}
	}
	return &Record{ClubID: clubID, Profile: p, Version: row.Version, UpdatedAt: row.UpdatedAt}, nil
}

func (s *SQLStore) Save(ctx context.Context, clubID uuid.UUID, p *profile.Profile, expectedVersion int) (*Record, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	updatedAt := s.now().UTC()

	var res sql.Result
	if expectedVersion == 0 {
		res, err = s.db.ExecContext(ctx, insertProfileSQL, clubID, string(body), updatedAt)
	} else {
		res, err = s.db.ExecContext(ctx, updateProfileSQL, string(body), updatedAt, clubID, expectedVersion)
	}
	if err != nil {
		return nil, fmt.Errorf("save profile of club %s: %w", clubID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("save profile of club %s: %w", clubID, err)
	}
	if affected == 0 {
		return nil, ErrConflict
	}

	return &Record{ClubID: clubID, Profile: p.Clone(), Version: expectedVersion + 1, UpdatedAt: updatedAt}, nil
}
