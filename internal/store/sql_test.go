package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/scout-profile/internal/profile"
)

func newMockStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewSQLStore(sqlx.NewDb(db, "sqlmock"))
	s.now = func() time.Time { return time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC) }
	return s, mock
}

func TestSQLStoreLoad(t *testing.T) {
	s, mock := newMockStore(t)
	clubID := uuid.New()
	updated := time.Date(2025, 4, 30, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"document", "version", "updated_at"}).
		AddRow([]byte(`{"identity":{"name":"Riverside FC","founded_year":1887}}`), 3, updated)
	mock.ExpectQuery(regexp.QuoteMeta(selectProfileSQL)).WithArgs(clubID).WillReturnRows(rows)

	rec, err := s.Load(context.Background(), clubID)
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Version)
	assert.Equal(t, updated, rec.UpdatedAt)
	assert.Equal(t, "Riverside FC", rec.Profile.Identity.Name)
	require.NotNil(t, rec.Profile.Identity.FoundedYear)
	assert.Equal(t, 1887, *rec.Profile.Identity.FoundedYear)
	assert.Equal(t, profile.Default().Contracts, rec.Profile.Contracts)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreLoadMissing(t *testing.T) {
	s, mock := newMockStore(t)
	clubID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(selectProfileSQL)).
		WithArgs(clubID).
		WillReturnRows(sqlmock.NewRows([]string{"document", "version", "updated_at"}))

	_, err := s.Load(context.Background(), clubID)
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreLoadCorrupt(t *testing.T) {
	s, mock := newMockStore(t)
	clubID := uuid.New()

	rows := sqlmock.NewRows([]string{"document", "version", "updated_at"}).
		AddRow([]byte(`{"strategy":{"risk_appetite":"reckless"}}`), 7, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(selectProfileSQL)).WithArgs(clubID).WillReturnRows(rows)

	_, err := s.Load(context.Background(), clubID)
	var corrupt *CorruptError
	require.ErrorAs(t, err, &corrupt)
	assert.Equal(t, 7, corrupt.Version)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreSave(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockStore(t)
	clubID := uuid.New()
	p := profile.Default()

	mock.ExpectExec(regexp.QuoteMeta(insertProfileSQL)).
		WithArgs(clubID, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(updateProfileSQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), clubID, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(updateProfileSQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), clubID, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(insertProfileSQL)).
		WithArgs(clubID, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := s.Save(ctx, clubID, p, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, created.Version)
	assert.Equal(t, time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC), created.UpdatedAt)

	updated, err := s.Save(ctx, clubID, p, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)

	_, err = s.Save(ctx, clubID, p, 1)
	require.ErrorIs(t, err, ErrConflict)

	_, err = s.Save(ctx, clubID, p, 0)
	require.ErrorIs(t, err, ErrConflict)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreEnsureSchema(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(schemaSQL)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
