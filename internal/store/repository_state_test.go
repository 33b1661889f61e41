package store

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-storefront/internal/logger"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestStateRepo(t *testing.T) (*stateRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l := logger.Nop()
	repo := &stateRepository{
		DB: &DB{
			DB:                 db,
			dialect:            dialectSQLite,
			placeholder:        sq.Question,
			errorClassificator: NewPostgresErrorClassifier(),
			logger:             l,
		},
		logger: l,
		now:    func() time.Time { return fixedNow },
	}
	return repo, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var (
	loadQuery   = regexp.QuoteMeta("SELECT value FROM persisted_state WHERE state_key = ?")
	saveQuery   = regexp.QuoteMeta("INSERT INTO persisted_state (state_key,value,updated_at) VALUES (?,?,?) ON CONFLICT (state_key)")
	deleteQuery = regexp.QuoteMeta("DELETE FROM persisted_state WHERE state_key = ?")
)

// ── Load ─────────────────────────────────────────────────────────────────────

func TestStateRepository_Load_Success(t *testing.T) {
	repo, mock := newTestStateRepo(t)

	mock.ExpectQuery(loadQuery).
		WithArgs("cart").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"items":[]}`))

	got, err := repo.Load(context.Background(), "cart")

	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStateRepository_Load_NotFound(t *testing.T) {
	repo, mock := newTestStateRepo(t)

	mock.ExpectQuery(loadQuery).
		WithArgs("cart").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := repo.Load(context.Background(), "cart")

	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestStateRepository_Load_QueryError(t *testing.T) {
	repo, mock := newTestStateRepo(t)

	mock.ExpectQuery(loadQuery).WillReturnError(errors.New("disk I/O error"))

	_, err := repo.Load(context.Background(), "cart")

	assert.ErrorIs(t, err, ErrScanningRow)
	assert.NotErrorIs(t, err, ErrStateNotFound)
}

func TestStateRepository_EmptyKey(t *testing.T) {
	repo, _ := newTestStateRepo(t)
	ctx := context.Background()

	_, err := repo.Load(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyKey)
	assert.ErrorIs(t, repo.Save(ctx, "", nil), ErrEmptyKey)
	assert.ErrorIs(t, repo.Delete(ctx, ""), ErrEmptyKey)
}

// ── Save ─────────────────────────────────────────────────────────────────────

func TestStateRepository_Save_Success(t *testing.T) {
	repo, mock := newTestStateRepo(t)

	mock.ExpectExec(saveQuery).
		WithArgs("user", `{"id":"u1"}`, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), "user", []byte(`{"id":"u1"}`))

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStateRepository_Save_RetriesTransientError(t *testing.T) {
	repo, mock := newTestStateRepo(t)

	mock.ExpectExec(saveQuery).WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectExec(saveQuery).WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), "cart", []byte(`{}`))

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStateRepository_Save_GivesUpAfterMaxRetries(t *testing.T) {
	repo, mock := newTestStateRepo(t)

	for i := 0; i < saveMaxRetries+1; i++ {
		mock.ExpectExec(saveQuery).WillReturnError(pgError(pgerrcode.DeadlockDetected))
	}

	err := repo.Save(context.Background(), "cart", []byte(`{}`))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStateRepository_Save_NonRetryableError(t *testing.T) {
	repo, mock := newTestStateRepo(t)

	mock.ExpectExec(saveQuery).WillReturnError(pgError(pgerrcode.UndefinedTable))

	err := repo.Save(context.Background(), "cart", []byte(`{}`))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.Equal(t, pgerrcode.UndefinedTable, postgresError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStateRepository_Save_ContextCancelled(t *testing.T) {
	repo, mock := newTestStateRepo(t)
	ctx, cancel := context.WithCancel(context.Background())

	mock.ExpectExec(saveQuery).WillReturnError(pgError(pgerrcode.ConnectionFailure))
	cancel()

	err := repo.Save(ctx, "cart", []byte(`{}`))

	assert.Error(t, err)
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestStateRepository_Delete(t *testing.T) {
	repo, mock := newTestStateRepo(t)

	mock.ExpectExec(deleteQuery).WithArgs("waitlist").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "waitlist"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStateRepository_Delete_Error(t *testing.T) {
	repo, mock := newTestStateRepo(t)

	mock.ExpectExec(deleteQuery).WillReturnError(errors.New("boom"))

	assert.ErrorIs(t, repo.Delete(context.Background(), "waitlist"), ErrExecutingStatement)
}

// ── SQLite round trip ────────────────────────────────────────────────────────

func TestStateRepository_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "nested", "state.db")

	db, err := NewConnectSQLite(ctx, dsn, logger.Nop())
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Migrate())

	repo := NewStateRepository(db, logger.Nop())

	_, err = repo.Load(ctx, "cart")
	require.ErrorIs(t, err, ErrStateNotFound)

	require.NoError(t, repo.Save(ctx, "cart", []byte(`{"v":1}`)))
	require.NoError(t, repo.Save(ctx, "cart", []byte(`{"v":2}`)))

	got, err := repo.Load(ctx, "cart")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got))

	require.NoError(t, repo.Delete(ctx, "cart"))
	_, err = repo.Load(ctx, "cart")
	assert.ErrorIs(t, err, ErrStateNotFound)
}
