package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-storefront/internal/logger"
)

const (
	saveMaxRetries  = 3
	saveBackoffBase = 50 * time.Millisecond
)

// stateRepository is the SQL implementation of [StateRepository]. Snapshots
// live in the persisted_state table, one row per key.
type stateRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewStateRepository constructs a [StateRepository] backed by db.
func NewStateRepository(db *DB, logger *logger.Logger) StateRepository {
	return &stateRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Load returns the snapshot stored under key or [ErrStateNotFound].
func (s *stateRepository) Load(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx)

	if key == "" {
		return nil, ErrEmptyKey
	}

	query, args, err := buildLoadStateQuery(s.placeholder, key)
	if err != nil {
		log.Err(err).Str("func", "stateRepository.Load").Str("key", key).Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.DB.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStateNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "stateRepository.Load").Str("key", key).Msg("failed to load state")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return []byte(value), nil
}

// Save upserts value under key. Transient backend errors are retried with an
// exponential backoff.
func (s *stateRepository) Save(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx)

	if key == "" {
		return ErrEmptyKey
	}

	query, args, err := buildSaveStateQuery(s.placeholder, key, value, s.now())
	if err != nil {
		log.Err(err).Str("func", "stateRepository.Save").Str("key", key).Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	backoff := retry.WithMaxRetries(saveMaxRetries, retry.NewExponential(saveBackoffBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, execErr := s.DB.ExecContext(ctx, query, args...)
		if execErr == nil {
			return nil
		}
		if s.errorClassificator != nil && s.errorClassificator.Classify(execErr) == Retryable {
			log.Warn().Err(execErr).
				Str("func", "stateRepository.Save").
				Str("key", key).
				Str("pg_code", postgresError(execErr)).
				Msg("transient error saving state, retrying")
			return retry.RetryableError(execErr)
		}
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "stateRepository.Save").Str("key", key).Msg("failed to save state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Delete removes the snapshot stored under key. Deleting a missing key is
// not an error.
func (s *stateRepository) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	if key == "" {
		return ErrEmptyKey
	}

	query, args, err := buildDeleteStateQuery(s.placeholder, key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "stateRepository.Delete").Str("key", key).Msg("failed to delete state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
