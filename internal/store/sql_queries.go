package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	stateTable = "persisted_state"

	columnStateKey  = "state_key"
	columnValue     = "value"
	columnUpdatedAt = "updated_at"

	upsertStateSuffix = "ON CONFLICT (state_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at"
)

func buildLoadStateQuery(format sq.PlaceholderFormat, key string) (string, []any, error) {
	return sq.Select(columnValue).
		From(stateTable).
		Where(sq.Eq{columnStateKey: key}).
		PlaceholderFormat(format).
		ToSql()
}

func buildSaveStateQuery(format sq.PlaceholderFormat, key string, value []byte, at time.Time) (string, []any, error) {
	return sq.Insert(stateTable).
		Columns(columnStateKey, columnValue, columnUpdatedAt).
		Values(key, string(value), at.UTC()).
		Suffix(upsertStateSuffix).
		PlaceholderFormat(format).
		ToSql()
}

func buildDeleteStateQuery(format sq.PlaceholderFormat, key string) (string, []any, error) {
	return sq.Delete(stateTable).
		Where(sq.Eq{columnStateKey: key}).
		PlaceholderFormat(format).
		ToSql()
}
