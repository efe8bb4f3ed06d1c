// Package repositories contains the SQLite-backed implementations of the
// domain persistence contracts. Reads run on the pooled read connection,
// mutations on the serialized write connection.
package repositories

import (
	"database/sql"
	"time"

	"ndisaudit/database"
	"ndisaudit/logging"
)

// BaseRepository provides shared database access for repository implementations
type BaseRepository struct {
	db     *database.Database
	logger *logging.Logger
}

// NewBaseRepository creates a base repository with database access
func NewBaseRepository(db *database.Database, logger *logging.Logger) *BaseRepository {
	return &BaseRepository{
		db:     db,
		logger: logger,
	}
}

// read returns the pooled read connection
func (r *BaseRepository) read() *sql.DB {
	return r.db.Read()
}

// write returns the serialized write connection
func (r *BaseRepository) write() *sql.DB {
	return r.db.Write()
}

// withTx executes fn inside a write transaction
func (r *BaseRepository) withTx(fn func(*sql.Tx) error) error {
	return r.db.WithTx(fn)
}

// toNullTime converts a time to sql.NullTime, treating the zero time as NULL
func toNullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

// toNullTimePtr converts an optional time pointer to sql.NullTime
func toNullTimePtr(t *time.Time) sql.NullTime {
	if t == nil || t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// fromNullTime converts sql.NullTime back to a time, NULL becoming the zero time
func fromNullTime(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

// fromNullTimePtr converts sql.NullTime back to an optional time pointer
func fromNullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
