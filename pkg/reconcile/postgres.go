package reconcile

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresJournal persists reconciliation entries in Postgres for the
// server-side support queue.
type PostgresJournal struct {
	pool *pgxpool.Pool
}

// NewPostgresJournal creates a Postgres-backed journal. Panics on a nil
// pool to fail fast during initialization.
func NewPostgresJournal(pool *pgxpool.Pool) *PostgresJournal {
	if pool == nil {
		panic("reconcile: pgx pool is required")
	}
	return &PostgresJournal{pool: pool}
}

func (j *PostgresJournal) Record(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return ErrNilEntry
	}
	if entry.DeviceID == "" {
		return ErrMissingDeviceID
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := j.pool.Exec(ctx, `
		INSERT INTO reconcile_entries (id, device_id, product_id, transaction_id, reason, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.DeviceID, entry.ProductID, entry.TransactionID,
		string(entry.Reason), entry.Detail, entry.CreatedAt,
	)
	if err != nil {
		return errors.Join(ErrRecordFailed, err)
	}
	return nil
}

func (j *PostgresJournal) Open(ctx context.Context) ([]Entry, error) {
	rows, err := j.pool.Query(ctx, `
		SELECT id, device_id, product_id, transaction_id, reason, detail, created_at, resolved_at
		FROM reconcile_entries
		WHERE resolved_at IS NULL
		ORDER BY created_at`)
	if err != nil {
		return nil, errors.Join(ErrListFailed, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var reason string
		if err := rows.Scan(&e.ID, &e.DeviceID, &e.ProductID, &e.TransactionID,
			&reason, &e.Detail, &e.CreatedAt, &e.ResolvedAt); err != nil {
			return nil, errors.Join(ErrListFailed, err)
		}
		e.Reason = Reason(reason)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrListFailed, err)
	}
	return entries, nil
}

func (j *PostgresJournal) Resolve(ctx context.Context, id uuid.UUID) error {
	tag, err := j.pool.Exec(ctx, `
		UPDATE reconcile_entries
		SET resolved_at = now()
		WHERE id = $1 AND resolved_at IS NULL`, id)
	if err != nil {
		return errors.Join(ErrResolveFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// Migrate applies the journal schema migrations embedded in this package.
// goose requires a database/sql handle, so the pgx pool is bridged through
// stdlib.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer func(db *sql.DB) { _ = db.Close() }(db)

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}
	return nil
}
