// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package timeclock

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/corplan/internal/platform/apperr"
	"github.com/taibuivan/corplan/internal/platform/dberr"
)

// PostgresEntryRepository implements the EntryRepository interface using pgx.
type PostgresEntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new PostgreSQL implementation of the EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *PostgresEntryRepository {
	return &PostgresEntryRepository{pool: pool}
}

const entryColumns = "id, userid, companyid, clockin, clockout, createdat, updatedat"

// Create persists a new time entry record.
func (repository *PostgresEntryRepository) Create(ctx context.Context, entry *Entry) error {
	const query = `
		INSERT INTO time_entry (
			id, userid, companyid, clockin, clockout, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.CompanyID,
		entry.ClockIn,
		entry.ClockOut,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Time entry")
	}

	return nil
}

// FindByID retrieves a time entry record by its unique ID.
func (repository *PostgresEntryRepository) FindByID(ctx context.Context, id string) (*Entry, error) {
	const query = `
		SELECT ` + entryColumns + `
		FROM time_entry
		WHERE id = $1`

	return repository.scanOne(ctx, query, id)
}

// FindOpenByUser retrieves the account's open entry, newest first in case a
// crash ever left more than one open row behind.
func (repository *PostgresEntryRepository) FindOpenByUser(ctx context.Context, userID string) (*Entry, error) {
	const query = `
		SELECT ` + entryColumns + `
		FROM time_entry
		WHERE userid = $1 AND clockout IS NULL
		ORDER BY clockin DESC
		LIMIT 1`

	return repository.scanOne(ctx, query, userID)
}

// Close stamps the clock-out time on an open entry.
//
// The clockout IS NULL guard makes the operation idempotent-safe: closing an
// already-closed entry reports not found instead of rewriting history.
func (repository *PostgresEntryRepository) Close(ctx context.Context, id string, clockOut time.Time) error {
	const query = `
		UPDATE time_entry
		SET clockout = $2, updatedat = $3
		WHERE id = $1 AND clockout IS NULL`

	tag, err := repository.pool.Exec(ctx, query, id, clockOut, time.Now())
	if err != nil {
		return dberr.Wrap(err, "Time entry")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Time entry")
	}

	return nil
}

// ListByUserBetween retrieves an account's entries with a clock-in inside
// the half-open interval [from, to), oldest first.
func (repository *PostgresEntryRepository) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]*Entry, error) {
	const query = `
		SELECT ` + entryColumns + `
		FROM time_entry
		WHERE userid = $1 AND clockin >= $2 AND clockin < $3
		ORDER BY clockin ASC`

	rows, err := repository.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres_entry_repo_list_failed: %w", err)
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		entry := &Entry{}
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.CompanyID,
			&entry.ClockIn,
			&entry.ClockOut,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_entry_repo_scan_failed: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_entry_repo_rows_failed: %w", err)
	}

	return entries, nil
}

// scanOne executes a single-row time-entry query.
func (repository *PostgresEntryRepository) scanOne(ctx context.Context, query string, arg any) (*Entry, error) {
	entry := &Entry{}
	err := repository.pool.QueryRow(ctx, query, arg).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.CompanyID,
		&entry.ClockIn,
		&entry.ClockOut,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "Time entry")
	}

	return entry, nil
}
