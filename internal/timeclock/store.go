// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package timeclock

import (
	"context"
	"time"
)

// EntryRepository defines the persistence contract for time entries.
type EntryRepository interface {
	// Create persists a new (open) time entry.
	Create(ctx context.Context, entry *Entry) error

	// FindByID retrieves a time entry by its unique ID.
	FindByID(ctx context.Context, id string) (*Entry, error)

	// FindOpenByUser retrieves the account's open entry, or apperr.NotFound
	// when the account has no open shift.
	FindOpenByUser(ctx context.Context, userID string) (*Entry, error)

	// Close stamps the clock-out time on an open entry.
	Close(ctx context.Context, id string, clockOut time.Time) error

	// ListByUserBetween retrieves an account's entries overlapping the
	// half-open interval [from, to), oldest first.
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]*Entry, error)
}

// ActiveTimerStore is the volatile marker for open shifts. It exists so the
// double-clock-in check never touches SQL on the hot path, and so abandoned
// shifts self-expire via TTL.
type ActiveTimerStore interface {
	// Set registers the open entry ID for an account with a TTL.
	Set(ctx context.Context, userID, entryID string, ttl time.Duration) error

	// Get returns the open entry ID, or apperr.NotFound when no marker exists.
	Get(ctx context.Context, userID string) (string, error)

	// Clear removes the account's marker. Clearing a missing marker is not
	// an error.
	Clear(ctx context.Context, userID string) error
}
