// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package timeclock

import (
	"context"
	"net/http"
	"time"

	"github.com/taibuivan/corplan/internal/platform/apperr"
	"github.com/taibuivan/corplan/internal/platform/constants"
	"github.com/taibuivan/corplan/internal/platform/sec"
	"github.com/taibuivan/corplan/pkg/uuidv7"
)

// Service implements the business logic for shift time tracking.
//
// # Consistency
//
// PostgreSQL is the source of truth for entries; the Redis marker is a
// volatile accelerator. The service always survives a missing marker by
// falling back to the open-entry query, and it repairs the inverse case
// (marker expired, SQL row still open) by force-closing the abandoned shift
// at the maximum shift duration.
type Service struct {
	entryRepo  EntryRepository
	timerStore ActiveTimerStore
	now        func() time.Time
}

// Option configures optional service behavior.
type Option func(*Service)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new timeclock service with its dependencies.
func NewService(entryRepo EntryRepository, timerStore ActiveTimerStore, opts ...Option) *Service {
	service := &Service{
		entryRepo:  entryRepo,
		timerStore: timerStore,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// ClockIn opens a new shift for the caller.
//
// # Rules
//   - Rejects with 409 if the caller already has an open shift.
//   - If the volatile marker has expired but a SQL row is still open, the
//     abandoned shift is closed at clock-in + max duration before the new
//     one starts.
func (service *Service) ClockIn(ctx context.Context, actor sec.Identity) (*Entry, error) {
	// ── 1. Double Clock-In Guard ──────────────────────────────────────
	if _, err := service.timerStore.Get(ctx, actor.UserID); err == nil {
		return nil, apperr.Conflict("Already clocked in")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	// ── 2. Abandoned Shift Repair ─────────────────────────────────────
	open, err := service.entryRepo.FindOpenByUser(ctx, actor.UserID)
	switch {
	case err == nil:
		forcedOut := open.ClockIn.Add(constants.MaxShiftDuration)
		if err := service.entryRepo.Close(ctx, open.ID, forcedOut); err != nil {
			return nil, err
		}
	case !apperr.IsNotFound(err):
		return nil, err
	}

	// ── 3. Open The Shift ─────────────────────────────────────────────
	entry := &Entry{
		ID:        uuidv7.New(),
		UserID:    actor.UserID,
		CompanyID: actor.CompanyID,
		ClockIn:   service.now(),
	}

	if err := service.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	if err := service.timerStore.Set(ctx, actor.UserID, entry.ID, constants.MaxShiftDuration); err != nil {
		return nil, err
	}

	return entry, nil
}

// ClockOut closes the caller's open shift and returns the closed entry.
//
// Rejects with 409 if no shift is open.
func (service *Service) ClockOut(ctx context.Context, actor sec.Identity) (*Entry, error) {
	open, err := service.findOpen(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if err := service.entryRepo.Close(ctx, open.ID, service.now()); err != nil {
		return nil, err
	}
	if err := service.timerStore.Clear(ctx, actor.UserID); err != nil {
		return nil, err
	}

	return service.entryRepo.FindByID(ctx, open.ID)
}

// ClockStatus is the caller's current clocking state.
type ClockStatus struct {
	ClockedIn bool   `json:"clockedIn"`
	Entry     *Entry `json:"entry,omitempty"`
}

// Status reports whether the caller has an open shift, and which one.
func (service *Service) Status(ctx context.Context, actor sec.Identity) (*ClockStatus, error) {
	open, err := service.findOpen(ctx, actor.UserID)
	if err != nil {
		if ae := apperr.As(err); ae != nil && ae.HTTPStatus == http.StatusConflict {
			return &ClockStatus{ClockedIn: false}, nil
		}
		return nil, err
	}

	return &ClockStatus{ClockedIn: true, Entry: open}, nil
}

// DaySummary is the worked total for one calendar day.
type DaySummary struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// WeekSummary aggregates a Monday-to-Sunday week of shifts.
type WeekSummary struct {
	WeekStart  string       `json:"weekStart"`
	Days       []DaySummary `json:"days"`
	TotalHours float64      `json:"totalHours"`
}

// WeeklySummary aggregates the caller's shifts for the week containing the
// anchor date. Weeks run Monday 00:00 UTC to the next Monday; an open shift
// counts up to the current time.
func (service *Service) WeeklySummary(ctx context.Context, actor sec.Identity, anchor time.Time) (*WeekSummary, error) {
	weekStart := startOfWeek(anchor.UTC())
	weekEnd := weekStart.AddDate(0, 0, 7)

	entries, err := service.entryRepo.ListByUserBetween(ctx, actor.UserID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	summary := &WeekSummary{
		WeekStart: weekStart.Format(time.DateOnly),
		Days:      make([]DaySummary, 7),
	}
	for i := range summary.Days {
		summary.Days[i].Date = weekStart.AddDate(0, 0, i).Format(time.DateOnly)
	}

	now := service.now()
	for _, entry := range entries {
		hours := entry.Worked(now).Hours()
		day := int(entry.ClockIn.UTC().Sub(weekStart).Hours() / 24)
		if day < 0 || day > 6 {
			continue
		}
		summary.Days[day].Hours += hours
		summary.TotalHours += hours
	}

	return summary, nil
}

// startOfWeek returns Monday 00:00 UTC of the week containing t.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.AddDate(0, 0, -offset)
}

// findOpen resolves the caller's open shift via the marker first, then the
// SQL fallback. Returns 409 when nothing is open.
func (service *Service) findOpen(ctx context.Context, userID string) (*Entry, error) {
	entryID, err := service.timerStore.Get(ctx, userID)
	switch {
	case err == nil:
		entry, err := service.entryRepo.FindByID(ctx, entryID)
		if err == nil && entry.Open() {
			return entry, nil
		}
		if err != nil && !apperr.IsNotFound(err) {
			return nil, err
		}
		// Stale marker: fall through to the SQL check.
	case !apperr.IsNotFound(err):
		return nil, err
	}

	entry, err := service.entryRepo.FindOpenByUser(ctx, userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Conflict("Not clocked in")
		}
		return nil, err
	}

	return entry, nil
}
