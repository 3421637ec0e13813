// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package timeclock implements shift time tracking (clock-in / clock-out).
//
// # Overview
//
// Each account has at most one open shift at a time. Clocking in opens a
// time entry and registers a volatile active-timer marker in Redis; clocking
// out closes the entry and clears the marker. The marker carries a TTL equal
// to the maximum shift duration so abandoned shifts stop blocking new
// clock-ins on their own.
package timeclock

import (
	"time"
)

// Entry represents a single shift: one clock-in and, once closed, one
// clock-out. An entry with a nil ClockOut is an open shift.
type Entry struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	CompanyID string     `json:"companyId"`
	ClockIn   time.Time  `json:"clockIn"`
	ClockOut  *time.Time `json:"clockOut,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Open reports whether the shift has not been closed yet.
func (e *Entry) Open() bool {
	return e.ClockOut == nil
}

// Worked returns the shift duration. Open shifts are measured up to the
// given reference time.
func (e *Entry) Worked(now time.Time) time.Duration {
	end := now
	if e.ClockOut != nil {
		end = *e.ClockOut
	}
	if end.Before(e.ClockIn) {
		return 0
	}
	return end.Sub(e.ClockIn)
}
