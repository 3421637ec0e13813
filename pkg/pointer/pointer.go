// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for optional values.

Nullable columns surface as pointer fields across the domain: a task's
assignee, an account's company and team, an open shift's clock-out time.
These helpers keep the conversions at the boundaries terse.

Key Functions:
  - To: Creates a pointer from a value literal.
  - Val: Safely dereferences a pointer, returning the zero value if nil.
  - Fallback: Safely dereferences a pointer, returning a fallback value if nil.
*/
package pointer

// To returns a pointer to the provided value. Useful for filling optional
// struct fields from literals (e.g. pointer.To("team-1")).
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value of T if p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback dereferences p, returning the provided fallback if p is nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
