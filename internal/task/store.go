// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"

	"github.com/taibuivan/corplan/pkg/pagination"
)

// Filter narrows a task listing. Zero values mean "no restriction",
// except the slices: a nil slice means unrestricted, an empty non-nil
// slice matches nothing.
type Filter struct {
	CompanyIDs []string
	TeamIDs    []string
	Status     Status
	AssigneeID string
}

// TaskRepository defines the persistence contract for tasks.
type TaskRepository interface {
	// Create persists a new task.
	Create(ctx context.Context, task *Task) error

	// FindByID retrieves a task by its unique ID.
	FindByID(ctx context.Context, id string) (*Task, error)

	// List retrieves tasks matching the filter, newest first, together
	// with the total match count for pagination metadata.
	List(ctx context.Context, filter Filter, params pagination.Params) ([]*Task, int, error)

	// Update persists changes to an existing task.
	Update(ctx context.Context, task *Task) error

	// Delete removes a task permanently.
	Delete(ctx context.Context, id string) error
}
