// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package task implements work-item management scoped to companies and teams.
//
// # Overview
//
// Tasks belong to exactly one team within a company. They move through a
// small fixed status lifecycle (todo -> in_progress -> done) and can
// optionally be assigned to a single account.
package task

import (
	"time"

	"github.com/taibuivan/corplan/internal/platform/sec"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// StatusValues returns the allowed status strings, for validation messages.
func StatusValues() []string {
	return []string{string(StatusTodo), string(StatusInProgress), string(StatusDone)}
}

// Task represents a single work item owned by a team.
type Task struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"companyId"`
	TeamID      string     `json:"teamId"`
	AssigneeID  *string    `json:"assigneeId,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// VisibleTo reports whether the caller's tenant scope covers this task.
//
// Company-level roles see every task in their company; team-scoped roles
// see only their own team's tasks.
func (t *Task) VisibleTo(identity sec.Identity) bool {
	return identity.CanAccessTeam(t.CompanyID, t.TeamID)
}
