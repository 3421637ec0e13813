// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"time"

	"github.com/taibuivan/corplan/internal/auth"
	"github.com/taibuivan/corplan/internal/platform/apperr"
	"github.com/taibuivan/corplan/internal/platform/sec"
	"github.com/taibuivan/corplan/pkg/pagination"
	"github.com/taibuivan/corplan/pkg/uuidv7"
)

// AccountFinder resolves account IDs for assignee validation.
type AccountFinder interface {
	FindByID(ctx context.Context, id string) (*auth.User, error)
}

// Service implements the business logic for task management.
//
// # Authorization
//
// Every operation takes the acting caller's identity and enforces the
// tenant boundary itself: a valid role alone is never enough, the task's
// company (and, for team-scoped roles, its team) must also be reachable.
// Role denials and tenant denials are indistinguishable to the client.
type Service struct {
	taskRepo    TaskRepository
	accountRepo AccountFinder
}

// NewService creates a new task service with its dependencies.
func NewService(taskRepo TaskRepository, accountRepo AccountFinder) *Service {
	return &Service{taskRepo: taskRepo, accountRepo: accountRepo}
}

// errForbidden mirrors the middleware's denial shape so that role-gate
// rejections and service-level tenant rejections look the same.
func errForbidden() error {
	return apperr.Forbidden("Insufficient permissions")
}

// CreateTaskInput carries validated task creation parameters.
type CreateTaskInput struct {
	CompanyID   string
	TeamID      string
	Title       string
	Description string
	AssigneeID  *string
	DueDate     *time.Time
}

// Create creates a new task in the given team.
//
// # Rules
//   - The actor must reach the target company, and team-scoped actors
//     (TEAM_LEAD) must stay inside their own team.
//   - A provided assignee must belong to the same company.
func (service *Service) Create(ctx context.Context, actor sec.Identity, input CreateTaskInput) (*Task, error) {
	// ── 1. Tenant Boundary ────────────────────────────────────────────
	if !actor.CanAccessTeam(input.CompanyID, input.TeamID) {
		return nil, errForbidden()
	}

	// ── 2. Assignee Validation ────────────────────────────────────────
	if input.AssigneeID != nil {
		if err := service.checkAssignee(ctx, *input.AssigneeID, input.CompanyID); err != nil {
			return nil, err
		}
	}

	// ── 3. Persistence ────────────────────────────────────────────────
	task := &Task{
		ID:          uuidv7.New(),
		CompanyID:   input.CompanyID,
		TeamID:      input.TeamID,
		AssigneeID:  input.AssigneeID,
		Title:       input.Title,
		Description: input.Description,
		Status:      StatusTodo,
		DueDate:     input.DueDate,
	}

	if err := service.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// ListInput carries optional task listing filters.
type ListInput struct {
	TeamID     string
	Status     Status
	AssigneeID string
}

// List retrieves tasks visible to the actor, newest first.
//
// The repository filter is intersected with the actor's tenant scope
// before it ever reaches the database, so an out-of-scope team filter
// yields an empty page, not an error.
func (service *Service) List(ctx context.Context, actor sec.Identity, input ListInput, params pagination.Params) ([]*Task, pagination.Meta, error) {
	if input.Status != "" && !input.Status.Valid() {
		return nil, pagination.Meta{}, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "status",
			Message: "Must be one of: todo, in_progress, done",
		})
	}

	scope := sec.ScopeFor(actor)

	filter := Filter{
		Status:     input.Status,
		AssigneeID: input.AssigneeID,
	}

	if !scope.All {
		filter.CompanyIDs = scope.CompanyIDs
	}
	if actor.Role.TeamScoped() {
		filter.TeamIDs = scope.TeamIDs
	}

	// An explicit team filter narrows further, but never widens the scope:
	// the company filter stays in place, so a foreign team ID simply
	// intersects to an empty page.
	if input.TeamID != "" {
		if actor.Role.TeamScoped() && input.TeamID != actor.TeamID {
			filter.TeamIDs = []string{}
		} else {
			filter.TeamIDs = []string{input.TeamID}
		}
	}

	tasks, total, err := service.taskRepo.List(ctx, filter, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return tasks, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// Get retrieves a single task the actor is allowed to see.
func (service *Service) Get(ctx context.Context, actor sec.Identity, id string) (*Task, error) {
	task, err := service.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !task.VisibleTo(actor) {
		return nil, errForbidden()
	}

	return task, nil
}

// UpdateTaskInput carries the editable fields of a task. Nil pointers
// leave the corresponding field unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	ClearDue    bool
}

// Update edits a task's descriptive fields.
//
// Only TEAM_LEAD and above may edit tasks.
func (service *Service) Update(ctx context.Context, actor sec.Identity, id string, input UpdateTaskInput) (*Task, error) {
	if !actor.Role.AtLeast(sec.RoleTeamLead) {
		return nil, errForbidden()
	}

	task, err := service.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.ClearDue {
		task.DueDate = nil
	}

	if err := service.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateStatus moves a task through its lifecycle.
//
// # Rules
//
// Leads and above may move any task they can see. A MEMBER may only move
// tasks assigned to them.
func (service *Service) UpdateStatus(ctx context.Context, actor sec.Identity, id string, status Status) (*Task, error) {
	if !status.Valid() {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "status",
			Message: "Must be one of: todo, in_progress, done",
		})
	}

	task, err := service.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if !actor.Role.AtLeast(sec.RoleTeamLead) {
		if task.AssigneeID == nil || *task.AssigneeID != actor.UserID {
			return nil, errForbidden()
		}
	}

	task.Status = status
	if err := service.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Assign sets or clears a task's assignee. Leads and above only.
func (service *Service) Assign(ctx context.Context, actor sec.Identity, id string, assigneeID *string) (*Task, error) {
	if !actor.Role.AtLeast(sec.RoleTeamLead) {
		return nil, errForbidden()
	}

	task, err := service.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if assigneeID != nil {
		if err := service.checkAssignee(ctx, *assigneeID, task.CompanyID); err != nil {
			return nil, err
		}
	}

	task.AssigneeID = assigneeID
	if err := service.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Delete removes a task permanently. Leads and above only.
func (service *Service) Delete(ctx context.Context, actor sec.Identity, id string) error {
	if !actor.Role.AtLeast(sec.RoleTeamLead) {
		return errForbidden()
	}

	if _, err := service.Get(ctx, actor, id); err != nil {
		return err
	}

	return service.taskRepo.Delete(ctx, id)
}

// checkAssignee verifies the assignee exists and belongs to the task's company.
func (service *Service) checkAssignee(ctx context.Context, assigneeID, companyID string) error {
	account, err := service.accountRepo.FindByID(ctx, assigneeID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   "assigneeId",
				Message: "Assignee does not exist",
			})
		}
		return err
	}

	if account.CompanyID == nil || *account.CompanyID != companyID {
		return apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "assigneeId",
			Message: "Assignee must belong to the task's company",
		})
	}

	return nil
}
