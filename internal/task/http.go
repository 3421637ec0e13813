// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/corplan/internal/platform/middleware"
	requestutil "github.com/taibuivan/corplan/internal/platform/request"
	"github.com/taibuivan/corplan/internal/platform/respond"
	"github.com/taibuivan/corplan/internal/platform/sec"
	"github.com/taibuivan/corplan/internal/platform/validate"
	"github.com/taibuivan/corplan/pkg/pagination"
)

// Handler implements the task management HTTP endpoints.
type Handler struct {
	taskService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{taskService: service}
}

// Routes returns a [chi.Router] configured with task-specific routes.
//
// # Endpoints
//   - POST   /                     : Creates a task (TEAM_LEAD+).
//   - GET    /                     : Lists tasks within the caller's scope.
//   - GET    /{taskID}             : Returns one task.
//   - PATCH  /{taskID}             : Edits a task's fields (TEAM_LEAD+).
//   - PATCH  /{taskID}/status      : Moves a task through its lifecycle.
//   - PATCH  /{taskID}/assignee    : Sets or clears the assignee (TEAM_LEAD+).
//   - DELETE /{taskID}             : Deletes a task (TEAM_LEAD+).
//
// All routes require authentication. Role gates shown above are enforced
// here; tenant boundaries are enforced again in the service layer.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.With(middleware.RequireRole(sec.RoleTeamLead)).Post("/", handler.createTask)
	router.Get("/", handler.listTasks)

	router.Route("/{taskID}", func(item chi.Router) {
		item.Get("/", handler.getTask)
		item.Patch("/status", handler.updateStatus)

		item.With(middleware.RequireRole(sec.RoleTeamLead)).Patch("/", handler.updateTask)
		item.With(middleware.RequireRole(sec.RoleTeamLead)).Patch("/assignee", handler.assignTask)
		item.With(middleware.RequireRole(sec.RoleTeamLead)).Delete("/", handler.deleteTask)
	})

	return router
}

// createTaskRequest represents the JSON payload for task creation.
type createTaskRequest struct {
	CompanyID   string     `json:"companyId"`
	TeamID      string     `json:"teamId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssigneeID  *string    `json:"assigneeId"`
	DueDate     *time.Time `json:"dueDate"`
}

// createTask handles POST /api/v1/tasks requests.
func (handler *Handler) createTask(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createTaskRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.
		Required("companyId", input.CompanyID).
		Required("teamId", input.TeamID).
		Required("title", input.Title).
		MaxLen("title", input.Title, 200).
		MaxLen("description", input.Description, 5000).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.taskService.Create(request.Context(), *actor, CreateTaskInput{
		CompanyID:   input.CompanyID,
		TeamID:      input.TeamID,
		Title:       input.Title,
		Description: input.Description,
		AssigneeID:  input.AssigneeID,
		DueDate:     input.DueDate,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, task)
}

// listTasks handles GET /api/v1/tasks requests.
//
// Query parameters: teamId, status, assigneeId, page, limit.
func (handler *Handler) listTasks(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := request.URL.Query()
	input := ListInput{
		TeamID:     query.Get("teamId"),
		Status:     Status(query.Get("status")),
		AssigneeID: query.Get("assigneeId"),
	}
	params := pagination.FromRequest(request)

	tasks, meta, err := handler.taskService.List(request.Context(), *actor, input, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tasks, meta)
}

// getTask handles GET /api/v1/tasks/{taskID} requests.
func (handler *Handler) getTask(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.taskService.Get(request.Context(), *actor, requestutil.Param(request, "taskID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, task)
}

// updateTaskRequest represents the JSON payload for editing a task.
type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	ClearDue    bool       `json:"clearDueDate"`
}

// updateTask handles PATCH /api/v1/tasks/{taskID} requests.
func (handler *Handler) updateTask(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateTaskRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required("title", *input.Title).MaxLen("title", *input.Title, 200)
	}
	if input.Description != nil {
		validator.MaxLen("description", *input.Description, 5000)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.taskService.Update(request.Context(), *actor, requestutil.Param(request, "taskID"), UpdateTaskInput{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		ClearDue:    input.ClearDue,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, task)
}

// updateStatusRequest represents the JSON payload for a status change.
type updateStatusRequest struct {
	Status string `json:"status"`
}

// updateStatus handles PATCH /api/v1/tasks/{taskID}/status requests.
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateStatusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.taskService.UpdateStatus(request.Context(), *actor, requestutil.Param(request, "taskID"), Status(input.Status))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, task)
}

// assignTaskRequest represents the JSON payload for an assignee change.
// A null assigneeId clears the assignment.
type assignTaskRequest struct {
	AssigneeID *string `json:"assigneeId"`
}

// assignTask handles PATCH /api/v1/tasks/{taskID}/assignee requests.
func (handler *Handler) assignTask(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input assignTaskRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.taskService.Assign(request.Context(), *actor, requestutil.Param(request, "taskID"), input.AssigneeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, task)
}

// deleteTask handles DELETE /api/v1/tasks/{taskID} requests.
func (handler *Handler) deleteTask(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.taskService.Delete(request.Context(), *actor, requestutil.Param(request, "taskID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
