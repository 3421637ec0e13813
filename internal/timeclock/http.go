// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package timeclock

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/corplan/internal/platform/middleware"
	requestutil "github.com/taibuivan/corplan/internal/platform/request"
	"github.com/taibuivan/corplan/internal/platform/respond"
	"github.com/taibuivan/corplan/internal/platform/validate"
)

// Handler implements the timeclock HTTP endpoints.
type Handler struct {
	clockService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{clockService: service}
}

// Routes returns a [chi.Router] configured with timeclock routes.
//
// # Endpoints
//   - POST /in       : Opens a shift for the caller.
//   - POST /out      : Closes the caller's open shift.
//   - GET  /status   : Reports whether the caller is clocked in.
//   - GET  /summary  : Per-day worked hours for a week (?date=YYYY-MM-DD).
//
// All operations act on the caller's own account only.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/in", handler.clockIn)
	router.Post("/out", handler.clockOut)
	router.Get("/status", handler.status)
	router.Get("/summary", handler.summary)

	return router
}

// clockIn handles POST /api/v1/clock/in requests.
func (handler *Handler) clockIn(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.clockService.ClockIn(request.Context(), *actor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

// clockOut handles POST /api/v1/clock/out requests.
func (handler *Handler) clockOut(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.clockService.ClockOut(request.Context(), *actor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

// status handles GET /api/v1/clock/status requests.
func (handler *Handler) status(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	clockStatus, err := handler.clockService.Status(request.Context(), *actor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, clockStatus)
}

// summary handles GET /api/v1/clock/summary requests.
//
// The optional "date" query parameter anchors the week; it defaults to today.
func (handler *Handler) summary(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	anchor := time.Now()
	if raw := request.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			respond.Error(writer, request, validate.RequiredError("date", "Must be a date in YYYY-MM-DD format"))
			return
		}
		anchor = parsed
	}

	weekSummary, err := handler.clockService.WeeklySummary(request.Context(), *actor, anchor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, weekSummary)
}
