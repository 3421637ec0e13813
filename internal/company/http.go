// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package company

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/corplan/internal/platform/middleware"
	requestutil "github.com/taibuivan/corplan/internal/platform/request"
	"github.com/taibuivan/corplan/internal/platform/respond"
	"github.com/taibuivan/corplan/internal/platform/sec"
	"github.com/taibuivan/corplan/internal/platform/validate"
)

// Handler implements company and team HTTP endpoints.
type Handler struct {
	companyService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{companyService: service}
}

// Routes returns a [chi.Router] configured with company-specific routes.
//
// # Endpoints
//   - POST /                        : Creates a company (GLOBAL_ADMIN only).
//   - GET  /                        : Lists companies within the caller's scope.
//   - GET  /{companyID}             : Returns one company (tenant-gated).
//   - POST /{companyID}/teams       : Creates a team (COMPANY_ADMIN of that company).
//   - GET  /{companyID}/teams       : Lists a company's teams (tenant-gated).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.RequireRole(sec.RoleGlobalAdmin)).Post("/", handler.createCompany)
	router.With(middleware.RequireAuth).Get("/", handler.listCompanies)

	router.Route("/{companyID}", func(scoped chi.Router) {
		scoped.Use(middleware.RequireCompany("companyID"))

		scoped.Get("/", handler.getCompany)
		scoped.With(middleware.RequireRole(sec.RoleCompanyAdmin)).Post("/teams", handler.createTeam)
		scoped.Get("/teams", handler.listTeams)
	})

	return router
}

// createCompanyRequest represents the JSON payload for company creation.
type createCompanyRequest struct {
	Name string `json:"name"`
}

// createCompany handles POST /api/v1/companies requests.
func (handler *Handler) createCompany(writer http.ResponseWriter, request *http.Request) {
	var input createCompanyRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.
		Required("name", input.Name).
		MaxLen("name", input.Name, 120).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	company, err := handler.companyService.CreateCompany(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, company)
}

// listCompanies handles GET /api/v1/companies requests.
//
// The listing is intersected with the caller's tenant scope: GLOBAL_ADMIN
// sees everything, everyone else sees exactly their own company.
func (handler *Handler) listCompanies(writer http.ResponseWriter, request *http.Request) {
	scope, err := requestutil.Scope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	companies, err := handler.companyService.ListCompanies(request.Context(), scope)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, companies)
}

// getCompany handles GET /api/v1/companies/{companyID} requests.
func (handler *Handler) getCompany(writer http.ResponseWriter, request *http.Request) {
	company, err := handler.companyService.GetCompany(request.Context(), requestutil.Param(request, "companyID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, company)
}

// createTeamRequest represents the JSON payload for team creation.
type createTeamRequest struct {
	Name string `json:"name"`
}

// createTeam handles POST /api/v1/companies/{companyID}/teams requests.
func (handler *Handler) createTeam(writer http.ResponseWriter, request *http.Request) {
	var input createTeamRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.
		Required("name", input.Name).
		MaxLen("name", input.Name, 120).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	team, err := handler.companyService.CreateTeam(request.Context(), requestutil.Param(request, "companyID"), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, team)
}

// listTeams handles GET /api/v1/companies/{companyID}/teams requests.
func (handler *Handler) listTeams(writer http.ResponseWriter, request *http.Request) {
	teams, err := handler.companyService.ListTeams(request.Context(), requestutil.Param(request, "companyID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, teams)
}
