// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/corplan/internal/platform/constants"
	"github.com/taibuivan/corplan/internal/platform/middleware"
	requestutil "github.com/taibuivan/corplan/internal/platform/request"
	"github.com/taibuivan/corplan/internal/platform/respond"
	"github.com/taibuivan/corplan/internal/platform/sec"
	"github.com/taibuivan/corplan/internal/platform/validate"
)

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the login entry point, the caller's own identity
// projection, and admin-gated account provisioning. It contains NO business
// logic or database queries.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /login : Authenticates and returns a token.
//   - GET  /me    : Returns the caller's reconstructed identity.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.With(middleware.RequireAuth).Get("/me", handler.me)

	return router
}

// UserRoutes returns a [chi.Router] for admin-gated account management.
//
// # Endpoints
//   - POST /      : Provisions a new account (COMPANY_ADMIN or above).
//   - GET  /company/{companyID} : Lists a company's accounts.
func (handler *Handler) UserRoutes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.RequireRole(sec.RoleCompanyAdmin)).Post("/", handler.createUser)
	router.With(
		middleware.RequireRole(sec.RoleCompanyAdmin),
		middleware.RequireCompany("companyID"),
	).Get("/company/{companyID}", handler.listMembers)

	return router
}

// loginRequest represents the JSON payload expected for authentication.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login handles POST /api/v1/auth/login requests.
//
// # Returns
//   - Writes HTTP 200 OK on success with the token and user projection.
//   - Writes HTTP 401 Unauthorized for bad credentials, with one uniform
//     message — "no such user" and "bad password" are indistinguishable.
//   - Writes HTTP 500 with a generic message on unexpected internal faults.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	if input.Email == "" || input.Password == "" {
		respond.Error(writer, request, validate.RequiredError("email/password", "are required"))
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})

	if err != nil {
		// Maps to HTTP 401 without leaking the reason (wrong pass vs unknown email).
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.OK(writer, result)
}

// me handles GET /api/v1/auth/me requests.
//
// It echoes the identity reconstructed from the verified token — no storage
// lookup happens, by design.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, identity)
}

// createUserRequest represents the JSON payload for account provisioning.
type createUserRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	CompanyID   string `json:"companyId"`
	TeamID      string `json:"teamId"`
}

// createUser handles POST /api/v1/users requests.
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input createUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	validator := &validate.Validator{}
	if err := validator.
		Required("email", input.Email).
		Email("email", input.Email).
		MinLen("password", input.Password, constants.MinPasswordLength).
		Required("displayName", input.DisplayName).
		Required("role", input.Role).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	user, err := handler.authService.CreateUser(request.Context(), *actor, CreateUserInput{
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.DisplayName,
		Role:        sec.Role(input.Role),
		CompanyID:   input.CompanyID,
		TeamID:      input.TeamID,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.Created(writer, user)
}

// listMembers handles GET /api/v1/users/company/{companyID} requests.
func (handler *Handler) listMembers(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	users, err := handler.authService.ListMembers(request.Context(), *actor, requestutil.Param(request, "companyID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, users)
}
