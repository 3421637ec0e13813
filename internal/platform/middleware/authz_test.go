// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/corplan/internal/platform/ctxutil"
	"github.com/taibuivan/corplan/internal/platform/middleware"
	"github.com/taibuivan/corplan/internal/platform/sec"
)

// stubVerifier returns a canned identity or error without real crypto.
type stubVerifier struct {
	identity sec.Identity
	err      error
}

func (s *stubVerifier) Verify(string) (sec.Identity, error) {
	return s.identity, s.err
}

// okHandler records that the request got through the gates.
func okHandler(writer http.ResponseWriter, request *http.Request) {
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write([]byte("through"))
}

/*
TestAuthenticate_AnonymousPassThrough lets requests without an Authorization
header continue unauthenticated. Blocking is a per-route concern.
*/
func TestAuthenticate_AnonymousPassThrough(t *testing.T) {
	var sawIdentity *sec.Identity
	inner := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		sawIdentity = ctxutil.GetIdentity(request.Context())
		writer.WriteHeader(http.StatusOK)
	})

	handler := middleware.Authenticate(&stubVerifier{})(inner)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, sawIdentity)
}

/*
TestAuthenticate_RejectsUniformly checks that a malformed header, a forged
token, and an expired token all produce the same 401 body.
*/
func TestAuthenticate_RejectsUniformly(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		verifier middleware.TokenVerifier
	}{
		{"missing_bearer_prefix", "token abc.def.ghi", &stubVerifier{}},
		{"too_many_parts", "Bearer abc def", &stubVerifier{}},
		{"verifier_signature_error", "Bearer forged", &stubVerifier{err: errors.New("signature mismatch")}},
		{"verifier_expiry_error", "Bearer expired", &stubVerifier{err: errors.New("token is expired")}},
	}

	bodies := map[string]struct{}{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.Authenticate(tt.verifier)(http.HandlerFunc(okHandler))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set("Authorization", tt.header)

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Contains(t, recorder.Body.String(), "Invalid or expired token")
			bodies[recorder.Body.String()] = struct{}{}
		})
	}

	// Every rejection must be byte-identical.
	assert.Len(t, bodies, 1)
}

/*
TestAuthenticate_InjectsIdentity verifies a valid token yields a populated
identity for downstream handlers.
*/
func TestAuthenticate_InjectsIdentity(t *testing.T) {
	identity := sec.Identity{UserID: "u1", Role: sec.RoleMember, CompanyID: "c3", TeamID: "t1"}

	var sawIdentity *sec.Identity
	inner := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		sawIdentity = ctxutil.GetIdentity(request.Context())
		writer.WriteHeader(http.StatusOK)
	})

	handler := middleware.Authenticate(&stubVerifier{identity: identity})(inner)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer some.valid.token")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, sawIdentity)
	assert.Equal(t, identity, *sawIdentity)
}

// serveAs runs a request through Authenticate + the given route middleware,
// authenticated as the provided identity (or anonymous when nil).
func serveAs(t *testing.T, identity *sec.Identity, target string, route func(chi.Router)) *httptest.ResponseRecorder {
	t.Helper()

	router := chi.NewRouter()
	verifier := &stubVerifier{err: errors.New("anonymous")}
	if identity != nil {
		verifier = &stubVerifier{identity: *identity}
	}
	router.Use(middleware.Authenticate(verifier))
	route(router)

	request := httptest.NewRequest(http.MethodGet, target, nil)
	if identity != nil {
		request.Header.Set("Authorization", "Bearer stub")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestRequireAuth blocks anonymous requests and admits authenticated ones.
*/
func TestRequireAuth(t *testing.T) {
	route := func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/private", okHandler)
	}

	anonymous := serveAs(t, nil, "/private", route)
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	member := sec.Identity{UserID: "u1", Role: sec.RoleMember, CompanyID: "c1", TeamID: "t1"}
	authed := serveAs(t, &member, "/private", route)
	assert.Equal(t, http.StatusOK, authed.Code)
}

/*
TestRequireRole admits callers at or above the required role and rejects the
rest with 403.
*/
func TestRequireRole(t *testing.T) {
	route := func(r chi.Router) {
		r.With(middleware.RequireRole(sec.RoleCompanyAdmin)).Get("/admin", okHandler)
	}

	tests := []struct {
		name string
		role sec.Role
		want int
	}{
		{"member_denied", sec.RoleMember, http.StatusForbidden},
		{"team_lead_denied", sec.RoleTeamLead, http.StatusForbidden},
		{"company_admin_admitted", sec.RoleCompanyAdmin, http.StatusOK},
		{"global_admin_admitted", sec.RoleGlobalAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := sec.Identity{UserID: "u1", Role: tt.role, CompanyID: "c1"}
			recorder := serveAs(t, &identity, "/admin", route)
			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}

/*
TestRequireCompany enforces the tenant boundary from the URL parameter, with
the GLOBAL_ADMIN bypass.
*/
func TestRequireCompany(t *testing.T) {
	route := func(r chi.Router) {
		r.With(middleware.RequireCompany("companyID")).Get("/companies/{companyID}", okHandler)
	}

	tests := []struct {
		name     string
		identity sec.Identity
		target   string
		want     int
	}{
		{
			"member_own_company",
			sec.Identity{UserID: "u1", Role: sec.RoleMember, CompanyID: "c3", TeamID: "t1"},
			"/companies/c3",
			http.StatusOK,
		},
		{
			"member_foreign_company",
			sec.Identity{UserID: "u1", Role: sec.RoleMember, CompanyID: "c3", TeamID: "t1"},
			"/companies/c4",
			http.StatusForbidden,
		},
		{
			"company_admin_foreign_company",
			sec.Identity{UserID: "u2", Role: sec.RoleCompanyAdmin, CompanyID: "c3"},
			"/companies/c4",
			http.StatusForbidden,
		},
		{
			"global_admin_any_company",
			sec.Identity{UserID: "u3", Role: sec.RoleGlobalAdmin},
			"/companies/c4",
			http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serveAs(t, &tt.identity, tt.target, route)
			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}

/*
TestDenialShapesAreIdentical checks that a role denial and a tenant denial
return byte-identical bodies, so a caller cannot tell which rule tripped.
*/
func TestDenialShapesAreIdentical(t *testing.T) {
	member := sec.Identity{UserID: "u1", Role: sec.RoleMember, CompanyID: "c3", TeamID: "t1"}

	roleDenied := serveAs(t, &member, "/admin", func(r chi.Router) {
		r.With(middleware.RequireRole(sec.RoleGlobalAdmin)).Get("/admin", okHandler)
	})
	tenantDenied := serveAs(t, &member, "/companies/c4", func(r chi.Router) {
		r.With(middleware.RequireCompany("companyID")).Get("/companies/{companyID}", okHandler)
	})

	require.Equal(t, http.StatusForbidden, roleDenied.Code)
	require.Equal(t, http.StatusForbidden, tenantDenied.Code)
	assert.Equal(t, roleDenied.Body.String(), tenantDenied.Body.String())
}
