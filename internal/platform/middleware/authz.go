// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/corplan/internal/platform/apperr"
	"github.com/taibuivan/corplan/internal/platform/ctxkey"
	"github.com/taibuivan/corplan/internal/platform/ctxutil"
	"github.com/taibuivan/corplan/internal/platform/respond"
	"github.com/taibuivan/corplan/internal/platform/sec"
)

// Client-safe denial messages.
//
// Role-based and tenant-based denials are byte-identical so the response does
// not reveal which tenant a resource belongs to. Likewise forged, malformed,
// and expired tokens all yield msgInvalidToken.
const (
	msgInvalidToken = "Invalid or expired token"
	msgAuthRequired = "Authentication required"
	msgForbidden    = "Insufficient permissions"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing us to easily inject stubs during unit testing.
type TokenVerifier interface {
	Verify(tokenString string) (sec.Identity, error)
}

// Authenticate extracts and verifies the bearer token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, verify the token via [TokenVerifier]. Any failure (bad
//     signature, malformed payload, expired) aborts with one uniform 401;
//     the internal cause is logged but never surfaced.
//  4. Inject the reconstructed [*sec.Identity] into the request context.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized(msgInvalidToken))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			identity, err := verifier.Verify(parts[1])
			if err != nil {
				// The log keeps the real cause; the response never does.
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(),
					"token_rejected", slog.String("cause", err.Error()))
				respond.Error(writer, request, apperr.Unauthorized(msgInvalidToken))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := context.WithValue(request.Context(), ctxkey.KeyIdentity, &identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetIdentity(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized(msgAuthRequired))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests whose identity does not hold the required role
// or outrank it in the privilege order.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically
// implies [RequireAuth] so you don't need to mount both.
func RequireRole(role sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetIdentity(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if identity == nil {
				respond.Error(writer, request, apperr.Unauthorized(msgAuthRequired))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !identity.Role.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden(msgForbidden))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireCompany blocks requests targeting a company outside the identity's
// tenant. The target company is read from the named chi URL parameter.
//
// GLOBAL_ADMIN bypasses the check entirely. The denial is identical in shape
// to a role denial.
func RequireCompany(urlParam string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetIdentity(request.Context())
			if identity == nil {
				respond.Error(writer, request, apperr.Unauthorized(msgAuthRequired))
				return
			}

			companyID := chi.URLParam(request, urlParam)
			if !identity.CanAccessCompany(companyID) {
				respond.Error(writer, request, apperr.Forbidden(msgForbidden))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// ErrForbidden is the shared tenant/role denial for handler-level checks,
// matching the middleware denials byte for byte.
func ErrForbidden() *apperr.AppError {
	return apperr.Forbidden(msgForbidden)
}
