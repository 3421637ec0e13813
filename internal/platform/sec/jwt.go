// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives, identity reconstruction, and
// tenant scoping for the Corplan API.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, Token Signing, Role
// ordering) from the domain logic. It acts as an Infrastructure service
// injected into the Application layer via small interfaces.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside an identity token.
//
// # Why custom claims?
//
// By embedding the UserID, Role, and tenant identifiers directly inside the
// token, the authorization gate can reconstruct the caller's [Identity]
// WITHOUT querying the database on any request. The server holds no session
// state; the token is the complete proof of identity for its validity window.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID    string `json:"userId"`
	Role      string `json:"role"`
	CompanyID string `json:"companyId,omitempty"`
	TeamID    string `json:"teamId,omitempty"`
}

// ErrInvalidToken is the single external failure shape of [TokenService.Verify].
//
// Bad signature, malformed payload, unknown role, and expiry all collapse to
// this error so that callers (and probing clients) cannot distinguish
// "expired" from "forged". The underlying cause stays wrapped for logging.
var ErrInvalidToken = errors.New("sec: invalid token")

// TokenService issues and verifies signed, time-bounded identity tokens
// using HS256 over a single server-held secret.
//
// # Concurrency
//
// The service is stateless and safe for concurrent use: its only inputs are
// the immutable secret and the clock.
type TokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// TokenOption configures a [TokenService].
type TokenOption func(*TokenService)

// WithClock overrides the time source. Useful for expiry-boundary tests.
func WithClock(fn func() time.Time) TokenOption {
	return func(s *TokenService) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewTokenService creates a TokenService from the deployment signing secret.
//
// An empty secret is a misconfiguration and is rejected here so the failure
// surfaces at startup, never per-request.
func NewTokenService(secret, issuer string, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: signing secret must not be empty")
	}

	service := &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// Issue creates a signed token for the given identity.
//
// The payload is the deterministic encoding of
// {userId, role, companyId?, teamId?, issuedAt = now, expiresAt = now + ttl}.
func (service *TokenService) Issue(identity Identity, timeToLive time.Duration) (string, error) {
	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID:    identity.UserID,
		Role:      string(identity.Role),
		CompanyID: identity.CompanyID,
		TeamID:    identity.TeamID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks a token string and reconstructs the caller's [Identity].
//
// # Order of Checks
//
//  1. Signature integrity (reject without trusting the payload).
//  2. Expiry against the server clock, with no leeway window: verification at
//     exactly expiresAt or later fails.
//  3. Payload decoding, including the role whitelist.
//
// There is no partial validity: any failure yields [ErrInvalidToken].
func (service *TokenService) Verify(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
			}
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(service.now),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	role := Role(claims.Role)
	if !role.Valid() {
		return Identity{}, fmt.Errorf("%w: unknown role", ErrInvalidToken)
	}

	return Identity{
		UserID:    claims.UserID,
		Role:      role,
		CompanyID: claims.CompanyID,
		TeamID:    claims.TeamID,
	}, nil
}
