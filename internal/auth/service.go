// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/taibuivan/corplan/internal/platform/apperr"
	"github.com/taibuivan/corplan/internal/platform/constants"
	"github.com/taibuivan/corplan/internal/platform/sec"
	"github.com/taibuivan/corplan/pkg/uuidv7"
)

// TokenIssuer defines the contract for generating identity tokens.
type TokenIssuer interface {
	// Issue creates a signed token string encoding the given identity.
	Issue(identity sec.Identity, timeToLive time.Duration) (string, error)
}

// invalidCredentials is the single failure shape of credential verification.
//
// Unknown email and wrong password return this exact value so that neither
// the response body nor its timing reveals whether an account exists.
func invalidCredentials() *apperr.AppError {
	return apperr.Unauthorized("Invalid credentials")
}

// Service implements credential verification and account provisioning.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing or login
// logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	tokenIssuer    TokenIssuer
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(userRepo UserRepository, issuer TokenIssuer) *Service {
	return &Service{
		userRepository: userRepo,
		tokenIssuer:    issuer,
	}
}

// Authenticate verifies an email/password pair against the stored record.
//
// # Flow
//  1. Lookup the account by email.
//  2. On a lookup miss, burn a bcrypt comparison against the dummy digest so
//     the miss path costs the same as a mismatch path, then fail generically.
//  3. Verify the password hash; mismatch fails with the identical error.
//
// Token issuance is the caller's responsibility (see [Service.Login]).
func (service *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := service.userRepository.FindByEmail(ctx, email)
	if err != nil {
		if ae := apperr.As(err); ae != nil && ae.HTTPStatus == http.StatusNotFound {
			// Timing parity with the hash-mismatch path below.
			sec.BurnPasswordCheck(password)
			return nil, invalidCredentials()
		}
		// Transient store failure: surfaced as a generic 500, never retried here.
		return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, invalidCredentials()
	}

	return user, nil
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult represents a successfully established login.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Login validates user credentials and issues an identity token.
//
// The token is valid for [constants.AuthTokenTTL] (24 hours); there is no
// refresh protocol; clients re-authenticate after expiry.
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := service.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	token, err := service.tokenIssuer.Issue(user.Identity(), constants.AuthTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}

// CreateUserInput holds the data required to provision a new account.
type CreateUserInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        sec.Role
	CompanyID   string
	TeamID      string
}

// CreateUser provisions a new account within the actor's tenant.
//
// # Business Rules
//   - Emails must be unique.
//   - The actor may only grant roles it holds or outranks.
//   - Non-global accounts must belong to a company; only GLOBAL_ADMIN may
//     provision outside its own company.
func (service *Service) CreateUser(ctx context.Context, actor sec.Identity, input CreateUserInput) (*User, error) {
	// ── 1. Role & Tenant Rules ────────────────────────────────────────────

	if !input.Role.Valid() {
		return nil, apperr.ValidationError("Unknown role")
	}
	if !actor.Role.AtLeast(input.Role) {
		return nil, apperr.Forbidden("Insufficient permissions")
	}
	if input.Role != sec.RoleGlobalAdmin && input.CompanyID == "" {
		return nil, apperr.ValidationError("A company is required for this role")
	}
	if !actor.CanAccessCompany(input.CompanyID) && input.Role != sec.RoleGlobalAdmin {
		return nil, apperr.Forbidden("Insufficient permissions")
	}

	// ── 2. Uniqueness Check ───────────────────────────────────────────────

	// Verify email uniqueness. Return a client-safe Conflict error.
	if _, err := service.userRepository.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// ── 3. Security ───────────────────────────────────────────────────────

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during provisioning bursts.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 4. Entity Construction ────────────────────────────────────────────

	user := &User{
		ID:           uuidv7.New(), // Time-sortable ID to prevent PG index fragmentation.
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  input.DisplayName,
		Role:         input.Role,
	}
	if input.CompanyID != "" {
		user.CompanyID = &input.CompanyID
	}
	if input.TeamID != "" && input.Role.TeamScoped() {
		user.TeamID = &input.TeamID
	}

	// ── 5. Persistence ────────────────────────────────────────────────────

	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth_service_create_user_failed: %w", err)
	}

	return user, nil
}

// ListMembers returns all accounts of a company the actor may see.
func (service *Service) ListMembers(ctx context.Context, actor sec.Identity, companyID string) ([]*User, error) {
	if !actor.CanAccessCompany(companyID) {
		return nil, apperr.Forbidden("Insufficient permissions")
	}

	users, err := service.userRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_list_members_failed: %w", err)
	}

	return users, nil
}
