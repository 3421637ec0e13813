// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/corplan/internal/auth"
	"github.com/taibuivan/corplan/internal/platform/apperr"
	"github.com/taibuivan/corplan/internal/platform/constants"
	"github.com/taibuivan/corplan/internal/platform/sec"
)

// memoryUserRepo is an in-memory UserRepository for service tests.
type memoryUserRepo struct {
	users    map[string]*auth.User // keyed by email
	failWith error                 // non-nil simulates a store outage
}

func newMemoryUserRepo(users ...*auth.User) *memoryUserRepo {
	repo := &memoryUserRepo{users: map[string]*auth.User{}}
	for _, user := range users {
		repo.users[user.Email] = user
	}
	return repo
}

func (m *memoryUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	user, ok := m.users[email]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	return user, nil
}

func (m *memoryUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (m *memoryUserRepo) Create(_ context.Context, user *auth.User) error {
	m.users[user.Email] = user
	return nil
}

func (m *memoryUserRepo) ListByCompany(_ context.Context, companyID string) ([]*auth.User, error) {
	result := []*auth.User{}
	for _, user := range m.users {
		if user.CompanyID != nil && *user.CompanyID == companyID {
			result = append(result, user)
		}
	}
	return result, nil
}

// fakeIssuer records the identity it was asked to sign.
type fakeIssuer struct {
	lastIdentity sec.Identity
	err          error
}

func (f *fakeIssuer) Issue(identity sec.Identity, _ time.Duration) (string, error) {
	f.lastIdentity = identity
	if f.err != nil {
		return "", f.err
	}
	return "signed-token", nil
}

// seedUser builds a stored account with a real bcrypt digest.
func seedUser(t *testing.T, email, password string, role sec.Role, companyID, teamID string) *auth.User {
	t.Helper()

	digest, err := sec.HashPassword(password)
	require.NoError(t, err)

	user := &auth.User{
		ID:           "user-" + email,
		Email:        email,
		PasswordHash: digest,
		DisplayName:  "Test User",
		Role:         role,
	}
	if companyID != "" {
		user.CompanyID = &companyID
	}
	if teamID != "" {
		user.TeamID = &teamID
	}
	return user
}

/*
TestAuthenticate_Success verifies the happy path returns the stored account.
*/
func TestAuthenticate_Success(t *testing.T) {
	stored := seedUser(t, "kai@corplan.app", "hunter2hunter2", sec.RoleMember, "c3", "t1")
	service := auth.NewService(newMemoryUserRepo(stored), &fakeIssuer{})

	user, err := service.Authenticate(context.Background(), "kai@corplan.app", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, user.ID)
}

/*
TestAuthenticate_UniformFailure is the account-enumeration guard: an unknown
email and a wrong password must fail with the exact same error value, so the
response body cannot reveal whether the account exists.
*/
func TestAuthenticate_UniformFailure(t *testing.T) {
	stored := seedUser(t, "kai@corplan.app", "hunter2hunter2", sec.RoleMember, "c3", "t1")
	service := auth.NewService(newMemoryUserRepo(stored), &fakeIssuer{})

	_, unknownEmailErr := service.Authenticate(context.Background(), "nobody@corplan.app", "hunter2hunter2")
	_, wrongPasswordErr := service.Authenticate(context.Background(), "kai@corplan.app", "wrong-password")

	require.Error(t, unknownEmailErr)
	require.Error(t, wrongPasswordErr)

	unknownAE := apperr.As(unknownEmailErr)
	wrongAE := apperr.As(wrongPasswordErr)
	require.NotNil(t, unknownAE)
	require.NotNil(t, wrongAE)

	assert.Equal(t, http.StatusUnauthorized, unknownAE.HTTPStatus)
	assert.Equal(t, *unknownAE, *wrongAE)
	assert.Equal(t, "Invalid credentials", unknownAE.Message)
}

/*
TestAuthenticate_StoreFault ensures a transient store failure does NOT
degrade into "Invalid credentials"; it must surface as an internal error.
*/
func TestAuthenticate_StoreFault(t *testing.T) {
	repo := newMemoryUserRepo()
	repo.failWith = errors.New("connection refused")
	service := auth.NewService(repo, &fakeIssuer{})

	_, err := service.Authenticate(context.Background(), "kai@corplan.app", "hunter2hunter2")
	require.Error(t, err)

	ae := apperr.As(err)
	if ae != nil {
		assert.NotEqual(t, http.StatusUnauthorized, ae.HTTPStatus)
	}
	assert.NotContains(t, err.Error(), "Invalid credentials")
}

/*
TestLogin_IssuesTokenForIdentity checks the token carries the account's
reconstructed identity including tenant facts.
*/
func TestLogin_IssuesTokenForIdentity(t *testing.T) {
	stored := seedUser(t, "kai@corplan.app", "hunter2hunter2", sec.RoleMember, "c3", "t1")
	issuer := &fakeIssuer{}
	service := auth.NewService(newMemoryUserRepo(stored), issuer)

	result, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "kai@corplan.app",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	assert.Equal(t, "signed-token", result.Token)
	assert.Equal(t, stored.ID, result.User.ID)
	assert.Equal(t, sec.Identity{
		UserID:    stored.ID,
		Role:      sec.RoleMember,
		CompanyID: "c3",
		TeamID:    "t1",
	}, issuer.lastIdentity)
}

/*
TestCreateUser_Rules covers role escalation, tenant boundary, and uniqueness.
*/
func TestCreateUser_Rules(t *testing.T) {
	companyAdmin := sec.Identity{UserID: "admin-1", Role: sec.RoleCompanyAdmin, CompanyID: "c1"}
	globalAdmin := sec.Identity{UserID: "root-1", Role: sec.RoleGlobalAdmin}

	validInput := func() auth.CreateUserInput {
		return auth.CreateUserInput{
			Email:       "new@corplan.app",
			Password:    "long-enough-pass",
			DisplayName: "New Member",
			Role:        sec.RoleMember,
			CompanyID:   "c1",
			TeamID:      "t1",
		}
	}

	t.Run("company_admin_provisions_member", func(t *testing.T) {
		service := auth.NewService(newMemoryUserRepo(), &fakeIssuer{})

		user, err := service.CreateUser(context.Background(), companyAdmin, validInput())
		require.NoError(t, err)

		assert.NotEmpty(t, user.ID)
		require.NotNil(t, user.CompanyID)
		assert.Equal(t, "c1", *user.CompanyID)
		require.NotNil(t, user.TeamID)
		assert.Equal(t, "t1", *user.TeamID)
		// Never store the plaintext.
		assert.NotEqual(t, "long-enough-pass", user.PasswordHash)
		assert.True(t, sec.CheckPasswordHash("long-enough-pass", user.PasswordHash))
	})

	t.Run("role_escalation_denied", func(t *testing.T) {
		service := auth.NewService(newMemoryUserRepo(), &fakeIssuer{})

		input := validInput()
		input.Role = sec.RoleGlobalAdmin
		input.CompanyID = ""

		_, err := service.CreateUser(context.Background(), companyAdmin, input)
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)
	})

	t.Run("foreign_company_denied", func(t *testing.T) {
		service := auth.NewService(newMemoryUserRepo(), &fakeIssuer{})

		input := validInput()
		input.CompanyID = "c2"

		_, err := service.CreateUser(context.Background(), companyAdmin, input)
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)
	})

	t.Run("global_admin_provisions_anywhere", func(t *testing.T) {
		service := auth.NewService(newMemoryUserRepo(), &fakeIssuer{})

		input := validInput()
		input.CompanyID = "c7"

		_, err := service.CreateUser(context.Background(), globalAdmin, input)
		assert.NoError(t, err)
	})

	t.Run("duplicate_email_conflicts", func(t *testing.T) {
		existing := seedUser(t, "new@corplan.app", "hunter2hunter2", sec.RoleMember, "c1", "t1")
		service := auth.NewService(newMemoryUserRepo(existing), &fakeIssuer{})

		_, err := service.CreateUser(context.Background(), companyAdmin, validInput())
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
	})

	t.Run("non_global_role_requires_company", func(t *testing.T) {
		service := auth.NewService(newMemoryUserRepo(), &fakeIssuer{})

		input := validInput()
		input.CompanyID = ""

		_, err := service.CreateUser(context.Background(), globalAdmin, input)
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
	})
}

/*
TestListMembers_TenantBoundary denies cross-company member listings.
*/
func TestListMembers_TenantBoundary(t *testing.T) {
	member := seedUser(t, "kai@corplan.app", "hunter2hunter2", sec.RoleMember, "c1", "t1")
	service := auth.NewService(newMemoryUserRepo(member), &fakeIssuer{})

	companyAdmin := sec.Identity{UserID: "admin-1", Role: sec.RoleCompanyAdmin, CompanyID: "c1"}

	users, err := service.ListMembers(context.Background(), companyAdmin, "c1")
	require.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = service.ListMembers(context.Background(), companyAdmin, "c2")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)

	globalAdmin := sec.Identity{UserID: "root-1", Role: sec.RoleGlobalAdmin}
	_, err = service.ListMembers(context.Background(), globalAdmin, "c2")
	assert.NoError(t, err)
}

// Guard against accidental TTL changes: tokens live exactly 24 hours.
func TestTokenTTLConstant(t *testing.T) {
	assert.Equal(t, 24*time.Hour, constants.AuthTokenTTL)
}
