// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Identity is the authenticated caller's reconstructed role and tenant facts
// for a single request.
//
// # Lifecycle
//
// An Identity is built fresh on every request from a verified token and is
// never persisted or mutated. The token payload is the single source of truth
// for the request's lifetime: a role or company change only takes effect when
// the user re-authenticates. This statelessness is deliberate — do not add a
// storage re-check here without revisiting the concurrency model.
type Identity struct {
	// UserID is the account's unique identifier.
	UserID string `json:"userId"`

	// Role is the account's privilege level.
	Role Role `json:"role"`

	// CompanyID is the owning company. Empty for GLOBAL_ADMIN.
	CompanyID string `json:"companyId,omitempty"`

	// TeamID is the owning team. Empty for company-level and global roles.
	TeamID string `json:"teamId,omitempty"`
}

// # Tenant Access Rules

// CanAccessCompany reports whether the identity may act on the given company.
//
// GLOBAL_ADMIN bypasses tenant scoping entirely; every other role requires an
// exact company match.
func (id Identity) CanAccessCompany(companyID string) bool {
	if id.Role == RoleGlobalAdmin {
		return true
	}
	return id.CompanyID != "" && id.CompanyID == companyID
}

// CanAccessTeam reports whether the identity may act on the given team of the
// given company.
//
// Company-level roles reach every team of their company; team-scoped roles
// additionally require an exact team match.
func (id Identity) CanAccessTeam(companyID, teamID string) bool {
	if !id.CanAccessCompany(companyID) {
		return false
	}
	if id.Role == RoleGlobalAdmin || !id.Role.TeamScoped() {
		return true
	}
	return id.TeamID != "" && id.TeamID == teamID
}
