// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// Role represents the authorization level granted to an account.
//
// Roles form a total order of privilege: a higher role implicitly satisfies
// checks requiring a lower one. Tenant-membership checks are separate and
// additive (see [Identity.CanAccessCompany]).
type Role string

const (
	// Unrestricted access across every company and team
	RoleGlobalAdmin Role = "GLOBAL_ADMIN"

	// Manages one company: its teams, members, and records
	RoleCompanyAdmin Role = "COMPANY_ADMIN"

	// Leads one team within a company: assigns and reviews tasks
	RoleTeamLead Role = "TEAM_LEAD"

	// Default role for standard workforce members
	RoleMember Role = "MEMBER"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// Valid reports whether r is one of the known roles.
//
// Tokens carrying an unknown role string must be rejected, so verification
// funnels through this check.
func (r Role) Valid() bool {
	return r.level() > 0
}

// TeamScoped reports whether the role's tenant scope narrows to a single team.
// Company-level and global roles see every team of their reachable companies.
func (r Role) TeamScoped() bool {
	return r == RoleTeamLead || r == RoleMember
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleGlobalAdmin:
		return 40
	case RoleCompanyAdmin:
		return 30
	case RoleTeamLead:
		return 20
	case RoleMember:
		return 10
	default:
		return 0
	}
}
