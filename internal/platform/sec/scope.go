// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// TenantScope is the derived set of tenant identifiers an [Identity] may act
// upon. Record-listing handlers intersect it with their own storage filters.
//
// # Lifecycle
//
// A scope is a pure function of the Identity, recomputed on every request and
// never cached across requests. It performs no storage lookups.
type TenantScope struct {
	// All is the unrestricted sentinel: list-type operations skip tenant
	// filtering entirely when it is set. Only GLOBAL_ADMIN receives it.
	All bool

	// CompanyIDs are the companies the identity may read. Empty when All is set.
	CompanyIDs []string

	// TeamIDs narrows visibility to specific teams. Empty for company-level
	// roles, which see every team of their companies.
	TeamIDs []string
}

// ScopeFor computes the tenant scope for an identity.
//
//   - GLOBAL_ADMIN       → unrestricted (All sentinel).
//   - COMPANY_ADMIN      → own company, all of its teams.
//   - TEAM_LEAD / MEMBER → own company, own team only.
func ScopeFor(identity Identity) TenantScope {
	if identity.Role == RoleGlobalAdmin {
		return TenantScope{All: true}
	}

	scope := TenantScope{}
	if identity.CompanyID != "" {
		scope.CompanyIDs = []string{identity.CompanyID}
	}
	if identity.Role.TeamScoped() && identity.TeamID != "" {
		scope.TeamIDs = []string{identity.TeamID}
	}
	return scope
}

// AllowsCompany reports whether the scope includes the given company.
func (s TenantScope) AllowsCompany(companyID string) bool {
	if s.All {
		return true
	}
	for _, id := range s.CompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}

// AllowsTeam reports whether the scope includes the given team.
//
// An empty TeamIDs slice means "every team of the scoped companies", so the
// check falls back to company membership.
func (s TenantScope) AllowsTeam(companyID, teamID string) bool {
	if s.All {
		return true
	}
	if !s.AllowsCompany(companyID) {
		return false
	}
	if len(s.TeamIDs) == 0 {
		return true
	}
	for _, id := range s.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}
