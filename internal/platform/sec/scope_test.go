// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/corplan/internal/platform/sec"
)

/*
TestScopeFor derives the tenant scope per role.
*/
func TestScopeFor(t *testing.T) {
	tests := []struct {
		name     string
		identity sec.Identity
		wantAll  bool
		wantCos  []string
		wantTms  []string
	}{
		{
			name:     "global_admin_is_unrestricted",
			identity: sec.Identity{UserID: "u1", Role: sec.RoleGlobalAdmin},
			wantAll:  true,
		},
		{
			name:     "company_admin_sees_own_company_all_teams",
			identity: sec.Identity{UserID: "u2", Role: sec.RoleCompanyAdmin, CompanyID: "c1"},
			wantCos:  []string{"c1"},
		},
		{
			name:     "team_lead_narrows_to_own_team",
			identity: sec.Identity{UserID: "u3", Role: sec.RoleTeamLead, CompanyID: "c1", TeamID: "t1"},
			wantCos:  []string{"c1"},
			wantTms:  []string{"t1"},
		},
		{
			name:     "member_narrows_to_own_team",
			identity: sec.Identity{UserID: "u4", Role: sec.RoleMember, CompanyID: "c1", TeamID: "t2"},
			wantCos:  []string{"c1"},
			wantTms:  []string{"t2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := sec.ScopeFor(tt.identity)

			assert.Equal(t, tt.wantAll, scope.All)
			assert.Equal(t, tt.wantCos, scope.CompanyIDs)
			assert.Equal(t, tt.wantTms, scope.TeamIDs)
		})
	}
}

/*
TestTenantScope_Allows checks company and team membership queries against
derived scopes, including the All sentinel.
*/
func TestTenantScope_Allows(t *testing.T) {
	adminScope := sec.ScopeFor(sec.Identity{UserID: "u1", Role: sec.RoleGlobalAdmin})
	assert.True(t, adminScope.AllowsCompany("anything"))
	assert.True(t, adminScope.AllowsTeam("anything", "at-all"))

	leadScope := sec.ScopeFor(sec.Identity{UserID: "u3", Role: sec.RoleTeamLead, CompanyID: "c1", TeamID: "t1"})
	assert.True(t, leadScope.AllowsCompany("c1"))
	assert.False(t, leadScope.AllowsCompany("c2"))
	assert.True(t, leadScope.AllowsTeam("c1", "t1"))
	assert.False(t, leadScope.AllowsTeam("c1", "t2"))
	assert.False(t, leadScope.AllowsTeam("c2", "t1"))

	// Company-level scope has no team restriction.
	adminOfCompany := sec.ScopeFor(sec.Identity{UserID: "u2", Role: sec.RoleCompanyAdmin, CompanyID: "c1"})
	assert.True(t, adminOfCompany.AllowsTeam("c1", "any-team"))
	assert.False(t, adminOfCompany.AllowsTeam("c2", "any-team"))
}

/*
TestIdentity_CanAccessCompany checks the GLOBAL_ADMIN bypass and the exact
company match required of every other role.
*/
func TestIdentity_CanAccessCompany(t *testing.T) {
	tests := []struct {
		name     string
		identity sec.Identity
		company  string
		allowed  bool
	}{
		{"global_admin_bypasses_tenancy", sec.Identity{Role: sec.RoleGlobalAdmin}, "c99", true},
		{"company_admin_own_company", sec.Identity{Role: sec.RoleCompanyAdmin, CompanyID: "c1"}, "c1", true},
		{"company_admin_other_company", sec.Identity{Role: sec.RoleCompanyAdmin, CompanyID: "c1"}, "c2", false},
		{"member_own_company", sec.Identity{Role: sec.RoleMember, CompanyID: "c1", TeamID: "t1"}, "c1", true},
		{"member_other_company", sec.Identity{Role: sec.RoleMember, CompanyID: "c1", TeamID: "t1"}, "c2", false},
		{"empty_company_never_matches", sec.Identity{Role: sec.RoleMember}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.identity.CanAccessCompany(tt.company))
		})
	}
}

/*
TestIdentity_CanAccessTeam checks team reach per role level.
*/
func TestIdentity_CanAccessTeam(t *testing.T) {
	globalAdmin := sec.Identity{Role: sec.RoleGlobalAdmin}
	companyAdmin := sec.Identity{Role: sec.RoleCompanyAdmin, CompanyID: "c1"}
	member := sec.Identity{Role: sec.RoleMember, CompanyID: "c1", TeamID: "t1"}

	assert.True(t, globalAdmin.CanAccessTeam("c1", "t1"))
	assert.True(t, globalAdmin.CanAccessTeam("c2", "t7"))

	assert.True(t, companyAdmin.CanAccessTeam("c1", "t1"))
	assert.True(t, companyAdmin.CanAccessTeam("c1", "t2"))
	assert.False(t, companyAdmin.CanAccessTeam("c2", "t1"))

	assert.True(t, member.CanAccessTeam("c1", "t1"))
	assert.False(t, member.CanAccessTeam("c1", "t2"))
	assert.False(t, member.CanAccessTeam("c2", "t1"))
}
