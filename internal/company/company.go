// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package company manages the tenant hierarchy: companies and their teams.
//
// # Architecture
//
// Companies are the root scoping boundary for data visibility. Every record
// in the system (accounts, tasks, time entries) hangs off a company, and the
// authorization layer narrows each request to the caller's reachable
// companies via [sec.TenantScope].
package company

import (
	"time"
)

// Company represents an organization tenant.
//
// # Rules
//   - Name is required; Slug is derived from it and unique.
//   - Companies are only created by GLOBAL_ADMIN.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Team represents a working group within a company.
//
// Team membership narrows the tenant scope of TEAM_LEAD and MEMBER roles.
type Team struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
