// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package auth implements credential verification and account provisioning
// for the Corplan workforce platform.
//
// # Architecture
//
// The service in this package orchestrates the user repository and the
// security primitives ([sec.HashPassword], [sec.TokenService]). It is
// technology-agnostic and does not know about HTTP or SQL.
package auth

import (
	"time"

	"github.com/taibuivan/corplan/internal/platform/sec"
	"github.com/taibuivan/corplan/pkg/pointer"
)

// User represents a provisioned account in the workforce hierarchy.
//
// # Rules
//   - Email is unique and validated.
//   - PasswordHash is generated via bcrypt exclusively via the auth Service.
//   - CompanyID is nil only for GLOBAL_ADMIN accounts.
//   - TeamID is nil for company-level and global roles.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string    `json:"displayName"`
	Role         sec.Role  `json:"role"`
	CompanyID    *string   `json:"companyId"`
	TeamID       *string   `json:"teamId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity projects the stored record into the per-request [sec.Identity]
// value that tokens encode and the authorization gate reconstructs.
func (u *User) Identity() sec.Identity {
	return sec.Identity{
		UserID:    u.ID,
		Role:      u.Role,
		CompanyID: pointer.Val(u.CompanyID),
		TeamID:    pointer.Val(u.TeamID),
	}
}
