// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package company

import (
	"context"
)

// CompanyRepository defines the data access contract for company tenants.
type CompanyRepository interface {
	// Create persists a new company.
	//
	// Returns a wrapped error if the slug unique constraint fails.
	Create(ctx context.Context, company *Company) error

	// FindByID returns the company with the given ID.
	//
	// Returns [apperr.NotFound] if the company does not exist.
	FindByID(ctx context.Context, id string) (*Company, error)

	// ListAll returns every company, ordered by name.
	// Reserved for the unrestricted (GLOBAL_ADMIN) scope.
	ListAll(ctx context.Context) ([]*Company, error)

	// ListByIDs returns the companies whose IDs are in the given set.
	// Used to intersect listings with a caller's tenant scope.
	ListByIDs(ctx context.Context, ids []string) ([]*Company, error)
}

// TeamRepository defines the data access contract for teams.
type TeamRepository interface {
	// Create persists a new team under its company.
	Create(ctx context.Context, team *Team) error

	// FindByID returns the team with the given ID.
	//
	// Returns [apperr.NotFound] if the team does not exist.
	FindByID(ctx context.Context, id string) (*Team, error)

	// ListByCompany returns all teams of the given company, ordered by name.
	ListByCompany(ctx context.Context, companyID string) ([]*Team, error)
}
