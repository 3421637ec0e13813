// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package company

import (
	"context"
	"fmt"

	"github.com/taibuivan/corplan/internal/platform/apperr"
	"github.com/taibuivan/corplan/internal/platform/sec"
	"github.com/taibuivan/corplan/pkg/slug"
	"github.com/taibuivan/corplan/pkg/uuidv7"
)

// Service implements company and team use cases.
type Service struct {
	companyRepository CompanyRepository
	teamRepository    TeamRepository
}

// NewService constructs a new company [Service] with necessary dependencies.
func NewService(companyRepo CompanyRepository, teamRepo TeamRepository) *Service {
	return &Service{
		companyRepository: companyRepo,
		teamRepository:    teamRepo,
	}
}

// CreateCompany provisions a new company tenant.
//
// The route gate already restricts this to GLOBAL_ADMIN; the service derives
// the slug and persists the record.
func (service *Service) CreateCompany(ctx context.Context, name string) (*Company, error) {
	company := &Company{
		ID:   uuidv7.New(),
		Name: name,
		Slug: slug.From(name),
	}

	if err := service.companyRepository.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("company_service_create_failed: %w", err)
	}

	return company, nil
}

// ListCompanies returns the companies visible inside the caller's tenant scope.
//
// # Scope Intersection
//
// The unrestricted scope (GLOBAL_ADMIN) skips filtering; every other role
// sees exactly its own company. The scope is recomputed per request by the
// caller; this service never caches it.
func (service *Service) ListCompanies(ctx context.Context, scope sec.TenantScope) ([]*Company, error) {
	if scope.All {
		companies, err := service.companyRepository.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("company_service_list_failed: %w", err)
		}
		return companies, nil
	}

	companies, err := service.companyRepository.ListByIDs(ctx, scope.CompanyIDs)
	if err != nil {
		return nil, fmt.Errorf("company_service_list_scoped_failed: %w", err)
	}
	return companies, nil
}

// GetCompany returns a single company. The tenant gate runs at the router.
func (service *Service) GetCompany(ctx context.Context, id string) (*Company, error) {
	return service.companyRepository.FindByID(ctx, id)
}

// CreateTeam provisions a new team under an existing company.
//
// Returns [apperr.NotFound] if the parent company does not exist.
func (service *Service) CreateTeam(ctx context.Context, companyID, name string) (*Team, error) {
	// The parent must exist; a dangling team would corrupt tenant scoping.
	if _, err := service.companyRepository.FindByID(ctx, companyID); err != nil {
		if ae := apperr.As(err); ae != nil {
			return nil, ae
		}
		return nil, fmt.Errorf("company_service_parent_lookup_failed: %w", err)
	}

	team := &Team{
		ID:        uuidv7.New(),
		CompanyID: companyID,
		Name:      name,
	}

	if err := service.teamRepository.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("company_service_create_team_failed: %w", err)
	}

	return team, nil
}

// ListTeams returns all teams of a company. The tenant gate runs at the router.
func (service *Service) ListTeams(ctx context.Context, companyID string) ([]*Team, error) {
	teams, err := service.teamRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("company_service_list_teams_failed: %w", err)
	}
	return teams, nil
}
