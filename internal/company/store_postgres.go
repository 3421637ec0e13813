// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package company

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/corplan/internal/platform/dberr"
)

// PostgresCompanyRepository implements CompanyRepository using pgx.
type PostgresCompanyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository creates a new PostgreSQL implementation of CompanyRepository.
func NewCompanyRepository(pool *pgxpool.Pool) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{pool: pool}
}

// Create persists a new company record.
func (repository *PostgresCompanyRepository) Create(ctx context.Context, company *Company) error {
	const query = `
		INSERT INTO company (id, name, slug, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5)`

	now := time.Now()
	if company.CreatedAt.IsZero() {
		company.CreatedAt = now
	}
	company.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		company.ID,
		company.Name,
		company.Slug,
		company.CreatedAt,
		company.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Company")
	}

	return nil
}

// FindByID retrieves a company by its unique ID.
func (repository *PostgresCompanyRepository) FindByID(ctx context.Context, id string) (*Company, error) {
	const query = `
		SELECT id, name, slug, createdat, updatedat
		FROM company
		WHERE id = $1`

	company := &Company{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&company.ID,
		&company.Name,
		&company.Slug,
		&company.CreatedAt,
		&company.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "Company")
	}

	return company, nil
}

// ListAll retrieves every company, ordered by name.
func (repository *PostgresCompanyRepository) ListAll(ctx context.Context) ([]*Company, error) {
	const query = `
		SELECT id, name, slug, createdat, updatedat
		FROM company
		ORDER BY name`

	return repository.list(ctx, query)
}

// ListByIDs retrieves the companies whose IDs are in the given set.
func (repository *PostgresCompanyRepository) ListByIDs(ctx context.Context, ids []string) ([]*Company, error) {
	if len(ids) == 0 {
		return []*Company{}, nil
	}

	const query = `
		SELECT id, name, slug, createdat, updatedat
		FROM company
		WHERE id = ANY($1)
		ORDER BY name`

	return repository.list(ctx, query, ids)
}

// list executes a multi-row company query.
func (repository *PostgresCompanyRepository) list(ctx context.Context, query string, args ...any) ([]*Company, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_company_repo_list_failed: %w", err)
	}
	defer rows.Close()

	companies := []*Company{}
	for rows.Next() {
		company := &Company{}
		if err := rows.Scan(
			&company.ID,
			&company.Name,
			&company.Slug,
			&company.CreatedAt,
			&company.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_company_repo_scan_failed: %w", err)
		}
		companies = append(companies, company)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_company_repo_rows_failed: %w", err)
	}

	return companies, nil
}

// ── Team Repository ──────────────────────────────────────────────────────────

// PostgresTeamRepository implements TeamRepository using pgx.
type PostgresTeamRepository struct {
	pool *pgxpool.Pool
}

// NewTeamRepository creates a new PostgreSQL implementation of TeamRepository.
func NewTeamRepository(pool *pgxpool.Pool) *PostgresTeamRepository {
	return &PostgresTeamRepository{pool: pool}
}

// Create persists a new team record under its company.
func (repository *PostgresTeamRepository) Create(ctx context.Context, team *Team) error {
	const query = `
		INSERT INTO team (id, companyid, name, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5)`

	now := time.Now()
	if team.CreatedAt.IsZero() {
		team.CreatedAt = now
	}
	team.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		team.ID,
		team.CompanyID,
		team.Name,
		team.CreatedAt,
		team.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Team")
	}

	return nil
}

// FindByID retrieves a team by its unique ID.
func (repository *PostgresTeamRepository) FindByID(ctx context.Context, id string) (*Team, error) {
	const query = `
		SELECT id, companyid, name, createdat, updatedat
		FROM team
		WHERE id = $1`

	team := &Team{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&team.ID,
		&team.CompanyID,
		&team.Name,
		&team.CreatedAt,
		&team.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "Team")
	}

	return team, nil
}

// ListByCompany retrieves all teams of the given company.
func (repository *PostgresTeamRepository) ListByCompany(ctx context.Context, companyID string) ([]*Team, error) {
	const query = `
		SELECT id, companyid, name, createdat, updatedat
		FROM team
		WHERE companyid = $1
		ORDER BY name`

	rows, err := repository.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("postgres_team_repo_list_failed: %w", err)
	}
	defer rows.Close()

	teams := []*Team{}
	for rows.Next() {
		team := &Team{}
		if err := rows.Scan(
			&team.ID,
			&team.CompanyID,
			&team.Name,
			&team.CreatedAt,
			&team.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_team_repo_scan_failed: %w", err)
		}
		teams = append(teams, team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_team_repo_rows_failed: %w", err)
	}

	return teams, nil
}
