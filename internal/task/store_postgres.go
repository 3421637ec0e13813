// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/corplan/internal/platform/apperr"
	"github.com/taibuivan/corplan/internal/platform/dberr"
	"github.com/taibuivan/corplan/pkg/pagination"
)

// PostgresTaskRepository implements the TaskRepository interface using pgx.
type PostgresTaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a new PostgreSQL implementation of the TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *PostgresTaskRepository {
	return &PostgresTaskRepository{pool: pool}
}

const taskColumns = "id, companyid, teamid, assigneeid, title, description, status, duedate, createdat, updatedat"

// Create persists a new task record.
func (repository *PostgresTaskRepository) Create(ctx context.Context, task *Task) error {
	const query = `
		INSERT INTO task (
			id, companyid, teamid, assigneeid, title, description, status, duedate, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		task.ID,
		task.CompanyID,
		task.TeamID,
		task.AssigneeID,
		task.Title,
		task.Description,
		task.Status,
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Task")
	}

	return nil
}

// FindByID retrieves a task record by its unique ID.
func (repository *PostgresTaskRepository) FindByID(ctx context.Context, id string) (*Task, error) {
	const query = `
		SELECT ` + taskColumns + `
		FROM task
		WHERE id = $1`

	task := &Task{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.CompanyID,
		&task.TeamID,
		&task.AssigneeID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "Task")
	}

	return task, nil
}

// List retrieves tasks matching the filter, newest first.
//
// # Filtering
//
// The WHERE clause is built dynamically from the filter's non-zero fields.
// Tenant restriction relies on the CompanyIDs/TeamIDs slices: callers pass
// nil for an unrestricted (GLOBAL_ADMIN) view.
func (repository *PostgresTaskRepository) List(ctx context.Context, filter Filter, params pagination.Params) ([]*Task, int, error) {
	where, args := buildTaskFilter(filter)

	countQuery := "SELECT COUNT(*) FROM task" + where

	total := 0
	if err := repository.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_task_repo_count_failed: %w", err)
	}

	listQuery := fmt.Sprintf(
		"SELECT "+taskColumns+" FROM task%s ORDER BY createdat DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2,
	)
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_task_repo_list_failed: %w", err)
	}
	defer rows.Close()

	tasks := []*Task{}
	for rows.Next() {
		task := &Task{}
		if err := rows.Scan(
			&task.ID,
			&task.CompanyID,
			&task.TeamID,
			&task.AssigneeID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.DueDate,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_task_repo_scan_failed: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_task_repo_rows_failed: %w", err)
	}

	return tasks, total, nil
}

// Update persists changes to an existing task record.
func (repository *PostgresTaskRepository) Update(ctx context.Context, task *Task) error {
	const query = `
		UPDATE task
		SET assigneeid = $2, title = $3, description = $4, status = $5, duedate = $6, updatedat = $7
		WHERE id = $1`

	task.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(ctx, query,
		task.ID,
		task.AssigneeID,
		task.Title,
		task.Description,
		task.Status,
		task.DueDate,
		task.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Task")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Task")
	}

	return nil
}

// Delete removes a task record permanently.
func (repository *PostgresTaskRepository) Delete(ctx context.Context, id string) error {
	tag, err := repository.pool.Exec(ctx, `DELETE FROM task WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Task")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Task")
	}

	return nil
}

// buildTaskFilter translates the filter into a WHERE clause and argument list.
func buildTaskFilter(filter Filter) (string, []any) {
	clauses := []string{}
	args := []any{}

	if filter.CompanyIDs != nil {
		args = append(args, filter.CompanyIDs)
		clauses = append(clauses, fmt.Sprintf("companyid = ANY($%d)", len(args)))
	}
	if filter.TeamIDs != nil {
		args = append(args, filter.TeamIDs)
		clauses = append(clauses, fmt.Sprintf("teamid = ANY($%d)", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.AssigneeID != "" {
		args = append(args, filter.AssigneeID)
		clauses = append(clauses, fmt.Sprintf("assigneeid = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}
