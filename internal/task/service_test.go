// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task_test

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/corplan/internal/auth"
	"github.com/taibuivan/corplan/internal/platform/apperr"
	"github.com/taibuivan/corplan/internal/platform/sec"
	"github.com/taibuivan/corplan/internal/task"
	"github.com/taibuivan/corplan/pkg/pagination"
)

// memoryTaskRepo is an in-memory TaskRepository for service tests.
type memoryTaskRepo struct {
	tasks map[string]*task.Task
}

func newMemoryTaskRepo(seed ...*task.Task) *memoryTaskRepo {
	repo := &memoryTaskRepo{tasks: map[string]*task.Task{}}
	for _, t := range seed {
		copied := *t
		repo.tasks[t.ID] = &copied
	}
	return repo
}

func (m *memoryTaskRepo) Create(_ context.Context, t *task.Task) error {
	copied := *t
	m.tasks[t.ID] = &copied
	return nil
}

func (m *memoryTaskRepo) FindByID(_ context.Context, id string) (*task.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, apperr.NotFound("Task")
	}
	copied := *t
	return &copied, nil
}

// matches applies the same filter contract as the SQL implementation:
// a nil slice is unrestricted, an empty non-nil slice matches nothing.
func matches(t *task.Task, filter task.Filter) bool {
	contains := func(haystack []string, needle string) bool {
		for _, v := range haystack {
			if v == needle {
				return true
			}
		}
		return false
	}

	if filter.CompanyIDs != nil && !contains(filter.CompanyIDs, t.CompanyID) {
		return false
	}
	if filter.TeamIDs != nil && !contains(filter.TeamIDs, t.TeamID) {
		return false
	}
	if filter.Status != "" && t.Status != filter.Status {
		return false
	}
	if filter.AssigneeID != "" && (t.AssigneeID == nil || *t.AssigneeID != filter.AssigneeID) {
		return false
	}
	return true
}

func (m *memoryTaskRepo) List(_ context.Context, filter task.Filter, params pagination.Params) ([]*task.Task, int, error) {
	result := []*task.Task{}
	for _, t := range m.tasks {
		if matches(t, filter) {
			copied := *t
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	total := len(result)
	offset := params.Offset()
	if offset > total {
		offset = total
	}
	end := offset + params.Limit
	if end > total {
		end = total
	}
	return result[offset:end], total, nil
}

func (m *memoryTaskRepo) Update(_ context.Context, t *task.Task) error {
	if _, ok := m.tasks[t.ID]; !ok {
		return apperr.NotFound("Task")
	}
	copied := *t
	m.tasks[t.ID] = &copied
	return nil
}

func (m *memoryTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.tasks[id]; !ok {
		return apperr.NotFound("Task")
	}
	delete(m.tasks, id)
	return nil
}

// stubAccounts resolves assignee lookups from a fixed set.
type stubAccounts struct {
	accounts map[string]*auth.User
}

func (s *stubAccounts) FindByID(_ context.Context, id string) (*auth.User, error) {
	account, ok := s.accounts[id]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	return account, nil
}

func accountIn(id, companyID string) *auth.User {
	return &auth.User{ID: id, Email: id + "@corplan.app", Role: sec.RoleMember, CompanyID: &companyID}
}

var (
	leadC1T1   = sec.Identity{UserID: "lead-1", Role: sec.RoleTeamLead, CompanyID: "c1", TeamID: "t1"}
	memberC1T1 = sec.Identity{UserID: "member-1", Role: sec.RoleMember, CompanyID: "c1", TeamID: "t1"}
	adminC1    = sec.Identity{UserID: "admin-1", Role: sec.RoleCompanyAdmin, CompanyID: "c1"}
	rootAdmin  = sec.Identity{UserID: "root-1", Role: sec.RoleGlobalAdmin}
)

func newService(seed ...*task.Task) (*task.Service, *memoryTaskRepo) {
	repo := newMemoryTaskRepo(seed...)
	accounts := &stubAccounts{accounts: map[string]*auth.User{
		"member-1": accountIn("member-1", "c1"),
		"member-2": accountIn("member-2", "c1"),
		"outsider": accountIn("outsider", "c2"),
	}}
	return task.NewService(repo, accounts), repo
}

func seedTask(id, companyID, teamID string, assigneeID string, status task.Status) *task.Task {
	t := &task.Task{
		ID:        id,
		CompanyID: companyID,
		TeamID:    teamID,
		Title:     "Task " + id,
		Status:    status,
		CreatedAt: time.Now(),
	}
	if assigneeID != "" {
		t.AssigneeID = &assigneeID
	}
	return t
}

func requireStatus(t *testing.T, err error, want int) {
	t.Helper()
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, want, ae.HTTPStatus)
}

/*
TestCreate_TenantBoundary covers who can create tasks where.
*/
func TestCreate_TenantBoundary(t *testing.T) {
	input := func(companyID, teamID string) task.CreateTaskInput {
		return task.CreateTaskInput{CompanyID: companyID, TeamID: teamID, Title: "Ship the report"}
	}

	t.Run("lead_creates_in_own_team", func(t *testing.T) {
		service, _ := newService()
		created, err := service.Create(context.Background(), leadC1T1, input("c1", "t1"))
		require.NoError(t, err)
		assert.Equal(t, task.StatusTodo, created.Status)
		assert.NotEmpty(t, created.ID)
	})

	t.Run("lead_denied_foreign_team", func(t *testing.T) {
		service, _ := newService()
		_, err := service.Create(context.Background(), leadC1T1, input("c1", "t2"))
		requireStatus(t, err, http.StatusForbidden)
	})

	t.Run("company_admin_creates_in_any_team", func(t *testing.T) {
		service, _ := newService()
		_, err := service.Create(context.Background(), adminC1, input("c1", "t2"))
		assert.NoError(t, err)
	})

	t.Run("company_admin_denied_foreign_company", func(t *testing.T) {
		service, _ := newService()
		_, err := service.Create(context.Background(), adminC1, input("c2", "t9"))
		requireStatus(t, err, http.StatusForbidden)
	})

	t.Run("global_admin_creates_anywhere", func(t *testing.T) {
		service, _ := newService()
		_, err := service.Create(context.Background(), rootAdmin, input("c2", "t9"))
		assert.NoError(t, err)
	})
}

/*
TestCreate_AssigneeValidation rejects unknown and cross-company assignees.
*/
func TestCreate_AssigneeValidation(t *testing.T) {
	tests := []struct {
		name       string
		assigneeID string
		wantStatus int
	}{
		{"assignee_in_company_ok", "member-2", 0},
		{"unknown_assignee_rejected", "ghost", http.StatusBadRequest},
		{"cross_company_assignee_rejected", "outsider", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newService()
			assignee := tt.assigneeID
			_, err := service.Create(context.Background(), leadC1T1, task.CreateTaskInput{
				CompanyID:  "c1",
				TeamID:     "t1",
				Title:      "Review PR",
				AssigneeID: &assignee,
			})

			if tt.wantStatus == 0 {
				assert.NoError(t, err)
			} else {
				requireStatus(t, err, tt.wantStatus)
			}
		})
	}
}

/*
TestGet_Visibility applies the tenant boundary on single-task reads. Denials
are 403 regardless of whether the obstacle is the company or the team.
*/
func TestGet_Visibility(t *testing.T) {
	seed := seedTask("task-1", "c1", "t2", "", task.StatusTodo)

	t.Run("member_of_other_team_denied", func(t *testing.T) {
		service, _ := newService(seed)
		_, err := service.Get(context.Background(), memberC1T1, "task-1")
		requireStatus(t, err, http.StatusForbidden)
	})

	t.Run("company_admin_sees_all_teams", func(t *testing.T) {
		service, _ := newService(seed)
		got, err := service.Get(context.Background(), adminC1, "task-1")
		require.NoError(t, err)
		assert.Equal(t, "task-1", got.ID)
	})

	t.Run("global_admin_sees_everything", func(t *testing.T) {
		service, _ := newService(seed)
		_, err := service.Get(context.Background(), rootAdmin, "task-1")
		assert.NoError(t, err)
	})
}

/*
TestUpdateStatus_Rules lets leads move any visible task but restricts members
to tasks assigned to them.
*/
func TestUpdateStatus_Rules(t *testing.T) {
	t.Run("member_moves_own_task", func(t *testing.T) {
		service, _ := newService(seedTask("task-1", "c1", "t1", "member-1", task.StatusTodo))
		updated, err := service.UpdateStatus(context.Background(), memberC1T1, "task-1", task.StatusInProgress)
		require.NoError(t, err)
		assert.Equal(t, task.StatusInProgress, updated.Status)
	})

	t.Run("member_denied_unassigned_task", func(t *testing.T) {
		service, _ := newService(seedTask("task-1", "c1", "t1", "member-2", task.StatusTodo))
		_, err := service.UpdateStatus(context.Background(), memberC1T1, "task-1", task.StatusDone)
		requireStatus(t, err, http.StatusForbidden)
	})

	t.Run("lead_moves_any_team_task", func(t *testing.T) {
		service, _ := newService(seedTask("task-1", "c1", "t1", "member-2", task.StatusInProgress))
		updated, err := service.UpdateStatus(context.Background(), leadC1T1, "task-1", task.StatusDone)
		require.NoError(t, err)
		assert.Equal(t, task.StatusDone, updated.Status)
	})

	t.Run("invalid_status_rejected", func(t *testing.T) {
		service, _ := newService(seedTask("task-1", "c1", "t1", "member-1", task.StatusTodo))
		_, err := service.UpdateStatus(context.Background(), memberC1T1, "task-1", task.Status("cancelled"))
		requireStatus(t, err, http.StatusBadRequest)
	})
}

/*
TestList_ScopeIntersection checks what each role sees in a mixed dataset.
*/
func TestList_ScopeIntersection(t *testing.T) {
	seed := []*task.Task{
		seedTask("a-c1-t1", "c1", "t1", "", task.StatusTodo),
		seedTask("b-c1-t2", "c1", "t2", "", task.StatusTodo),
		seedTask("c-c2-t9", "c2", "t9", "", task.StatusTodo),
	}

	tests := []struct {
		name    string
		actor   sec.Identity
		wantIDs []string
	}{
		{"member_sees_own_team_only", memberC1T1, []string{"a-c1-t1"}},
		{"company_admin_sees_whole_company", adminC1, []string{"a-c1-t1", "b-c1-t2"}},
		{"global_admin_sees_everything", rootAdmin, []string{"a-c1-t1", "b-c1-t2", "c-c2-t9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newService(seed...)
			tasks, meta, err := service.List(context.Background(), tt.actor, task.ListInput{}, pagination.Params{Page: 1, Limit: 20})
			require.NoError(t, err)

			ids := make([]string, 0, len(tasks))
			for _, got := range tasks {
				ids = append(ids, got.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, len(tt.wantIDs), meta.Total)
		})
	}
}

/*
TestList_TeamFilterNeverWidens: an explicit out-of-scope team filter yields
an empty page instead of leaking another team's tasks.
*/
func TestList_TeamFilterNeverWidens(t *testing.T) {
	service, _ := newService(
		seedTask("a-c1-t1", "c1", "t1", "", task.StatusTodo),
		seedTask("b-c1-t2", "c1", "t2", "", task.StatusTodo),
	)

	tasks, meta, err := service.List(context.Background(), memberC1T1,
		task.ListInput{TeamID: "t2"}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)

	assert.Empty(t, tasks)
	assert.Equal(t, 0, meta.Total)
}

/*
TestAssignAndDelete_RequireLead blocks members from management operations.
*/
func TestAssignAndDelete_RequireLead(t *testing.T) {
	assignee := "member-2"

	t.Run("member_cannot_assign", func(t *testing.T) {
		service, _ := newService(seedTask("task-1", "c1", "t1", "", task.StatusTodo))
		_, err := service.Assign(context.Background(), memberC1T1, "task-1", &assignee)
		requireStatus(t, err, http.StatusForbidden)
	})

	t.Run("lead_assigns_and_clears", func(t *testing.T) {
		service, _ := newService(seedTask("task-1", "c1", "t1", "", task.StatusTodo))

		updated, err := service.Assign(context.Background(), leadC1T1, "task-1", &assignee)
		require.NoError(t, err)
		require.NotNil(t, updated.AssigneeID)
		assert.Equal(t, "member-2", *updated.AssigneeID)

		cleared, err := service.Assign(context.Background(), leadC1T1, "task-1", nil)
		require.NoError(t, err)
		assert.Nil(t, cleared.AssigneeID)
	})

	t.Run("member_cannot_delete", func(t *testing.T) {
		service, _ := newService(seedTask("task-1", "c1", "t1", "member-1", task.StatusTodo))
		err := service.Delete(context.Background(), memberC1T1, "task-1")
		requireStatus(t, err, http.StatusForbidden)
	})

	t.Run("lead_deletes", func(t *testing.T) {
		service, repo := newService(seedTask("task-1", "c1", "t1", "", task.StatusTodo))
		require.NoError(t, service.Delete(context.Background(), leadC1T1, "task-1"))
		assert.Empty(t, repo.tasks)
	})
}
