package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/todoist-mcp/internal/todoist"
)

func TestBuildPlanFilterQueries(t *testing.T) {
	tests := []struct {
		name     string
		req      Request
		expected string
	}{
		{
			name:     "today includes overdue by default",
			req:      Request{StartDate: "today", IncludeOverdue: true, AssigneeMode: AssigneeModeAll},
			expected: "(today | overdue)",
		},
		{
			name:     "today without overdue",
			req:      Request{StartDate: "today", AssigneeMode: AssigneeModeAll},
			expected: "today",
		},
		{
			name:     "overdue only",
			req:      Request{OverdueOnly: true, AssigneeMode: AssigneeModeAll},
			expected: "overdue",
		},
		{
			name:     "explicit date single day window",
			req:      Request{StartDate: "2026-03-15", DaysCount: 1, AssigneeMode: AssigneeModeAll},
			expected: "(due after: 2026-03-15 | due: 2026-03-15) & due before: 2026-03-16",
		},
		{
			name:     "explicit date week window crossing month boundary",
			req:      Request{StartDate: "2026-03-28", DaysCount: 7, AssigneeMode: AssigneeModeAll},
			expected: "(due after: 2026-03-28 | due: 2026-03-28) & due before: 2026-04-04",
		},
		{
			name:     "search with labels and default assignee mode",
			req:      Request{SearchText: "report", Labels: []string{"work"}, AssigneeMode: AssigneeModeUnassignedOrMe},
			expected: "search: report & (@work) & !assigned to: others",
		},
		{
			name:     "assigned mode appends others fragment",
			req:      Request{SearchText: "report", AssigneeMode: AssigneeModeAssigned},
			expected: "search: report & assigned to: others",
		},
		{
			name: "resolved identity beats mode",
			req: Request{
				SearchText:   "report",
				AssigneeMode: AssigneeModeUnassignedOrMe,
				Assignee:     &ResolvedAssignee{UserID: "u1", Email: "ada@example.com"},
			},
			expected: "search: report & assigned to: ada@example.com",
		},
		{
			name:     "identity only issues a direct assigned-to query",
			req:      Request{Assignee: &ResolvedAssignee{UserID: "u1", Email: "ada@example.com"}},
			expected: "assigned to: ada@example.com",
		},
		{
			name:     "date with labels",
			req:      Request{StartDate: "today", IncludeOverdue: true, Labels: []string{"home", "errand"}, LabelOperator: LabelOperatorAnd, AssigneeMode: AssigneeModeAll},
			expected: "(today | overdue) & (@home  &  @errand)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := BuildPlan(tt.req)

			require.NoError(t, err)
			require.Nil(t, plan.Container)
			require.NotNil(t, plan.Filter)
			assert.Equal(t, tt.expected, plan.Filter.Query)
		})
	}
}

func TestBuildPlanIsDeterministic(t *testing.T) {
	req := Request{
		SearchText:    "report",
		StartDate:     "2026-03-15",
		DaysCount:     3,
		Labels:        []string{"work", "urgent"},
		LabelOperator: LabelOperatorOr,
		AssigneeMode:  AssigneeModeUnassignedOrMe,
	}

	first, err := BuildPlan(req)
	require.NoError(t, err)
	second, err := BuildPlan(req)
	require.NoError(t, err)

	assert.Equal(t, first.Filter.Query, second.Filter.Query)
}

func TestBuildPlanContainerMode(t *testing.T) {
	plan, err := BuildPlan(Request{
		ProjectID:    "p1",
		SearchText:   "report",
		Labels:       []string{"work"},
		AssigneeMode: AssigneeModeAll,
	})

	require.NoError(t, err)
	require.NotNil(t, plan.Container)
	assert.Nil(t, plan.Filter)
	assert.Equal(t, "p1", plan.Container.Ref.ProjectID)
	assert.Equal(t, "report", plan.Container.SearchText)
}

func TestBuildPlanValidation(t *testing.T) {
	t.Run("no filters at all", func(t *testing.T) {
		_, err := BuildPlan(Request{AssigneeMode: AssigneeModeUnassignedOrMe})

		require.Error(t, err)
		var missing *MissingFilterError
		require.ErrorAs(t, err, &missing)
		assert.Contains(t, err.Error(), "searchText")
		assert.Contains(t, err.Error(), "projectId")
		assert.Contains(t, err.Error(), "labels")
		assert.Contains(t, err.Error(), "responsibleUser")
	})

	t.Run("malformed start date", func(t *testing.T) {
		_, err := BuildPlan(Request{StartDate: "15.03.2026", AssigneeMode: AssigneeModeAll})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid startDate")
	})
}

func TestContainerQueryApply(t *testing.T) {
	tasks := []todoist.Task{
		{ID: "1", Content: "Write report", Labels: []string{"work"}},
		{ID: "2", Content: "Buy milk", Labels: []string{"errand"}, ResponsibleUID: "me"},
		{ID: "3", Content: "Review report draft", Labels: []string{"work"}, ResponsibleUID: "other"},
	}

	t.Run("search and labels", func(t *testing.T) {
		q := &ContainerQuery{SearchText: "REPORT", Labels: []string{"work"}, AssigneeMode: AssigneeModeAll}

		got := q.Apply(tasks, "")

		require.Len(t, got, 2)
		assert.Equal(t, "1", got[0].ID)
		assert.Equal(t, "3", got[1].ID)
	})

	t.Run("unassignedOrMe keeps unassigned and own tasks", func(t *testing.T) {
		q := &ContainerQuery{AssigneeMode: AssigneeModeUnassignedOrMe}

		got := q.Apply(tasks, "me")

		require.Len(t, got, 2)
		assert.Equal(t, "1", got[0].ID)
		assert.Equal(t, "2", got[1].ID)
	})

	t.Run("identity filter wins over mode", func(t *testing.T) {
		q := &ContainerQuery{
			AssigneeMode: AssigneeModeUnassignedOrMe,
			Assignee:     &ResolvedAssignee{UserID: "other", Email: "other@example.com"},
		}

		got := q.Apply(tasks, "me")

		require.Len(t, got, 1)
		assert.Equal(t, "3", got[0].ID)
	})
}
