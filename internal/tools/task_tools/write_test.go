package task_tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/todoist-mcp/internal/filter"
	"github.com/teemow/todoist-mcp/internal/todoist"
)

func TestMoveDestination(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]interface{}
		want    todoist.MoveInput
		wantErr bool
	}{
		{
			name: "project destination",
			args: map[string]interface{}{"projectId": "p1"},
			want: todoist.MoveInput{ProjectID: "p1"},
		},
		{
			name: "section destination",
			args: map[string]interface{}{"sectionId": "s1"},
			want: todoist.MoveInput{SectionID: "s1"},
		},
		{
			name: "parent destination",
			args: map[string]interface{}{"parentId": "t1"},
			want: todoist.MoveInput{ParentID: "t1"},
		},
		{
			name:    "no destination",
			args:    map[string]interface{}{},
			wantErr: true,
		},
		{
			name:    "conflicting destinations",
			args:    map[string]interface{}{"projectId": "p1", "sectionId": "s1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := moveDestination(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "exactly one of")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaskInputFromArgsInvertsPriority(t *testing.T) {
	tests := []struct {
		name       string
		userFacing int
		wantAPI    int
	}{
		{name: "highest", userFacing: 1, wantAPI: 4},
		{name: "lowest", userFacing: 4, wantAPI: 1},
		{name: "unset stays zero", userFacing: 0, wantAPI: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]interface{}{"content": "task"}
			if tt.userFacing != 0 {
				args["priority"] = float64(tt.userFacing)
			}

			input, err := taskInputFromArgs(context.Background(), nil, args)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAPI, input.Priority)
		})
	}
}

func TestTaskInputFromArgsFields(t *testing.T) {
	input, err := taskInputFromArgs(context.Background(), nil, map[string]interface{}{
		"content":      "write report",
		"description":  "quarterly numbers",
		"projectId":    "p1",
		"labels":       []interface{}{"work", "urgent"},
		"dueString":    "every friday",
		"duration":     float64(90),
		"durationUnit": "minute",
	})
	require.NoError(t, err)
	assert.Equal(t, "write report", input.Content)
	assert.Equal(t, "quarterly numbers", input.Description)
	assert.Equal(t, "p1", input.ProjectID)
	assert.Equal(t, []string{"work", "urgent"}, input.Labels)
	assert.Equal(t, "every friday", input.DueString)
	assert.Equal(t, 90, input.Duration)
	assert.Equal(t, "minute", input.DurationUnit)
}

func TestTaskInputFromArgsResolvesResponsibleUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/projects", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(todoist.Page[todoist.Project]{
			Results: []todoist.Project{{ID: "p1", Name: "Team", IsShared: true}},
		})
	})
	mux.HandleFunc("/projects/p1/collaborators", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(todoist.Page[todoist.Collaborator]{
			Results: []todoist.Collaborator{{ID: "u7", Name: "Ana Silva", Email: "ana@example.com"}},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := todoist.NewClientWithBaseURL("token", srv.URL)

	input, err := taskInputFromArgs(context.Background(), client, map[string]interface{}{
		"content":         "handoff",
		"responsibleUser": "Ana Silva",
	})
	require.NoError(t, err)
	assert.Equal(t, "u7", input.AssigneeID)
}

func TestTaskInputFromArgsUnknownResponsibleUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/projects", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(todoist.Page[todoist.Project]{})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := todoist.NewClientWithBaseURL("token", srv.URL)

	_, err := taskInputFromArgs(context.Background(), client, map[string]interface{}{
		"content":         "handoff",
		"responsibleUser": "nobody@example.com",
	})
	var notFound *filter.UserNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nobody@example.com", notFound.Input)
}
