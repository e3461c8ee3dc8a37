package todoist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTasksByFilter(t *testing.T) {
	t.Run("passes query and auth", func(t *testing.T) {
		var gotQuery, gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/tasks/filter", r.URL.Path)
			gotQuery = r.URL.Query().Get("query")
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(Page[Task]{
				Results:    []Task{{ID: "1", Content: "Buy milk"}},
				NextCursor: "abc",
			})
		}))
		defer srv.Close()

		client := NewClientWithBaseURL("token-123", srv.URL)
		page, err := client.TasksByFilter(context.Background(), "today & @work", "", 0)

		require.NoError(t, err)
		assert.Equal(t, "today & @work", gotQuery)
		assert.Equal(t, "Bearer token-123", gotAuth)
		require.Len(t, page.Results, 1)
		assert.Equal(t, "Buy milk", page.Results[0].Content)
		assert.Equal(t, "abc", page.NextCursor)
	})

	t.Run("invalid query is rewritten with the offending query", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"error":      "Invalid argument value",
				"error_tag":  "INVALID_QUERY",
				"error_code": 20,
				"http_code":  400,
			})
		}))
		defer srv.Close()

		client := NewClientWithBaseURL("token", srv.URL)
		_, err := client.TasksByFilter(context.Background(), "today &&& broken", "", 0)

		require.Error(t, err)
		assert.Equal(t, "Invalid filter query: today &&& broken", err.Error())
	})

	t.Run("other API errors carry tag and code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"error":      "Unauthorized",
				"error_tag":  "AUTH_INVALID_TOKEN",
				"error_code": 401,
				"http_code":  401,
			})
		}))
		defer srv.Close()

		client := NewClientWithBaseURL("bad-token", srv.URL)
		_, err := client.TasksByFilter(context.Background(), "today", "", 0)

		require.Error(t, err)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "AUTH_INVALID_TOKEN", apiErr.Tag)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})
}

func TestTasksByContainer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tasks", r.URL.Path)
		assert.Equal(t, "6Jf8VQXxpwv56VQ7", r.URL.Query().Get("project_id"))
		assert.Empty(t, r.URL.Query().Get("section_id"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Page[Task]{Results: []Task{{ID: "1"}, {ID: "2"}}})
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("token", srv.URL)
	page, err := client.TasksByContainer(context.Background(), ContainerRef{ProjectID: "6Jf8VQXxpwv56VQ7"}, "", 0)

	require.NoError(t, err)
	assert.Len(t, page.Results, 2)
}

func TestCompletedTasks(t *testing.T) {
	tests := []struct {
		name         string
		by           CompletedBy
		expectedPath string
	}{
		{name: "by completion date", by: CompletedByCompletionDate, expectedPath: "/tasks/completed/by_completion_date"},
		{name: "by due date", by: CompletedByDueDate, expectedPath: "/tasks/completed/by_due_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"items":       []Task{{ID: "1", Checked: true}},
					"next_cursor": "",
				})
			}))
			defer srv.Close()

			client := NewClientWithBaseURL("token", srv.URL)
			page, err := client.CompletedTasks(context.Background(), CompletedQuery{
				Since: "2026-03-01T00:00:00Z",
				Until: "2026-03-08T00:00:00Z",
				By:    tt.by,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.expectedPath, gotPath)
			require.Len(t, page.Results, 1)
			assert.True(t, page.Results[0].Checked)
		})
	}
}

func TestAllCollaborators(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/projects", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Page[Project]{Results: []Project{
			{ID: "p1", Name: "Solo"},
			{ID: "p2", Name: "Team A", IsShared: true},
			{ID: "p3", Name: "Team B", IsShared: true},
		}})
	})
	mux.HandleFunc("/projects/p2/collaborators", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Page[Collaborator]{Results: []Collaborator{
			{ID: "u1", Name: "Ada", Email: "ada@example.com"},
			{ID: "u2", Name: "Ben", Email: "ben@example.com"},
		}})
	})
	mux.HandleFunc("/projects/p3/collaborators", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Page[Collaborator]{Results: []Collaborator{
			{ID: "u2", Name: "Ben", Email: "ben@example.com"},
			{ID: "u3", Name: "Cam", Email: "cam@example.com"},
		}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClientWithBaseURL("token", srv.URL)
	collaborators, err := client.AllCollaborators(context.Background())

	require.NoError(t, err)
	require.Len(t, collaborators, 3)
	assert.Equal(t, "u1", collaborators[0].ID)
	assert.Equal(t, "u2", collaborators[1].ID)
	assert.Equal(t, "u3", collaborators[2].ID)
}

func TestMoveTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tasks/1/move", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"project_id": "p9"}, body)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Task{ID: "1", ProjectID: "p9"})
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("token", srv.URL)
	task, err := client.MoveTask(context.Background(), "1", MoveInput{ProjectID: "p9"})

	require.NoError(t, err)
	assert.Equal(t, "p9", task.ProjectID)
}
