package search_tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/teemow/todoist-mcp/internal/todoist"
)

func TestBuildSearchResultsTasksFirstThenMatchingProjects(t *testing.T) {
	tasks := []todoist.Task{
		{ID: "t1", Content: "Groceries run"},
		{ID: "t2", Content: "grocery budget"},
	}
	projects := []todoist.Project{
		{ID: "p1", Name: "Groceries"},
		{ID: "p2", Name: "Work"},
	}

	results := buildSearchResults(tasks, projects, "groc")
	require.Len(t, results, 3)

	assert.Equal(t, "task:t1", results[0].ID)
	assert.Equal(t, "Groceries run", results[0].Title)
	assert.Equal(t, "https://app.todoist.com/app/task/t1", results[0].URL)
	assert.Equal(t, "task:t2", results[1].ID)
	assert.Equal(t, "project:p1", results[2].ID)
	assert.Equal(t, "https://app.todoist.com/app/project/p1", results[2].URL)
}

func TestBuildSearchResultsProjectMatchIsCaseInsensitive(t *testing.T) {
	projects := []todoist.Project{
		{ID: "p1", Name: "HOME Renovation"},
		{ID: "p2", Name: "Reading list"},
	}

	results := buildSearchResults(nil, projects, "home")
	require.Len(t, results, 1)
	assert.Equal(t, "project:p1", results[0].ID)
}

func TestBuildSearchResultsEmptyMarshalsAsEmptyArray(t *testing.T) {
	data, err := json.Marshal(searchPayload{Results: buildSearchResults(nil, nil, "nothing")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"results":[]}`, string(data))
}

func TestParseCompositeID(t *testing.T) {
	tests := []struct {
		name      string
		composite string
		wantKind  string
		wantID    string
		wantOK    bool
	}{
		{
			name:      "task",
			composite: "task:123",
			wantKind:  "task",
			wantID:    "123",
			wantOK:    true,
		},
		{
			name:      "project",
			composite: "project:abc",
			wantKind:  "project",
			wantID:    "abc",
			wantOK:    true,
		},
		{
			name:      "splits on the first colon only",
			composite: "task:a:b",
			wantKind:  "task",
			wantID:    "a:b",
			wantOK:    true,
		},
		{
			name:      "missing colon",
			composite: "task123",
		},
		{
			name:      "unknown kind",
			composite: "label:123",
		},
		{
			name:      "empty remainder",
			composite: "task:",
		},
		{
			name:      "empty input",
			composite: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, id, ok := parseCompositeID(tt.composite)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantKind, kind)
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

func TestTaskTextSectionOrder(t *testing.T) {
	due := "2026-08-30"
	tests := []struct {
		name string
		task todoist.MappedTask
		want string
	}{
		{
			name: "bare task is just the content",
			task: todoist.MappedTask{Content: "buy milk"},
			want: "buy milk",
		},
		{
			name: "all sections in order",
			task: todoist.MappedTask{
				Content:     "buy milk",
				Description: "the oat kind",
				DueDate:     &due,
				Labels:      []string{"errand", "home"},
			},
			want: "buy milk\n\nDescription: the oat kind\nDue: 2026-08-30\nLabels: errand, home",
		},
		{
			name: "due without description keeps a single newline",
			task: todoist.MappedTask{Content: "buy milk", DueDate: &due},
			want: "buy milk\nDue: 2026-08-30",
		},
		{
			name: "labels only",
			task: todoist.MappedTask{Content: "buy milk", Labels: []string{"errand"}},
			want: "buy milk\nLabels: errand",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, taskText(tt.task))
		})
	}
}

func TestProjectText(t *testing.T) {
	tests := []struct {
		name    string
		project todoist.MappedProject
		want    string
	}{
		{
			name:    "plain project",
			project: todoist.MappedProject{Name: "Work"},
			want:    "Work",
		},
		{
			name:    "shared and favorite",
			project: todoist.MappedProject{Name: "Work", IsShared: true, IsFavorite: true},
			want:    "Work\n\nShared project\nFavorite: Yes",
		},
		{
			name:    "favorite only",
			project: todoist.MappedProject{Name: "Work", IsFavorite: true},
			want:    "Work\nFavorite: Yes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, projectText(tt.project))
		})
	}
}

func TestFetchPayloadPreservesNullMetadata(t *testing.T) {
	payload := fetchPayload{
		ID:    "task:1",
		Title: "buy milk",
		Text:  "buy milk",
		URL:   todoist.TaskURL("1"),
		Metadata: taskMetadata{
			Priority:  4,
			ProjectID: "p1",
			Recurring: false,
		},
	}

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	meta, ok := decoded["metadata"].(map[string]any)
	require.True(t, ok)

	for _, key := range []string{"sectionId", "parentId", "duration", "responsibleUid", "assignedByUid"} {
		value, present := meta[key]
		assert.True(t, present, "metadata key %s must be present", key)
		assert.Nil(t, value, "metadata key %s must be null", key)
	}
	assert.Equal(t, false, meta["recurring"])
}

func TestInvalidIDMessageNamesBothForms(t *testing.T) {
	assert.Contains(t, invalidIDMessage, "Invalid ID format")
	assert.Contains(t, invalidIDMessage, "task:<id>")
	assert.Contains(t, invalidIDMessage, "project:<id>")

	result := mcp.NewToolResultError(invalidIDMessage)
	assert.True(t, result.IsError)
}
