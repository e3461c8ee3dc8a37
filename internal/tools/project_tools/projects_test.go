package project_tools

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teemow/todoist-mcp/internal/todoist"
)

func TestMatchProjects(t *testing.T) {
	projects := []todoist.Project{
		{ID: "p1", Name: "Home Renovation"},
		{ID: "p2", Name: "Work"},
		{ID: "p3", Name: "homework"},
	}

	tests := []struct {
		name    string
		needle  string
		wantIDs []string
	}{
		{
			name:    "case-insensitive substring",
			needle:  "home",
			wantIDs: []string{"p1", "p3"},
		},
		{
			name:    "exact name",
			needle:  "Work",
			wantIDs: []string{"p2", "p3"},
		},
		{
			name:    "no match",
			needle:  "garden",
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchProjects(projects, tt.needle)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}
