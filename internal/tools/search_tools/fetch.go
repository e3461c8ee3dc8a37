package search_tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/todoist-mcp/internal/server"
	"github.com/teemow/todoist-mcp/internal/todoist"
	"github.com/teemow/todoist-mcp/internal/tools/common"
)

const invalidIDMessage = `Invalid ID format: expected "task:<id>" or "project:<id>"`

// fetchPayload is the document returned for one fetched entity.
type fetchPayload struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	URL      string `json:"url"`
	Metadata any    `json:"metadata"`
}

// taskMetadata preserves absent values as explicit nulls.
type taskMetadata struct {
	Priority       int     `json:"priority"`
	ProjectID      string  `json:"projectId"`
	SectionID      *string `json:"sectionId"`
	ParentID       *string `json:"parentId"`
	Recurring      any     `json:"recurring"`
	Duration       *string `json:"duration"`
	ResponsibleUID *string `json:"responsibleUid"`
	AssignedByUID  *string `json:"assignedByUid"`
}

type projectMetadata struct {
	Color        string  `json:"color"`
	IsFavorite   bool    `json:"isFavorite"`
	IsShared     bool    `json:"isShared"`
	ParentID     *string `json:"parentId"`
	InboxProject bool    `json:"inboxProject"`
	ViewStyle    string  `json:"viewStyle"`
}

// parseCompositeID splits a "task:<id>" or "project:<id>" composite on
// the first colon. Both halves must be non-empty and the prefix must
// name a known entity kind.
func parseCompositeID(composite string) (kind, id string, ok bool) {
	kind, id, found := strings.Cut(composite, ":")
	if !found || id == "" {
		return "", "", false
	}
	if kind != "task" && kind != "project" {
		return "", "", false
	}
	return kind, id, true
}

// taskText renders the human-readable body of a fetched task. Sections
// are appended in a fixed order, each only when present.
func taskText(t todoist.MappedTask) string {
	var b strings.Builder
	b.WriteString(t.Content)
	if t.Description != "" {
		b.WriteString("\n\nDescription: ")
		b.WriteString(t.Description)
	}
	if t.DueDate != nil {
		b.WriteString("\nDue: ")
		b.WriteString(*t.DueDate)
	}
	if len(t.Labels) > 0 {
		b.WriteString("\nLabels: ")
		b.WriteString(strings.Join(t.Labels, ", "))
	}
	return b.String()
}

func projectText(p todoist.MappedProject) string {
	var b strings.Builder
	b.WriteString(p.Name)
	if p.IsShared {
		b.WriteString("\n\nShared project")
	}
	if p.IsFavorite {
		b.WriteString("\nFavorite: Yes")
	}
	return b.String()
}

func registerFetch(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("fetch",
		mcp.WithDescription("Fetch one task or project by the composite ID a search returned, e.g. \"task:123\" or \"project:456\"."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Composite ID of the form \"task:<id>\" or \"project:<id>\""),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithOperation("fetch", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			kind, id, ok := parseCompositeID(common.StringArg(args, "id", ""))
			if !ok {
				return mcp.NewToolResultError(invalidIDMessage), nil
			}

			client, err := common.TodoistClient(ctx, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if kind == "task" {
				task, err := client.Task(ctx, id)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				mapped := todoist.MapTask(*task)
				return jsonTextResult(fetchPayload{
					ID:    "task:" + mapped.ID,
					Title: mapped.Content,
					Text:  taskText(mapped),
					URL:   mapped.URL,
					Metadata: taskMetadata{
						Priority:       mapped.Priority,
						ProjectID:      mapped.ProjectID,
						SectionID:      mapped.SectionID,
						ParentID:       mapped.ParentID,
						Recurring:      mapped.Recurring,
						Duration:       mapped.Duration,
						ResponsibleUID: mapped.ResponsibleUID,
						AssignedByUID:  mapped.AssignedByUID,
					},
				}), nil
			}

			project, err := client.Project(ctx, id)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			mapped := todoist.MapProject(*project)
			return jsonTextResult(fetchPayload{
				ID:    "project:" + mapped.ID,
				Title: mapped.Name,
				Text:  projectText(mapped),
				URL:   mapped.URL,
				Metadata: projectMetadata{
					Color:        mapped.Color,
					IsFavorite:   mapped.IsFavorite,
					IsShared:     mapped.IsShared,
					ParentID:     mapped.ParentID,
					InboxProject: mapped.IsInbox,
					ViewStyle:    mapped.ViewStyle,
				},
			}), nil
		}))
}
