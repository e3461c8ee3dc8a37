// Package project_tools registers the project listing tool.
package project_tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/todoist-mcp/internal/server"
	"github.com/teemow/todoist-mcp/internal/summary"
	"github.com/teemow/todoist-mcp/internal/todoist"
	"github.com/teemow/todoist-mcp/internal/tools/common"
)

// RegisterProjectTools adds the project tools to the server.
func RegisterProjectTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	registerFindProjects(s, sc)
	return nil
}

func registerFindProjects(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("find-projects",
		mcp.WithDescription("List the caller's projects, personal and workspace alike, optionally narrowed by name."),
		mcp.WithString("searchText",
			mcp.Description("Only projects whose name contains this text"),
		),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor from a previous page"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of projects per page (default 50, max 200)"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithOperation("find-projects", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			client, err := common.TodoistClient(ctx, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			page, err := client.Projects(ctx,
				common.StringArg(args, "cursor", ""),
				common.IntArg(args, "limit", 0))
			if err != nil {
				return nil, err
			}

			projects := page.Results
			searchText := common.StringArg(args, "searchText", "")
			if searchText != "" {
				projects = matchProjects(projects, searchText)
			}

			mapped := todoist.MapProjects(projects)
			payload := summary.NewPayload(mapped, len(mapped), page.NextCursor, map[string]any{
				"searchText": searchText,
			})

			return common.TextAndStructuredResult(summary.ProjectsText(mapped, page.NextCursor), payload), nil
		}))
}

// matchProjects keeps projects whose name contains the needle,
// case-insensitively. The API has no project search endpoint, so the
// match runs locally over the fetched page.
func matchProjects(projects []todoist.Project, needle string) []todoist.Project {
	needle = strings.ToLower(needle)
	kept := make([]todoist.Project, 0, len(projects))
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			kept = append(kept, p)
		}
	}
	return kept
}
