package search_tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sourcegraph/conc/pool"

	"github.com/teemow/todoist-mcp/internal/server"
	"github.com/teemow/todoist-mcp/internal/todoist"
	"github.com/teemow/todoist-mcp/internal/tools/common"
)

// RegisterSearchTools adds the search and fetch tools to the server.
func RegisterSearchTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	registerSearch(s, sc)
	registerFetch(s, sc)
	return nil
}

// searchResult is one entry of the search payload. The ID is a composite
// of entity kind and upstream ID, joined by a colon, so fetch can route
// it back to the right endpoint.
type searchResult struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type searchPayload struct {
	Results []searchResult `json:"results"`
}

// jsonTextResult marshals the payload into the single text content item
// the contract requires.
func jsonTextResult(payload any) *mcp.CallToolResult {
	data, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(data))
}

func registerSearch(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("search",
		mcp.WithDescription("Search tasks and projects by text. Returns composite IDs usable with the fetch tool."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Text to search for"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithOperation("search", "search", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			query := common.StringArg(args, "query", "")
			if query == "" {
				return mcp.NewToolResultError("query is required"), nil
			}

			client, err := common.TodoistClient(ctx, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var (
				tasks    []todoist.Task
				projects []todoist.Project
			)

			// Both upstream calls run concurrently; either failure
			// aborts the whole search, no partial results.
			p := pool.New().WithContext(ctx).WithCancelOnError()
			p.Go(func(ctx context.Context) error {
				page, err := client.TasksByFilter(ctx, "search: "+query, "", 0)
				if err != nil {
					return err
				}
				tasks = page.Results
				return nil
			})
			p.Go(func(ctx context.Context) error {
				page, err := client.Projects(ctx, "", 0)
				if err != nil {
					return err
				}
				projects = page.Results
				return nil
			})
			if err := p.Wait(); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			return jsonTextResult(searchPayload{
				Results: buildSearchResults(tasks, projects, query),
			}), nil
		}))
}

// buildSearchResults composes the result list: tasks first in upstream
// order, then projects whose name contains the query, case-insensitively.
func buildSearchResults(tasks []todoist.Task, projects []todoist.Project, query string) []searchResult {
	results := make([]searchResult, 0, len(tasks))
	for _, t := range tasks {
		results = append(results, searchResult{
			ID:    "task:" + t.ID,
			Title: t.Content,
			URL:   todoist.TaskURL(t.ID),
		})
	}

	needle := strings.ToLower(query)
	for _, proj := range projects {
		if strings.Contains(strings.ToLower(proj.Name), needle) {
			results = append(results, searchResult{
				ID:    "project:" + proj.ID,
				Title: proj.Name,
				URL:   todoist.ProjectURL(proj.ID),
			})
		}
	}
	return results
}
