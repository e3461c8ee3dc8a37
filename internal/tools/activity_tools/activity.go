// Package activity_tools registers the activity-log tool.
package activity_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/todoist-mcp/internal/server"
	"github.com/teemow/todoist-mcp/internal/summary"
	"github.com/teemow/todoist-mcp/internal/todoist"
	"github.com/teemow/todoist-mcp/internal/tools/common"
)

// RegisterActivityTools adds the activity tools to the server.
func RegisterActivityTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	registerFindActivity(s, sc)
	return nil
}

func registerFindActivity(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("find-activity",
		mcp.WithDescription("Browse the account activity log, optionally narrowed by object, event type, project, or initiator."),
		mcp.WithString("objectType",
			mcp.Description("Object kind the events refer to"),
			mcp.Enum("item", "project", "section", "note"),
		),
		mcp.WithString("objectId",
			mcp.Description("Only events about this object"),
		),
		mcp.WithString("eventType",
			mcp.Description("Only events of this type, e.g. added, updated, completed, deleted"),
		),
		mcp.WithString("parentProjectId",
			mcp.Description("Only events inside this project"),
		),
		mcp.WithString("parentItemId",
			mcp.Description("Only events under this task"),
		),
		mcp.WithString("initiatorId",
			mcp.Description("Only events triggered by this user"),
		),
		mcp.WithBoolean("includeSystemEvents",
			mcp.Description("Include events without a human initiator (default true)"),
		),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor from a previous page"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of events per page (default 50, max 200)"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithOperation("find-activity", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			client, err := common.TodoistClient(ctx, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			query := todoist.ActivityQuery{
				ObjectType:      common.StringArg(args, "objectType", ""),
				ObjectID:        common.StringArg(args, "objectId", ""),
				EventType:       common.StringArg(args, "eventType", ""),
				ParentProjectID: common.StringArg(args, "parentProjectId", ""),
				ParentItemID:    common.StringArg(args, "parentItemId", ""),
				InitiatorID:     common.StringArg(args, "initiatorId", ""),
				Cursor:          common.StringArg(args, "cursor", ""),
				Limit:           common.IntArg(args, "limit", 0),
			}

			page, err := client.Activity(ctx, query)
			if err != nil {
				return nil, err
			}

			includeSystem := common.BoolArg(args, "includeSystemEvents", true)
			events := page.Results
			if !includeSystem {
				events = withInitiator(events)
			}

			mapped := todoist.MapEvents(events)
			payload := summary.NewPayload(mapped, len(mapped), page.NextCursor, map[string]any{
				"objectType":          query.ObjectType,
				"objectId":            query.ObjectID,
				"eventType":           query.EventType,
				"parentProjectId":     query.ParentProjectID,
				"parentItemId":        query.ParentItemID,
				"initiatorId":         query.InitiatorID,
				"includeSystemEvents": includeSystem,
			})

			return common.TextAndStructuredResult(summary.EventsText(mapped, page.NextCursor), payload), nil
		}))
}

// withInitiator drops system-generated events, i.e. those without a
// human initiator.
func withInitiator(events []todoist.ActivityEvent) []todoist.ActivityEvent {
	kept := make([]todoist.ActivityEvent, 0, len(events))
	for _, e := range events {
		if e.InitiatorID != nil && *e.InitiatorID != 0 {
			kept = append(kept, e)
		}
	}
	return kept
}
