package task_tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/todoist-mcp/internal/filter"
	"github.com/teemow/todoist-mcp/internal/server"
	"github.com/teemow/todoist-mcp/internal/summary"
	"github.com/teemow/todoist-mcp/internal/todoist"
	"github.com/teemow/todoist-mcp/internal/tools/common"
)

// defaultCompletedWindow is the completed-tasks lookback when the caller
// gives no since/until bounds.
const defaultCompletedWindow = 7 * 24 * time.Hour

func registerFindTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	registerFindTasks(s, sc)
	registerFindTasksByDate(s, sc)
	registerFindCompletedTasks(s, sc)
	return nil
}

// assigneeArgs reads the shared responsible-user arguments and resolves
// an explicit identity against the caller's collaborators.
func assigneeArgs(ctx context.Context, client *todoist.Client, args map[string]interface{}) (filter.AssigneeMode, *filter.ResolvedAssignee, error) {
	mode := filter.AssigneeMode(common.StringArg(args, "responsibleUserFiltering", string(filter.AssigneeModeUnassignedOrMe)))

	assignee, err := filter.ResolveAssignee(ctx, client, common.StringArg(args, "responsibleUser", ""))
	if err != nil {
		return mode, nil, err
	}
	return mode, assignee, nil
}

// runPlan executes a fetch plan: either a direct container listing with
// in-memory post-filters, or a filter-language query.
func runPlan(ctx context.Context, client *todoist.Client, plan *filter.Plan, cursor string, limit int) ([]todoist.Task, string, error) {
	if plan.Container != nil {
		q := plan.Container
		page, err := client.TasksByContainer(ctx, q.Ref, cursor, limit)
		if err != nil {
			return nil, "", err
		}

		callerUID := ""
		if q.NeedsCallerIdentity() {
			user, err := client.CurrentUser(ctx)
			if err != nil {
				return nil, "", err
			}
			callerUID = user.ID
		}
		return q.Apply(page.Results, callerUID), page.NextCursor, nil
	}

	page, err := client.TasksByFilter(ctx, plan.Filter.Query, cursor, limit)
	if err != nil {
		return nil, "", err
	}
	return page.Results, page.NextCursor, nil
}

func registerFindTasks(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("find-tasks",
		mcp.WithDescription("Find open tasks by text, container, labels, or responsible user. At least one filter is required."),
		mcp.WithString("searchText",
			mcp.Description("Free text to match against task content"),
		),
		mcp.WithString("projectId",
			mcp.Description("Limit results to a project"),
		),
		mcp.WithString("sectionId",
			mcp.Description("Limit results to a section"),
		),
		mcp.WithString("parentId",
			mcp.Description("Limit results to the subtasks of a task"),
		),
		mcp.WithArray("labels",
			mcp.Description("Label names the tasks must carry"),
			mcp.WithStringItems(),
		),
		mcp.WithString("labelsOperator",
			mcp.Description("How multiple labels combine (default: or)"),
			mcp.Enum("and", "or"),
		),
		mcp.WithString("responsibleUser",
			mcp.Description("Only tasks assigned to this person (user ID, email, or display name)"),
		),
		mcp.WithString("responsibleUserFiltering",
			mcp.Description("Assignment filter when no specific person is given (default: unassignedOrMe)"),
			mcp.Enum("assigned", "unassignedOrMe", "all"),
		),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor from a previous page"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of tasks per page (default 50, max 200)"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithOperation("find-tasks", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			client, err := common.TodoistClient(ctx, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			req := filter.Request{
				SearchText:    common.StringArg(args, "searchText", ""),
				ProjectID:     common.StringArg(args, "projectId", ""),
				SectionID:     common.StringArg(args, "sectionId", ""),
				ParentID:      common.StringArg(args, "parentId", ""),
				Labels:        common.StringSliceArg(args, "labels"),
				LabelOperator: filter.LabelOperator(common.StringArg(args, "labelsOperator", string(filter.LabelOperatorOr))),
			}

			// Reject an empty request before the collaborator lookup,
			// so validation never costs a network call.
			responsibleUser := common.StringArg(args, "responsibleUser", "")
			if req.SearchText == "" && req.ProjectID == "" && req.SectionID == "" &&
				req.ParentID == "" && len(req.Labels) == 0 && responsibleUser == "" {
				return nil, &filter.MissingFilterError{}
			}

			req.AssigneeMode, req.Assignee, err = assigneeArgs(ctx, client, args)
			if err != nil {
				return nil, err
			}

			plan, err := filter.BuildPlan(req)
			if err != nil {
				return nil, err
			}

			cursor := common.StringArg(args, "cursor", "")
			limit := common.IntArg(args, "limit", 0)
			tasks, nextCursor, err := runPlan(ctx, client, plan, cursor, limit)
			if err != nil {
				return nil, err
			}

			mapped := todoist.MapTasks(tasks)
			filters := summary.TaskFilters{
				SearchText:      req.SearchText,
				ProjectID:       req.ProjectID,
				SectionID:       req.SectionID,
				ParentID:        req.ParentID,
				Labels:          req.Labels,
				ResponsibleUser: common.StringArg(args, "responsibleUser", ""),
			}
			payload := summary.NewPayload(mapped, len(mapped), nextCursor, map[string]any{
				"searchText":               req.SearchText,
				"projectId":                req.ProjectID,
				"sectionId":                req.SectionID,
				"parentId":                 req.ParentID,
				"labels":                   req.Labels,
				"labelsOperator":           string(req.LabelOperator),
				"responsibleUser":          filters.ResponsibleUser,
				"responsibleUserFiltering": string(req.AssigneeMode),
			})

			return common.TextAndStructuredResult(summary.TasksText(mapped, filters, nextCursor), payload), nil
		}))
}

func registerFindTasksByDate(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("find-tasks-by-date",
		mcp.WithDescription("Find open tasks inside a date window. The window starts at startDate and spans daysCount days."),
		mcp.WithString("startDate",
			mcp.Required(),
			mcp.Description("Window start: \"today\" or a YYYY-MM-DD date"),
		),
		mcp.WithNumber("daysCount",
			mcp.Description("Window length in days; 1 covers only the start date (default 1)"),
		),
		mcp.WithBoolean("includeOverdue",
			mcp.Description("Include overdue tasks when startDate is \"today\" (default true)"),
		),
		mcp.WithBoolean("overdueOnly",
			mcp.Description("Return only overdue tasks, ignoring the window"),
		),
		mcp.WithArray("labels",
			mcp.Description("Label names the tasks must carry"),
			mcp.WithStringItems(),
		),
		mcp.WithString("labelsOperator",
			mcp.Description("How multiple labels combine (default: or)"),
			mcp.Enum("and", "or"),
		),
		mcp.WithString("responsibleUser",
			mcp.Description("Only tasks assigned to this person (user ID, email, or display name)"),
		),
		mcp.WithString("responsibleUserFiltering",
			mcp.Description("Assignment filter when no specific person is given (default: unassignedOrMe)"),
			mcp.Enum("assigned", "unassignedOrMe", "all"),
		),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor from a previous page"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of tasks per page (default 50, max 200)"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithOperation("find-tasks-by-date", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			client, err := common.TodoistClient(ctx, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			mode, assignee, err := assigneeArgs(ctx, client, args)
			if err != nil {
				return nil, err
			}

			req := filter.Request{
				StartDate:      common.StringArg(args, "startDate", ""),
				DaysCount:      common.IntArg(args, "daysCount", 1),
				IncludeOverdue: common.BoolArg(args, "includeOverdue", true),
				OverdueOnly:    common.BoolArg(args, "overdueOnly", false),
				Labels:         common.StringSliceArg(args, "labels"),
				LabelOperator:  filter.LabelOperator(common.StringArg(args, "labelsOperator", string(filter.LabelOperatorOr))),
				AssigneeMode:   mode,
				Assignee:       assignee,
			}

			plan, err := filter.BuildPlan(req)
			if err != nil {
				return nil, err
			}

			cursor := common.StringArg(args, "cursor", "")
			limit := common.IntArg(args, "limit", 0)
			tasks, nextCursor, err := runPlan(ctx, client, plan, cursor, limit)
			if err != nil {
				return nil, err
			}

			mapped := todoist.MapTasks(tasks)
			filters := summary.TaskFilters{
				StartDate:       req.StartDate,
				DaysCount:       req.DaysCount,
				OverdueOnly:     req.OverdueOnly,
				Labels:          req.Labels,
				ResponsibleUser: common.StringArg(args, "responsibleUser", ""),
			}
			payload := summary.NewPayload(mapped, len(mapped), nextCursor, map[string]any{
				"startDate":                req.StartDate,
				"daysCount":                req.DaysCount,
				"includeOverdue":           req.IncludeOverdue,
				"overdueOnly":              req.OverdueOnly,
				"labels":                   req.Labels,
				"labelsOperator":           string(req.LabelOperator),
				"responsibleUser":          filters.ResponsibleUser,
				"responsibleUserFiltering": string(req.AssigneeMode),
			})

			return common.TextAndStructuredResult(summary.TasksText(mapped, filters, nextCursor), payload), nil
		}))
}

// normalizeTimestamp widens a YYYY-MM-DD date to a midnight-UTC RFC3339
// timestamp; full timestamps pass through unchanged.
func normalizeTimestamp(value string) string {
	if len(value) == len("2006-01-02") {
		return value + "T00:00:00Z"
	}
	return value
}

func registerFindCompletedTasks(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("find-completed-tasks",
		mcp.WithDescription("Find completed tasks inside a time window, keyed by completion date or original due date. Defaults to the last 7 days."),
		mcp.WithString("since",
			mcp.Description("Window start (YYYY-MM-DD or RFC3339)"),
		),
		mcp.WithString("until",
			mcp.Description("Window end (YYYY-MM-DD or RFC3339)"),
		),
		mcp.WithString("by",
			mcp.Description("Which date the window applies to (default: completion)"),
			mcp.Enum("completion", "due"),
		),
		mcp.WithString("projectId",
			mcp.Description("Limit results to a project"),
		),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor from a previous page"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of tasks per page (default 50, max 200)"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithOperation("find-completed-tasks", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			client, err := common.TodoistClient(ctx, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			now := time.Now().UTC()
			since := common.StringArg(args, "since", now.Add(-defaultCompletedWindow).Format(time.RFC3339))
			until := common.StringArg(args, "until", now.Format(time.RFC3339))

			query := todoist.CompletedQuery{
				Since:     normalizeTimestamp(since),
				Until:     normalizeTimestamp(until),
				By:        todoist.CompletedBy(common.StringArg(args, "by", string(todoist.CompletedByCompletionDate))),
				ProjectID: common.StringArg(args, "projectId", ""),
				Cursor:    common.StringArg(args, "cursor", ""),
				Limit:     common.IntArg(args, "limit", 0),
			}

			page, err := client.CompletedTasks(ctx, query)
			if err != nil {
				return nil, err
			}

			mapped := todoist.MapTasks(page.Results)
			filters := summary.TaskFilters{
				ProjectID: query.ProjectID,
				Completed: true,
			}
			payload := summary.NewPayload(mapped, len(mapped), page.NextCursor, map[string]any{
				"since":     query.Since,
				"until":     query.Until,
				"by":        string(query.By),
				"projectId": query.ProjectID,
			})

			return common.TextAndStructuredResult(summary.TasksText(mapped, filters, page.NextCursor), payload), nil
		}))
}
