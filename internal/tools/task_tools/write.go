package task_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/todoist-mcp/internal/filter"
	"github.com/teemow/todoist-mcp/internal/server"
	"github.com/teemow/todoist-mcp/internal/todoist"
	"github.com/teemow/todoist-mcp/internal/tools/common"
)

func registerWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	registerCreateTasks(s, sc)
	registerUpdateTask(s, sc)
	registerCompleteTasks(s, sc)
	registerReopenTask(s, sc)
	registerDeleteTask(s, sc)
	registerMoveTasks(s, sc)
	return nil
}

// taskInputFromArgs builds the API payload from one task object. The
// user-facing priority scale (1 = highest) is inverted to the API's
// 4-is-highest convention.
func taskInputFromArgs(ctx context.Context, client *todoist.Client, obj map[string]interface{}) (todoist.TaskInput, error) {
	input := todoist.TaskInput{
		Content:      common.StringArg(obj, "content", ""),
		Description:  common.StringArg(obj, "description", ""),
		ProjectID:    common.StringArg(obj, "projectId", ""),
		SectionID:    common.StringArg(obj, "sectionId", ""),
		ParentID:     common.StringArg(obj, "parentId", ""),
		Labels:       common.StringSliceArg(obj, "labels"),
		DueString:    common.StringArg(obj, "dueString", ""),
		DueDate:      common.StringArg(obj, "dueDate", ""),
		DueDatetime:  common.StringArg(obj, "dueDatetime", ""),
		Duration:     common.IntArg(obj, "duration", 0),
		DurationUnit: common.StringArg(obj, "durationUnit", ""),
	}

	if p := common.IntArg(obj, "priority", 0); p != 0 {
		input.Priority = todoist.MapPriority(p)
	}

	if who := common.StringArg(obj, "responsibleUser", ""); who != "" {
		assignee, err := filter.ResolveAssignee(ctx, client, who)
		if err != nil {
			return input, err
		}
		input.AssigneeID = assignee.UserID
	}

	return input, nil
}

func registerCreateTasks(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("create-tasks",
		mcp.WithDescription("Create one or more tasks. Each task needs at least a content string; the rest is optional."),
		mcp.WithArray("tasks",
			mcp.Required(),
			mcp.Description("Task objects to create. Fields: content (required), description, projectId, sectionId, parentId, labels, priority (1 = highest), dueString, dueDate, dueDatetime, duration, durationUnit, responsibleUser"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithOperation("create-tasks", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			client, err := common.TodoistClient(ctx, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			objs := common.ObjectSliceArg(args, "tasks")
			if len(objs) == 0 {
				return nil, fmt.Errorf("tasks must contain at least one task object")
			}
			for i, obj := range objs {
				if common.StringArg(obj, "content", "") == "" {
					return nil, fmt.Errorf("tasks[%d]: content is required", i)
				}
			}

			created := make([]todoist.MappedTask, 0, len(objs))
			for i, obj := range objs {
				input, err := taskInputFromArgs(ctx, client, obj)
				if err != nil {
					return nil, fmt.Errorf("tasks[%d]: %w", i, err)
				}

				task, err := client.CreateTask(ctx, input)
				if err != nil {
					return nil, fmt.Errorf("tasks[%d]: %w", i, err)
				}
				created = append(created, todoist.MapTask(*task))
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Created %d task(s):\n", len(created))
			for _, t := range created {
				fmt.Fprintf(&b, "- %s (id: %s)\n", t.Content, t.ID)
			}

			return common.TextAndStructuredResult(b.String(), map[string]any{
				"tasks":      created,
				"totalCount": len(created),
			}), nil
		}))
}

func registerUpdateTask(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("update-task",
		mcp.WithDescription("Update an existing task. Only the supplied fields change."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task ID"),
		),
		mcp.WithString("content",
			mcp.Description("New task content"),
		),
		mcp.WithString("description",
			mcp.Description("New task description"),
		),
		mcp.WithArray("labels",
			mcp.Description("Replacement label set"),
			mcp.WithStringItems(),
		),
		mcp.WithNumber("priority",
			mcp.Description("New priority (1 = highest, 4 = lowest)"),
		),
		mcp.WithString("dueString",
			mcp.Description("Natural-language due phrase, e.g. \"every friday\""),
		),
		mcp.WithString("dueDate",
			mcp.Description("Due date as YYYY-MM-DD"),
		),
		mcp.WithString("dueDatetime",
			mcp.Description("Due timestamp as RFC3339"),
		),
		mcp.WithNumber("duration",
			mcp.Description("Task duration amount"),
		),
		mcp.WithString("durationUnit",
			mcp.Description("Duration unit"),
			mcp.Enum("minute", "day"),
		),
		mcp.WithString("responsibleUser",
			mcp.Description("Assign the task to this person (user ID, email, or display name)"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithOperation("update-task", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			client, err := common.TodoistClient(ctx, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			id := common.StringArg(args, "id", "")
			if id == "" {
				return nil, fmt.Errorf("id is required")
			}

			input, err := taskInputFromArgs(ctx, client, args)
			if err != nil {
				return nil, err
			}

			task, err := client.UpdateTask(ctx, id, input)
			if err != nil {
				return nil, err
			}

			mapped := todoist.MapTask(*task)
			return common.TextAndStructuredResult(
				fmt.Sprintf("Updated task %q (id: %s)", mapped.Content, mapped.ID),
				map[string]any{"task": mapped},
			), nil
		}))
}

func registerCompleteTasks(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("complete-tasks",
		mcp.WithDescription("Mark one or more tasks as completed."),
		mcp.WithArray("ids",
			mcp.Required(),
			mcp.Description("Task IDs to complete"),
			mcp.WithStringItems(),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithOperation("complete-tasks", "close", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			client, err := common.TodoistClient(ctx, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			ids := common.StringSliceArg(args, "ids")
			if len(ids) == 0 {
				return nil, fmt.Errorf("ids must contain at least one task ID")
			}

			for _, id := range ids {
				if err := client.CloseTask(ctx, id); err != nil {
					return nil, fmt.Errorf("task %s: %w", id, err)
				}
			}

			return common.TextAndStructuredResult(
				fmt.Sprintf("Completed %d task(s): %s", len(ids), strings.Join(ids, ", ")),
				map[string]any{"completedIds": ids},
			), nil
		}))
}

func registerReopenTask(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("reopen-task",
		mcp.WithDescription("Reopen a completed task."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task ID"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithOperation("reopen-task", "reopen", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			client, err := common.TodoistClient(ctx, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			id := common.StringArg(args, "id", "")
			if id == "" {
				return nil, fmt.Errorf("id is required")
			}

			if err := client.ReopenTask(ctx, id); err != nil {
				return nil, err
			}

			return common.TextAndStructuredResult(
				fmt.Sprintf("Reopened task %s", id),
				map[string]any{"reopenedId": id},
			), nil
		}))
}

func registerDeleteTask(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("delete-task",
		mcp.WithDescription("Delete a task permanently. This cannot be undone."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task ID"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithOperation("delete-task", "delete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			client, err := common.TodoistClient(ctx, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			id := common.StringArg(args, "id", "")
			if id == "" {
				return nil, fmt.Errorf("id is required")
			}

			if err := client.DeleteTask(ctx, id); err != nil {
				return nil, err
			}

			return common.TextAndStructuredResult(
				fmt.Sprintf("Deleted task %s", id),
				map[string]any{"deletedId": id},
			), nil
		}))
}

// moveDestination validates that exactly one destination is named and
// returns it. Multiple or missing destinations fail before any network
// call.
func moveDestination(args map[string]interface{}) (todoist.MoveInput, error) {
	dest := todoist.MoveInput{
		ProjectID: common.StringArg(args, "projectId", ""),
		SectionID: common.StringArg(args, "sectionId", ""),
		ParentID:  common.StringArg(args, "parentId", ""),
	}

	set := 0
	for _, v := range []string{dest.ProjectID, dest.SectionID, dest.ParentID} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return todoist.MoveInput{}, fmt.Errorf("exactly one of projectId, sectionId, or parentId must be set")
	}
	return dest, nil
}

func registerMoveTasks(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("move-tasks",
		mcp.WithDescription("Move one or more tasks into a project, a section, or under a parent task. Exactly one destination must be given."),
		mcp.WithArray("ids",
			mcp.Required(),
			mcp.Description("Task IDs to move"),
			mcp.WithStringItems(),
		),
		mcp.WithString("projectId",
			mcp.Description("Destination project"),
		),
		mcp.WithString("sectionId",
			mcp.Description("Destination section"),
		),
		mcp.WithString("parentId",
			mcp.Description("Destination parent task"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithOperation("move-tasks", "move", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			client, err := common.TodoistClient(ctx, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			ids := common.StringSliceArg(args, "ids")
			if len(ids) == 0 {
				return nil, fmt.Errorf("ids must contain at least one task ID")
			}

			dest, err := moveDestination(args)
			if err != nil {
				return nil, err
			}

			moved := make([]todoist.MappedTask, 0, len(ids))
			for _, id := range ids {
				task, err := client.MoveTask(ctx, id, dest)
				if err != nil {
					return nil, fmt.Errorf("task %s: %w", id, err)
				}
				moved = append(moved, todoist.MapTask(*task))
			}

			return common.TextAndStructuredResult(
				fmt.Sprintf("Moved %d task(s)", len(moved)),
				map[string]any{"tasks": moved, "totalCount": len(moved)},
			), nil
		}))
}
