// Package task_tools registers the task-facing MCP tools: the read-side
// finders (by filter, by date, completed) and the write-side mutations
// (create, update, complete, reopen, delete, move).
package task_tools

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/todoist-mcp/internal/server"
)

// RegisterTaskTools registers all task tools with the MCP server.
// Write tools are skipped in read-only mode.
func RegisterTaskTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerFindTools(s, sc); err != nil {
		return fmt.Errorf("failed to register task find tools: %w", err)
	}

	if !readOnly {
		if err := registerWriteTools(s, sc); err != nil {
			return fmt.Errorf("failed to register task write tools: %w", err)
		}
	}

	return nil
}
