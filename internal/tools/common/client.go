// Package common holds helpers shared by all tool packages: client
// resolution from the invocation context and the instrumentation
// wrapper applied to every registered tool handler.
package common

import (
	"context"
	"fmt"

	"github.com/teemow/todoist-mcp/internal/server"
	"github.com/teemow/todoist-mcp/internal/todoist"
)

// TodoistClient retrieves the Todoist client for the current invocation.
// It fails with an instructive message when no credential reached the
// server, since that is the most common misconfiguration.
func TodoistClient(ctx context.Context, sc *server.ServerContext) (*todoist.Client, error) {
	client := sc.ClientFromContext(ctx)
	if client == nil {
		return nil, fmt.Errorf(`Todoist API token not found. To authorize access:

- On stdio transport: set the TODOIST_API_TOKEN environment variable.
- On HTTP transports: send an "Authorization: Bearer <token>" or
  "X-Todoist-Api-Token: <token>" header with every request.

Your API token is available in Todoist under Settings > Integrations > Developer.`)
	}
	return client, nil
}
