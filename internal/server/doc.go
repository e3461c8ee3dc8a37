// Package server provides the transport plumbing around the MCP server:
// per-session Todoist client caching, token extraction from HTTP
// requests, session lifecycle, health probes, and the dedicated metrics
// listener.
//
// Sessions are keyed by a hash of the caller's API token so that several
// users can share one server instance. The stdio transport instead takes
// its credential from the TODOIST_API_TOKEN environment variable.
package server
