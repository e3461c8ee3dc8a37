// Package todoist provides a client for the Todoist REST API v1.
//
// The client covers the read surface the MCP tools need (filter queries,
// container listings, completed tasks, the activity log, projects and
// collaborators) as well as task write operations. Raw API entities are
// normalized into mapped shapes suitable for LLM consumption via the
// Map* converters.
package todoist
