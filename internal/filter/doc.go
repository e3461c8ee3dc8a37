// Package filter builds Todoist filter-language queries from tool
// arguments. The filter string is write-only: fragments are assembled
// with explicit grouping and never parsed back. When a request names a
// container (project, section or parent task) the package instead plans
// a direct container listing with in-memory post-filtering, since the
// container endpoint cannot combine label, search and assignee filters
// server-side.
package filter
