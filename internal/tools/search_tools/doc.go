// Package search_tools registers the search and fetch tools, whose output
// follows a fixed external contract: a single JSON text payload, with all
// failures reported inside an isError envelope rather than as transport
// errors.
package search_tools
