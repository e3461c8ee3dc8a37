// Package logging provides structured logging utilities for the
// todoist-mcp application.
//
// This package centralizes logging patterns to ensure consistent,
// structured logging throughout the codebase using the standard
// library's slog package.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithTool(slog.Default(), "find-tasks")
//	logger.Info("tool completed",
//	    logging.Status("success"))
//
// # Security Considerations
//
// API tokens are never logged directly: TokenHash hashes a token for
// correlation and SanitizeToken masks it entirely.
package logging
