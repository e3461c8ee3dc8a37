package common

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// TextAndStructuredResult builds a tool result carrying a human-readable
// text item plus a structured payload for callers that consume machine
// output.
func TextAndStructuredResult(text string, structured any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content:           []mcp.Content{mcp.NewTextContent(text)},
		StructuredContent: structured,
	}
}
