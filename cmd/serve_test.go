package cmd

import (
	"context"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/todoist-mcp/internal/server"
)

func TestRegisterAllTools(t *testing.T) {
	tests := []struct {
		name     string
		readOnly bool
	}{
		{
			name:     "read-only mode",
			readOnly: true,
		},
		{
			name:     "write mode",
			readOnly: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sc := server.NewServerContext(ctx)
			defer sc.Shutdown()

			s := mcpserver.NewMCPServer("todoist-mcp", "test",
				mcpserver.WithToolCapabilities(true),
			)

			if err := registerAllTools(s, sc, tt.readOnly); err != nil {
				t.Fatalf("registerAllTools(readOnly=%v) returned error: %v", tt.readOnly, err)
			}
		})
	}
}

func TestRunServeRejectsUnknownTransport(t *testing.T) {
	err := runServe("carrier-pigeon", false, ":0", false, MetricsConfig{})
	if err == nil {
		t.Fatal("expected error for unknown transport, got nil")
	}
}
