package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Transport names accepted by the serve command.
const (
	TransportStdio          = "stdio"
	TransportSSE            = "sse"
	TransportStreamableHTTP = "streamable-http"
)

// HTTPServer mounts an MCP server on an HTTP listener using either the
// SSE or the streamable-http transport. The caller's API token is taken
// from the request headers and carried into tool handlers through the
// request context; requests without a token are rejected before they
// reach the MCP layer.
type HTTPServer struct {
	mcpServer  *mcpserver.MCPServer
	sessions   *SessionIDManager
	health     *HealthChecker
	httpServer *http.Server
	transport  string
}

// NewHTTPServer creates an HTTP front-end for the given MCP server.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, transport string, sessions *SessionIDManager, health *HealthChecker) (*HTTPServer, error) {
	switch transport {
	case TransportSSE, TransportStreamableHTTP:
	default:
		return nil, fmt.Errorf("unsupported transport: %s", transport)
	}

	return &HTTPServer{
		mcpServer: mcpServer,
		sessions:  sessions,
		health:    health,
		transport: transport,
	}, nil
}

// tokenContextFunc copies the API token from the HTTP request into the
// context visible to tool handlers.
func tokenContextFunc(ctx context.Context, r *http.Request) context.Context {
	if token := TokenFromRequest(r); token != "" {
		return WithAPIToken(ctx, token)
	}
	return ctx
}

// requireToken rejects requests that carry no credential, registering
// the session on success.
func (s *HTTPServer) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.sessions.ResolveSessionID(r); err != nil {
			http.Error(w, "missing API token: set an Authorization Bearer header or X-Todoist-Api-Token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handler builds the full request handler: health endpoints plus the
// token-gated MCP transport.
func (s *HTTPServer) handler() http.Handler {
	mux := http.NewServeMux()
	if s.health != nil {
		s.health.RegisterHealthEndpoints(mux)
	}

	switch s.transport {
	case TransportSSE:
		sseServer := mcpserver.NewSSEServer(s.mcpServer,
			mcpserver.WithSSEEndpoint("/sse"),
			mcpserver.WithMessageEndpoint("/message"),
			mcpserver.WithSSEContextFunc(tokenContextFunc),
		)
		mux.Handle("/sse", s.requireToken(sseServer))
		mux.Handle("/message", s.requireToken(sseServer))

	case TransportStreamableHTTP:
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcpServer,
			mcpserver.WithEndpointPath("/mcp"),
			mcpserver.WithStateLess(true),
			mcpserver.WithHTTPContextFunc(tokenContextFunc),
		)
		mux.Handle("/mcp", s.requireToken(httpServer))
	}

	return mux
}

// Start starts the HTTP server and blocks until it stops.
func (s *HTTPServer) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
