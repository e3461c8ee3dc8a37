package server

import (
	"context"
	"os"
	"sync"

	"github.com/teemow/todoist-mcp/internal/instrumentation"
	"github.com/teemow/todoist-mcp/internal/logging"
	"github.com/teemow/todoist-mcp/internal/todoist"
)

// EnvAPIToken is the environment variable holding the default Todoist
// API token, used by the stdio transport.
const EnvAPIToken = "TODOIST_API_TOKEN"

type contextKey string

const apiTokenKey contextKey = "todoist_api_token"

// WithAPIToken stores the caller's API token in the request context.
// HTTP transports use this to carry the credential from the request
// headers into tool handlers.
func WithAPIToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, apiTokenKey, token)
}

// APITokenFromContext extracts the caller's API token from the context.
func APITokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(apiTokenKey).(string)
	return token
}

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx      context.Context
	cancel   context.CancelFunc
	clients  map[string]*todoist.Client // Maps token hash to Todoist client
	metrics  *instrumentation.Metrics
	audit    *instrumentation.AuditLogger
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context
func NewServerContext(ctx context.Context) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:     shutdownCtx,
		cancel:  cancel,
		clients: make(map[string]*todoist.Client),
	}
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// DefaultToken returns the API token from the environment, if any.
// The stdio transport uses this as the credential for every call.
func (sc *ServerContext) DefaultToken() string {
	return os.Getenv(EnvAPIToken)
}

// ClientForToken returns the Todoist client for an API token, creating
// and caching it on first use. Clients are keyed by token hash so raw
// tokens never sit in map keys.
func (sc *ServerContext) ClientForToken(token string) *todoist.Client {
	if token == "" {
		return nil
	}
	key := logging.HashToken(token)

	sc.mu.RLock()
	client, ok := sc.clients[key]
	sc.mu.RUnlock()
	if ok {
		return client
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if client, ok := sc.clients[key]; ok {
		return client
	}
	client = todoist.NewClient(token)
	sc.clients[key] = client
	return client
}

// CachedClients returns the number of per-token clients currently cached.
func (sc *ServerContext) CachedClients() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return len(sc.clients)
}

// ClientFromContext resolves the Todoist client for a tool invocation:
// the token from the request context if present, otherwise the
// environment token. Returns nil when no credential is available.
func (sc *ServerContext) ClientFromContext(ctx context.Context) *todoist.Client {
	token := APITokenFromContext(ctx)
	if token == "" {
		token = sc.DefaultToken()
	}
	return sc.ClientForToken(token)
}

// SetMetrics attaches a metrics recorder to the server context.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// Metrics returns the metrics recorder, or nil if instrumentation is disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger attaches an audit logger to the server context.
func (sc *ServerContext) SetAuditLogger(audit *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.audit = audit
}

// AuditLogger returns the audit logger, or nil if not configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.audit
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
