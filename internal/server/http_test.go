package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

func newTestHTTPServer(t *testing.T, transport string) *HTTPServer {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	sc := NewServerContext(ctx)
	t.Cleanup(func() { _ = sc.Shutdown() })

	sessions := NewSessionIDManager()
	t.Cleanup(sessions.Stop)

	mcpSrv := mcpserver.NewMCPServer("todoist-mcp", "test",
		mcpserver.WithToolCapabilities(true),
	)

	s, err := NewHTTPServer(mcpSrv, transport, sessions, NewHealthChecker(sc))
	require.NoError(t, err)
	return s
}

func TestNewHTTPServerRejectsUnknownTransport(t *testing.T) {
	_, err := NewHTTPServer(nil, TransportStdio, nil, nil)
	assert.Error(t, err)

	_, err = NewHTTPServer(nil, "carrier-pigeon", nil, nil)
	assert.Error(t, err)
}

func TestHTTPServerRejectsMissingToken(t *testing.T) {
	tests := []struct {
		name      string
		transport string
		path      string
	}{
		{name: "streamable-http mcp endpoint", transport: TransportStreamableHTTP, path: "/mcp"},
		{name: "sse endpoint", transport: TransportSSE, path: "/sse"},
		{name: "sse message endpoint", transport: TransportSSE, path: "/message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(newTestHTTPServer(t, tt.transport).handler())
			defer srv.Close()

			resp, err := http.Post(srv.URL+tt.path, "application/json", nil)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestHTTPServerPassesTokenThroughGate(t *testing.T) {
	srv := httptest.NewServer(newTestHTTPServer(t, TransportStreamableHTTP).handler())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/mcp", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.NotEqual(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHTTPServerHeaderTokenVariants(t *testing.T) {
	s := newTestHTTPServer(t, TransportStreamableHTTP)

	invoked := false
	gate := s.requireToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invoked = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("X-Todoist-Api-Token", "test-token")
	rec := httptest.NewRecorder()

	gate.ServeHTTP(rec, req)

	assert.True(t, invoked)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHTTPServerHealthEndpointsAreNotGated(t *testing.T) {
	srv := httptest.NewServer(newTestHTTPServer(t, TransportStreamableHTTP).handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
