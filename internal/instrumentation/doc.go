// Package instrumentation provides OpenTelemetry-based observability for
// the todoist-mcp server.
//
// # Components
//
//   - Provider: wires up OpenTelemetry meter and tracer providers with
//     configurable exporters (Prometheus, OTLP, stdout)
//   - Metrics: typed recorders for HTTP, Todoist API, and MCP tool metrics
//   - AuditLogger: structured audit trail for tool invocations
//
// # Configuration
//
// Behavior is driven by environment variables, see DefaultConfig. The
// whole subsystem can be disabled with INSTRUMENTATION_ENABLED=false, in
// which case all recorders become no-ops.
//
// # Cardinality
//
// Metric labels are restricted to low-cardinality values (tool name,
// operation, status). Session-scoped labels are only added when
// METRICS_DETAILED_LABELS is set, and then only as token hashes.
package instrumentation
