package instrumentation

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.ServiceName != "todoist-mcp" {
		t.Errorf("ServiceName = %q, want %q", config.ServiceName, "todoist-mcp")
	}
	if !config.Enabled {
		t.Error("Enabled should default to true")
	}
	if config.MetricsExporter != ExporterPrometheus {
		t.Errorf("MetricsExporter = %q, want %q", config.MetricsExporter, ExporterPrometheus)
	}
	if config.TracingExporter != ExporterNone {
		t.Errorf("TracingExporter = %q, want %q", config.TracingExporter, ExporterNone)
	}
	if config.TraceSamplingRate != 0.1 {
		t.Errorf("TraceSamplingRate = %f, want 0.1", config.TraceSamplingRate)
	}
	if config.PrometheusEndpoint != "/metrics" {
		t.Errorf("PrometheusEndpoint = %q, want %q", config.PrometheusEndpoint, "/metrics")
	}
	if !config.AuditLogging.Enabled {
		t.Error("AuditLogging.Enabled should default to true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "default is valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "sampling rate too high", mutate: func(c *Config) { c.TraceSamplingRate = 1.5 }, wantErr: true},
		{name: "sampling rate negative", mutate: func(c *Config) { c.TraceSamplingRate = -0.1 }, wantErr: true},
		{name: "invalid metrics exporter", mutate: func(c *Config) { c.MetricsExporter = "statsd" }, wantErr: true},
		{name: "invalid tracing exporter", mutate: func(c *Config) { c.TracingExporter = "jaeger" }, wantErr: true},
		{name: "otlp metrics without endpoint", mutate: func(c *Config) { c.MetricsExporter = ExporterOTLP }, wantErr: true},
		{name: "otlp tracing without endpoint", mutate: func(c *Config) { c.TracingExporter = ExporterOTLP }, wantErr: true},
		{name: "otlp with endpoint", mutate: func(c *Config) {
			c.MetricsExporter = ExporterOTLP
			c.TracingExporter = ExporterOTLP
			c.OTLPEndpoint = "localhost:4318"
		}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)

			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
