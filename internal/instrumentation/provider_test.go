package instrumentation

import (
	"context"
	"testing"
)

func TestNewProviderDisabled(t *testing.T) {
	config := DefaultConfig()
	config.Enabled = false

	p, err := NewProvider(context.Background(), config)
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	if p.Enabled() {
		t.Error("Enabled() = true, want false")
	}
	if p.Metrics() == nil {
		t.Error("Metrics() should return a no-op recorder, got nil")
	}
	if p.Tracer("test") == nil {
		t.Error("Tracer() should return a noop tracer, got nil")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewMetricReaderErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "otlp without endpoint", mutate: func(c *Config) { c.MetricsExporter = ExporterOTLP }},
		{name: "unsupported exporter", mutate: func(c *Config) { c.MetricsExporter = "statsd" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)

			if _, _, err := newMetricReader(context.Background(), config); err == nil {
				t.Error("newMetricReader() expected error, got nil")
			}
		})
	}
}

func TestNewSpanExporterErrors(t *testing.T) {
	config := DefaultConfig()
	config.TracingExporter = ExporterOTLP

	if _, err := newSpanExporter(context.Background(), config); err == nil {
		t.Error("newSpanExporter() expected error for OTLP without endpoint, got nil")
	}

	config.TracingExporter = "jaeger"
	if _, err := newSpanExporter(context.Background(), config); err == nil {
		t.Error("newSpanExporter() expected error for unsupported exporter, got nil")
	}
}

func TestNewTracerProviderNone(t *testing.T) {
	config := DefaultConfig()
	config.TracingExporter = ExporterNone

	res, err := newResource(context.Background(), config)
	if err != nil {
		t.Fatalf("newResource() error = %v", err)
	}

	tp, err := newTracerProvider(context.Background(), config, res)
	if err != nil {
		t.Fatalf("newTracerProvider() error = %v", err)
	}
	if tp == nil {
		t.Fatal("newTracerProvider() returned nil provider")
	}
	if err := tp.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
