package config

// DefaultServiceName is reported to OpenTelemetry when OTEL_SERVICE_NAME is unset.
const DefaultServiceName = "todos"

// ObservabilityConfig holds observability configuration.
// Endpoint, headers and resource attributes are read by the OTel SDK from
// the standard OTEL_* variables.
type ObservabilityConfig struct {
	OTelEnabled bool   `env:"TODOS_OTEL_ENABLED"`
	ServiceName string `env:"OTEL_SERVICE_NAME"`
	// OTLPProtocol is "http/protobuf" (default) or "grpc".
	OTLPProtocol string `env:"OTEL_EXPORTER_OTLP_PROTOCOL"`
}
