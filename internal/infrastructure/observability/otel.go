// Package observability wires OpenTelemetry tracing, metrics and logs for the todos server.
package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const exportTimeout = 10 * time.Second

// OTLP transport protocols, named as in OTEL_EXPORTER_OTLP_PROTOCOL.
const (
	ProtocolHTTP = "http/protobuf"
	ProtocolGRPC = "grpc"
)

// ErrUnsupportedProtocol is returned for an OTLP protocol other than grpc or http/protobuf.
var ErrUnsupportedProtocol = errors.New("unsupported OTLP protocol")

// Config holds observability configuration.
type Config struct {
	Enabled     bool   // export over OTLP when true
	ServiceName string // service.name unless OTEL_SERVICE_NAME overrides it
	Protocol    string // ProtocolHTTP (default) or ProtocolGRPC
}

// Telemetry holds the installed providers and the process logger.
type Telemetry struct {
	Logger *slog.Logger

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	loggerProvider *log.LoggerProvider
}

// Setup installs global tracer and meter providers and builds the logger.
// When cfg.Enabled is false the providers record nothing and logs go to
// stdout as JSON.
func Setup(ctx context.Context, cfg Config) (*Telemetry, error) {
	return setup(ctx, cfg, os.Stdout)
}

func setup(ctx context.Context, cfg Config, stdout io.Writer) (*Telemetry, error) {
	if !cfg.Enabled {
		t := &Telemetry{
			Logger:         slog.New(slog.NewJSONHandler(stdout, nil)),
			tracerProvider: sdktrace.NewTracerProvider(),
			meterProvider:  sdkmetric.NewMeterProvider(),
			loggerProvider: log.NewLoggerProvider(),
		}
		otel.SetTracerProvider(t.tracerProvider)
		otel.SetMeterProvider(t.meterProvider)
		return t, nil
	}

	protocol := cfg.Protocol
	if protocol == "" {
		protocol = ProtocolHTTP
	}
	if protocol != ProtocolHTTP && protocol != ProtocolGRPC {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProtocol, protocol)
	}

	res, err := newResource(ctx, cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	t := &Telemetry{}
	if t.tracerProvider, err = newTracerProvider(protocol, res); err != nil {
		return nil, err
	}
	if t.meterProvider, err = newMeterProvider(protocol, res); err != nil {
		return nil, errors.Join(err, t.tracerProvider.Shutdown(ctx))
	}
	if t.loggerProvider, err = newLoggerProvider(protocol, res); err != nil {
		return nil, errors.Join(err, t.Shutdown(ctx))
	}

	otel.SetTracerProvider(t.tracerProvider)
	otel.SetMeterProvider(t.meterProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	t.Logger = otelslog.NewLogger(cfg.ServiceName, otelslog.WithLoggerProvider(t.loggerProvider))
	return t, nil
}

// Shutdown flushes and stops every provider. Safe on a partially built Telemetry.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.loggerProvider != nil {
		errs = append(errs, t.loggerProvider.Shutdown(ctx))
	}
	if t.meterProvider != nil {
		errs = append(errs, t.meterProvider.Shutdown(ctx))
	}
	if t.tracerProvider != nil {
		errs = append(errs, t.tracerProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// newResource combines SDK attributes, serviceName and OTEL_RESOURCE_ATTRIBUTES.
// Env attributes are detected last and win.
func newResource(ctx context.Context, serviceName string) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithTelemetrySDK(),
		resource.WithAttributes(semconv.ServiceName(serviceName)),
		resource.WithFromEnv(),
	)
	if err != nil {
		// A partial resource is still usable.
		if errors.Is(err, resource.ErrPartialResource) {
			return res, nil
		}
		return nil, fmt.Errorf("failed to create service resource: %w", err)
	}

	return res, nil
}

// Exporters read OTEL_EXPORTER_OTLP_ENDPOINT and OTEL_EXPORTER_OTLP_HEADERS.
// They are created with context.Background() so a cancelled startup
// context does not break export at shutdown. gRPC exporters dial lazily.

func newTracerProvider(protocol string, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	var (
		exporter sdktrace.SpanExporter
		err      error
	)
	if protocol == ProtocolGRPC {
		exporter, err = otlptracegrpc.New(context.Background(), otlptracegrpc.WithTimeout(exportTimeout))
	} else {
		exporter, err = otlptracehttp.New(context.Background(), otlptracehttp.WithTimeout(exportTimeout))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
	), nil
}

func newMeterProvider(protocol string, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	var (
		exporter sdkmetric.Exporter
		err      error
	)
	if protocol == ProtocolGRPC {
		exporter, err = otlpmetricgrpc.New(context.Background(), otlpmetricgrpc.WithTimeout(exportTimeout))
	} else {
		exporter, err = otlpmetrichttp.New(context.Background(), otlpmetrichttp.WithTimeout(exportTimeout))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(15*time.Second))),
	), nil
}

func newLoggerProvider(protocol string, res *resource.Resource) (*log.LoggerProvider, error) {
	var (
		exporter log.Exporter
		err      error
	)
	if protocol == ProtocolGRPC {
		exporter, err = otlploggrpc.New(context.Background(), otlploggrpc.WithTimeout(exportTimeout))
	} else {
		exporter, err = otlploghttp.New(context.Background(), otlploghttp.WithTimeout(exportTimeout))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create log exporter: %w", err)
	}

	return log.NewLoggerProvider(
		log.WithProcessor(log.NewBatchProcessor(exporter, log.WithExportTimeout(5*time.Second))),
		log.WithResource(res),
	), nil
}
