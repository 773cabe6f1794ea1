// Package tracing installs the OpenTelemetry tracer provider that pipeline
// stage spans are exported through.
package tracing

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/simplybusiness/kiln-release/internal/config"
	"github.com/simplybusiness/kiln-release/internal/log"
)

// ServiceName is reported as service.name on every exported span.
const ServiceName = "kiln-release"

// ShutdownFunc flushes pending spans and releases exporters.
type ShutdownFunc func(context.Context) error

func noop(context.Context) error { return nil }

// Setup installs a global tracer provider exporting to the file and/or OTLP
// endpoint in cfg, tagging spans with serviceVersion. With neither
// configured the otel no-op provider stays in place and the returned
// ShutdownFunc does nothing.
func Setup(ctx context.Context, cfg config.TracingConfig, serviceVersion string) (ShutdownFunc, error) {
	var (
		opts    []sdktrace.TracerProviderOption
		closers []func() error
	)

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return noop, fmt.Errorf("opening trace file: %w", err)
		}
		exp, err := stdouttrace.New(stdouttrace.WithWriter(f), stdouttrace.WithPrettyPrint())
		if err != nil {
			_ = f.Close()
			return noop, fmt.Errorf("creating file exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exp))
		closers = append(closers, f.Close)
		log.Debug(log.CatPipeline, "Tracing to file", "path", cfg.File)
	}

	if cfg.OTLPEndpoint != "" {
		grpcOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
		if cfg.Insecure {
			grpcOpts = append(grpcOpts, otlptracegrpc.WithInsecure())
		}
		exp, err := otlptracegrpc.New(ctx, grpcOpts...)
		if err != nil {
			return noop, errors.Join(fmt.Errorf("creating OTLP exporter: %w", err), closeAll(closers))
		}
		opts = append(opts, sdktrace.WithBatcher(exp))
		log.Debug(log.CatPipeline, "Tracing to OTLP", "endpoint", cfg.OTLPEndpoint)
	}

	if len(opts) == 0 {
		return noop, nil
	}

	opts = append(opts, sdktrace.WithResource(resource.NewSchemaless(
		attribute.String("service.name", ServiceName),
		attribute.String("service.version", serviceVersion),
	)))
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), closeAll(closers))
	}, nil
}

func closeAll(closers []func() error) error {
	var errs []error
	for _, c := range closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
