package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	serviceName    = "interviewer"
	serviceVersion = "0.1.0"
)

// DurationKey is the event data key holding a remote call duration.
const DurationKey = "duration_ms"

// MetricsConfig holds OTLP exporter configuration.
type MetricsConfig struct {
	Endpoint string
	Enabled  bool
	Insecure bool
}

// NewMeterProvider creates a meter provider exporting over OTLP gRPC.
func NewMeterProvider(ctx context.Context, cfg MetricsConfig) (*sdkmetric.MeterProvider, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)
	return provider, nil
}

// MetricsObserver counts events and records remote call durations.
type MetricsObserver struct {
	events   metric.Int64Counter
	duration metric.Float64Histogram
}

// NewMetricsObserver creates a MetricsObserver using the given meter provider.
func NewMetricsObserver(provider metric.MeterProvider) (*MetricsObserver, error) {
	meter := provider.Meter(serviceName)

	events, err := meter.Int64Counter(
		"interviewer_events_total",
		metric.WithDescription("Total orchestrator events by type"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating events counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		"interviewer_remote_call_duration_ms",
		metric.WithDescription("Duration of assessment service calls"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return &MetricsObserver{events: events, duration: duration}, nil
}

func (o *MetricsObserver) OnEvent(ctx context.Context, event Event) {
	opt := metric.WithAttributes(
		attribute.String("event", string(event.Type)),
		attribute.String("source", event.Source),
	)
	o.events.Add(ctx, 1, opt)

	switch d := event.Data[DurationKey].(type) {
	case int64:
		o.duration.Record(ctx, float64(d), opt)
	case time.Duration:
		o.duration.Record(ctx, float64(d.Milliseconds()), opt)
	}
}
