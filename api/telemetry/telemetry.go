// Package telemetry provides OpenTelemetry tracing and metrics for the dex
// API. Spans go to an OTLP/HTTP collector and metrics are exposed through a
// Prometheus registerer.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName = "tokenest-dex"

	metricRequests = "tokenest.api.requests"
	metricDuration = "tokenest.api.request.duration"
)

// Config holds the configuration for telemetry
type Config struct {
	Enabled bool

	// Endpoint is the OTLP/HTTP collector, e.g. localhost:4318.
	Endpoint    string
	SampleRate  float64
	Environment string
	ChainID     string
	Version     string

	PrometheusEnabled bool
}

// DefaultConfig returns a disabled configuration that samples every trace
// once enabled.
func DefaultConfig() Config {
	return Config{
		Endpoint:          "localhost:4318",
		SampleRate:        1,
		Environment:       "local",
		Version:           "1.0.0",
		PrometheusEnabled: true,
	}
}

// Option customizes a Provider.
type Option func(*options)

type options struct {
	spanProcessor tracesdk.SpanProcessor
	registerer    prometheus.Registerer
}

// WithSpanProcessor sends spans to sp instead of the OTLP exporter.
func WithSpanProcessor(sp tracesdk.SpanProcessor) Option {
	return func(o *options) { o.spanProcessor = sp }
}

// WithRegisterer registers the metrics exporter with reg instead of the
// default Prometheus registerer.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// Provider manages OpenTelemetry tracing and metrics
type Provider struct {
	tracerProvider *tracesdk.TracerProvider
	meterProvider  *metricsdk.MeterProvider
	tracer         trace.Tracer
	meter          metric.Meter
	config         Config

	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// NewProvider initializes a new telemetry provider. A disabled config yields
// a provider whose tracer and meter are no-ops.
func NewProvider(cfg Config, opts ...Option) (*Provider, error) {
	o := options{registerer: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&o)
	}

	p := &Provider{
		config: cfg,
		tracer: tracenoop.NewTracerProvider().Tracer(serviceName),
		meter:  metricnoop.NewMeterProvider().Meter(serviceName),
	}
	if cfg.Enabled {
		if err := validateConfig(cfg, o); err != nil {
			return nil, fmt.Errorf("invalid telemetry config: %w", err)
		}

		res, err := newResource(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create resource: %w", err)
		}
		if err := p.initTracing(res, o); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
		if cfg.PrometheusEnabled {
			if err := p.initMetrics(res, o); err != nil {
				return nil, fmt.Errorf("failed to initialize metrics: %w", err)
			}
		}
	}

	if err := p.initInstruments(); err != nil {
		return nil, err
	}
	return p, nil
}

func validateConfig(cfg Config, o options) error {
	if cfg.Endpoint == "" && o.spanProcessor == nil {
		return errors.New("collector endpoint is required")
	}
	if cfg.Endpoint != "" {
		if _, err := url.Parse(cfg.Endpoint); err != nil {
			return fmt.Errorf("invalid collector endpoint: %w", err)
		}
	}
	if cfg.SampleRate < 0 || cfg.SampleRate > 1 {
		return errors.New("sample rate must be between 0 and 1")
	}
	return nil
}

func newResource(cfg Config) (*resource.Resource, error) {
	return resource.New(
		context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", cfg.Version),
			attribute.String("environment", cfg.Environment),
			attribute.String("chain.id", cfg.ChainID),
		),
	)
}

func (p *Provider) initTracing(res *resource.Resource, o options) error {
	sp := o.spanProcessor
	if sp == nil {
		endpoint := strings.TrimPrefix(p.config.Endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")

		client := otlptracehttp.NewClient(
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure(),
			otlptracehttp.WithURLPath("/v1/traces"),
		)
		exporter, err := otlptrace.New(context.Background(), client)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		sp = tracesdk.NewBatchSpanProcessor(exporter,
			tracesdk.WithMaxExportBatchSize(512),
			tracesdk.WithMaxQueueSize(2048),
			tracesdk.WithBatchTimeout(5*time.Second),
		)
	}

	tp := tracesdk.NewTracerProvider(
		tracesdk.WithSpanProcessor(sp),
		tracesdk.WithResource(res),
		tracesdk.WithSampler(tracesdk.ParentBased(
			tracesdk.TraceIDRatioBased(p.config.SampleRate),
		)),
	)
	otel.SetTracerProvider(tp)

	p.tracerProvider = tp
	p.tracer = tp.Tracer(serviceName)
	return nil
}

func (p *Provider) initMetrics(res *resource.Resource, o options) error {
	exporter, err := otelprom.New(otelprom.WithRegisterer(o.registerer))
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	mp := metricsdk.NewMeterProvider(
		metricsdk.WithResource(res),
		metricsdk.WithReader(exporter),
	)
	otel.SetMeterProvider(mp)

	p.meterProvider = mp
	p.meter = mp.Meter(serviceName)
	return nil
}

func (p *Provider) initInstruments() error {
	var err error
	p.requests, err = p.meter.Int64Counter(
		metricRequests,
		metric.WithDescription("Total number of API requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", metricRequests, err)
	}
	p.duration, err = p.meter.Float64Histogram(
		metricDuration,
		metric.WithDescription("API request latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", metricDuration, err)
	}
	return nil
}

// Shutdown flushes and stops the tracer and meter providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	var err error
	if p.tracerProvider != nil {
		if shutdownErr := p.tracerProvider.Shutdown(ctx); shutdownErr != nil {
			err = fmt.Errorf("failed to shutdown tracer provider: %w", shutdownErr)
		}
	}
	if p.meterProvider != nil {
		if shutdownErr := p.meterProvider.Shutdown(ctx); shutdownErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to shutdown meter provider: %w", shutdownErr))
		}
	}
	return err
}

// Tracer returns the OpenTelemetry tracer
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Meter returns the OpenTelemetry meter
func (p *Provider) Meter() metric.Meter {
	return p.meter
}

// StartSpan starts an internal span named name.
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// RecordRequest counts one served request and its latency.
func (p *Provider) RecordRequest(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
	)
	p.requests.Add(ctx, 1, attrs)
	p.duration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordError records an error on span
func RecordError(span trace.Span, err error) {
	if span != nil && err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// HealthCheck reports whether an enabled provider is fully initialized.
func (p *Provider) HealthCheck() error {
	if !p.config.Enabled {
		return nil
	}
	if p.tracerProvider == nil {
		return errors.New("tracer provider not initialized")
	}
	if p.config.PrometheusEnabled && p.meterProvider == nil {
		return errors.New("meter provider not initialized but Prometheus is enabled")
	}
	return nil
}
