package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability records review outcomes through an OTel meter exported to
// the default Prometheus registry. The zero value is a no-op.
type Observability struct {
	meterProvider *metric.MeterProvider
	reviewCounter otelmetric.Int64Counter
	reviewLatency otelmetric.Float64Histogram
}

func New(serviceName string) (*Observability, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return &Observability{}, err
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	reviewCounter, err := meter.Int64Counter(
		"reviews.served",
		otelmetric.WithDescription("Number of review responses produced"),
	)
	if err != nil {
		return &Observability{meterProvider: provider}, err
	}

	reviewLatency, err := meter.Float64Histogram(
		"reviews.duration",
		otelmetric.WithDescription("Review response build duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return &Observability{meterProvider: provider}, err
	}

	return &Observability{
		meterProvider: provider,
		reviewCounter: reviewCounter,
		reviewLatency: reviewLatency,
	}, nil
}

// RecordReview counts one handled request with its outcome.
func (o *Observability) RecordReview(ctx context.Context, intent, outcome string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("intent", intent),
		attribute.String("outcome", outcome),
	)
	if o.reviewCounter != nil {
		o.reviewCounter.Add(ctx, 1, attrs)
	}
	if o.reviewLatency != nil {
		o.reviewLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	}
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = o.meterProvider.Shutdown(ctx)
}
