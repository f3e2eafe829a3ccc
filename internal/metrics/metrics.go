package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	listLoads        metric.Int64Counter
	listLoadFailures metric.Int64Counter
	loadsDropped     metric.Int64Counter
	mutations        metric.Int64Counter
	accessDenied     metric.Int64Counter
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.listLoads, err = meter.Int64Counter(
		"admin_client.list.loads",
		metric.WithDescription("Total number of list pages loaded"),
		metric.WithUnit("{page}"),
	)
	if err != nil {
		return nil, err
	}

	m.listLoadFailures, err = meter.Int64Counter(
		"admin_client.list.load_failures",
		metric.WithDescription("Total number of failed list loads"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	m.loadsDropped, err = meter.Int64Counter(
		"admin_client.list.loads_dropped",
		metric.WithDescription("Loads ignored because one was already in flight"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	m.mutations, err = meter.Int64Counter(
		"admin_client.mutations",
		metric.WithDescription("Total number of mutating calls by operation and outcome"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	m.accessDenied, err = meter.Int64Counter(
		"admin_client.access_denied",
		metric.WithDescription("Mutations rejected by the role gate"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) RecordListLoad(ctx context.Context, list string) {
	if m != nil && m.listLoads != nil {
		m.listLoads.Add(ctx, 1, metric.WithAttributes(attribute.String("list", list)))
	}
}

func (m *Metrics) RecordListLoadFailure(ctx context.Context, list string) {
	if m != nil && m.listLoadFailures != nil {
		m.listLoadFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("list", list)))
	}
}

func (m *Metrics) RecordLoadDropped(ctx context.Context, list string) {
	if m != nil && m.loadsDropped != nil {
		m.loadsDropped.Add(ctx, 1, metric.WithAttributes(attribute.String("list", list)))
	}
}

func (m *Metrics) RecordMutation(ctx context.Context, operation string, success bool) {
	if m != nil && m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.Bool("success", success),
		))
	}
}

func (m *Metrics) RecordAccessDenied(ctx context.Context, resource string) {
	if m != nil && m.accessDenied != nil {
		m.accessDenied.Add(ctx, 1, metric.WithAttributes(attribute.String("resource", resource)))
	}
}
