package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	rowsImported       metric.Int64Counter
	rowsRejected       metric.Int64Counter
	rowsFailed         metric.Int64Counter
	credentialsCreated metric.Int64Counter
	credentialsSkipped metric.Int64Counter
	credentialsFailed  metric.Int64Counter
	queryDuration      metric.Float64Histogram
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.rowsImported, err = meter.Int64Counter(
		"school_service.provisioning.rows_imported",
		metric.WithDescription("Total number of spreadsheet rows inserted as identities"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, err
	}

	m.rowsRejected, err = meter.Int64Counter(
		"school_service.provisioning.rows_rejected",
		metric.WithDescription("Total number of spreadsheet rows rejected by validation"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, err
	}

	m.rowsFailed, err = meter.Int64Counter(
		"school_service.provisioning.rows_failed",
		metric.WithDescription("Total number of rows whose identity insert failed at the store"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, err
	}

	m.credentialsCreated, err = meter.Int64Counter(
		"school_service.provisioning.credentials_created",
		metric.WithDescription("Total number of credentials created"),
		metric.WithUnit("{credential}"),
	)
	if err != nil {
		return nil, err
	}

	m.credentialsSkipped, err = meter.Int64Counter(
		"school_service.provisioning.credentials_skipped",
		metric.WithDescription("Total number of credential inserts skipped as already provisioned"),
		metric.WithUnit("{credential}"),
	)
	if err != nil {
		return nil, err
	}

	m.credentialsFailed, err = meter.Int64Counter(
		"school_service.provisioning.credentials_failed",
		metric.WithDescription("Total number of credential inserts that failed"),
		metric.WithUnit("{credential}"),
	)
	if err != nil {
		return nil, err
	}

	m.queryDuration, err = meter.Float64Histogram(
		"school_service.db.query_duration",
		metric.WithDescription("Database query duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) RecordRowsImported(ctx context.Context, kind string, n int) {
	if m != nil && m.rowsImported != nil {
		m.rowsImported.Add(ctx, int64(n), metric.WithAttributes(attribute.String("kind", kind)))
	}
}

func (m *Metrics) RecordRowsRejected(ctx context.Context, kind string, n int) {
	if m != nil && m.rowsRejected != nil {
		m.rowsRejected.Add(ctx, int64(n), metric.WithAttributes(attribute.String("kind", kind)))
	}
}

func (m *Metrics) RecordRowsFailed(ctx context.Context, kind string, n int) {
	if m != nil && m.rowsFailed != nil {
		m.rowsFailed.Add(ctx, int64(n), metric.WithAttributes(attribute.String("kind", kind)))
	}
}

func (m *Metrics) RecordCredentialsCreated(ctx context.Context, n int) {
	if m != nil && m.credentialsCreated != nil {
		m.credentialsCreated.Add(ctx, int64(n))
	}
}

func (m *Metrics) RecordCredentialsSkipped(ctx context.Context, n int) {
	if m != nil && m.credentialsSkipped != nil {
		m.credentialsSkipped.Add(ctx, int64(n))
	}
}

func (m *Metrics) RecordCredentialsFailed(ctx context.Context, n int) {
	if m != nil && m.credentialsFailed != nil {
		m.credentialsFailed.Add(ctx, int64(n))
	}
}

// RecordQuery records the duration and outcome of one database query
func (m *Metrics) RecordQuery(ctx context.Context, operation, table string, duration time.Duration, err error) {
	if m == nil || m.queryDuration == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.queryDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("table", table),
		attribute.String("status", status),
	))
}

// NewMock creates a no-op Metrics instance for testing
// The returned Metrics will safely ignore all Record* calls
func NewMock() *Metrics {
	return &Metrics{}
}
