package app

import (
	"log-insights/internal/shared/metrics"
	"log-insights/internal/shared/svcerrors"
)

var (
	metricRunsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubRun,
			Name:      "runs_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricRunDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubRun,
			Name:      "duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{},
	)
)

// countRunResult increments the run counter with the outcome's error code.
func (app *App) countRunResult(err error) {
	if err == nil {
		metricRunsTotal.WithLabelValues(metrics.ValueNoError).Inc()
		return
	}
	if svcErr, ok := svcerrors.As(err); ok {
		metricRunsTotal.WithLabelValues(svcErr.Code).Inc()
		return
	}
	metricRunsTotal.WithLabelValues(svcerrors.NewInternalErrorUndefined(err).Code).Inc()
}
