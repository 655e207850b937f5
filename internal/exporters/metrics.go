package exporters

import (
	"log-insights/internal/shared/metrics"
)

var (
	metricTargetsExportedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubExport,
			Name:      "targets_exported_total",
		},
		[]string{metrics.FieldTarget, metrics.FieldErrorCode},
	)
)
