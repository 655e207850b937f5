package analyzers

import (
	"log-insights/internal/shared/metrics"
)

var (
	metricAnalysisDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{metrics.FieldAnalysis},
	)
)
