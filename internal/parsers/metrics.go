package parsers

import (
	"log-insights/internal/shared/metrics"
)

var (
	metricLinesParsedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubParse,
			Name:      "lines_parsed_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
