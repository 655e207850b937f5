package exporters

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"log-insights/internal/analyzers"
	"log-insights/internal/models"
	"log-insights/internal/shared/filestorages"
	"log-insights/internal/shared/loggers"
	"log-insights/internal/shared/metrics"
	"log-insights/internal/shared/svcerrors"
)

//go:generate mockgen -source=report_exporter.go -destination=./mocks/report_exporter_mock.go -package=mocks
type ReportExporter interface {
	// Export writes one artifact per analysis. Targets are independent:
	// a failed target does not roll back or stop the others, and the
	// first failure is returned after every target was attempted.
	Export(ctx context.Context, report *models.InsightReport) error
}

type reportExporter struct {
	fileStorage filestorages.FileStorage
}

func NewReportExporter(fileStorage filestorages.FileStorage) ReportExporter {
	return &reportExporter{fileStorage: fileStorage}
}

func (e *reportExporter) Export(ctx context.Context, report *models.InsightReport) error {
	targets := []struct {
		name   string
		render func() string
	}{
		{analyzers.AnalysisTotalRequests, func() string { return renderTotalRequests(report.TotalRequests) }},
		{analyzers.AnalysisStatusCodes, func() string { return renderStatusCounts(report.StatusCounts) }},
		{analyzers.AnalysisTopPages, func() string { return renderTopPages(report.TopPages) }},
		{analyzers.AnalysisTrafficSources, func() string { return renderTrafficSources(report.TrafficSources) }},
		{analyzers.AnalysisSuspiciousIPs, func() string { return renderSuspiciousIPs(report.SuspiciousIPs) }},
		{analyzers.AnalysisTrafficTrend, func() string { return renderTrafficTrend(report.TrafficTrend) }},
	}

	logger := loggers.Ctx(ctx)

	var firstErr *svcerrors.ServiceError
	for _, target := range targets {
		_, err := e.fileStorage.Put(ctx, target.name, strings.NewReader(target.render()))
		if err != nil {
			svcErr := errExportFailed(target.name, err)
			metricTargetsExportedTotal.WithLabelValues(target.name, svcErr.Code).Inc()
			logger.Error().
				Err(err).
				Str(loggers.FieldTarget, target.name).
				Str(loggers.FieldErrorCode, svcErr.Code).
				Msg("failed to export target")
			if firstErr == nil {
				firstErr = svcErr
			}
			continue
		}
		metricTargetsExportedTotal.WithLabelValues(target.name, metrics.ValueNoError).Inc()
	}

	if firstErr != nil {
		return firstErr
	}
	return nil
}

func renderTotalRequests(total int64) string {
	return strconv.FormatInt(total, 10) + "\n"
}

// renderStatusCounts emits status\tcount lines, status ascending. The
// histogram map is unordered, so the keys are sorted here to keep the
// artifact byte-identical across runs.
func renderStatusCounts(counts map[int]int64) string {
	statuses := make([]int, 0, len(counts))
	for status := range counts {
		statuses = append(statuses, status)
	}
	sort.Ints(statuses)

	var b strings.Builder
	for _, status := range statuses {
		fmt.Fprintf(&b, "%d\t%d\n", status, counts[status])
	}
	return b.String()
}

func renderTopPages(pages []models.PageCount) string {
	var b strings.Builder
	for _, page := range pages {
		fmt.Fprintf(&b, "%s\t%d\n", page.URL, page.Count)
	}
	return b.String()
}

func renderTrafficSources(sources []models.SourceCount) string {
	var b strings.Builder
	for _, source := range sources {
		fmt.Fprintf(&b, "%s\t%d\n", source.UserAgent, source.Count)
	}
	return b.String()
}

func renderSuspiciousIPs(suspicious []models.IPFailureCount) string {
	var b strings.Builder
	for _, entry := range suspicious {
		fmt.Fprintf(&b, "%s\t%d\n", entry.IP, entry.Failures)
	}
	return b.String()
}

func renderTrafficTrend(trend []models.MinuteCount) string {
	var b strings.Builder
	for _, bucket := range trend {
		fmt.Fprintf(&b, "%s\t%d\n", bucket.Minute, bucket.Count)
	}
	return b.String()
}
