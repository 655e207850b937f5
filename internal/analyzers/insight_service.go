package analyzers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log-insights/internal/models"
	"log-insights/internal/shared/loggers"
)

// Analysis names, used for logging, metrics labels, and export targets.
const (
	AnalysisTotalRequests  = "total_requests"
	AnalysisStatusCodes    = "status_code_analysis"
	AnalysisTopPages       = "top_pages"
	AnalysisTrafficSources = "traffic_sources"
	AnalysisSuspiciousIPs  = "suspicious_ips"
	AnalysisTrafficTrend   = "traffic_trend"
)

const analysisCount = 6

// Settings tunes the individual analyses.
type Settings struct {
	TopK                int
	FailureStatuses     []int
	SuspiciousThreshold int
	MinutePrefixLength  int
	NormalizeUserAgents bool
}

//go:generate mockgen -source=insight_service.go -destination=./mocks/insight_service_mock.go -package=mocks
type InsightService interface {
	// Build runs the six analyses over the record sequence and assembles
	// an InsightReport.
	Build(ctx context.Context, runID string, records []*models.Record) (*models.InsightReport, error)
}

type insightService struct {
	settings Settings
}

func NewInsightService(settings Settings) InsightService {
	return &insightService{settings: settings}
}

// Build fans the analyses out, one goroutine each. The analyses are
// independent pure folds over the same immutable sequence and each writes
// a distinct report field, so no synchronization beyond the join is needed.
// Cancelling ctx aborts every analysis.
func (s *insightService) Build(ctx context.Context, runID string, records []*models.Record) (*models.InsightReport, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Int("records", len(records)).Msg("started building insight report")

	report := &models.InsightReport{RunID: runID}

	var wg sync.WaitGroup
	errCh := make(chan error, analysisCount)

	run := func(analysis string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			if err := fn(); err != nil {
				errCh <- fmt.Errorf("analysis %s failed: %w", analysis, err)
				return
			}
			metricAnalysisDuration.WithLabelValues(analysis).Observe(time.Since(start).Seconds())
		}()
	}

	run(AnalysisTotalRequests, func() error {
		total, err := TotalRequests(ctx, records)
		report.TotalRequests = total
		return err
	})
	run(AnalysisStatusCodes, func() error {
		histogram, err := StatusHistogram(ctx, records)
		report.StatusCounts = histogram
		return err
	})
	run(AnalysisTopPages, func() error {
		pages, err := TopPages(ctx, records, s.settings.TopK)
		report.TopPages = pages
		return err
	})
	run(AnalysisTrafficSources, func() error {
		sources, err := TrafficSources(ctx, records, s.settings.NormalizeUserAgents)
		report.TrafficSources = sources
		return err
	})
	run(AnalysisSuspiciousIPs, func() error {
		suspicious, err := SuspiciousIPs(ctx, records, s.settings.FailureStatuses, s.settings.SuspiciousThreshold)
		report.SuspiciousIPs = suspicious
		return err
	})
	run(AnalysisTrafficTrend, func() error {
		trend, err := TrafficTrend(ctx, records, s.settings.MinutePrefixLength)
		report.TrafficTrend = trend
		return err
	})

	wg.Wait()
	close(errCh)
	if err := <-errCh; err != nil {
		return nil, err
	}

	return report, nil
}
