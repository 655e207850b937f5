package app

import (
	"context"
	"fmt"
	nethttp "net/http"
	"os"
	"time"

	"log-insights/internal/analyzers"
	"log-insights/internal/exporters"
	internalhttp "log-insights/internal/http"
	"log-insights/internal/models"
	"log-insights/internal/parsers"
	"log-insights/internal/partitioners"
	"log-insights/internal/shared/configs"
	"log-insights/internal/shared/filestorages"
	"log-insights/internal/shared/loggers"
	"log-insights/internal/shared/ulid"
	"log-insights/internal/stores"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger

	parser            *parsers.LineParser
	insightService    analyzers.InsightService
	reportExporter    exporters.ReportExporter
	partitionExporter exporters.PartitionExporter

	runStore  stores.RunStore // nil when history is disabled
	opsServer *nethttp.Server // nil when the ops listener is disabled
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "log-insights").
		Logger()

	// Report output storage
	fileStorage, err := filestorages.NewFileStorage(config.Report.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize report storage: %w", err)
	}

	// Parsing and analysis
	parser := parsers.NewLineParser(config.Input.Delimiter, config.Input.SkipHeader)
	insightService := analyzers.NewInsightService(analyzers.Settings{
		TopK:                config.Analysis.TopK,
		FailureStatuses:     config.Analysis.FailureStatuses,
		SuspiciousThreshold: config.Analysis.SuspiciousThreshold,
		MinutePrefixLength:  config.Analysis.MinutePrefixLength,
		NormalizeUserAgents: config.Analysis.NormalizeUserAgents,
	})

	// Export
	reportExporter := exporters.NewReportExporter(fileStorage)
	partitionExporter := exporters.NewPartitionExporter(fileStorage, config.Input.Delimiter)

	app := &App{
		config:            config,
		appLogger:         appLogger,
		parser:            parser,
		insightService:    insightService,
		reportExporter:    reportExporter,
		partitionExporter: partitionExporter,
	}

	if config.History.Enabled {
		runStore, err := stores.NewRunStore(config.History.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize run history: %w", err)
		}
		app.runStore = runStore
	}

	if config.OpsServer.Enabled {
		httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
		app.opsServer = &nethttp.Server{
			Addr:              fmt.Sprintf(":%d", config.OpsServer.Port),
			Handler:           internalhttp.NewRouter(httpLogger),
			ReadHeaderTimeout: time.Duration(config.OpsServer.ReadHeaderTimeout) * time.Second,
			ReadTimeout:       time.Duration(config.OpsServer.ReadTimeout) * time.Second,
			WriteTimeout:      time.Duration(config.OpsServer.WriteTimeout) * time.Second,
			IdleTimeout:       time.Duration(config.OpsServer.IdleTimeout) * time.Second,
		}
	}

	return app, nil
}

// Run executes one batch pass: parse, analyze, partition, export, record.
func (app *App) Run(ctx context.Context) error {
	runID := ulid.NewULID()
	runLogger := app.appLogger.With().Str(loggers.FieldRunID, runID).Logger()
	ctx = runLogger.WithContext(ctx)

	runLogger.Info().
		Str("input_path", app.config.Input.Path).
		Str("report_root_dir", app.config.Report.RootDir).
		Msg("starting run")

	startedAt := time.Now()

	records, malformedLines, err := app.parseInput(ctx)
	if err != nil {
		app.countRunResult(err)
		return err
	}

	report, err := app.insightService.Build(ctx, runID, records)
	if err != nil {
		app.countRunResult(err)
		return err
	}

	if err := app.reportExporter.Export(ctx, report); err != nil {
		app.countRunResult(err)
		return err
	}

	partitions := partitioners.ByStatus(records)
	if err := app.partitionExporter.Export(ctx, partitions); err != nil {
		app.countRunResult(err)
		return err
	}

	duration := time.Since(startedAt)

	if app.runStore != nil {
		runRecord := &models.RunRecord{
			RunID:          runID,
			InputPath:      app.config.Input.Path,
			TotalRequests:  report.TotalRequests,
			MalformedLines: malformedLines,
			StartedAt:      startedAt.UTC(),
			Duration:       duration,
		}
		// History is bookkeeping: a failure here does not undo a
		// successfully exported run.
		if err := app.runStore.Record(ctx, runRecord); err != nil {
			runLogger.Warn().Err(err).Msg("failed to record run history")
		}
	}

	app.countRunResult(nil)
	metricRunDuration.WithLabelValues().Observe(duration.Seconds())

	runLogger.Info().
		Int64("total_requests", report.TotalRequests).
		Int64("malformed_lines", malformedLines).
		Int("partitions", len(partitions)).
		Int64(loggers.FieldDuration, duration.Milliseconds()).
		Msg("run completed")

	return nil
}

// parseInput reads and parses the input file. With the default policy a
// malformed line is counted, logged, and skipped; in strict mode the first
// one aborts the run. A reader failure is always fatal.
func (app *App) parseInput(ctx context.Context) ([]*models.Record, int64, error) {
	file, err := os.Open(app.config.Input.Path)
	if err != nil {
		return nil, 0, errInputUnavailable(app.config.Input.Path, err)
	}
	defer file.Close()

	logger := loggers.Ctx(ctx)

	var records []*models.Record
	var malformedLines int64
	for record, parseErr := range app.parser.Parse(file) {
		if parseErr != nil {
			if parseErr.Err.IsInternalError() {
				return nil, 0, parseErr
			}
			if app.config.Input.Strict {
				return nil, 0, parseErr
			}
			malformedLines++
			logger.Warn().
				Int(loggers.FieldLine, parseErr.Line).
				Str(loggers.FieldErrorCode, parseErr.Err.Code).
				Msg("skipping malformed line")
			continue
		}
		records = append(records, record)
	}

	return records, malformedLines, nil
}

// StartOpsServer starts the observability listener when configured.
func (app *App) StartOpsServer() {
	if app.opsServer == nil {
		return
	}

	app.appLogger.Info().Msgf("Starting ops server on %s", app.opsServer.Addr)
	go func() {
		if err := app.opsServer.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
			app.appLogger.Error().Err(err).Msg("ops server failed")
		}
	}()
}

// Shutdown releases the app's long-lived resources.
func (app *App) Shutdown(ctx context.Context) error {
	if app.opsServer != nil {
		if err := app.opsServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("ops server shutdown failed: %w", err)
		}
		app.appLogger.Info().Msg("Ops server stopped")
	}

	if app.runStore != nil {
		if err := app.runStore.Close(); err != nil {
			return fmt.Errorf("run history close failed: %w", err)
		}
	}

	return nil
}
