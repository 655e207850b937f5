package exporters

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"log-insights/internal/models"
	"log-insights/internal/partitioners"
	"log-insights/internal/shared/filestorages"
	"log-insights/internal/shared/loggers"
	"log-insights/internal/shared/metrics"
	"log-insights/internal/shared/svcerrors"
)

const (
	partitionDir      = "partitioned"
	partitionFileName = "records.csv"
)

//go:generate mockgen -source=partition_exporter.go -destination=./mocks/partition_exporter_mock.go -package=mocks
type PartitionExporter interface {
	// Export writes each partition's raw records under
	// partitioned/<status>/, header-free, in the input's delimited
	// format. Partitions are independent targets like report artifacts.
	Export(ctx context.Context, partitions []partitioners.StatusPartition) error
}

type partitionExporter struct {
	fileStorage filestorages.FileStorage
	delimiter   string
}

func NewPartitionExporter(fileStorage filestorages.FileStorage, delimiter string) PartitionExporter {
	return &partitionExporter{
		fileStorage: fileStorage,
		delimiter:   delimiter,
	}
}

func (e *partitionExporter) Export(ctx context.Context, partitions []partitioners.StatusPartition) error {
	logger := loggers.Ctx(ctx)

	var firstErr *svcerrors.ServiceError
	for _, partition := range partitions {
		key := fmt.Sprintf("%s/%d/%s", partitionDir, partition.Status, partitionFileName)

		_, err := e.fileStorage.Put(ctx, key, strings.NewReader(e.renderPartition(partition.Records)))
		if err != nil {
			svcErr := errExportFailed(key, err)
			metricTargetsExportedTotal.WithLabelValues(key, svcErr.Code).Inc()
			logger.Error().
				Err(err).
				Str(loggers.FieldTarget, key).
				Str(loggers.FieldErrorCode, svcErr.Code).
				Msg("failed to export partition")
			if firstErr == nil {
				firstErr = svcErr
			}
			continue
		}
		metricTargetsExportedTotal.WithLabelValues(key, metrics.ValueNoError).Inc()
	}

	if firstErr != nil {
		return firstErr
	}
	return nil
}

func (e *partitionExporter) renderPartition(records []*models.Record) string {
	var b strings.Builder
	for _, record := range records {
		b.WriteString(record.IP)
		b.WriteString(e.delimiter)
		b.WriteString(record.Timestamp)
		b.WriteString(e.delimiter)
		b.WriteString(record.URL)
		b.WriteString(e.delimiter)
		b.WriteString(strconv.Itoa(record.Status))
		b.WriteString(e.delimiter)
		b.WriteString(record.UserAgent)
		b.WriteString("\n")
	}
	return b.String()
}
