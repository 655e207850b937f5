package analyzers

import (
	"context"
	"testing"

	"log-insights/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultSettings() Settings {
	return Settings{
		TopK:                3,
		FailureStatuses:     []int{404, 500},
		SuspiciousThreshold: 3,
		MinutePrefixLength:  16,
	}
}

func TestInsightService_Build(t *testing.T) {
	t.Parallel()

	service := NewInsightService(defaultSettings())

	records := []*models.Record{
		record("192.168.1.1", "2024-02-01 10:15:00", "/home", 200, "Mozilla/5.0"),
		record("192.168.1.2", "2024-02-01 10:16:00", "/products", 200, "Chrome/90.0"),
		record("192.168.1.3", "2024-02-01 10:17:00", "/checkout", 404, "Safari/13.1"),
	}

	report, err := service.Build(context.Background(), "run-1", records)
	require.NoError(t, err)

	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, int64(3), report.TotalRequests)
	assert.Equal(t, map[int]int64{200: 2, 404: 1}, report.StatusCounts)
	assert.Equal(t, []models.PageCount{
		{URL: "/home", Count: 1},
		{URL: "/products", Count: 1},
		{URL: "/checkout", Count: 1},
	}, report.TopPages)
	assert.Equal(t, []models.SourceCount{
		{UserAgent: "Mozilla/5.0", Count: 1},
		{UserAgent: "Chrome/90.0", Count: 1},
		{UserAgent: "Safari/13.1", Count: 1},
	}, report.TrafficSources)
	assert.Empty(t, report.SuspiciousIPs)
	assert.Equal(t, []models.MinuteCount{
		{Minute: "2024-02-01 10:15", Count: 1},
		{Minute: "2024-02-01 10:16", Count: 1},
		{Minute: "2024-02-01 10:17", Count: 1},
	}, report.TrafficTrend)
}

func TestInsightService_Build_EmptyInput(t *testing.T) {
	t.Parallel()

	service := NewInsightService(defaultSettings())

	report, err := service.Build(context.Background(), "run-2", nil)
	require.NoError(t, err)

	assert.Equal(t, int64(0), report.TotalRequests)
	assert.Empty(t, report.StatusCounts)
	assert.Empty(t, report.TopPages)
	assert.Empty(t, report.TrafficSources)
	assert.Empty(t, report.SuspiciousIPs)
	assert.Empty(t, report.TrafficTrend)
}

func TestInsightService_Build_Cancelled(t *testing.T) {
	t.Parallel()

	service := NewInsightService(defaultSettings())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := service.Build(ctx, "run-3", sampleRecords())
	assert.Nil(t, report)
	assert.ErrorIs(t, err, context.Canceled)
}
