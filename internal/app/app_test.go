package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"log-insights/internal/parsers"
	"log-insights/internal/shared/configs"
	"log-insights/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInput = `ip,timestamp,url,status,user_agent
192.168.1.1,2024-02-01 10:15:00,/home,200,Mozilla/5.0
192.168.1.2,2024-02-01 10:16:00,/products,200,Chrome/90.0
192.168.1.3,2024-02-01 10:17:00,/checkout,404,Safari/13.1
192.168.1.9,2024-02-01 10:18:00,/cart
10.0.0.9,2024-02-01 10:18:00,/admin,404,curl/7.68.0
10.0.0.9,2024-02-01 10:18:10,/admin,404,curl/7.68.0
10.0.0.9,2024-02-01 10:18:20,/admin,500,curl/7.68.0
10.0.0.9,2024-02-01 10:18:30,/admin,404,curl/7.68.0
`

func testConfig(t *testing.T, input string) *configs.Config {
	t.Helper()

	inputPath := filepath.Join(t.TempDir(), "access_log.csv")
	require.NoError(t, os.WriteFile(inputPath, []byte(input), 0644))

	return &configs.Config{
		Log: configs.LogConfig{Level: "error"},
		Input: configs.InputConfig{
			Path:       inputPath,
			Delimiter:  ",",
			SkipHeader: true,
		},
		Analysis: configs.AnalysisConfig{
			TopK:                3,
			FailureStatuses:     []int{404, 500},
			SuspiciousThreshold: 3,
			MinutePrefixLength:  16,
		},
		Report: configs.ReportConfig{RootDir: t.TempDir()},
	}
}

func readArtifact(t *testing.T, cfg *configs.Config, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(cfg.Report.RootDir, name))
	require.NoError(t, err, "artifact %s", name)
	return string(data)
}

func TestApp_Run_EndToEnd(t *testing.T) {
	cfg := testConfig(t, sampleInput)

	application, err := New(cfg)
	require.NoError(t, err)

	require.NoError(t, application.Run(context.Background()))

	assert.Equal(t, "7\n", readArtifact(t, cfg, "total_requests"))
	assert.Equal(t, "200\t2\n404\t4\n500\t1\n", readArtifact(t, cfg, "status_code_analysis"))
	assert.Equal(t, "/admin\t4\n/home\t1\n/products\t1\n", readArtifact(t, cfg, "top_pages"))
	assert.Equal(t, "curl/7.68.0\t4\nMozilla/5.0\t1\nChrome/90.0\t1\nSafari/13.1\t1\n",
		readArtifact(t, cfg, "traffic_sources"))
	assert.Equal(t, "10.0.0.9\t4\n", readArtifact(t, cfg, "suspicious_ips"))
	assert.Equal(t,
		"2024-02-01 10:15\t1\n2024-02-01 10:16\t1\n2024-02-01 10:17\t1\n2024-02-01 10:18\t4\n",
		readArtifact(t, cfg, "traffic_trend"))

	assert.Equal(t,
		"192.168.1.1,2024-02-01 10:15:00,/home,200,Mozilla/5.0\n"+
			"192.168.1.2,2024-02-01 10:16:00,/products,200,Chrome/90.0\n",
		readArtifact(t, cfg, filepath.Join("partitioned", "200", "records.csv")))
	assert.Equal(t,
		"192.168.1.3,2024-02-01 10:17:00,/checkout,404,Safari/13.1\n"+
			"10.0.0.9,2024-02-01 10:18:00,/admin,404,curl/7.68.0\n"+
			"10.0.0.9,2024-02-01 10:18:10,/admin,404,curl/7.68.0\n"+
			"10.0.0.9,2024-02-01 10:18:30,/admin,404,curl/7.68.0\n",
		readArtifact(t, cfg, filepath.Join("partitioned", "404", "records.csv")))
	assert.Equal(t,
		"10.0.0.9,2024-02-01 10:18:20,/admin,500,curl/7.68.0\n",
		readArtifact(t, cfg, filepath.Join("partitioned", "500", "records.csv")))
}

func TestApp_Run_ByteIdenticalAcrossRuns(t *testing.T) {
	cfg := testConfig(t, sampleInput)

	application, err := New(cfg)
	require.NoError(t, err)

	artifacts := []string{
		"total_requests", "status_code_analysis", "top_pages",
		"traffic_sources", "suspicious_ips", "traffic_trend",
	}

	require.NoError(t, application.Run(context.Background()))
	first := make(map[string]string)
	for _, name := range artifacts {
		first[name] = readArtifact(t, cfg, name)
	}

	require.NoError(t, application.Run(context.Background()))
	for _, name := range artifacts {
		assert.Equal(t, first[name], readArtifact(t, cfg, name), "artifact %s", name)
	}
}

func TestApp_Run_StrictModeAbortsOnMalformedLine(t *testing.T) {
	cfg := testConfig(t, sampleInput)
	cfg.Input.Strict = true

	application, err := New(cfg)
	require.NoError(t, err)

	err = application.Run(context.Background())
	require.Error(t, err)

	svcErr, ok := svcerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, parsers.CodeFieldCount, svcErr.Code)

	// Nothing was exported
	_, statErr := os.Stat(filepath.Join(cfg.Report.RootDir, "total_requests"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestApp_Run_InputUnavailable(t *testing.T) {
	cfg := testConfig(t, sampleInput)
	cfg.Input.Path = filepath.Join(cfg.Report.RootDir, "missing.csv")

	application, err := New(cfg)
	require.NoError(t, err)

	err = application.Run(context.Background())
	require.Error(t, err)

	svcErr, ok := svcerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "RUN_1000", svcErr.Code)
}

func TestApp_Run_RecordsHistory(t *testing.T) {
	cfg := testConfig(t, sampleInput)
	cfg.History = configs.HistoryConfig{
		Enabled: true,
		DBPath:  filepath.Join(t.TempDir(), "runs.db"),
	}

	application, err := New(cfg)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, application.Shutdown(context.Background()))
	}()

	require.NoError(t, application.Run(context.Background()))

	runs, err := application.runStore.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, int64(7), runs[0].TotalRequests)
	assert.Equal(t, int64(1), runs[0].MalformedLines)
	assert.Equal(t, cfg.Input.Path, runs[0].InputPath)
}
