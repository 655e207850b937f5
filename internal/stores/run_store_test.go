package stores

import (
	"context"
	"testing"
	"time"

	"log-insights/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStore_RecordAndList(t *testing.T) {
	t.Parallel()

	store, err := NewRunStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	first := &models.RunRecord{
		RunID:          "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		InputPath:      "./data/access_log.csv",
		TotalRequests:  1000,
		MalformedLines: 3,
		StartedAt:      time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
		Duration:       1500 * time.Millisecond,
	}
	second := &models.RunRecord{
		RunID:          "01ARZ3NDEKTSV4RRFFQ69G5FB0",
		InputPath:      "./data/access_log.csv",
		TotalRequests:  1200,
		MalformedLines: 0,
		StartedAt:      time.Date(2024, 2, 1, 11, 0, 0, 0, time.UTC),
		Duration:       900 * time.Millisecond,
	}

	require.NoError(t, store.Record(ctx, first))
	require.NoError(t, store.Record(ctx, second))

	runs, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first
	assert.Equal(t, second.RunID, runs[0].RunID)
	assert.Equal(t, int64(1200), runs[0].TotalRequests)
	assert.Equal(t, 900*time.Millisecond, runs[0].Duration)
	assert.Equal(t, first.RunID, runs[1].RunID)
	assert.Equal(t, int64(3), runs[1].MalformedLines)
}

func TestRunStore_List_Limit(t *testing.T) {
	t.Parallel()

	store, err := NewRunStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, &models.RunRecord{
			RunID:     string(rune('a' + i)),
			InputPath: "./data/access_log.csv",
			StartedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	runs, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "e", runs[0].RunID)
	assert.Equal(t, "d", runs[1].RunID)
}

func TestRunStore_Record_DuplicateRunID(t *testing.T) {
	t.Parallel()

	store, err := NewRunStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	run := &models.RunRecord{
		RunID:     "dup",
		InputPath: "./data/access_log.csv",
		StartedAt: time.Now().UTC(),
	}

	require.NoError(t, store.Record(ctx, run))
	assert.Error(t, store.Record(ctx, run))
}
