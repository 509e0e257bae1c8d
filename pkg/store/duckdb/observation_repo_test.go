package duckdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beelight/beelight/pkg/model"
)

func newTestRepo(t *testing.T) (*ObservationRepo, context.Context) {
	t.Helper()

	client, err := NewClient(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	require.NoError(t, InitializeSchema(ctx, client))
	return NewObservationRepo(client), ctx
}

func TestObservationRepoAppendAndReadAll(t *testing.T) {
	repo, ctx := newTestRepo(t)

	// Append out of timestamp order; reads come back ordered.
	require.NoError(t, repo.Append(ctx, model.Observation{
		Timestamp: 1700000200, AmbientLight: 300, ScreenBrightness: 60, IsManualAdjustment: true,
	}))
	require.NoError(t, repo.Append(ctx, model.Observation{
		Timestamp: 1700000100, AmbientLight: 150, ScreenBrightness: 40,
	}))

	observations, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, observations, 2)
	assert.Equal(t, int64(1700000100), observations[0].Timestamp)
	assert.False(t, observations[0].IsManualAdjustment)
	assert.Equal(t, int64(1700000200), observations[1].Timestamp)
	assert.True(t, observations[1].IsManualAdjustment)
	assert.Equal(t, 300, observations[1].AmbientLight)
	assert.Equal(t, 60, observations[1].ScreenBrightness)
}

func TestObservationRepoInsertBatch(t *testing.T) {
	repo, ctx := newTestRepo(t)

	batch := []model.Observation{
		{Timestamp: 1700000100, AmbientLight: 150, ScreenBrightness: 40, IsManualAdjustment: true},
		{Timestamp: 1700000200, AmbientLight: 300, ScreenBrightness: 60},
		{Timestamp: 1700000300, AmbientLight: 900, ScreenBrightness: 85, IsManualAdjustment: true},
	}
	require.NoError(t, repo.InsertBatch(ctx, batch))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	manual, err := repo.CountManual(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), manual)

	observations, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, batch, observations)
}

func TestObservationRepoGetByTimeRange(t *testing.T) {
	repo, ctx := newTestRepo(t)

	require.NoError(t, repo.InsertBatch(ctx, []model.Observation{
		{Timestamp: 100, AmbientLight: 10, ScreenBrightness: 20},
		{Timestamp: 200, AmbientLight: 20, ScreenBrightness: 30, IsManualAdjustment: true},
		{Timestamp: 300, AmbientLight: 30, ScreenBrightness: 40, IsManualAdjustment: true},
		{Timestamp: 400, AmbientLight: 40, ScreenBrightness: 50},
	}))

	// Bounds are inclusive on both ends.
	observations, err := repo.GetByTimeRange(ctx, 200, 300)
	require.NoError(t, err)
	require.Len(t, observations, 2)
	assert.Equal(t, int64(200), observations[0].Timestamp)
	assert.Equal(t, int64(300), observations[1].Timestamp)

	empty, err := repo.GetByTimeRange(ctx, 500, 600)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestObservationRepoEmpty(t *testing.T) {
	repo, ctx := newTestRepo(t)

	observations, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, observations)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
