package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentline/threadpulse-go/pkg/core"
	"github.com/agentline/threadpulse-go/pkg/engine"
	"github.com/agentline/threadpulse-go/pkg/storage"
)

func TestSweepMarksDormantThenArchives(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	opsThread, err := client.Open(ctx, "Ship payments retry fix",
		core.WithWorkspaceID("ws_1"), core.WithClass(engine.ClassOperational))
	require.NoError(t, err)
	backlogThread, err := client.Open(ctx, "OD-7 migrate analytics warehouse",
		core.WithWorkspaceID("ws_1"))
	require.NoError(t, err)

	t0 := opsThread.CreatedAt

	first, err := client.Sweep(ctx,
		core.WithWorkspaceIDForSweep("ws_1"),
		core.WithSweepTime(t0.Add(60*24*time.Hour)),
		core.WithSweepRunID("sweep-60d"))
	require.NoError(t, err)
	assert.Equal(t, "sweep-60d", first.RunID)
	assert.Equal(t, 2, first.Evaluated)
	assert.Equal(t, 2, first.Updated)
	assert.Equal(t, 2, first.DormantMarked)
	assert.Equal(t, 0, first.Archived)

	// Thirty-five days past the watermark both threads age out.
	second, err := client.Sweep(ctx,
		core.WithWorkspaceIDForSweep("ws_1"),
		core.WithSweepTime(t0.Add(95*24*time.Hour)))
	require.NoError(t, err)
	assert.NotEmpty(t, second.RunID)
	assert.Equal(t, 2, second.Evaluated)
	assert.Equal(t, 2, second.Archived)
	assert.Equal(t, 0, second.DormantMarked)

	// Archived threads leave the sweep's working set.
	third, err := client.Sweep(ctx,
		core.WithWorkspaceIDForSweep("ws_1"),
		core.WithSweepTime(t0.Add(100*24*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, 0, third.Evaluated)

	for _, id := range []int64{opsThread.ID, backlogThread.ID} {
		got, err := client.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, engine.StatusArchived, got.Status)
		assert.NotNil(t, got.DormantSince, "the watermark stays on the record")
	}
}

func TestSweepRepairsRevivedWatermark(t *testing.T) {
	client, store := newTestClient(t)
	ctx := context.Background()

	// A record whose watermark survived an out-of-band touch: recently
	// active, still flagged dormant in the store.
	now := time.Now().UTC()
	watermark := now.Add(-10 * 24 * time.Hour)
	require.NoError(t, store.Insert(ctx, &storage.Thread{
		ID:            7001,
		WorkspaceID:   "ws_1",
		Text:          "Stabilize canary deploys",
		Class:         string(engine.ClassBacklog),
		Status:        string(engine.StatusDormant),
		TouchCount:    9,
		VitalityScore: 0.15,
		CreatedAt:     now.Add(-90 * 24 * time.Hour),
		UpdatedAt:     now,
		LastTouchedAt: now.Add(-time.Hour),
		DormantSince:  &watermark,
	}))

	report, err := client.Sweep(ctx, core.WithSweepTime(now))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Evaluated)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 1, report.DormantCleared)
	assert.Equal(t, 0, report.Archived)

	got, err := client.Get(ctx, 7001)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusActive, got.Status)
	assert.Nil(t, got.DormantSince)
}

func TestSweepSkipsUnchangedThreads(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	thread, err := client.Open(ctx, "Rotate signing keys", core.WithWorkspaceID("ws_1"))
	require.NoError(t, err)

	// Sweeping at the instant the thread was opened changes nothing.
	report, err := client.Sweep(ctx, core.WithSweepTime(thread.CreatedAt))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Evaluated)
	assert.Equal(t, 0, report.Updated)
}

func TestSweepEmptyScope(t *testing.T) {
	client, _ := newTestClient(t)

	report, err := client.Sweep(context.Background(),
		core.WithWorkspaceIDForSweep("ws_empty"))
	require.NoError(t, err)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 0, report.Evaluated)
	assert.Equal(t, 0, report.Updated)
	assert.Equal(t, 0, report.Cleansed)
}

func TestSweepWithCleanse(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	first, err := client.Open(ctx, "Fix authentication timeout in login flow",
		core.WithWorkspaceID("ws_1"))
	require.NoError(t, err)
	// An imported duplicate that slipped past the open-time check.
	dup, err := client.Open(ctx, "Fix authentication timeout",
		core.WithWorkspaceID("ws_1"), core.WithoutDedup())
	require.NoError(t, err)
	other, err := client.Open(ctx, "Rotate signing keys",
		core.WithWorkspaceID("ws_1"))
	require.NoError(t, err)

	report, err := client.Sweep(ctx,
		core.WithWorkspaceIDForSweep("ws_1"),
		core.WithCleanse(),
		core.WithSweepTime(first.CreatedAt.Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, 3, report.Evaluated)
	assert.Equal(t, 1, report.Cleansed)

	kept, err := client.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, kept.Open(), "the oldest thread of the group survives")

	closed, err := client.Get(ctx, dup.ID)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusResolved, closed.Status)

	untouched, err := client.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.True(t, untouched.Open())
}

func TestCleanseKeepsOldestAndIsIdempotent(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	first, err := client.Open(ctx, "Fix authentication timeout in login flow",
		core.WithWorkspaceID("ws_1"))
	require.NoError(t, err)
	dup, err := client.Open(ctx, "Fix authentication timeout",
		core.WithWorkspaceID("ws_1"), core.WithoutDedup())
	require.NoError(t, err)

	resolved, err := client.Cleanse(ctx, core.WithWorkspaceIDForCleanse("ws_1"))
	require.NoError(t, err)
	assert.Equal(t, []int64{dup.ID}, resolved)

	again, err := client.Cleanse(ctx, core.WithWorkspaceIDForCleanse("ws_1"))
	require.NoError(t, err)
	assert.Empty(t, again)

	kept, err := client.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, kept.Open())
}

func TestCleanseNeverCrossesWorkspaces(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	_, err := client.Open(ctx, "Fix authentication timeout", core.WithWorkspaceID("ws_1"))
	require.NoError(t, err)
	ws1Dup, err := client.Open(ctx, "Fix authentication timeout",
		core.WithWorkspaceID("ws_1"), core.WithoutDedup())
	require.NoError(t, err)
	ws2Thread, err := client.Open(ctx, "Fix authentication timeout",
		core.WithWorkspaceID("ws_2"))
	require.NoError(t, err)

	// Unscoped cleanse: the ws_2 copy is not a duplicate of anything in
	// its own workspace and must stay open.
	resolved, err := client.Cleanse(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{ws1Dup.ID}, resolved)

	survivor, err := client.Get(ctx, ws2Thread.ID)
	require.NoError(t, err)
	assert.True(t, survivor.Open())
}
