package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agentline/threadpulse-go/pkg/storage"
	"github.com/agentline/threadpulse-go/pkg/storage/sqlite"
)

func newTestClient(t *testing.T) *sqlite.Client {
	t.Helper()

	client, err := sqlite.NewClient(&sqlite.Config{
		DBPath:    filepath.Join(t.TempDir(), "threads.db"),
		TableName: "threads",
	})
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func sampleThread(id int64, workspace string) *storage.Thread {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &storage.Thread{
		ID:            id,
		WorkspaceID:   workspace,
		AgentID:       "agent-1",
		Text:          "Fix login bug",
		Class:         "operational",
		Status:        "emerging",
		TouchCount:    1,
		VitalityScore: 1.0,
		Embedding:     []float64{0.6, 0.8},
		Metadata:      map[string]interface{}{"source": "session"},
		CreatedAt:     now,
		UpdatedAt:     now,
		LastTouchedAt: now,
	}
}

func TestInsertAndGet(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	thread := sampleThread(1, "ws-1")
	assert.NoError(t, client.Insert(ctx, thread))

	got, err := client.Get(ctx, 1, nil)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, thread.ID, got.ID)
	assert.Equal(t, thread.WorkspaceID, got.WorkspaceID)
	assert.Equal(t, thread.AgentID, got.AgentID)
	assert.Equal(t, thread.Text, got.Text)
	assert.Equal(t, thread.Class, got.Class)
	assert.Equal(t, thread.Status, got.Status)
	assert.Equal(t, thread.TouchCount, got.TouchCount)
	assert.Equal(t, thread.VitalityScore, got.VitalityScore)
	assert.Equal(t, thread.Embedding, got.Embedding)
	assert.Equal(t, "session", got.Metadata["source"])
	assert.WithinDuration(t, thread.CreatedAt, got.CreatedAt, time.Second)
	assert.WithinDuration(t, thread.LastTouchedAt, got.LastTouchedAt, time.Second)
	assert.Nil(t, got.DormantSince)
}

func TestGetAccessControl(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	assert.NoError(t, client.Insert(ctx, sampleThread(1, "ws-1")))

	// Matching scope succeeds
	_, err := client.Get(ctx, 1, &storage.GetOptions{WorkspaceID: "ws-1"})
	assert.NoError(t, err)

	// Foreign workspace is invisible
	_, err = client.Get(ctx, 1, &storage.GetOptions{WorkspaceID: "ws-2"})
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	// Missing ID
	_, err = client.Get(ctx, 99, nil)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestNilEmbeddingStaysNil(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	thread := sampleThread(1, "ws-1")
	thread.Embedding = nil
	assert.NoError(t, client.Insert(ctx, thread))

	got, err := client.Get(ctx, 1, nil)
	if assert.NoError(t, err) {
		assert.Nil(t, got.Embedding, "Absent embedding must not come back as a vector")
	}
}

func TestRecordTouch(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	assert.NoError(t, client.Insert(ctx, sampleThread(1, "ws-1")))

	touchedAt := time.Date(2025, 6, 3, 9, 30, 0, 0, time.UTC)
	got, err := client.RecordTouch(ctx, 1, touchedAt, nil)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, 2, got.TouchCount)
	assert.WithinDuration(t, touchedAt, got.LastTouchedAt, time.Second)

	// Touching a missing thread reports not found
	_, err = client.RecordTouch(ctx, 99, touchedAt, nil)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestUpdateText(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	assert.NoError(t, client.Insert(ctx, sampleThread(1, "ws-1")))

	got, err := client.UpdateText(ctx, 1, "Fix login bug on mobile", []float64{1, 0}, nil)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "Fix login bug on mobile", got.Text)
	assert.Equal(t, []float64{1, 0}, got.Embedding)

	// A nil embedding clears the stored vector
	got, err = client.UpdateText(ctx, 1, "Fix login bug on mobile", nil, nil)
	if assert.NoError(t, err) {
		assert.Nil(t, got.Embedding)
	}
}

func TestSetLifecycle(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	assert.NoError(t, client.Insert(ctx, sampleThread(1, "ws-1")))

	// Enter dormant with a watermark
	watermark := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	got, err := client.SetLifecycle(ctx, 1, &storage.LifecycleUpdate{
		Status:        "dormant",
		VitalityScore: 0.1234,
		DormantSince:  &watermark,
	}, nil)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "dormant", got.Status)
	assert.Equal(t, 0.1234, got.VitalityScore)
	if assert.NotNil(t, got.DormantSince) {
		assert.WithinDuration(t, watermark, *got.DormantSince, time.Second)
	}

	// Leave dormant: the watermark is cleared
	got, err = client.SetLifecycle(ctx, 1, &storage.LifecycleUpdate{
		Status:        "active",
		VitalityScore: 0.75,
	}, nil)
	if assert.NoError(t, err) {
		assert.Equal(t, "active", got.Status)
		assert.Nil(t, got.DormantSince)
	}
}

func TestListFilters(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, tc := range []struct {
		workspace string
		status    string
	}{
		{"ws-1", "active"},
		{"ws-1", "dormant"},
		{"ws-2", "active"},
	} {
		thread := sampleThread(int64(i+1), tc.workspace)
		thread.Status = tc.status
		thread.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		assert.NoError(t, client.Insert(ctx, thread))
	}

	// Workspace scope
	threads, err := client.List(ctx, &storage.ListOptions{WorkspaceID: "ws-1"})
	assert.NoError(t, err)
	assert.Len(t, threads, 2)

	// Status filter
	threads, err = client.List(ctx, &storage.ListOptions{
		WorkspaceID: "ws-1",
		Statuses:    []string{"dormant"},
	})
	assert.NoError(t, err)
	if assert.Len(t, threads, 1) {
		assert.Equal(t, int64(2), threads[0].ID)
	}

	// Default order is newest first; Ascending flips it
	threads, err = client.List(ctx, &storage.ListOptions{WorkspaceID: "ws-1"})
	assert.NoError(t, err)
	if assert.Len(t, threads, 2) {
		assert.Equal(t, int64(2), threads[0].ID)
	}
	threads, err = client.List(ctx, &storage.ListOptions{WorkspaceID: "ws-1", Ascending: true})
	assert.NoError(t, err)
	if assert.Len(t, threads, 2) {
		assert.Equal(t, int64(1), threads[0].ID)
	}

	// Pagination
	threads, err = client.List(ctx, &storage.ListOptions{
		WorkspaceID: "ws-1",
		Ascending:   true,
		Limit:       1,
		Offset:      1,
	})
	assert.NoError(t, err)
	if assert.Len(t, threads, 1) {
		assert.Equal(t, int64(2), threads[0].ID)
	}
}

func TestDeleteAndDeleteAll(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	assert.NoError(t, client.Insert(ctx, sampleThread(1, "ws-1")))
	assert.NoError(t, client.Insert(ctx, sampleThread(2, "ws-1")))
	assert.NoError(t, client.Insert(ctx, sampleThread(3, "ws-2")))

	assert.NoError(t, client.Delete(ctx, 1, nil))
	assert.True(t, errors.Is(client.Delete(ctx, 1, nil), storage.ErrNotFound))

	// Scoped DeleteAll leaves other workspaces alone
	assert.NoError(t, client.DeleteAll(ctx, &storage.DeleteAllOptions{WorkspaceID: "ws-1"}))

	threads, err := client.List(ctx, nil)
	assert.NoError(t, err)
	if assert.Len(t, threads, 1) {
		assert.Equal(t, "ws-2", threads[0].WorkspaceID)
	}
}
