// Package storage provides interfaces and types for thread storage backends.
//
// It defines the ThreadStore interface that all storage implementations must
// satisfy, along with the stored thread type and per-operation options.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a thread does not exist or is not visible
// under the access-control options supplied with the call. Backends wrap it,
// so callers should test with errors.Is.
var ErrNotFound = errors.New("thread not found or access denied")

// Thread represents a thread record as persisted by a backend.
//
// This type is defined in the storage package to avoid circular dependencies
// with the core package. It mirrors the core.Thread structure.
type Thread struct {
	// ID is the unique identifier of the thread.
	ID int64

	// WorkspaceID identifies the workspace that owns this thread.
	WorkspaceID string

	// AgentID identifies the agent associated with this thread, if any.
	AgentID string

	// Text is the thread's summary text.
	Text string

	// Class is the decay class ("operational" or "backlog").
	Class string

	// Status is the persisted lifecycle status.
	Status string

	// TouchCount is the cumulative number of recorded touches.
	TouchCount int

	// VitalityScore is the most recently computed vitality score.
	VitalityScore float64

	// Embedding is the stored vector for the text, or nil when none was
	// ever computed. Backends must preserve the nil/non-nil distinction:
	// a missing embedding is not a zero vector.
	Embedding []float64

	// Metadata contains additional structured information.
	Metadata map[string]interface{}

	// CreatedAt is when the thread was created.
	CreatedAt time.Time

	// UpdatedAt is when the thread record was last modified.
	UpdatedAt time.Time

	// LastTouchedAt is when the thread was last touched.
	LastTouchedAt time.Time

	// DormantSince is when the thread most recently entered the dormant
	// status, or nil while it is not dormant.
	DormantSince *time.Time
}

// LifecycleUpdate carries the full lifecycle state written by SetLifecycle.
// All three fields overwrite the stored values; a nil DormantSince clears
// the watermark.
type LifecycleUpdate struct {
	// Status is the new lifecycle status.
	Status string

	// VitalityScore is the score the status was derived from.
	VitalityScore float64

	// DormantSince is the new dormancy watermark, or nil to clear it.
	DormantSince *time.Time
}

// ThreadStore defines the interface for thread storage backends.
//
// All storage implementations (SQLite, PostgreSQL, MySQL) must implement
// this interface. Backends store and retrieve records only; vitality math
// and duplicate matching run in the engine, so no backend needs vector
// search support.
type ThreadStore interface {
	// Insert inserts a thread into the store.
	Insert(ctx context.Context, thread *Thread) error

	// Get retrieves a thread by ID with optional access control.
	//
	// If opts.WorkspaceID or opts.AgentID is specified, the thread is only
	// returned when it matches (multi-tenant isolation). A missing or
	// invisible thread yields ErrNotFound.
	Get(ctx context.Context, id int64, opts *GetOptions) (*Thread, error)

	// List retrieves threads with optional filtering and pagination.
	List(ctx context.Context, opts *ListOptions) ([]*Thread, error)

	// UpdateText replaces a thread's text and embedding with optional
	// access control. Passing a nil embedding clears the stored vector.
	//
	// Returns the updated thread.
	UpdateText(ctx context.Context, id int64, text string, embedding []float64, opts *UpdateOptions) (*Thread, error)

	// RecordTouch increments the touch count and moves the last-touched
	// timestamp forward to touchedAt.
	//
	// Returns the updated thread.
	RecordTouch(ctx context.Context, id int64, touchedAt time.Time, opts *UpdateOptions) (*Thread, error)

	// SetLifecycle overwrites the thread's lifecycle state: status, the
	// vitality score it was derived from, and the dormancy watermark.
	//
	// Returns the updated thread.
	SetLifecycle(ctx context.Context, id int64, update *LifecycleUpdate, opts *UpdateOptions) (*Thread, error)

	// Delete deletes a thread by ID with optional access control.
	Delete(ctx context.Context, id int64, opts *DeleteOptions) error

	// DeleteAll deletes all threads matching the given filters.
	DeleteAll(ctx context.Context, opts *DeleteAllOptions) error

	// Close closes the store and releases resources.
	Close() error
}

// GetOptions contains options for get operations with access control.
type GetOptions struct {
	// WorkspaceID restricts access to threads belonging to this workspace.
	WorkspaceID string

	// AgentID restricts access to threads belonging to this agent.
	AgentID string
}

// ListOptions contains options for List operations.
type ListOptions struct {
	// WorkspaceID filters results to a specific workspace.
	WorkspaceID string

	// AgentID filters results to a specific agent.
	AgentID string

	// Statuses filters results to threads in any of the given lifecycle
	// statuses. Empty means all statuses.
	Statuses []string

	// Limit sets the maximum number of results to return; 0 means no limit.
	Limit int

	// Offset sets the number of results to skip (for pagination).
	Offset int

	// Ascending orders results oldest-first when true. The default is
	// newest-first.
	Ascending bool
}

// UpdateOptions contains options for update operations with access control.
type UpdateOptions struct {
	// WorkspaceID restricts updates to threads belonging to this workspace.
	WorkspaceID string

	// AgentID restricts updates to threads belonging to this agent.
	AgentID string
}

// DeleteOptions contains options for delete operations with access control.
type DeleteOptions struct {
	// WorkspaceID restricts deletions to threads belonging to this workspace.
	WorkspaceID string

	// AgentID restricts deletions to threads belonging to this agent.
	AgentID string
}

// DeleteAllOptions contains options for DeleteAll operations.
type DeleteAllOptions struct {
	// WorkspaceID filters deletions to a specific workspace.
	WorkspaceID string

	// AgentID filters deletions to a specific agent.
	AgentID string
}
