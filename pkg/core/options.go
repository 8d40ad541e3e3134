// Package core provides the main ThreadPulse client and thread management functionality.
package core

import (
	"time"

	"github.com/agentline/threadpulse-go/pkg/engine"
)

// OpenOption is a function type for configuring Open operations.
//
// Options are applied using the functional options pattern, allowing
// flexible configuration without requiring all parameters.
type OpenOption func(*OpenOptions)

// OpenOptions contains configuration options for Open operations.
type OpenOptions struct {
	// WorkspaceID identifies the workspace that owns this thread.
	// The duplicate check runs against open threads in the same workspace.
	WorkspaceID string

	// AgentID identifies the agent opening this thread.
	AgentID string

	// Class is the decay class for the thread ("operational" or "backlog").
	// Unset defaults to backlog.
	Class engine.ThreadClass

	// Metadata contains additional metadata about the thread.
	Metadata map[string]interface{}

	// Embedding is a caller-supplied vector for the thread text. When set,
	// the configured embedding provider is not called.
	Embedding []float64

	// SkipDedup disables the duplicate check for this call, forcing a new
	// thread to be created even when an open duplicate exists.
	SkipDedup bool
}

// WithWorkspaceID sets the workspace ID for Open operations.
//
// Example:
//
//	thread, _ := client.Open(ctx, "Fix auth timeout", core.WithWorkspaceID("ws_acme"))
func WithWorkspaceID(workspaceID string) OpenOption {
	return func(opts *OpenOptions) {
		opts.WorkspaceID = workspaceID
	}
}

// WithWorkspaceIDForTouch sets the workspace ID for Touch operations (access control).
func WithWorkspaceIDForTouch(workspaceID string) TouchOption {
	return func(opts *TouchOptions) {
		opts.WorkspaceID = workspaceID
	}
}

// WithWorkspaceIDForRefresh sets the workspace ID for Refresh operations (access control).
func WithWorkspaceIDForRefresh(workspaceID string) RefreshOption {
	return func(opts *RefreshOptions) {
		opts.WorkspaceID = workspaceID
	}
}

// WithWorkspaceIDForList sets the workspace ID for List operations.
//
// Example:
//
//	threads, _ := client.List(ctx, core.WithWorkspaceIDForList("ws_acme"))
func WithWorkspaceIDForList(workspaceID string) ListOption {
	return func(opts *ListOptions) {
		opts.WorkspaceID = workspaceID
	}
}

// WithWorkspaceIDForSweep restricts a Sweep to one workspace.
func WithWorkspaceIDForSweep(workspaceID string) SweepOption {
	return func(opts *SweepOptions) {
		opts.WorkspaceID = workspaceID
	}
}

// WithWorkspaceIDForCleanse restricts a Cleanse to one workspace.
func WithWorkspaceIDForCleanse(workspaceID string) CleanseOption {
	return func(opts *CleanseOptions) {
		opts.WorkspaceID = workspaceID
	}
}

// WithWorkspaceIDForCheck scopes a CheckDuplicate call to one workspace.
func WithWorkspaceIDForCheck(workspaceID string) CheckOption {
	return func(opts *CheckOptions) {
		opts.WorkspaceID = workspaceID
	}
}

// WithWorkspaceIDForDeleteAll sets the workspace ID for DeleteAll operations.
//
// Example:
//
//	_ = client.DeleteAll(ctx, core.WithWorkspaceIDForDeleteAll("ws_acme"))
func WithWorkspaceIDForDeleteAll(workspaceID string) DeleteAllOption {
	return func(opts *DeleteAllOptions) {
		opts.WorkspaceID = workspaceID
	}
}

// WithAgentID sets the agent ID for Open operations.
//
// Example:
//
//	thread, _ := client.Open(ctx, "Fix auth timeout", core.WithAgentID("agent_001"))
func WithAgentID(agentID string) OpenOption {
	return func(opts *OpenOptions) {
		opts.AgentID = agentID
	}
}

// WithAgentIDForTouch sets the agent ID for Touch operations (access control).
func WithAgentIDForTouch(agentID string) TouchOption {
	return func(opts *TouchOptions) {
		opts.AgentID = agentID
	}
}

// WithAgentIDForRefresh sets the agent ID for Refresh operations (access control).
func WithAgentIDForRefresh(agentID string) RefreshOption {
	return func(opts *RefreshOptions) {
		opts.AgentID = agentID
	}
}

// WithAgentIDForList sets the agent ID for List operations.
func WithAgentIDForList(agentID string) ListOption {
	return func(opts *ListOptions) {
		opts.AgentID = agentID
	}
}

// WithAgentIDForSweep restricts a Sweep to one agent's threads.
func WithAgentIDForSweep(agentID string) SweepOption {
	return func(opts *SweepOptions) {
		opts.AgentID = agentID
	}
}

// WithAgentIDForCleanse restricts a Cleanse to one agent's threads.
func WithAgentIDForCleanse(agentID string) CleanseOption {
	return func(opts *CleanseOptions) {
		opts.AgentID = agentID
	}
}

// WithAgentIDForCheck scopes a CheckDuplicate call to one agent's threads.
func WithAgentIDForCheck(agentID string) CheckOption {
	return func(opts *CheckOptions) {
		opts.AgentID = agentID
	}
}

// WithAgentIDForDeleteAll sets the agent ID for DeleteAll operations.
func WithAgentIDForDeleteAll(agentID string) DeleteAllOption {
	return func(opts *DeleteAllOptions) {
		opts.AgentID = agentID
	}
}

// WithClass sets the decay class for Open operations.
//
// Operational threads decay fast (3-day half-life); backlog threads decay
// slowly (21-day half-life).
//
// Example:
//
//	thread, _ := client.Open(ctx, "Prod deploy stuck", core.WithClass(engine.ClassOperational))
func WithClass(class engine.ThreadClass) OpenOption {
	return func(opts *OpenOptions) {
		opts.Class = class
	}
}

// WithMetadata sets metadata for Open operations.
//
// Metadata is stored with the thread and returned on reads.
//
// Example:
//
//	thread, _ := client.Open(ctx, "Fix auth timeout",
//	    core.WithMetadata(map[string]interface{}{
//	        "source": "standup",
//	        "issue":  "OD-692",
//	    }),
//	)
func WithMetadata(metadata map[string]interface{}) OpenOption {
	return func(opts *OpenOptions) {
		opts.Metadata = metadata
	}
}

// WithEmbedding supplies a pre-computed embedding vector for Open operations.
//
// The configured provider is skipped for this call. The vector is
// L2-normalized before it is compared or stored.
//
// Example:
//
//	thread, _ := client.Open(ctx, "Fix auth timeout", core.WithEmbedding(vec))
func WithEmbedding(embedding []float64) OpenOption {
	return func(opts *OpenOptions) {
		opts.Embedding = embedding
	}
}

// WithoutDedup disables the duplicate check for one Open call.
//
// Example:
//
//	thread, _ := client.Open(ctx, "Fix auth timeout", core.WithoutDedup())
func WithoutDedup() OpenOption {
	return func(opts *OpenOptions) {
		opts.SkipDedup = true
	}
}

// TouchOption is a function type for configuring Touch operations.
type TouchOption func(*TouchOptions)

// TouchOptions contains configuration options for Touch operations.
type TouchOptions struct {
	// WorkspaceID restricts the touch to a thread in this workspace.
	WorkspaceID string

	// AgentID restricts the touch to a thread owned by this agent.
	AgentID string

	// At is the activity timestamp. Zero means the current time. Replays
	// of historical activity pass explicit timestamps here.
	At time.Time
}

// WithTouchTime sets an explicit activity timestamp for Touch operations.
//
// Example:
//
//	thread, _ := client.Touch(ctx, id, core.WithTouchTime(eventTime))
func WithTouchTime(at time.Time) TouchOption {
	return func(opts *TouchOptions) {
		opts.At = at
	}
}

// RefreshOption is a function type for configuring Refresh operations.
type RefreshOption func(*RefreshOptions)

// RefreshOptions contains configuration options for Refresh operations.
type RefreshOptions struct {
	// WorkspaceID restricts the refresh to a thread in this workspace.
	WorkspaceID string

	// AgentID restricts the refresh to a thread owned by this agent.
	AgentID string

	// At is the evaluation instant. Zero means the current time.
	At time.Time
}

// WithRefreshTime sets an explicit evaluation instant for Refresh operations.
//
// Example:
//
//	thread, vit, _ := client.Refresh(ctx, id, core.WithRefreshTime(asOf))
func WithRefreshTime(at time.Time) RefreshOption {
	return func(opts *RefreshOptions) {
		opts.At = at
	}
}

// ListOption is a function type for configuring List operations.
type ListOption func(*ListOptions)

// ListOptions contains configuration options for List operations.
type ListOptions struct {
	// WorkspaceID filters results to a specific workspace.
	WorkspaceID string

	// AgentID filters results to a specific agent.
	AgentID string

	// Statuses filters results to threads in any of the given lifecycle
	// statuses. Empty means all statuses.
	Statuses []engine.LifecycleStatus

	// Limit sets the maximum number of results to return.
	// Default: 100. Zero means no limit.
	Limit int

	// Offset sets the number of results to skip (for pagination).
	// Default: 0
	Offset int

	// OldestFirst orders results by creation time ascending. The default
	// is newest-first.
	OldestFirst bool
}

// WithStatuses filters List results to the given lifecycle statuses.
//
// Example:
//
//	threads, _ := client.List(ctx, core.WithStatuses(engine.StatusDormant))
func WithStatuses(statuses ...engine.LifecycleStatus) ListOption {
	return func(opts *ListOptions) {
		opts.Statuses = statuses
	}
}

// WithOpenOnly filters List results to open (non-terminal) threads.
//
// Example:
//
//	threads, _ := client.List(ctx, core.WithOpenOnly())
func WithOpenOnly() ListOption {
	return func(opts *ListOptions) {
		opts.Statuses = OpenStatuses()
	}
}

// WithLimit sets the maximum number of results for List operations.
// Zero removes the limit.
//
// Example:
//
//	threads, _ := client.List(ctx, core.WithLimit(20))
func WithLimit(limit int) ListOption {
	return func(opts *ListOptions) {
		opts.Limit = limit
	}
}

// WithOffset sets the offset for List operations (for pagination).
//
// Example:
//
//	// Get second page of results
//	threads, _ := client.List(ctx, core.WithLimit(50), core.WithOffset(50))
func WithOffset(offset int) ListOption {
	return func(opts *ListOptions) {
		opts.Offset = offset
	}
}

// WithOldestFirst orders List results by creation time ascending.
func WithOldestFirst() ListOption {
	return func(opts *ListOptions) {
		opts.OldestFirst = true
	}
}

// SweepOption is a function type for configuring Sweep operations.
type SweepOption func(*SweepOptions)

// SweepOptions contains configuration options for Sweep operations.
type SweepOptions struct {
	// WorkspaceID restricts the sweep to one workspace. Empty sweeps all.
	WorkspaceID string

	// AgentID restricts the sweep to one agent's threads.
	AgentID string

	// At is the evaluation instant for every thread in the sweep.
	// Zero means the current time.
	At time.Time

	// Cleanse runs a batch duplicate cleanse over the surviving open
	// threads after the lifecycle pass.
	Cleanse bool

	// RunID identifies the sweep run in the report. Empty generates a
	// fresh UUID.
	RunID string
}

// WithSweepTime sets an explicit evaluation instant for Sweep operations.
func WithSweepTime(at time.Time) SweepOption {
	return func(opts *SweepOptions) {
		opts.At = at
	}
}

// WithCleanse makes the sweep finish with a batch duplicate cleanse.
//
// Example:
//
//	report, _ := client.Sweep(ctx, core.WithCleanse())
func WithCleanse() SweepOption {
	return func(opts *SweepOptions) {
		opts.Cleanse = true
	}
}

// WithSweepRunID sets the run identifier recorded in the SweepReport.
func WithSweepRunID(runID string) SweepOption {
	return func(opts *SweepOptions) {
		opts.RunID = runID
	}
}

// CleanseOption is a function type for configuring Cleanse operations.
type CleanseOption func(*CleanseOptions)

// CleanseOptions contains configuration options for Cleanse operations.
type CleanseOptions struct {
	// WorkspaceID restricts the cleanse to one workspace. Empty cleanses all.
	WorkspaceID string

	// AgentID restricts the cleanse to one agent's threads.
	AgentID string
}

// CheckOption is a function type for configuring CheckDuplicate operations.
type CheckOption func(*CheckOptions)

// CheckOptions contains configuration options for CheckDuplicate operations.
type CheckOptions struct {
	// WorkspaceID scopes the candidate set to one workspace.
	WorkspaceID string

	// AgentID scopes the candidate set to one agent's threads.
	AgentID string

	// Embedding is a caller-supplied vector for the probe text. When set,
	// the configured embedding provider is not called.
	Embedding []float64

	// TextOnly forces the text tiers even when an embedding provider is
	// configured.
	TextOnly bool
}

// WithEmbeddingForCheck supplies a pre-computed embedding vector for
// CheckDuplicate operations.
func WithEmbeddingForCheck(embedding []float64) CheckOption {
	return func(opts *CheckOptions) {
		opts.Embedding = embedding
	}
}

// WithTextOnlyCheck forces CheckDuplicate onto its text tiers, skipping
// the embedding provider.
//
// Example:
//
//	verdict, _ := client.CheckDuplicate(ctx, "Fix auth timeout", core.WithTextOnlyCheck())
func WithTextOnlyCheck() CheckOption {
	return func(opts *CheckOptions) {
		opts.TextOnly = true
	}
}

// applyOpenOptions applies Open options to create OpenOptions.
func applyOpenOptions(opts []OpenOption) *OpenOptions {
	options := &OpenOptions{
		Class:    engine.ClassBacklog,
		Metadata: make(map[string]interface{}),
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// applyTouchOptions applies Touch options to create TouchOptions.
func applyTouchOptions(opts []TouchOption) *TouchOptions {
	options := &TouchOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// applyRefreshOptions applies Refresh options to create RefreshOptions.
func applyRefreshOptions(opts []RefreshOption) *RefreshOptions {
	options := &RefreshOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// applyListOptions applies List options to create ListOptions.
func applyListOptions(opts []ListOption) *ListOptions {
	options := &ListOptions{
		Limit:  100,
		Offset: 0,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// applySweepOptions applies Sweep options to create SweepOptions.
func applySweepOptions(opts []SweepOption) *SweepOptions {
	options := &SweepOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// applyCleanseOptions applies Cleanse options to create CleanseOptions.
func applyCleanseOptions(opts []CleanseOption) *CleanseOptions {
	options := &CleanseOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// applyCheckOptions applies Check options to create CheckOptions.
func applyCheckOptions(opts []CheckOption) *CheckOptions {
	options := &CheckOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// GetOption is a function type for configuring Get operations.
type GetOption func(*GetOptions)

// GetOptions contains configuration options for Get operations with access control.
type GetOptions struct {
	// WorkspaceID restricts access to threads belonging to this workspace (multi-tenant isolation).
	WorkspaceID string

	// AgentID restricts access to threads belonging to this agent (agent-level access control).
	AgentID string
}

// WithWorkspaceIDForGet sets the workspace ID for Get operations (access control).
func WithWorkspaceIDForGet(workspaceID string) GetOption {
	return func(opts *GetOptions) {
		opts.WorkspaceID = workspaceID
	}
}

// WithAgentIDForGet sets the agent ID for Get operations (access control).
func WithAgentIDForGet(agentID string) GetOption {
	return func(opts *GetOptions) {
		opts.AgentID = agentID
	}
}

// ResolveOption is a function type for configuring Resolve operations.
type ResolveOption func(*ResolveOptions)

// ResolveOptions contains configuration options for Resolve operations with access control.
type ResolveOptions struct {
	// WorkspaceID restricts the transition to a thread in this workspace.
	WorkspaceID string

	// AgentID restricts the transition to a thread owned by this agent.
	AgentID string
}

// WithWorkspaceIDForResolve sets the workspace ID for Resolve operations (access control).
func WithWorkspaceIDForResolve(workspaceID string) ResolveOption {
	return func(opts *ResolveOptions) {
		opts.WorkspaceID = workspaceID
	}
}

// WithAgentIDForResolve sets the agent ID for Resolve operations (access control).
func WithAgentIDForResolve(agentID string) ResolveOption {
	return func(opts *ResolveOptions) {
		opts.AgentID = agentID
	}
}

// ArchiveOption is a function type for configuring Archive operations.
type ArchiveOption func(*ArchiveOptions)

// ArchiveOptions contains configuration options for Archive operations with access control.
type ArchiveOptions struct {
	// WorkspaceID restricts the transition to a thread in this workspace.
	WorkspaceID string

	// AgentID restricts the transition to a thread owned by this agent.
	AgentID string
}

// WithWorkspaceIDForArchive sets the workspace ID for Archive operations (access control).
func WithWorkspaceIDForArchive(workspaceID string) ArchiveOption {
	return func(opts *ArchiveOptions) {
		opts.WorkspaceID = workspaceID
	}
}

// WithAgentIDForArchive sets the agent ID for Archive operations (access control).
func WithAgentIDForArchive(agentID string) ArchiveOption {
	return func(opts *ArchiveOptions) {
		opts.AgentID = agentID
	}
}

// DeleteOption is a function type for configuring Delete operations.
type DeleteOption func(*DeleteOptions)

// DeleteOptions contains configuration options for Delete operations with access control.
type DeleteOptions struct {
	// WorkspaceID restricts deletions to threads belonging to this workspace (prevents cross-tenant deletions).
	WorkspaceID string

	// AgentID restricts deletions to threads belonging to this agent (agent-level access control).
	AgentID string
}

// WithWorkspaceIDForDelete sets the workspace ID for Delete operations (access control).
func WithWorkspaceIDForDelete(workspaceID string) DeleteOption {
	return func(opts *DeleteOptions) {
		opts.WorkspaceID = workspaceID
	}
}

// WithAgentIDForDelete sets the agent ID for Delete operations (access control).
func WithAgentIDForDelete(agentID string) DeleteOption {
	return func(opts *DeleteOptions) {
		opts.AgentID = agentID
	}
}

// DeleteAllOption is a function type for configuring DeleteAll operations.
type DeleteAllOption func(*DeleteAllOptions)

// DeleteAllOptions contains configuration options for DeleteAll operations.
type DeleteAllOptions struct {
	// WorkspaceID filters deletions to a specific workspace.
	WorkspaceID string

	// AgentID filters deletions to a specific agent.
	AgentID string
}

// applyGetOptions applies Get options to create GetOptions.
func applyGetOptions(opts []GetOption) *GetOptions {
	options := &GetOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// applyResolveOptions applies Resolve options to create ResolveOptions.
func applyResolveOptions(opts []ResolveOption) *ResolveOptions {
	options := &ResolveOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// applyArchiveOptions applies Archive options to create ArchiveOptions.
func applyArchiveOptions(opts []ArchiveOption) *ArchiveOptions {
	options := &ArchiveOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// applyDeleteOptions applies Delete options to create DeleteOptions.
func applyDeleteOptions(opts []DeleteOption) *DeleteOptions {
	options := &DeleteOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// applyDeleteAllOptions applies DeleteAll options to create DeleteAllOptions.
func applyDeleteAllOptions(opts []DeleteAllOption) *DeleteAllOptions {
	options := &DeleteAllOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}
