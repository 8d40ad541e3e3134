// Package core provides the main ThreadPulse client and thread management functionality.
package core

import (
	"time"

	"github.com/agentline/threadpulse-go/pkg/engine"
)

// Thread represents a single long-lived work thread tracked by the system.
//
// A thread carries:
//   - Text: The summary text identifying the piece of work
//   - Class: The decay class driving its vitality half-life
//   - Status: The current lifecycle status as persisted
//   - Embedding: Optional vector representation used for duplicate detection
//   - DormantSince: The dormancy watermark the archival rule consumes
//
// Example:
//
//	thread := &core.Thread{
//	    Text:        "OD-692 migrate workspace database",
//	    WorkspaceID: "ws_acme",
//	    Class:       engine.ClassBacklog,
//	}
type Thread struct {
	// ID is the unique identifier of the thread (snowflake ID).
	ID int64 `json:"id"`

	// WorkspaceID identifies the workspace that owns this thread.
	// Threads are deduplicated within a workspace, never across.
	WorkspaceID string `json:"workspace_id,omitempty"`

	// AgentID identifies the agent associated with this thread, if any.
	AgentID string `json:"agent_id,omitempty"`

	// Text is the thread's summary text.
	Text string `json:"text"`

	// Class is the decay class ("operational" or "backlog"). Unrecognized
	// values decay on the backlog half-life.
	Class engine.ThreadClass `json:"class"`

	// Status is the persisted lifecycle status. Besides the engine's
	// vocabulary this may hold legacy values from older records; the
	// lifecycle rules pass unknown non-terminal values through to the
	// vitality default.
	Status engine.LifecycleStatus `json:"status"`

	// TouchCount is the cumulative number of recorded touches.
	TouchCount int `json:"touch_count"`

	// VitalityScore is the most recently computed vitality score,
	// persisted for observability. Recompute with Refresh for a
	// current value.
	VitalityScore float64 `json:"vitality_score"`

	// Embedding is the stored vector for the text, or nil when none was
	// ever computed. A missing embedding is not a zero vector; duplicate
	// detection falls back to its text tiers without one.
	Embedding []float64 `json:"embedding,omitempty"`

	// Metadata contains additional structured information.
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// CreatedAt is when the thread was opened.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the thread record was last modified.
	UpdatedAt time.Time `json:"updated_at"`

	// LastTouchedAt is when the thread last saw activity.
	LastTouchedAt time.Time `json:"last_touched_at"`

	// DormantSince is when the thread most recently entered the dormant
	// status, or nil while it is not dormant. Threads dormant past the
	// archival threshold are archived on the next Refresh or Sweep.
	DormantSince *time.Time `json:"dormant_since,omitempty"`
}

// Open reports whether the thread is still open, that is, not in a
// terminal lifecycle status.
func (t *Thread) Open() bool {
	return !t.Status.Terminal()
}

// OpenStatuses returns the non-terminal lifecycle statuses. Listing with
// this filter yields the threads that sweeps and duplicate checks consider.
func OpenStatuses() []engine.LifecycleStatus {
	return []engine.LifecycleStatus{
		engine.StatusEmerging,
		engine.StatusActive,
		engine.StatusCooling,
		engine.StatusDormant,
	}
}

// SweepReport summarizes one Sweep run over the open threads in scope.
type SweepReport struct {
	// RunID identifies this sweep run.
	RunID string `json:"run_id"`

	// EvaluatedAt is the instant the sweep evaluated all threads against.
	EvaluatedAt time.Time `json:"evaluated_at"`

	// Evaluated is the number of open threads examined.
	Evaluated int `json:"evaluated"`

	// Updated is the number of threads whose persisted lifecycle state
	// changed (status, score, or watermark).
	Updated int `json:"updated"`

	// Archived is the number of threads the sweep moved to archived.
	Archived int `json:"archived"`

	// DormantMarked is the number of threads whose dormancy watermark was
	// set by this sweep.
	DormantMarked int `json:"dormant_marked"`

	// DormantCleared is the number of threads whose dormancy watermark was
	// cleared because they left the dormant status.
	DormantCleared int `json:"dormant_cleared"`

	// Cleansed is the number of threads closed as resolved duplicates by
	// the follow-up batch cleanse, when one was requested.
	Cleansed int `json:"cleansed"`

	// Duration is the wall-clock time the sweep took.
	Duration time.Duration `json:"duration"`
}
