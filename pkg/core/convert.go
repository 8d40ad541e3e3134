// Package core provides the main ThreadPulse client and thread management functionality.
package core

import (
	"strconv"

	"github.com/agentline/threadpulse-go/pkg/engine"
	"github.com/agentline/threadpulse-go/pkg/storage"
)

// toStorageThread converts a core.Thread to storage.Thread.
//
// This function is used internally to convert between package types
// to avoid circular dependencies.
func toStorageThread(t *Thread) *storage.Thread {
	return &storage.Thread{
		ID:            t.ID,
		WorkspaceID:   t.WorkspaceID,
		AgentID:       t.AgentID,
		Text:          t.Text,
		Class:         string(t.Class),
		Status:        string(t.Status),
		TouchCount:    t.TouchCount,
		VitalityScore: t.VitalityScore,
		Embedding:     t.Embedding,
		Metadata:      t.Metadata,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		LastTouchedAt: t.LastTouchedAt,
		DormantSince:  t.DormantSince,
	}
}

// fromStorageThread converts a storage.Thread to core.Thread.
//
// This function is used internally to convert between package types
// to avoid circular dependencies.
func fromStorageThread(t *storage.Thread) *Thread {
	return &Thread{
		ID:            t.ID,
		WorkspaceID:   t.WorkspaceID,
		AgentID:       t.AgentID,
		Text:          t.Text,
		Class:         engine.ThreadClass(t.Class),
		Status:        engine.LifecycleStatus(t.Status),
		TouchCount:    t.TouchCount,
		VitalityScore: t.VitalityScore,
		Embedding:     t.Embedding,
		Metadata:      t.Metadata,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		LastTouchedAt: t.LastTouchedAt,
		DormantSince:  t.DormantSince,
	}
}

// fromStorageThreads converts a slice of storage.Thread to a slice of core.Thread.
//
// This function is used internally for batch conversion between package types.
func fromStorageThreads(threads []*storage.Thread) []*Thread {
	result := make([]*Thread, len(threads))
	for i, t := range threads {
		result[i] = fromStorageThread(t)
	}
	return result
}

// lifecycleInput builds the engine's lifecycle input from a stored record.
func lifecycleInput(t *storage.Thread) engine.LifecycleInput {
	return engine.LifecycleInput{
		VitalityInput: engine.VitalityInput{
			LastTouchedAt: t.LastTouchedAt,
			TouchCount:    t.TouchCount,
			CreatedAt:     t.CreatedAt,
			Class:         engine.ThreadClass(t.Class),
		},
		CurrentStatus: t.Status,
		DormantSince:  t.DormantSince,
	}
}

// toCandidate converts a stored record to a dedup candidate. The engine
// keys candidates by string ID, so thread IDs are rendered in decimal.
func toCandidate(t *storage.Thread) engine.Candidate {
	return engine.Candidate{
		ID:        strconv.FormatInt(t.ID, 10),
		Text:      t.Text,
		Embedding: t.Embedding,
	}
}

// candidateID parses a dedup candidate ID back into a thread ID.
func candidateID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// statusStrings converts lifecycle statuses to the string form the
// storage layer filters on.
func statusStrings(statuses []engine.LifecycleStatus) []string {
	if len(statuses) == 0 {
		return nil
	}
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
