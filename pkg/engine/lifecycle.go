package engine

import "time"

// LifecycleStatus is the full thread lifecycle state. It extends the three
// vitality statuses with an emerging grace period, an archival terminal
// state, and an externally assigned resolved state.
type LifecycleStatus string

const (
	// StatusEmerging covers the first 24 hours after creation, during which
	// vitality is ignored so that brand-new threads are never judged stale.
	StatusEmerging LifecycleStatus = "emerging"

	// StatusActive means vitality is above 0.5.
	StatusActive LifecycleStatus = "active"

	// StatusCooling means vitality is between 0.2 and 0.5 inclusive.
	StatusCooling LifecycleStatus = "cooling"

	// StatusDormant means vitality is below 0.2.
	StatusDormant LifecycleStatus = "dormant"

	// StatusArchived is terminal. Threads dormant for 30 consecutive days
	// are moved here; the engine never transitions a thread back out.
	StatusArchived LifecycleStatus = "archived"

	// StatusResolved is terminal and only ever assigned by callers; the
	// engine passes it through untouched.
	StatusResolved LifecycleStatus = "resolved"
)

const (
	// EmergingWindow is how long after creation a thread reports emerging
	// regardless of its vitality score.
	EmergingWindow = 24 * time.Hour

	// ArchiveAfter is how long a thread must sit dormant, measured from the
	// caller-maintained dormancy watermark, before it is archived.
	ArchiveAfter = 30 * 24 * time.Hour
)

// Terminal reports whether the status is one the engine never leaves.
func (s LifecycleStatus) Terminal() bool {
	return s == StatusArchived || s == StatusResolved
}

// LifecycleInput bundles a vitality snapshot with the bookkeeping fields the
// lifecycle rules need on top of it.
type LifecycleInput struct {
	VitalityInput

	// CurrentStatus is the thread's stored status. It is accepted as a free
	// string so that unknown historical values degrade gracefully: anything
	// unrecognized simply gets no special treatment and the thread lands on
	// its vitality-derived status.
	CurrentStatus string

	// DormantSince is the time the thread most recently entered dormant,
	// or nil if it is not currently dormant. The engine only reads this
	// watermark; maintaining it is the caller's job (set it when a thread
	// transitions into dormant, clear it when the thread leaves dormant).
	DormantSince *time.Time
}

// ComputeLifecycleStatus applies the lifecycle rules, in priority order, to
// one thread and returns the resulting status alongside the vitality result
// it was derived from.
//
// Rule order:
//  1. Terminal passthrough: archived and resolved stay as they are.
//  2. Emerging: threads created less than 24 hours ago are emerging, no
//     matter what their score says.
//  3. Archival: a currently dormant thread whose DormantSince watermark is
//     30 days or more in the past becomes archived.
//  4. Otherwise the vitality status decides: active, cooling, or dormant.
//
// The rules only compute the next status; persisting it, together with the
// DormantSince watermark update it implies, is the caller's responsibility.
func ComputeLifecycleStatus(in LifecycleInput, now time.Time) (LifecycleStatus, VitalityResult) {
	vit := ComputeVitality(in.VitalityInput, now)

	current := LifecycleStatus(in.CurrentStatus)
	if current.Terminal() {
		return current, vit
	}

	if now.Sub(in.CreatedAt) < EmergingWindow {
		return StatusEmerging, vit
	}

	if current == StatusDormant && in.DormantSince != nil && now.Sub(*in.DormantSince) >= ArchiveAfter {
		return StatusArchived, vit
	}

	return LifecycleStatus(vit.Status), vit
}
