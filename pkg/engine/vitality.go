// Package engine implements the thread vitality and deduplication engine.
//
// The engine answers two questions about long-lived work threads without
// calling any external service:
//   - Is this thread still alive, or has it gone stale? (vitality scoring
//     and the lifecycle state machine built on top of it)
//   - Is a newly proposed thread a duplicate of one that already exists?
//     (a three-tier matching pipeline that works with or without embeddings)
//
// Every function in this package is pure: results depend only on the
// arguments and the explicitly supplied reference time. There is no I/O,
// no internal clock read, and no shared state, so all functions are safe
// to call concurrently without coordination.
package engine

import (
	"math"
	"time"
)

// ThreadClass determines how quickly a thread's recency decays.
//
// Operational threads are short-lived and urgent; they go stale within days.
// Backlog threads are long-running; they stay warm for weeks.
type ThreadClass string

const (
	// ClassOperational marks short-lived, urgent threads (3-day half-life).
	ClassOperational ThreadClass = "operational"

	// ClassBacklog marks long-running threads (21-day half-life).
	ClassBacklog ThreadClass = "backlog"
)

// Scoring constants. These are part of the engine's contract: callers and
// stored scores rely on them being stable, so they are deliberately not
// configurable.
const (
	// OperationalHalfLifeDays is the recency half-life for operational threads.
	OperationalHalfLifeDays = 3.0

	// BacklogHalfLifeDays is the recency half-life for backlog threads.
	// Unrecognized thread classes also decay at this rate.
	BacklogHalfLifeDays = 21.0

	// RecencyWeight is the share of the vitality score contributed by recency.
	RecencyWeight = 0.55

	// FrequencyWeight is the share of the vitality score contributed by
	// touch frequency. RecencyWeight + FrequencyWeight == 1.
	FrequencyWeight = 0.45

	// ActiveThreshold is the exclusive lower bound for the active status:
	// a score must be strictly greater to count as active.
	ActiveThreshold = 0.5

	// DormantThreshold is the inclusive lower bound for the cooling status:
	// scores below it are dormant.
	DormantThreshold = 0.2
)

// HalfLifeDays returns the recency half-life for the class, in days.
// Unrecognized classes fall back to the backlog half-life.
func (c ThreadClass) HalfLifeDays() float64 {
	if c == ClassOperational {
		return OperationalHalfLifeDays
	}
	return BacklogHalfLifeDays
}

// VitalityStatus is the discrete status derived from a vitality score alone.
// It is distinct from LifecycleStatus, which layers age and dormancy rules
// on top of it.
type VitalityStatus string

const (
	// VitalityActive means the score is above 0.5.
	VitalityActive VitalityStatus = "active"

	// VitalityCooling means the score is between 0.2 and 0.5 inclusive.
	VitalityCooling VitalityStatus = "cooling"

	// VitalityDormant means the score is below 0.2.
	VitalityDormant VitalityStatus = "dormant"
)

// VitalityInput is a snapshot of the thread attributes that vitality is
// computed from. It is a plain value; the engine never mutates or retains it.
type VitalityInput struct {
	// LastTouchedAt is the most recent time the thread was referenced.
	LastTouchedAt time.Time

	// TouchCount is the cumulative number of times the thread was referenced.
	TouchCount int

	// CreatedAt is when the thread was created.
	CreatedAt time.Time

	// Class selects the decay half-life.
	Class ThreadClass
}

// VitalityResult carries the computed score and its named components.
// All three real-valued fields are rounded to 4 decimal places so that
// equal inputs produce bit-equal results across implementations.
type VitalityResult struct {
	// Score is the combined vitality in [0, 1].
	Score float64 `json:"vitality_score"`

	// Status is the vitality-only status mapping for Score.
	Status VitalityStatus `json:"status"`

	// Recency is the exponential-decay component in [0, 1].
	Recency float64 `json:"recency_component"`

	// Frequency is the touch-frequency component in [0, 1].
	Frequency float64 `json:"frequency_component"`
}

// ComputeVitality scores how alive a thread currently is.
//
// The score combines two components:
//
//	recency   = exp(-ln2 * days_since_touch / half_life)
//	frequency = min(ln(touch_count + 1) / ln(days_alive + 1), 1.0)
//	score     = clamp(0.55*recency + 0.45*frequency, 0, 1)
//
// where days_since_touch is clamped to >= 0 and days_alive to >= 0.01, so
// timestamps slightly in the future of now degrade to maximal recency
// rather than failing. The function is total: there is no error path.
//
// Parameters:
//   - in: Thread attribute snapshot
//   - now: Reference time; never read from a clock internally
//
// Returns the score, its status mapping, and both components, each rounded
// to 4 decimal places.
func ComputeVitality(in VitalityInput, now time.Time) VitalityResult {
	halfLife := in.Class.HalfLifeDays()

	daysSinceTouch := math.Max(now.Sub(in.LastTouchedAt).Hours()/24, 0)
	recency := math.Exp(-math.Ln2 * daysSinceTouch / halfLife)

	daysAlive := math.Max(now.Sub(in.CreatedAt).Hours()/24, 0.01)
	touches := math.Max(float64(in.TouchCount), 0)
	frequency := math.Min(math.Log(touches+1)/math.Log(daysAlive+1), 1.0)

	score := round4(clamp01(RecencyWeight*recency + FrequencyWeight*frequency))

	return VitalityResult{
		Score:     score,
		Status:    StatusForScore(score),
		Recency:   round4(recency),
		Frequency: round4(frequency),
	}
}

// StatusForScore maps a vitality score onto a status.
//
// The boundaries are exact: 0.5 is cooling (active requires strictly more),
// 0.2 is cooling (dormant requires strictly less).
func StatusForScore(score float64) VitalityStatus {
	switch {
	case score > ActiveThreshold:
		return VitalityActive
	case score >= DormantThreshold:
		return VitalityCooling
	default:
		return VitalityDormant
	}
}

// round4 rounds to 4 decimal places for reproducible comparisons.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
