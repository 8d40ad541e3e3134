package engine_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agentline/threadpulse-go/pkg/engine"
)

func TestRecencyHalfLife(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		class    engine.ThreadClass
		halfLife float64
	}{
		{engine.ClassOperational, 3},
		{engine.ClassBacklog, 21},
	}

	for _, tc := range testCases {
		in := engine.VitalityInput{
			LastTouchedAt: now.Add(-time.Duration(tc.halfLife*24) * time.Hour),
			TouchCount:    1,
			CreatedAt:     now.Add(-60 * 24 * time.Hour),
			Class:         tc.class,
		}
		result := engine.ComputeVitality(in, now)
		assert.InDelta(t, 0.5, result.Recency, 0.01,
			"Recency should be near 0.5 at one half-life for class %s", tc.class)
	}
}

func TestUnknownClassUsesBacklogHalfLife(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	in := engine.VitalityInput{
		LastTouchedAt: now.Add(-21 * 24 * time.Hour),
		TouchCount:    1,
		CreatedAt:     now.Add(-60 * 24 * time.Hour),
		Class:         "spike", // not a recognized class
	}
	result := engine.ComputeVitality(in, now)
	assert.InDelta(t, 0.5, result.Recency, 0.01)
}

func TestVitalityMonotonicInTouchCount(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	prev := -1.0
	for _, touches := range []int{0, 1, 2, 5, 10, 100, 1000} {
		in := engine.VitalityInput{
			LastTouchedAt: now.Add(-5 * 24 * time.Hour),
			TouchCount:    touches,
			CreatedAt:     now.Add(-30 * 24 * time.Hour),
			Class:         engine.ClassBacklog,
		}
		result := engine.ComputeVitality(in, now)
		assert.GreaterOrEqual(t, result.Score, prev,
			"Score should not decrease as touch count grows (at %d touches)", touches)
		prev = result.Score
	}
}

func TestVitalityMonotonicInStaleness(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	prev := 2.0
	for _, days := range []int{0, 1, 3, 7, 21, 60, 365} {
		in := engine.VitalityInput{
			LastTouchedAt: now.Add(-time.Duration(days) * 24 * time.Hour),
			TouchCount:    5,
			CreatedAt:     now.Add(-400 * 24 * time.Hour),
			Class:         engine.ClassOperational,
		}
		result := engine.ComputeVitality(in, now)
		assert.LessOrEqual(t, result.Score, prev,
			"Score should not increase as the thread goes stale (at %d days)", days)
		prev = result.Score
	}
}

func TestVitalityBounds(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Extreme inputs must still land inside [0, 1].
	testCases := []struct {
		name string
		in   engine.VitalityInput
	}{
		{
			name: "very stale, never touched",
			in: engine.VitalityInput{
				LastTouchedAt: now.Add(-10000 * 24 * time.Hour),
				TouchCount:    0,
				CreatedAt:     now.Add(-10000 * 24 * time.Hour),
				Class:         engine.ClassOperational,
			},
		},
		{
			name: "heavily touched",
			in: engine.VitalityInput{
				LastTouchedAt: now,
				TouchCount:    10000,
				CreatedAt:     now.Add(-24 * time.Hour),
				Class:         engine.ClassBacklog,
			},
		},
		{
			name: "touched in the future",
			in: engine.VitalityInput{
				LastTouchedAt: now.Add(48 * time.Hour),
				TouchCount:    3,
				CreatedAt:     now.Add(24 * time.Hour),
				Class:         engine.ClassBacklog,
			},
		},
	}

	for _, tc := range testCases {
		result := engine.ComputeVitality(tc.in, now)
		assert.GreaterOrEqual(t, result.Score, 0.0, "%s: score below 0", tc.name)
		assert.LessOrEqual(t, result.Score, 1.0, "%s: score above 1", tc.name)
		assert.GreaterOrEqual(t, result.Recency, 0.0, "%s: recency below 0", tc.name)
		assert.LessOrEqual(t, result.Recency, 1.0, "%s: recency above 1", tc.name)
		assert.GreaterOrEqual(t, result.Frequency, 0.0, "%s: frequency below 0", tc.name)
		assert.LessOrEqual(t, result.Frequency, 1.0, "%s: frequency above 1", tc.name)
	}
}

func TestFreshThreadScoresActive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Just created, just touched: maximal recency and saturated frequency.
	in := engine.VitalityInput{
		LastTouchedAt: now,
		TouchCount:    1,
		CreatedAt:     now,
		Class:         engine.ClassBacklog,
	}
	result := engine.ComputeVitality(in, now)
	assert.Greater(t, result.Score, 0.9)
	assert.Equal(t, engine.VitalityActive, result.Status)
}

func TestAgedBacklogThreadCools(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Created and last touched one backlog half-life ago.
	in := engine.VitalityInput{
		LastTouchedAt: now.Add(-21 * 24 * time.Hour),
		TouchCount:    1,
		CreatedAt:     now.Add(-21 * 24 * time.Hour),
		Class:         engine.ClassBacklog,
	}
	result := engine.ComputeVitality(in, now)
	assert.InDelta(t, 0.5, result.Recency, 0.01)
	assert.Equal(t, engine.VitalityCooling, result.Status)
}

func TestStatusBoundaries(t *testing.T) {
	testCases := []struct {
		score float64
		want  engine.VitalityStatus
	}{
		{0.5001, engine.VitalityActive},
		{0.5, engine.VitalityCooling}, // active requires strictly above 0.5
		{0.2, engine.VitalityCooling}, // dormant requires strictly below 0.2
		{0.1999, engine.VitalityDormant},
		{1.0, engine.VitalityActive},
		{0.0, engine.VitalityDormant},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, engine.StatusForScore(tc.score),
			"Unexpected status for score %v", tc.score)
	}
}

func TestVitalityRounding(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	in := engine.VitalityInput{
		LastTouchedAt: now.Add(-50 * time.Hour),
		TouchCount:    7,
		CreatedAt:     now.Add(-300 * time.Hour),
		Class:         engine.ClassOperational,
	}
	result := engine.ComputeVitality(in, now)

	// Every returned real value carries at most 4 decimal places.
	for name, v := range map[string]float64{
		"score":     result.Score,
		"recency":   result.Recency,
		"frequency": result.Frequency,
	} {
		assert.Equal(t, math.Round(v*10000)/10000, v,
			"%s should be rounded to 4 decimals", name)
	}
}

func TestVitalityDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	in := engine.VitalityInput{
		LastTouchedAt: now.Add(-10 * 24 * time.Hour),
		TouchCount:    4,
		CreatedAt:     now.Add(-40 * 24 * time.Hour),
		Class:         engine.ClassBacklog,
	}
	first := engine.ComputeVitality(in, now)
	second := engine.ComputeVitality(in, now)
	assert.Equal(t, first, second, "Same inputs must produce identical results")
}
