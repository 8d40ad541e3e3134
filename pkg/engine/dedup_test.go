package engine_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentline/threadpulse-go/pkg/engine"
)

func TestCheckDuplicateEmptyExisting(t *testing.T) {
	result := engine.CheckDuplicate("Fix login bug", nil, nil)
	assert.False(t, result.IsDuplicate)
	assert.Equal(t, engine.MethodSkipped, result.Method)
	assert.Nil(t, result.Similarity)

	result = engine.CheckDuplicate("Fix login bug", []float64{1, 0}, []engine.Candidate{})
	assert.Equal(t, engine.MethodSkipped, result.Method)
}

func TestEmbeddingIdenticalVectors(t *testing.T) {
	vec := []float64{0.6, 0.8}
	existing := []engine.Candidate{
		{ID: "t1", Text: "Investigate flaky deploy pipeline", Embedding: vec},
	}

	result := engine.CheckDuplicate("Deploy pipeline is flaky", vec, existing)
	assert.True(t, result.IsDuplicate)
	assert.Equal(t, engine.MethodEmbedding, result.Method)
	assert.Equal(t, "t1", result.MatchedID)
	assert.Equal(t, "Investigate flaky deploy pipeline", result.MatchedText)
	if assert.NotNil(t, result.Similarity) {
		assert.InDelta(t, 1.0, *result.Similarity, 0.0001)
	}
}

func TestEmbeddingPicksBestMatch(t *testing.T) {
	probe := []float64{1, 0}
	existing := []engine.Candidate{
		{ID: "near", Text: "near match", Embedding: []float64{0.9, math.Sqrt(1 - 0.81)}},
		{ID: "nearest", Text: "nearest match", Embedding: []float64{0.99, math.Sqrt(1 - 0.9801)}},
	}

	result := engine.CheckDuplicate("probe", probe, existing)
	assert.True(t, result.IsDuplicate)
	assert.Equal(t, "nearest", result.MatchedID)
	if assert.NotNil(t, result.Similarity) {
		assert.InDelta(t, 0.99, *result.Similarity, 0.0001)
	}
}

func TestEmbeddingVerdictIsAuthoritative(t *testing.T) {
	// The candidate text is identical, so the text tiers would call this a
	// duplicate. But the probe has an embedding, similarity is below the
	// threshold, and the embedding verdict stands: no fallthrough.
	probe := []float64{1, 0}
	existing := []engine.Candidate{
		{ID: "t1", Text: "Fix login bug", Embedding: []float64{0.8, 0.6}},
	}

	result := engine.CheckDuplicate("Fix login bug", probe, existing)
	assert.False(t, result.IsDuplicate)
	assert.Equal(t, engine.MethodEmbedding, result.Method)
	assert.Empty(t, result.MatchedID)
	if assert.NotNil(t, result.Similarity) {
		assert.InDelta(t, 0.8, *result.Similarity, 0.0001)
	}
}

func TestEmbeddingExactThresholdIsNotDuplicate(t *testing.T) {
	// 0.85 must be strictly exceeded.
	probe := []float64{1, 0}
	existing := []engine.Candidate{
		{ID: "t1", Text: "borderline", Embedding: []float64{0.85, math.Sqrt(1 - 0.85*0.85)}},
	}

	result := engine.CheckDuplicate("probe", probe, existing)
	assert.False(t, result.IsDuplicate)
	assert.Equal(t, engine.MethodEmbedding, result.Method)
}

func TestEmbeddingMismatchedDimensions(t *testing.T) {
	// A wrong-length vector scores 0 for that pair but never aborts the
	// comparison; the well-formed candidate still matches.
	probe := []float64{1, 0, 0}
	existing := []engine.Candidate{
		{ID: "short", Text: "wrong dims", Embedding: []float64{1, 0}},
		{ID: "good", Text: "right dims", Embedding: []float64{0.95, math.Sqrt(1 - 0.9025), 0}},
	}

	result := engine.CheckDuplicate("probe", probe, existing)
	assert.True(t, result.IsDuplicate)
	assert.Equal(t, "good", result.MatchedID)
}

func TestEmbeddingNoComparableCandidates(t *testing.T) {
	// Probe has a vector but no candidate does: nothing was measured, and
	// the embedding tier still owns the (negative) verdict.
	probe := []float64{1, 0}
	existing := []engine.Candidate{
		{ID: "t1", Text: "Fix login bug"},
		{ID: "t2", Text: "Update onboarding docs"},
	}

	result := engine.CheckDuplicate("Fix login bug", probe, existing)
	assert.False(t, result.IsDuplicate)
	assert.Equal(t, engine.MethodEmbedding, result.Method)
	assert.Nil(t, result.Similarity)
}

func TestEmbeddingSimilarityRounded(t *testing.T) {
	inv := 1 / math.Sqrt2
	probe := []float64{inv, inv}
	existing := []engine.Candidate{
		{ID: "t1", Text: "diagonal", Embedding: []float64{1, 0}},
	}

	result := engine.CheckDuplicate("probe", probe, existing)
	assert.False(t, result.IsDuplicate)
	if assert.NotNil(t, result.Similarity) {
		assert.Equal(t, 0.7071, *result.Similarity)
	}
}

func TestTokenOverlapMatch(t *testing.T) {
	existing := []engine.Candidate{
		{ID: "t1", Text: "Fix auth timeout"},
	}

	// Shares "fix" and "timeout": overlap 2/3 clears the 0.6 threshold even
	// though the normalized texts differ.
	result := engine.CheckDuplicate("Fix authentication timeout", nil, existing)
	assert.True(t, result.IsDuplicate)
	assert.Equal(t, engine.MethodTokenOverlap, result.Method)
	assert.Equal(t, "t1", result.MatchedID)
	if assert.NotNil(t, result.Similarity) {
		assert.InDelta(t, 2.0/3.0, *result.Similarity, 0.0001)
	}
}

func TestTokenOverlapBelowThreshold(t *testing.T) {
	existing := []engine.Candidate{
		{ID: "t1", Text: "Rewrite billing reconciliation job"},
	}

	result := engine.CheckDuplicate("Update onboarding docs", nil, existing)
	assert.False(t, result.IsDuplicate)
	assert.Equal(t, engine.MethodTextNormalization, result.Method)
}

func TestTokenOverlapSharedIssuePrefix(t *testing.T) {
	// Overlap here is 2/4 = 0.5: below the default 0.6 threshold, above the
	// relaxed 0.4 threshold that applies when both texts open with the same
	// issue reference.
	probe := "OD-692 migration of workspace database stuck"
	existing := []engine.Candidate{
		{ID: "t1", Text: "OD-692 migration plan review"},
	}

	result := engine.CheckDuplicate(probe, nil, existing)
	assert.True(t, result.IsDuplicate)
	assert.Equal(t, engine.MethodTokenOverlap, result.Method)

	// Same 0.5 overlap against a different issue keeps the strict threshold.
	other := []engine.Candidate{
		{ID: "t2", Text: "OD-693 migration database checkpoints"},
	}
	result = engine.CheckDuplicate(probe, nil, other)
	assert.False(t, result.IsDuplicate)
	assert.Equal(t, engine.MethodTextNormalization, result.Method)
}

func TestIdenticalTextMatchesViaTokenOverlap(t *testing.T) {
	// Identical wording saturates the overlap coefficient, so the token
	// tier claims the match before normalization is ever consulted.
	existing := []engine.Candidate{
		{ID: "t1", Text: "Ship the new release"},
	}

	result := engine.CheckDuplicate("ship the new release", nil, existing)
	assert.True(t, result.IsDuplicate)
	assert.Equal(t, engine.MethodTokenOverlap, result.Method)
}

func TestTextNormalizationMatch(t *testing.T) {
	// Every word is a stopword, so the token sets are empty and the token
	// tier yields nothing; normalized equality still catches the duplicate.
	existing := []engine.Candidate{
		{ID: "t1", Text: "do it  NOW."},
	}

	result := engine.CheckDuplicate("Do it now", nil, existing)
	assert.True(t, result.IsDuplicate)
	assert.Equal(t, engine.MethodTextNormalization, result.Method)
	assert.Equal(t, "t1", result.MatchedID)
	assert.Nil(t, result.Similarity, "Normalization verdicts carry no similarity")
}

func TestNormalizeVector(t *testing.T) {
	normalized := engine.NormalizeVector([]float64{3, 4})
	assert.InDelta(t, 0.6, normalized[0], 0.0001)
	assert.InDelta(t, 0.8, normalized[1], 0.0001)

	var length float64
	for _, v := range normalized {
		length += v * v
	}
	assert.InDelta(t, 1.0, length, 0.0001)

	// Zero vectors cannot be normalized and come back untouched.
	zero := []float64{0, 0, 0}
	assert.Equal(t, zero, engine.NormalizeVector(zero))
}
