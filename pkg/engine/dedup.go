package engine

import "math"

// DedupMethod identifies which tier of the pipeline produced a verdict.
type DedupMethod string

const (
	// MethodEmbedding means vector similarity decided the verdict.
	MethodEmbedding DedupMethod = "embedding"

	// MethodTokenOverlap means token-set overlap decided the verdict.
	MethodTokenOverlap DedupMethod = "token_overlap"

	// MethodTextNormalization means exact normalized-text comparison
	// decided the verdict.
	MethodTextNormalization DedupMethod = "text_normalization"

	// MethodSkipped means there were no existing threads to compare against.
	MethodSkipped DedupMethod = "skipped"
)

// Matching thresholds. Like the scoring constants, these are contractual
// and deliberately not configurable.
const (
	// EmbeddingDuplicateThreshold is the exclusive similarity bound above
	// which two embeddings are considered the same thread.
	EmbeddingDuplicateThreshold = 0.85

	// TokenOverlapThreshold is the exclusive overlap bound for summaries
	// with no shared issue reference.
	TokenOverlapThreshold = 0.6

	// SharedIssueOverlapThreshold is the relaxed exclusive overlap bound
	// used when both summaries open with the same issue reference.
	SharedIssueOverlapThreshold = 0.4
)

// Candidate is one existing thread offered for comparison. Embedding may be
// nil when no vector was ever computed for the thread.
type Candidate struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Embedding []float64 `json:"embedding,omitempty"`
}

// DedupResult is the pipeline's verdict on one proposed thread.
type DedupResult struct {
	// IsDuplicate reports whether an existing thread matched.
	IsDuplicate bool `json:"is_duplicate"`

	// MatchedID and MatchedText identify the matched thread. Both are set
	// only when IsDuplicate is true.
	MatchedID   string `json:"matched_id,omitempty"`
	MatchedText string `json:"matched_text,omitempty"`

	// Similarity is the deciding (or best observed) similarity, rounded to
	// 4 decimal places. It is nil when the deciding tier has no numeric
	// measure: a skipped check, a normalized-text verdict, or an embedding
	// pass that found no comparable vectors.
	Similarity *float64 `json:"similarity,omitempty"`

	// Method names the tier that produced the verdict.
	Method DedupMethod `json:"method"`
}

// CheckDuplicate runs the tiered matching pipeline for one proposed thread
// against a slice of existing candidates.
//
// Tier order:
//  1. With no candidates at all, the check is skipped.
//  2. When the proposed thread has an embedding, vector similarity is
//     authoritative: whatever it concludes, positive or negative, is the
//     final verdict and the cheaper text tiers never run.
//  3. Otherwise token overlap is tried, and if it finds no match the
//     normalized-text comparison gets the last word.
//
// Embeddings are assumed to be unit-length (see NormalizeVector), so
// similarity is a plain dot product. Candidates without embeddings are
// invisible to the embedding tier; vectors of a different dimension than
// the probe score 0 rather than failing.
//
// Parameters:
//   - text: Proposed thread summary
//   - embedding: Unit-length vector for text, or nil when unavailable
//   - existing: Threads already open in the scope being checked
//
// Returns the verdict, including which tier decided and the similarity it
// saw. The function is pure and never returns an error.
func CheckDuplicate(text string, embedding []float64, existing []Candidate) DedupResult {
	if len(existing) == 0 {
		return DedupResult{Method: MethodSkipped}
	}

	if embedding != nil {
		return matchByEmbedding(embedding, existing)
	}

	if res, matched := matchByTokenOverlap(text, existing); matched {
		return res
	}
	return matchByNormalizedText(text, existing)
}

// matchByEmbedding compares the probe vector against every candidate that
// carries one and judges the single best-scoring candidate against the
// duplicate threshold.
func matchByEmbedding(embedding []float64, existing []Candidate) DedupResult {
	bestIdx := -1
	bestSim := 0.0
	for i, c := range existing {
		if c.Embedding == nil {
			continue
		}
		sim := unitDot(embedding, c.Embedding)
		if bestIdx < 0 || sim > bestSim {
			bestIdx, bestSim = i, sim
		}
	}

	if bestIdx < 0 {
		// No candidate had a vector; nothing was measured.
		return DedupResult{Method: MethodEmbedding}
	}

	sim := round4(bestSim)
	if bestSim > EmbeddingDuplicateThreshold {
		return DedupResult{
			IsDuplicate: true,
			MatchedID:   existing[bestIdx].ID,
			MatchedText: existing[bestIdx].Text,
			Similarity:  &sim,
			Method:      MethodEmbedding,
		}
	}
	return DedupResult{Similarity: &sim, Method: MethodEmbedding}
}

// matchByTokenOverlap looks for the candidate with the highest overlap
// coefficient above its applicable threshold. The threshold drops from 0.6
// to 0.4 when the probe and the candidate open with the same issue
// reference. Reports matched=false when nothing clears its threshold.
func matchByTokenOverlap(text string, existing []Candidate) (DedupResult, bool) {
	probe := Tokenize(text)
	probePrefix := IssuePrefix(text)

	bestIdx := -1
	bestOverlap := 0.0
	for i, c := range existing {
		overlap := OverlapCoefficient(probe, Tokenize(c.Text))
		threshold := TokenOverlapThreshold
		if probePrefix != "" && probePrefix == IssuePrefix(c.Text) {
			threshold = SharedIssueOverlapThreshold
		}
		if overlap > threshold && overlap > bestOverlap {
			bestIdx, bestOverlap = i, overlap
		}
	}

	if bestIdx < 0 {
		return DedupResult{}, false
	}
	sim := round4(bestOverlap)
	return DedupResult{
		IsDuplicate: true,
		MatchedID:   existing[bestIdx].ID,
		MatchedText: existing[bestIdx].Text,
		Similarity:  &sim,
		Method:      MethodTokenOverlap,
	}, true
}

// matchByNormalizedText declares a duplicate on exact equality of the
// normalized summaries. The first candidate in slice order wins.
func matchByNormalizedText(text string, existing []Candidate) DedupResult {
	norm := NormalizeText(text)
	for _, c := range existing {
		if NormalizeText(c.Text) == norm {
			return DedupResult{
				IsDuplicate: true,
				MatchedID:   c.ID,
				MatchedText: c.Text,
				Method:      MethodTextNormalization,
			}
		}
	}
	return DedupResult{Method: MethodTextNormalization}
}

// unitDot is the dot product of two vectors that are assumed to be
// unit-length, making it equal to their cosine similarity. Vectors of
// different dimensions score 0.
func unitDot(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}

// NormalizeVector scales v to unit L2 length, returning a new slice.
// Zero vectors (and empty ones) are returned as-is, since they cannot be
// normalized. Callers storing embeddings for CheckDuplicate should pass
// them through here first so the dot-product similarity holds.
func NormalizeVector(v []float64) []float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}
