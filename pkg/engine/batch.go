package engine

// acceptedCandidate caches the derived text features of an already accepted
// item so each later candidate is compared without re-deriving them.
type acceptedCandidate struct {
	norm   string
	tokens map[string]struct{}
	prefix string
}

// DeduplicateCandidates cleanses an ordered collection in one pass, keeping
// the first occurrence of every distinct thread and dropping the rest.
//
// An item is dropped when any of these holds:
//   - its text normalizes to the empty string;
//   - an item with the same non-empty ID was already accepted;
//   - its normalized text exactly equals an accepted item's, or its token
//     overlap with an accepted item exceeds the adaptive threshold (0.4
//     when both share an issue prefix, 0.6 otherwise).
//
// Unlike the single check, no embedding tier runs here; callers wanting
// vector-based cleansing run CheckDuplicate per item themselves.
//
// The input slice is never mutated and the returned slice preserves input
// order. The operation is idempotent: running it on its own output returns
// the same sequence, because every pair of survivors is already below both
// match conditions.
//
// Comparison cost is O(n²) in the number of survivors, which is fine for
// the expected scale of tens to low hundreds of open threads per scope.
func DeduplicateCandidates(items []Candidate) []Candidate {
	out := make([]Candidate, 0, len(items))
	accepted := make([]acceptedCandidate, 0, len(items))
	seenIDs := make(map[string]struct{}, len(items))

	for _, item := range items {
		norm := NormalizeText(item.Text)
		if norm == "" {
			continue
		}
		if item.ID != "" {
			if _, dup := seenIDs[item.ID]; dup {
				continue
			}
		}

		tokens := Tokenize(item.Text)
		prefix := IssuePrefix(item.Text)

		duplicate := false
		for _, prev := range accepted {
			if prev.norm == norm {
				duplicate = true
				break
			}
			threshold := TokenOverlapThreshold
			if prefix != "" && prefix == prev.prefix {
				threshold = SharedIssueOverlapThreshold
			}
			if OverlapCoefficient(tokens, prev.tokens) > threshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		if item.ID != "" {
			seenIDs[item.ID] = struct{}{}
		}
		accepted = append(accepted, acceptedCandidate{norm: norm, tokens: tokens, prefix: prefix})
		out = append(out, item)
	}
	return out
}
