package engine

import (
	"regexp"
	"strings"
)

var (
	// tokenBoundary splits lowercased text into tokens. Hyphens are kept so
	// compound identifiers like "rate-limit" survive as one token.
	tokenBoundary = regexp.MustCompile(`[^a-z0-9-]+`)

	// issuePrefix matches a leading tracker reference such as "JIRA-123" or
	// "gh-42".
	issuePrefix = regexp.MustCompile(`^[A-Za-z]+-\d+`)

	// whitespaceRun collapses any run of whitespace to a single space.
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// stopwords are common English words that carry no signal when comparing
// thread summaries. Single-character tokens are dropped separately, so
// words like "a" and "i" need no entry here.
var stopwords = map[string]struct{}{
	"about": {}, "after": {}, "again": {}, "all": {}, "an": {},
	"and": {}, "any": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "been": {}, "before": {}, "being": {}, "between": {},
	"but": {}, "by": {}, "can": {}, "did": {}, "do": {},
	"does": {}, "down": {}, "during": {}, "each": {}, "for": {},
	"from": {}, "had": {}, "has": {}, "have": {}, "he": {},
	"her": {}, "here": {}, "him": {}, "his": {}, "how": {},
	"if": {}, "in": {}, "into": {}, "is": {}, "it": {},
	"its": {}, "just": {}, "me": {}, "more": {}, "most": {},
	"my": {}, "no": {}, "nor": {}, "not": {}, "now": {},
	"of": {}, "off": {}, "on": {}, "once": {}, "only": {},
	"or": {}, "our": {}, "out": {}, "over": {}, "own": {},
	"she": {}, "so": {}, "some": {}, "such": {}, "than": {},
	"that": {}, "the": {}, "their": {}, "them": {}, "then": {},
	"there": {}, "these": {}, "they": {}, "this": {}, "those": {},
	"through": {}, "to": {}, "too": {}, "under": {}, "until": {},
	"up": {}, "very": {}, "was": {}, "we": {}, "were": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "while": {},
	"who": {}, "why": {}, "will": {}, "with": {}, "you": {},
	"your": {},
}

// Tokenize lowercases text, splits it on non-alphanumeric, non-hyphen
// boundaries, and returns the surviving tokens as a set. Stopwords and
// tokens of one character or less are dropped.
func Tokenize(text string) map[string]struct{} {
	parts := tokenBoundary.Split(strings.ToLower(text), -1)
	set := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		if len(p) <= 1 {
			continue
		}
		if _, stop := stopwords[p]; stop {
			continue
		}
		set[p] = struct{}{}
	}
	return set
}

// OverlapCoefficient returns |a ∩ b| / min(|a|, |b|).
//
// Unlike Jaccard similarity, the overlap coefficient is insensitive to a
// large size difference between the two sets, so a short summary that is
// wholly contained in a longer one still scores 1.0. Returns 0 when either
// set is empty.
func OverlapCoefficient(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	shared := 0
	for tok := range small {
		if _, ok := large[tok]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(small))
}

// IssuePrefix extracts a leading issue-tracker reference ("PROJ-123") from
// text, uppercased for comparison, or "" when the text has none. Two
// summaries naming the same issue are compared with a lower overlap
// threshold, since wording often differs while the subject is identical.
func IssuePrefix(text string) string {
	return strings.ToUpper(issuePrefix.FindString(text))
}

// NormalizeText canonicalizes text for exact-match comparison: lowercase,
// whitespace runs collapsed to one space, surrounding whitespace trimmed,
// and any run of trailing sentence punctuation removed.
func NormalizeText(text string) string {
	s := strings.ToLower(text)
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	return strings.TrimRight(s, ".!?;:")
}
