package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentline/threadpulse-go/pkg/engine"
)

func TestTokenize(t *testing.T) {
	tokens := engine.Tokenize("Fix the JWT refresh-token bug!")

	assert.Len(t, tokens, 4)
	for _, want := range []string{"fix", "jwt", "refresh-token", "bug"} {
		assert.Contains(t, tokens, want)
	}
	assert.NotContains(t, tokens, "the", "Stopwords are dropped")
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	tokens := engine.Tokenize("a I x 42 ok")

	// Single-character tokens vanish; two characters survive.
	assert.NotContains(t, tokens, "a")
	assert.NotContains(t, tokens, "i")
	assert.NotContains(t, tokens, "x")
	assert.Contains(t, tokens, "42")
	assert.Contains(t, tokens, "ok")
}

func TestTokenizeEmptyInput(t *testing.T) {
	assert.Empty(t, engine.Tokenize(""))
	assert.Empty(t, engine.Tokenize("  ...  "))
	assert.Empty(t, engine.Tokenize("the of and")) // stopwords only
}

func TestOverlapCoefficient(t *testing.T) {
	set := func(words ...string) map[string]struct{} {
		m := make(map[string]struct{}, len(words))
		for _, w := range words {
			m[w] = struct{}{}
		}
		return m
	}

	testCases := []struct {
		name string
		a, b map[string]struct{}
		want float64
	}{
		{"identical", set("alpha", "beta"), set("alpha", "beta"), 1.0},
		{"subset", set("alpha", "beta"), set("alpha", "beta", "gamma", "delta"), 1.0},
		{"half", set("alpha", "gamma"), set("alpha", "beta"), 0.5},
		{"disjoint", set("alpha"), set("beta"), 0.0},
		{"empty side", set(), set("alpha"), 0.0},
		{"both empty", set(), set(), 0.0},
	}

	for _, tc := range testCases {
		assert.InDelta(t, tc.want, engine.OverlapCoefficient(tc.a, tc.b), 0.0001, tc.name)
		assert.InDelta(t, tc.want, engine.OverlapCoefficient(tc.b, tc.a), 0.0001,
			"%s: overlap coefficient is symmetric", tc.name)
	}
}

func TestIssuePrefix(t *testing.T) {
	testCases := []struct {
		text string
		want string
	}{
		{"OD-692 fix the migration", "OD-692"},
		{"jira-17: flaky test", "JIRA-17"},
		{"no reference here", ""},
		{"OD- 1 malformed", ""},
		{"mid OD-692 not leading", ""},
		{"", ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, engine.IssuePrefix(tc.text), "text: %q", tc.text)
	}
}

func TestNormalizeText(t *testing.T) {
	testCases := []struct {
		text string
		want string
	}{
		{"  Fix   login   bug!!  ", "fix login bug"},
		{"Done?!", "done"},
		{"Ship it;;;", "ship it"},
		{"Already clean", "already clean"},
		{"Can't stop", "can't stop"}, // interior punctuation is preserved
		{"", ""},
		{"  \t \n ", ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, engine.NormalizeText(tc.text), "text: %q", tc.text)
	}
}
