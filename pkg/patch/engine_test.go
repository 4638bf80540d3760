package patch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_ApplyAll(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		rules      []Rule
		onMultiple MultiplePolicy
		want       string
		wantCounts []int
		wantErr    error
		wantErrAt  int
	}{
		{
			name:    "single_match",
			content: "A. X. B.",
			rules: []Rule{
				{Search: "X", Replace: "Y"},
			},
			want:       "A. Y. B.",
			wantCounts: []int{1},
		},
		{
			name:    "chained_rules",
			content: "A. X. B.",
			rules: []Rule{
				{Search: "X", Replace: "Y"},
				{Search: "Y", Replace: "Z"},
			},
			want:       "A. Z. B.",
			wantCounts: []int{1, 1},
		},
		{
			name:    "zero_matches",
			content: "A. B.",
			rules: []Rule{
				{Search: "X", Replace: "Y"},
			},
			wantErr:    ErrRuleMismatch,
			wantErrAt:  0,
			wantCounts: []int{0},
		},
		{
			name:    "zero_matches_whitespace_drift",
			content: "A.  X. B.",
			rules: []Rule{
				{Search: "A. X.", Replace: "A. Y."},
			},
			wantErr:    ErrRuleMismatch,
			wantErrAt:  0,
			wantCounts: []int{0},
		},
		{
			name:    "multiple_matches_strict",
			content: "A. X. X. B.",
			rules: []Rule{
				{Search: "X", Replace: "Y"},
			},
			wantErr:    ErrAmbiguousRule,
			wantErrAt:  0,
			wantCounts: []int{2},
		},
		{
			name:    "multiple_matches_replace_all",
			content: "A. X. X. B.",
			rules: []Rule{
				{Search: "X", Replace: "Y"},
			},
			onMultiple: MultipleReplaceAll,
			want:       "A. Y. Y. B.",
			wantCounts: []int{2},
		},
		{
			name:    "halts_at_first_mismatch",
			content: "A. X. B.",
			rules: []Rule{
				{Search: "missing", Replace: "anything"},
				{Search: "X", Replace: "Y"},
			},
			wantErr:    ErrRuleMismatch,
			wantErrAt:  0,
			wantCounts: []int{0},
		},
		{
			name:    "later_rule_mismatch_reports_position",
			content: "A. X. B.",
			rules: []Rule{
				{Name: "first", Search: "X", Replace: "Y"},
				{Name: "second", Search: "Q", Replace: "R"},
			},
			wantErr:    ErrRuleMismatch,
			wantErrAt:  1,
			wantCounts: []int{1, 0},
		},
		{
			name:    "replacement_not_rescanned",
			content: "A. X. B.",
			rules: []Rule{
				{Search: "X", Replace: "XX"},
			},
			want:       "A. XX. B.",
			wantCounts: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := NewRuleSet(tt.rules...)
			require.NoError(t, err)

			engine := New(Options{OnMultiple: tt.onMultiple})
			result, err := engine.ApplyAll(context.Background(), []byte(tt.content), rs)

			require.NotNil(t, result)
			require.Len(t, result.Reports, len(tt.wantCounts))
			for i, want := range tt.wantCounts {
				assert.Equal(t, i, result.Reports[i].Index)
				assert.Equal(t, want, result.Reports[i].Occurrences, "rule %d occurrences", i)
			}

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				var ruleErr *RuleError
				require.ErrorAs(t, err, &ruleErr)
				assert.Equal(t, tt.wantErrAt, ruleErr.Index)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, string(result.Content))
		})
	}
}

func TestEngine_ApplyAll_Deterministic(t *testing.T) {
	content := []byte("header\nblock one\nblock two\nfooter\n")
	rs, err := NewRuleSet(
		Rule{Search: "block one", Replace: "section one"},
		Rule{Search: "block two", Replace: "section two"},
	)
	require.NoError(t, err)

	engine := New(Options{})

	first, err := engine.ApplyAll(context.Background(), content, rs)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := engine.ApplyAll(context.Background(), content, rs)
		require.NoError(t, err)
		assert.Equal(t, first.Content, again.Content)
		assert.Equal(t, first.Reports, again.Reports)
	}
}

func TestEngine_ApplyAll_OrderSensitive(t *testing.T) {
	// The second rule's search text only exists after the first rule
	// introduced it. Reversing the order must fail at the first rule.
	content := []byte("A. X. B.")

	forward, err := NewRuleSet(
		Rule{Search: "X", Replace: "Y"},
		Rule{Search: "Y", Replace: "Z"},
	)
	require.NoError(t, err)

	reversed, err := NewRuleSet(
		Rule{Search: "Y", Replace: "Z"},
		Rule{Search: "X", Replace: "Y"},
	)
	require.NoError(t, err)

	engine := New(Options{})

	result, err := engine.ApplyAll(context.Background(), content, forward)
	require.NoError(t, err)
	assert.Equal(t, "A. Z. B.", string(result.Content))

	_, err = engine.ApplyAll(context.Background(), content, reversed)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRuleMismatch)

	var ruleErr *RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, 0, ruleErr.Index)
}

func TestEngine_ApplyAll_NotIdempotent(t *testing.T) {
	// Re-applying the ruleset to already-transformed output must report a
	// mismatch: the search text no longer exists, so the tool can never
	// double-apply silently.
	content := []byte("A. X. B.")
	rs, err := NewRuleSet(Rule{Search: "X", Replace: "Y"})
	require.NoError(t, err)

	engine := New(Options{})

	result, err := engine.ApplyAll(context.Background(), content, rs)
	require.NoError(t, err)
	assert.Equal(t, "A. Y. B.", string(result.Content))

	_, err = engine.ApplyAll(context.Background(), result.Content, rs)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRuleMismatch)
}

func TestEngine_ApplyAll_InputNotMutated(t *testing.T) {
	content := []byte("A. X. B.")
	rs, err := NewRuleSet(Rule{Search: "X", Replace: "Y"})
	require.NoError(t, err)

	engine := New(Options{})
	_, err = engine.ApplyAll(context.Background(), content, rs)
	require.NoError(t, err)

	assert.Equal(t, "A. X. B.", string(content))
}

func TestApplyRule(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		rule      Rule
		policy    MultiplePolicy
		want      string
		wantCount int
		wantErr   error
	}{
		{
			name:      "one_occurrence",
			content:   "before TARGET after",
			rule:      Rule{Search: "TARGET", Replace: "DONE"},
			want:      "before DONE after",
			wantCount: 1,
		},
		{
			name:    "no_occurrence",
			content: "before after",
			rule:    Rule{Search: "TARGET", Replace: "DONE"},
			wantErr: ErrRuleMismatch,
		},
		{
			name:    "two_occurrences_strict",
			content: "TARGET TARGET",
			rule:    Rule{Search: "TARGET", Replace: "DONE"},
			wantErr: ErrAmbiguousRule,
		},
		{
			name:      "two_occurrences_replace_all",
			content:   "TARGET TARGET",
			rule:      Rule{Search: "TARGET", Replace: "DONE"},
			policy:    MultipleReplaceAll,
			want:      "DONE DONE",
			wantCount: 2,
		},
		{
			name:    "empty_search",
			content: "anything",
			rule:    Rule{Search: "", Replace: "DONE"},
			wantErr: ErrEmptySearch,
		},
		{
			name:      "overlapping_counted_non_overlapping",
			content:   "aaaa",
			rule:      Rule{Search: "aa", Replace: "b"},
			policy:    MultipleReplaceAll,
			want:      "bb",
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ApplyRule([]byte(tt.content), tt.rule, tt.policy)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, string(result.Content))
			assert.Equal(t, tt.wantCount, result.Occurrences)
		})
	}
}

func TestNewRuleSet(t *testing.T) {
	tests := []struct {
		name      string
		rules     []Rule
		wantError string
	}{
		{
			name: "valid_rules",
			rules: []Rule{
				{Search: "foo", Replace: "bar"},
				{Name: "named", Search: "baz", Replace: "qux"},
			},
		},
		{
			name:      "no_rules",
			rules:     nil,
			wantError: "at least one rule is required",
		},
		{
			name: "empty_search",
			rules: []Rule{
				{Search: "foo", Replace: "bar"},
				{Search: "", Replace: "qux"},
			},
			wantError: "rule 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := NewRuleSet(tt.rules...)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, rs)
			assert.Equal(t, len(tt.rules), rs.Len())
		})
	}
}

func TestRuleSet_Immutable(t *testing.T) {
	rules := []Rule{{Search: "foo", Replace: "bar"}}
	rs, err := NewRuleSet(rules...)
	require.NoError(t, err)

	// Mutating the input slice or the Rules() copy must not affect the set
	rules[0].Search = "changed"
	got := rs.Rules()
	got[0].Search = "also changed"

	assert.Equal(t, "foo", rs.Rule(0).Search)
}
