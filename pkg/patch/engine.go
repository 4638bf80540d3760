package patch

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// ApplyResult contains the outcome of applying a single rule
type ApplyResult struct {
	// Content is the buffer after substitution
	Content []byte

	// Occurrences is the number of matches that were replaced
	Occurrences int
}

// RuleReport records the occurrence count for one rule of a run
type RuleReport struct {
	// Index is the rule's 0-based position in the RuleSet
	Index int

	// Name is the rule's label (may be empty)
	Name string

	// Occurrences is the number of matches found in the buffer the rule
	// was applied to
	Occurrences int
}

// Result contains the outcome of a full run
type Result struct {
	// Content is the final buffer after all rules were applied
	Content []byte

	// Reports holds one entry per applied rule, in rule order. On failure
	// it covers every rule up to and including the failing one.
	Reports []RuleReport
}

// Options contains configuration for the engine
type Options struct {
	// OnMultiple is the policy for rules that match more than once.
	// The zero value is MultipleFail.
	OnMultiple MultiplePolicy
}

// Engine applies a RuleSet to a text buffer. It holds no state between
// runs and performs no I/O.
type Engine struct {
	onMultiple MultiplePolicy
}

// New creates a new engine
func New(opts Options) *Engine {
	return &Engine{onMultiple: opts.OnMultiple}
}

// ApplyRule applies one rule to a buffer. The scan is a left-to-right,
// non-overlapping literal scan; replacement text is never rescanned within
// the same application. The input buffer is not modified.
func ApplyRule(content []byte, rule Rule, policy MultiplePolicy) (*ApplyResult, error) {
	if rule.Search == "" {
		return nil, ErrEmptySearch
	}

	text := string(content)
	count := strings.Count(text, rule.Search)

	switch {
	case count == 0:
		return nil, ErrRuleMismatch
	case count > 1 && policy == MultipleFail:
		return nil, ErrAmbiguousRule
	}

	return &ApplyResult{
		Content:     []byte(strings.Replace(text, rule.Search, rule.Replace, count)),
		Occurrences: count,
	}, nil
}

// ApplyAll applies every rule of the RuleSet to the buffer, in order, each
// rule operating on the output of the previous one. It stops at the first
// rule that fails; the partial report is returned alongside the error so
// the caller can show which rules had already matched. The caller must not
// persist Content unless the error is nil.
func (e *Engine) ApplyAll(ctx context.Context, content []byte, rs *RuleSet) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	result := &Result{
		Content: content,
		Reports: make([]RuleReport, 0, rs.Len()),
	}

	for i, rule := range rs.Rules() {
		applied, err := ApplyRule(result.Content, rule, e.onMultiple)
		if err != nil {
			occurrences := strings.Count(string(result.Content), rule.Search)
			result.Reports = append(result.Reports, RuleReport{
				Index:       i,
				Name:        rule.Name,
				Occurrences: occurrences,
			})
			return result, &RuleError{
				Index:       i,
				Name:        rule.Name,
				Occurrences: occurrences,
				Err:         err,
			}
		}

		logger.Debug().
			Int("rule", i).
			Str("name", rule.Name).
			Int("occurrences", applied.Occurrences).
			Msg("applied rule")

		result.Content = applied.Content
		result.Reports = append(result.Reports, RuleReport{
			Index:       i,
			Name:        rule.Name,
			Occurrences: applied.Occurrences,
		})
	}

	return result, nil
}
