package patch

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// Sentinel failure conditions. RuleMismatch and AmbiguousRule are detected
// during ApplyAll; EmptySearch is detected at RuleSet construction.
var (
	// ErrRuleMismatch means a rule's search text has zero occurrences in
	// the current buffer: the expected source block is absent, either
	// because the patch was already applied or because the source drifted
	ErrRuleMismatch = errors.Base("search text not found")

	// ErrAmbiguousRule means a rule's search text occurs more than once
	// where exactly one occurrence was expected
	ErrAmbiguousRule = errors.Base("search text matched more than once")

	// ErrEmptySearch means a rule was constructed with empty search text
	ErrEmptySearch = errors.Base("search text is empty")
)

// RuleError reports which rule failed and what the engine observed. It
// wraps ErrRuleMismatch or ErrAmbiguousRule.
type RuleError struct {
	// Index is the rule's 0-based position in the RuleSet
	Index int

	// Name is the rule's label (may be empty)
	Name string

	// Occurrences is the number of matches found
	Occurrences int

	// Err is the underlying failure condition
	Err error
}

// Error implements the error interface
func (e *RuleError) Error() string {
	label := Rule{Name: e.Name}.Label(e.Index)
	return fmt.Sprintf("%s: %v (%d occurrences)", label, e.Err, e.Occurrences)
}

// Unwrap exposes the underlying condition for errors.Is
func (e *RuleError) Unwrap() error {
	return e.Err
}
