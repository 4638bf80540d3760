package patch

import (
	"strconv"

	"gitlab.com/tozd/go/errors"
)

// Rule defines a single literal substitution
type Rule struct {
	// Name is an optional human-readable label used in reports
	Name string

	// Search is the exact text to find. It is opaque literal text: no
	// escaping, no pattern semantics
	Search string

	// Replace is the replacement text
	Replace string
}

// Label returns the rule's name, or its 0-based position when unnamed
func (r Rule) Label(index int) string {
	if r.Name != "" {
		return r.Name
	}
	return "rule " + strconv.Itoa(index)
}

// MultiplePolicy controls what happens when a rule's search text occurs
// more than once in the buffer. The policy is uniform for a whole run,
// never per rule.
type MultiplePolicy int

const (
	// MultipleFail treats more than one occurrence as an error. This is
	// the default: each rule is meant to target one uniquely-identifiable
	// block, so an ambiguous match means the rule is not specific enough.
	MultipleFail MultiplePolicy = iota

	// MultipleReplaceAll replaces every occurrence, left to right
	MultipleReplaceAll
)

// String returns a string representation of MultiplePolicy
func (p MultiplePolicy) String() string {
	switch p {
	case MultipleFail:
		return "fail"
	case MultipleReplaceAll:
		return "all"
	default:
		return "unknown"
	}
}

// RuleSet is a fixed ordered sequence of rules. Order is significant: a
// later rule's search text may only exist after an earlier rule introduced
// it. A RuleSet is immutable once constructed.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet creates a RuleSet, validating every rule. A rule with empty
// search text is a configuration error and is rejected here, not at apply
// time.
func NewRuleSet(rules ...Rule) (*RuleSet, error) {
	if len(rules) == 0 {
		return nil, errors.Errorf("at least one rule is required")
	}
	for i, rule := range rules {
		if rule.Search == "" {
			return nil, errors.Errorf("%s: %w", rule.Label(i), ErrEmptySearch)
		}
	}
	rs := &RuleSet{rules: make([]Rule, len(rules))}
	copy(rs.rules, rules)
	return rs, nil
}

// Len returns the number of rules
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Rule returns the rule at the given position
func (rs *RuleSet) Rule(i int) Rule {
	return rs.rules[i]
}

// Rules returns a copy of the rule sequence
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}
