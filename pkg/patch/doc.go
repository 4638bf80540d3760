/*
Package patch implements the core engine for deterministic exact-match
source patching.

	+-------------+
	|   RuleSet   |
	| (Ordered)   |
	+------+------+
	       |
	+------+------+
	|   Engine    |
	| (ApplyAll)  |
	+------+------+
	       |
	+------+------+
	|   Result    |
	| (Report)    |
	+------+------+

🎯 Purpose:
- Applies an ordered list of literal search/replace rules to a text buffer
- Each rule operates on the output of the previous one
- Counts occurrences per rule and refuses to guess when a rule is ambiguous

🔄 Flow:
1. RuleSet is constructed and validated up front (empty search is rejected)
2. ApplyAll threads the buffer through every rule in order
3. Zero matches or multiple matches (strict policy) end the run
4. The caller gets the final buffer plus a per-rule occurrence report

📝 Design Philosophy:
The engine is a pure transformation from (buffer, rules) to (buffer, report).
It performs no I/O: reading the target file and persisting the result belong
to the caller, which must only write on full success. The match count is part
of the contract: a silently skipped rule leaves the document half-migrated,
so the engine fails loudly instead.
*/
package patch
