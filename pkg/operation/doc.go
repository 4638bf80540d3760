/*
Package operation implements the orchestration for one patch run.

	+-------------+
	|  Patchfile  |
	+------+------+
	       |
	+------+------+      +-----------+
	|  Operator   +----->+  Engine   |
	| (Apply)     |      | (patch)   |
	+------+------+      +-----------+
	       |
	+------+------+
	|  fileops    |
	| (I/O shell) |
	+-------------+

🎯 Purpose:
- Resolves the target file, reads it, runs the engine, persists the result
- Writes the target only after every rule applied cleanly
- Reports every rule's occurrence count on both the success and failure path

🔄 Flow:
1. Resolve the patchfile's target (glob must match exactly one file)
2. Read the whole target into memory
3. ApplyAll over the ruleset
4. On success (and not a dry run): optional backup, then atomic overwrite
5. On any failure: leave the target untouched, report the failing rule

📝 Design Philosophy:
The operator owns all I/O so the engine can stay a pure function. Apply and
Check share one code path; Check simply stops before the write. That makes
"would this patchfile apply cleanly" answerable without side effects, which
is also how an already-patched target is detected (the first rule's search
text no longer exists).
*/
package operation
