/*
Package config manages patchfile parsing and validation for blockpatch.

	            +-------------+
	            |  Patchfile  |
	            | (RuleSet)   |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +----+----+
	|   YAML    | |  JSON   | |   HCL   |
	|  Parser   | | Parser  | | Parser  |
	+-----------+ +---------+ +---------+

🎯 Purpose:
- Loads the patchfile that drives one run: target file, policy, rules
- Validates rules up front (empty search is a configuration error)
- Converts the patchfile into an engine RuleSet

🔄 Flow:
1. Reads the patchfile from disk
2. Dispatches to a format parser by extension (.blockpatch tries YAML, HCL)
3. Validates target, policy, and every rule
4. Hands a RuleSet and policy to the engine

📝 Design Philosophy:
Parsers are strict: unknown fields are rejected so a typo in a patchfile
fails loudly instead of silently dropping a rule. The patchfile is the
tool's entire configuration surface — there are no environment variables.
*/
package config
