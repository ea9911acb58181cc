/*
Package operation applies line patches to files on disk.

	+-------------+
	|  Operation  |
	|   (Plan)    |
	+------+------+
	       |
	+------+------+
	|    text     |
	| (Transform) |
	+------+------+
	       |
	+------+------+
	|   status    |
	|   (Store)   |
	+-------------+

🎯 Purpose:
- Resolves configured patch files (literal paths or doublestar globs)
- Runs the read, transform, write cycle for every rule
- Reports per-file outcomes through the status store and console logger

🔄 Flow:
1. Plan: expand globs and group rules by file, keeping configuration order
2. Transform: text.LinePatcher appends the insertion to matching lines
3. Store: status.Manager truncates and rewrites the file in place
4. Report: track status, print a console line, update progress

⚡ Operations:
- Patch: a single file, a single rule, rooted at the working directory
- NewPatchOperation: every configured patch, with backup, dry run and async
- NewCheckOperation: read-only match counts
- NewRestoreOperation: puts back the .bak copies written by a backup run

⚠️ Patching is not idempotent. Every run appends the insertion again to each
line that still contains the search phrase.

🔍 Example:

	err := operation.Patch(ctx, "data/level12.json", "queue_free", ",\n\t\"start_disabled\": false")
*/
package operation
