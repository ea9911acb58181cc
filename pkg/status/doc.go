/*
Package status manages file storage and status tracking for linepatch.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           |  Logs   |
	| (In place)|           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Reads target files and rewrites them in place
- Tracks per-file outcomes (patched, unchanged, preview, restored, failed)
- Keeps optional .bak copies

🔄 Flow:
1. Operation reads the full file through the Manager
2. Transformed content is written back to the same path (truncate + write)
3. The outcome is recorded with TrackFile and logged

📝 Design Philosophy:
Writes are deliberately simple. WriteFile never creates a file and never goes
through a temp file, so a missing target is an error and an interrupted write
can leave a truncated file. Callers that want a safety net enable backups.
*/
package status
