/*
Package status records what happened to each file during a repair run and
owns the file system writes that make a repair durable.

	        +-------------+
	        |   Engine    |
	        +------+------+
	               |
	   +-----------+-----------+
	   |           |           |
	+--+---+   +---+----+  +---+-----+
	| Files|   | Summary|  | Reporter|
	| (I/O)|   | (count)|  | (UI/UX) |
	+------+   +--------+  +---------+

🎯 Purpose:
- Classify each file as unchanged, fixed, or failed
- Keep the error taxonomy (decode vs io) attached to failures
- Accumulate a run summary safely from several workers
- Replace files atomically so a crash never leaves a truncated file
- Print the per-file and total lines users read

📝 Output contract:

	Fixed: <path>
	Error processing <path>: <reason>

	Total files fixed: <n>
*/
package status
