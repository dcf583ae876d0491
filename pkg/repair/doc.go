/*
Package repair applies ordered literal substitutions to every selected file
under a directory tree and rewrites only the files whose content changed.

	+-------------+     +-------------+     +-------------+
	|    Walk     | --> |   Repair    | --> |   Record    |
	| (select)    |     | (per file)  |     | (summary)   |
	+-------------+     +-------------+     +-------------+

🔄 Per file:
1. Read bytes
2. Decode with the declared encoding (failure: decode)
3. Apply rules in order
4. If changed, encode and replace atomically (failure: io)

⚡ Guarantees:
- A failure in one file never stops the scan of the others
- Files without a match are never written
- Symlinks are never followed
- Results are reported in traversal order, also with several workers
*/
package repair
