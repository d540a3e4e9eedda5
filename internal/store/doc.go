// Package store handles reading and rewriting the bookmarks JSON file.
//
// Load enforces the one fatal shape requirement: the top level must be
// an array of bookmark objects. Backup copies the original aside before
// any mutation, and Save rewrites the file with write-temp-then-rename
// so a failed run can never truncate it. Non-ASCII text is preserved
// exactly as it appeared in the input.
package store
