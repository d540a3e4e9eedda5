// Package pipeline provides the orchestration logic for enriching a
// bookmarks file with locally downloaded icons.
//
// # Coordinator
//
// The Coordinator drives one run through its phases:
//
//  1. Loading — parse the bookmarks JSON (fatal if not an array)
//  2. BackingUp — copy the original to <input>.bak (optional)
//  3. Fetching — download icons under a bounded worker pool
//  4. Merging — apply successful outcomes back, in input order
//  5. Persisting — atomically rewrite the bookmarks file
//
// # Basic Usage
//
//	coordinator := pipeline.NewCoordinator(settings, "bookmarks.json", func(event pipeline.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//	summary, err := coordinator.Run(ctx)
//
// # Concurrency
//
// Fetch tasks run in parallel, bounded by settings.Workers. Each task
// writes its outcome into a slot keyed by the bookmark's input index,
// so the merge phase sees results in input order no matter when tasks
// finish. The bookmark slice itself is read-only until every task has
// completed.
//
// Naming collisions between concurrent tasks that derive the same base
// name are resolved best-effort through the filesystem existence check
// in ioutils.Writer; there is no cross-task name registry. Two tasks
// can in rare cases claim the same path before either writes. This
// matches the tool's original behavior and is accepted for a
// single-user batch utility.
//
// # Failure Model
//
// Per-bookmark failures (no icon URL, non-200 status, transport or
// write errors) are recorded on the outcome and leave that bookmark's
// icon field untouched. Only errors around the bookmarks file itself
// abort the run.
package pipeline
