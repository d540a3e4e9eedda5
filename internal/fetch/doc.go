// Package fetch contains the per-bookmark download task and the file
// extension resolver.
//
// A Task orchestrates one bookmark end to end: derive a safe base name
// from the title (or hostname), GET the icon URL, pick an extension
// from the response, and stream the body to disk through the
// collision-safe writer. Every failure mode is classified on the
// returned model.Outcome; nothing propagates past Run.
//
//	task := fetch.NewTask(client, writer)
//	outcome := task.Run(ctx, i, bookmark)
//	if outcome.OK() {
//	    fmt.Println("saved to", outcome.Path)
//	}
package fetch
