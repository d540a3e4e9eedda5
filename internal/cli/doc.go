// Package cli defines the fetch-icons command: flag parsing, settings
// resolution and wiring of the pipeline to either plain console output
// or the progress-bar display.
//
// The command exits zero even when individual icon fetches fail; only
// fatal conditions around the bookmarks file itself (missing input,
// malformed JSON, unrecoverable write) produce an error and a non-zero
// exit.
package cli
