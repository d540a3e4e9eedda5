// Package model defines the bookmark record and per-bookmark outcome
// types shared across the pipeline.
//
// # Bookmarks
//
// A bookmarks file is a JSON array of objects with title, url and icon
// fields. Records are identified purely by position: the pipeline reads
// them once, processes them in parallel, and writes them back in the
// same order.
//
//	[
//	  {"title": "Example", "url": "http://example.com", "icon": "http://example.com/favicon.ico"}
//	]
//
// # Outcomes
//
// Every bookmark with an icon URL yields exactly one Outcome, tagged
// either as a success carrying the local path, or as a classified
// failure (FailureNoIconURL, FailureHTTPStatus, FailureTransport,
// FailureWrite). Bookmarks without an icon URL are recorded as
// FailureNoIconURL without being dispatched.
package model
