package model

import "strings"

// Bookmark represents a single entry in the bookmarks file.
//
// The Icon field starts out as a remote URL and is rewritten to a local
// file path when the icon has been downloaded successfully. Failed
// downloads leave the field exactly as it was read.
//
// Bookmarks have no identity beyond their position in the input file;
// the pipeline keys every outcome by that index and never reorders.
type Bookmark struct {
	// Title is the display name of the bookmark. May be empty and may
	// contain any Unicode text, including non-Latin scripts.
	Title string `json:"title"`

	// URL is the page the bookmark points at. Used as a naming fallback
	// (hostname) when Title is empty.
	URL string `json:"url"`

	// Icon is the remote icon URL on input, the local path on output.
	Icon string `json:"icon"`
}

// IconURL returns the trimmed icon URL, or "" if the bookmark has none.
func (b Bookmark) IconURL() string {
	return strings.TrimSpace(b.Icon)
}

// HasIcon reports whether the bookmark carries a non-empty icon URL.
func (b Bookmark) HasIcon() bool {
	return b.IconURL() != ""
}
